package mines

import (
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"time"
)

var Log *slog.Logger = slog.Default()

// Game drives one board at a time and the collaborators around it. It
// is not safe for concurrent use: callers serialize every call.
type Game struct {
	board *Board

	rnd        RandomSource
	saver      ScoreSaver
	observers  []Observer
	logger     *slog.Logger
	now        func() time.Time
	playerName string
	session    *Session
}

type Option func(g *Game)

func WithRand(r RandomSource) Option {
	return func(g *Game) { g.rnd = r }
}

func WithScoreSaver(s ScoreSaver) Option {
	return func(g *Game) { g.saver = s }
}

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithPlayerName sets the name stored with local scores.
func WithPlayerName(name string) Option {
	return func(g *Game) { g.playerName = name }
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// New creates a game on a rows x cols board holding mines mines. The
// dimensions are clamped to the supported range.
func New(rows, cols, mines int, opts ...Option) *Game {
	g := &Game{
		saver:      discardSaver{},
		logger:     Log,
		now:        time.Now,
		playerName: "Local",
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = newRand()
	}
	g.board = NewBoard(rows, cols, mines)
	return g
}

// NewGame replaces the board with a fresh one of the same dimensions.
func (g *Game) NewGame() {
	g.NewGameWith(g.board.rows, g.board.cols, g.board.totalMines)
}

func (g *Game) NewGameWith(rows, cols, mines int) {
	g.board = NewBoard(rows, cols, mines)
	g.logger.Info("new game set up",
		slog.Int("rows", g.board.rows),
		slog.Int("cols", g.board.cols),
		slog.Int("mines", g.board.totalMines),
		slog.String("difficulty", g.board.difficulty.String()),
	)
	g.emit(Event{
		Kind:           NewGameStarted,
		Rows:           g.board.rows,
		Cols:           g.board.cols,
		Mines:          g.board.totalMines,
		RemainingFlags: g.board.remainingFlags,
	})
}

// AddObserver registers o for every following event.
func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// SetSession attaches a signed in player; nil detaches it.
func (g *Game) SetSession(s *Session) {
	g.session = s
}

func (g *Game) Session() *Session {
	return g.session
}

// SetElapsedTime records the play time in seconds measured by the
// caller.
func (g *Game) SetElapsedTime(seconds int) {
	g.board.elapsed = seconds
}

func (g *Game) ElapsedTime() int       { return g.board.elapsed }
func (g *Game) Board() *Board          { return g.board }
func (g *Game) Rows() int              { return g.board.rows }
func (g *Game) Cols() int              { return g.board.cols }
func (g *Game) TotalMines() int        { return g.board.totalMines }
func (g *Game) RemainingFlags() int    { return g.board.remainingFlags }
func (g *Game) NotRevealedCount() int  { return g.board.notRevealed }
func (g *Game) Difficulty() Difficulty { return g.board.difficulty }
func (g *Game) IsGameOver() bool       { return g.board.gameOver }
func (g *Game) Won() bool              { return g.board.won }
func (g *Game) Started() bool          { return g.board.minesPlaced }
func (g *Game) Snapshot() Grid         { return g.board.Snapshot() }
func (g *Game) String() string         { return g.board.String() }

func (g *Game) Cell(row, col int) (Cell, error) {
	return g.board.Cell(row, col)
}
