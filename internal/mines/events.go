package mines

type EventKind uint8

const (
	// CellChanged carries the new state and value of a single cell.
	CellChanged EventKind = iota
	// FlagsChanged carries the new remaining flags counter.
	FlagsChanged
	// GameOver is sent once per game, after the board is finalized.
	GameOver
	// NewGameStarted is sent after a fresh board replaced the old one.
	NewGameStarted
)

func (k EventKind) String() string {
	switch k {
	case CellChanged:
		return "cell"
	case FlagsChanged:
		return "flags"
	case GameOver:
		return "gameover"
	case NewGameStarted:
		return "newgame"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind           EventKind
	Cell           Cell
	RemainingFlags int
	Won            bool
	Rows, Cols     int
	Mines          int
}

// Observer receives engine events. Notify is called synchronously, in
// the order the mutations happen, before the mutating call returns.
// Observers must not call back into the game.
type Observer interface {
	Notify(e Event)
}

type ObserverFunc func(e Event)

// [ObserverFunc] implements [Observer]
func (f ObserverFunc) Notify(e Event) {
	f(e)
}

func (g *Game) emit(e Event) {
	for _, o := range g.observers {
		o.Notify(e)
	}
}

func (g *Game) setCell(i int, state CellState, value CellValue) {
	c := &g.board.cells[i]
	if c.State == state && c.Value == value {
		return
	}
	if c.State == Pressed && state != Pressed {
		g.board.pressed--
	} else if c.State != Pressed && state == Pressed {
		g.board.pressed++
	}
	c.State, c.Value = state, value
	g.emit(Event{Kind: CellChanged, Cell: *c})
}

func (g *Game) setRemainingFlags(n int) {
	if g.board.remainingFlags == n {
		return
	}
	g.board.remainingFlags = n
	g.emit(Event{Kind: FlagsChanged, RemainingFlags: n})
}
