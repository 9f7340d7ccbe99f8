package mines

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// inOrder keeps the candidate list as it is, so the mines land on the
// lowest indices after the prohibited one is skipped.
type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

type savedScore struct {
	session *Session
	score   Score
}

type fakeSaver struct {
	local, remote       []savedScore
	localErr, remoteErr error
}

func (s *fakeSaver) SaveLocal(score Score) error {
	s.local = append(s.local, savedScore{score: score})
	return s.localErr
}

func (s *fakeSaver) SaveRemote(session Session, score Score) error {
	s.remote = append(s.remote, savedScore{session: &session, score: score})
	return s.remoteErr
}

type eventLog []Event

func (l *eventLog) Notify(e Event) {
	*l = append(*l, e)
}

func (l eventLog) kinds(k EventKind) []Event {
	var out []Event
	for _, e := range l {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, rows, cols, mines int, opts ...Option) *Game {
	t.Helper()
	base := []Option{
		WithLogger(quiet),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return testTime }),
	}
	return New(rows, cols, mines, append(base, opts...)...)
}

// forceMines lays out mines at the given positions instead of letting
// the first reveal place them.
func forceMines(t *testing.T, g *Game, positions ...[2]int) {
	t.Helper()
	b := g.board
	if len(positions) != b.totalMines {
		t.Fatalf("forceMines: %d positions for %d mines", len(positions), b.totalMines)
	}
	for _, p := range positions {
		i, err := b.index(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		b.cells[i].Value = Mine
	}
	b.minesPlaced = true
	b.computeNeighborCounts()
}

// neighbourMines counts mines around row, col the slow way.
func neighbourMines(b *Board, row, col int) int {
	n := 0
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if (r != row || c != col) && b.InBounds(r, c) &&
				b.cells[r*b.cols+c].Value == Mine {
				n++
			}
		}
	}
	return n
}

var errSave = errors.New("save failed")
