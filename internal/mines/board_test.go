package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoardClamping(t *testing.T) {
	tests := []struct {
		name                string
		rows, cols, mines   int
		wantR, wantC, wantM int
	}{
		{"in range", 10, 12, 20, 10, 12, 20},
		{"negative rows", -1, 10, 2, 2, 10, 2},
		{"too many mines", 10, 10, 101, 10, 10, 99},
		{"mines equal to cells", 3, 3, 9, 3, 3, 8},
		{"no mines", 5, 5, 0, 5, 5, 1},
		{"too large", 100, 100, 10, MaxRows, MaxCols, 10},
		{"tiny", 0, 1, -5, 2, 2, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := NewBoard(test.rows, test.cols, test.mines)
			assert.Equal(t, test.wantR, b.Rows())
			assert.Equal(t, test.wantC, b.Cols())
			assert.Equal(t, test.wantM, b.TotalMines())
			assert.Equal(t, test.wantM, b.RemainingFlags())
			assert.Equal(t, test.wantR*test.wantC, b.NotRevealedCount())
			assert.False(t, b.MinesPlaced())
			assert.False(t, b.IsGameOver())
		})
	}
}

func TestNewBoardBoundsProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		rows := r.IntN(80) - 20
		cols := r.IntN(120) - 20
		mines := r.IntN(4000) - 100
		b := NewBoard(rows, cols, mines)
		assert.True(t, 2 <= b.Rows() && b.Rows() <= MaxRows)
		assert.True(t, 2 <= b.Cols() && b.Cols() <= MaxCols)
		assert.True(t, 1 <= b.TotalMines() && b.TotalMines() <= b.Rows()*b.Cols()-1)
	}
}

func TestNewBoardCells(t *testing.T) {
	b := NewBoard(3, 4, 2)
	for row := range 3 {
		for col := range 4 {
			c, err := b.Cell(row, col)
			assert.NoError(t, err)
			assert.Equal(t, Cell{Row: row, Col: col, State: Hidden, Value: Empty}, c)
		}
	}

	_, err := b.Cell(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = b.Cell(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestBoardNeighbours(t *testing.T) {
	b := NewBoard(3, 3, 1)
	count := func(i int) int {
		n := 0
		b.neighbours(i, func(int) { n++ })
		return n
	}
	assert.Equal(t, 3, count(0))
	assert.Equal(t, 5, count(1))
	assert.Equal(t, 8, count(4))
	assert.Equal(t, 3, count(8))
}

func TestBoardString(t *testing.T) {
	b := NewBoard(2, 3, 1)
	b.cells[0].State = Revealed
	b.cells[1].State = Flagged
	b.cells[2].State = Questioned
	b.cells[3].State = Revealed
	b.cells[3].Value = 2
	b.cells[5].State = Pressed
	assert.Equal(t, ". F ?\n2 # _\n", b.String())
}
