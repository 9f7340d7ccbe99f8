package mines

const (
	MaxRows = 30
	MaxCols = 60
)

// Board is the state of a single game: the cell arena and the counters
// derived from it. Cells are stored row by row and addressed by
// row*cols+col.
type Board struct {
	rows, cols, totalMines int

	cells []Cell

	remainingFlags int
	notRevealed    int
	pressed        int
	minesPlaced    bool
	gameOver, won  bool
	elapsed        int
	difficulty     Difficulty
}

// NewBoard allocates a board of hidden, empty cells. Out of range
// dimensions are clamped rather than rejected.
func NewBoard(rows, cols, mines int) *Board {
	rows = clamp(rows, 2, MaxRows)
	cols = clamp(cols, 2, MaxCols)
	mines = clamp(mines, 1, rows*cols-1)

	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i] = Cell{Row: i / cols, Col: i % cols, State: Hidden, Value: Empty}
	}

	return &Board{
		rows:           rows,
		cols:           cols,
		totalMines:     mines,
		cells:          cells,
		remainingFlags: mines,
		notRevealed:    rows * cols,
		difficulty:     Classify(rows, cols, mines),
	}
}

func (b *Board) Rows() int              { return b.rows }
func (b *Board) Cols() int              { return b.cols }
func (b *Board) TotalMines() int        { return b.totalMines }
func (b *Board) RemainingFlags() int    { return b.remainingFlags }
func (b *Board) NotRevealedCount() int  { return b.notRevealed }
func (b *Board) Difficulty() Difficulty { return b.difficulty }
func (b *Board) IsGameOver() bool       { return b.gameOver }
func (b *Board) Won() bool              { return b.won }
func (b *Board) MinesPlaced() bool      { return b.minesPlaced }

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

func (b *Board) index(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, &OutOfBoundsError{Row: row, Col: col, Rows: b.rows, Cols: b.cols}
	}
	return row*b.cols + col, nil
}

// Cell returns a copy of the cell at row, col.
func (b *Board) Cell(row, col int) (Cell, error) {
	i, err := b.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return b.cells[i], nil
}

// Snapshot copies every cell, row by row.
func (b *Board) Snapshot() Grid {
	grid := make(Grid, len(b.cells))
	copy(grid, b.cells)
	return grid
}

// neighbours calls fn with the index of every cell adjacent to i,
// clamped at the board edges.
func (b *Board) neighbours(i int, fn func(j int)) {
	row, col := i/b.cols, i%b.cols
	for r := max(row-1, 0); r <= min(row+1, b.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, b.cols-1); c++ {
			if r != row || c != col {
				fn(r*b.cols + c)
			}
		}
	}
}

func (b *Board) String() string {
	return Grid(b.cells).ToString(b.cols)
}
