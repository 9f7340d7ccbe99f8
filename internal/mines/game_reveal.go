package mines

import "log/slog"

// Reveal opens the cell at row, col. The first reveal of a game lays out
// the mines so that this cell is safe. Opening a cell with no adjacent
// mines opens its hidden neighbours as well, transitively. Flagged and
// questioned cells are never opened by the cascade.
//
// Reveal is a no-op once the game is over and on cells that are neither
// hidden nor pressed.
func (g *Game) Reveal(row, col int) error {
	i, err := g.board.index(row, col)
	if err != nil {
		return err
	}
	if g.board.gameOver || !g.board.cells[i].State.closed() {
		return nil
	}
	g.reveal(i)
	return nil
}

// reveal runs the cascade starting at i. Each cell is opened at most
// once: a cell is only queued while hidden and the queued marks stop a
// second enqueue before it is processed.
func (g *Game) reveal(start int) {
	b := g.board
	todo := newCelltodo(len(b.cells))
	queued := make([]bool, len(b.cells))
	todo.add(start)
	queued[start] = true

	for {
		i, ok := todo.pop()
		if !ok {
			return
		}
		if g.open(i) {
			return
		}
		if b.cells[i].Value != Empty {
			continue
		}
		b.neighbours(i, func(j int) {
			if !queued[j] && b.cells[j].State == Hidden {
				queued[j] = true
				todo.add(j)
			}
		})
	}
}

// open reveals a single cell and reports whether this ended the game.
func (g *Game) open(i int) (done bool) {
	b := g.board
	b.notRevealed--

	if !b.minesPlaced {
		b.placeMines(i, g.rnd)
		b.computeNeighborCounts()
		g.logger.Debug("mines placed",
			slog.Int("row", i/b.cols), slog.Int("col", i%b.cols),
		)
	}

	c := b.cells[i]
	if c.Value == Mine {
		g.setCell(i, Revealed, Explosion)
		g.lose()
		return true
	}

	g.setCell(i, Revealed, c.Value)
	if b.notRevealed == b.totalMines {
		g.win()
		return true
	}
	return false
}

// ChordOpen reveals every hidden neighbour of an already revealed cell.
// Flagged and questioned neighbours are left alone. It stops as soon as
// one of the reveals ends the game.
func (g *Game) ChordOpen(row, col int) error {
	i, err := g.board.index(row, col)
	if err != nil {
		return err
	}
	b := g.board
	if b.gameOver || b.cells[i].State != Revealed {
		return nil
	}

	targets := make([]int, 0, 8)
	b.neighbours(i, func(j int) {
		targets = append(targets, j)
	})
	for _, j := range targets {
		if b.gameOver {
			break
		}
		// an earlier cascade may already have opened it
		if b.cells[j].State == Hidden {
			g.reveal(j)
		}
	}
	return nil
}
