package mines

// CycleMark moves a closed cell through hidden -> flagged -> questioned
// -> hidden. Placing a flag takes one from the remaining flags counter
// and turning it into a question mark gives it back. The counter is
// only a hint for the player and may go negative.
//
// Nothing happens while a reveal gesture is in progress, that is while
// any cell is pressed.
func (g *Game) CycleMark(row, col int) error {
	i, err := g.board.index(row, col)
	if err != nil {
		return err
	}
	b := g.board
	if b.gameOver || b.pressed > 0 {
		return nil
	}

	c := b.cells[i]
	switch c.State {
	case Hidden:
		g.setCell(i, Flagged, c.Value)
		g.setRemainingFlags(b.remainingFlags - 1)
	case Flagged:
		g.setCell(i, Questioned, c.Value)
		g.setRemainingFlags(b.remainingFlags + 1)
	case Questioned:
		g.setCell(i, Hidden, c.Value)
	}
	return nil
}

// Press shows a hidden cell as held down, before the pointer is
// released over it.
func (g *Game) Press(row, col int) error {
	i, err := g.board.index(row, col)
	if err != nil {
		return err
	}
	c := g.board.cells[i]
	if !g.board.gameOver && c.State == Hidden {
		g.setCell(i, Pressed, c.Value)
	}
	return nil
}

// Release turns a pressed cell back into a hidden one, for when the
// pointer leaves it without opening it.
func (g *Game) Release(row, col int) error {
	i, err := g.board.index(row, col)
	if err != nil {
		return err
	}
	c := g.board.cells[i]
	if !g.board.gameOver && c.State == Pressed {
		g.setCell(i, Hidden, c.Value)
	}
	return nil
}
