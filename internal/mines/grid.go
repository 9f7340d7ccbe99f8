package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState uint8

const (
	Hidden CellState = iota
	Flagged
	Questioned
	Pressed
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Questioned:
		return "questioned"
	case Pressed:
		return "pressed"
	case Revealed:
		return "revealed"
	default:
		return "invalid"
	}
}

// closed reports whether a reveal may still open a cell in this state.
func (s CellState) closed() bool {
	return s == Hidden || s == Pressed
}

/*
 * Each cell value is one of the following:
 *
 *  - 0 to 8 mean the cell has that many adjacent mines.
 *
 *  - Mine means the cell holds a mine.
 *
 *  - Explosion, Good and WrongMine only appear once the game is over:
 *    the mine the player opened, a mine shown after a win, and a flag
 *    placed on a cell that had no mine.
 */
type CellValue int8

const (
	Empty     CellValue = 0
	Mine      CellValue = 9
	Explosion CellValue = 10
	Good      CellValue = 11
	WrongMine CellValue = 12
)

// IsCount reports whether v is a neighbour count (Empty included).
func (v CellValue) IsCount() bool {
	return Empty <= v && v <= 8
}

// IsMine reports whether v marks a mine, including the end of game
// refinements of a mine.
func (v CellValue) IsMine() bool {
	return v == Mine || v == Explosion || v == Good
}

func (v CellValue) String() string {
	switch {
	case v.IsCount():
		return strconv.Itoa(int(v))
	case v == Mine:
		return "mine"
	case v == Explosion:
		return "explosion"
	case v == Good:
		return "good"
	case v == WrongMine:
		return "wrong mine"
	default:
		return "invalid"
	}
}

type Cell struct {
	Row   int       `json:"row"`
	Col   int       `json:"col"`
	State CellState `json:"state"`
	Value CellValue `json:"value"`
}

// Symbol renders the cell as the player sees it.
func (c Cell) Symbol() string {
	switch c.State {
	case Hidden:
		return "#"
	case Pressed:
		return "_"
	case Flagged:
		return "F"
	case Questioned:
		return "?"
	}
	switch c.Value {
	case Empty:
		return "."
	case Mine:
		return "*"
	case Explosion:
		return "X"
	case Good:
		return "+"
	case WrongMine:
		return "!"
	default:
		return strconv.Itoa(int(c.Value))
	}
}

func (c Cell) String() string {
	return fmt.Sprintf("Cell{row=%d, col=%d, state=%s, value=%s}",
		c.Row, c.Col, c.State, c.Value)
}

type Grid []Cell

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g[i].Symbol())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
