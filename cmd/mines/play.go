package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

const help = `commands:
  r ROW COL   reveal a cell
  c ROW COL   open the neighbours of a revealed cell
  m ROW COL   cycle flag / question mark / nothing
  n           new game
  q           quit
`

type console struct {
	in  *bufio.Scanner
	out io.Writer
	now func() time.Time

	game      *mines.Game
	startedAt time.Time
}

// [console] implements [mines.Observer]
func (c *console) Notify(e mines.Event) {
	switch e.Kind {
	case mines.GameOver:
		if e.Won {
			fmt.Fprintf(c.out, "You win! Time: %ds\n", c.game.ElapsedTime())
		} else {
			fmt.Fprintln(c.out, "BOOM! Game over.")
		}
	case mines.NewGameStarted:
		fmt.Fprintf(c.out, "New %s game: %dx%d, %d mines\n",
			mines.Classify(e.Rows, e.Cols, e.Mines), e.Rows, e.Cols, e.Mines)
	}
}

func (c *console) printBoard() {
	g := c.game
	fmt.Fprintf(c.out, "\n%sflags left: %d\n", g.String(), g.RemainingFlags())
}

func (c *console) tick() {
	if c.game.Started() && !c.game.IsGameOver() {
		c.game.SetElapsedTime(int(c.now().Sub(c.startedAt) / time.Second))
	}
}

// run reads commands until q or the end of input.
func (c *console) run() error {
	fmt.Fprint(c.out, help)
	c.printBoard()
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}

		started := c.game.Started()
		c.tick()
		err := executeCommand(c.game, c.in.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			log.WithFields(logrus.Fields{
				"command": c.in.Text(),
			}).Debug("rejected command")
			fmt.Fprintln(c.out, "error:", err)
			continue
		}
		if !started && c.game.Started() {
			c.startedAt = c.now()
		}
		c.printBoard()
	}
}
