package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrQuit           = errors.New("quit")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"r": 2, // reveal
	"c": 2, // chord
	"m": 2, // cycle mark
	"n": 0, // new game
	"q": 0, // quit
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		return 0, 0, errors.New("row must be an int")
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		return 0, 0, errors.New("col must be an int")
	}
	return row, col, nil
}

func executeCommand(g *mines.Game, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("%s takes %d arguments", parts[0], nargs)
	}

	switch parts[0] {
	case "n":
		g.NewGame()
		return nil
	case "q":
		return ErrQuit
	}

	row, col, err := parseRowCol(parts[1:])
	if err != nil {
		return err
	}
	switch parts[0] {
	case "r":
		return g.Reveal(row, col)
	case "c":
		return g.ChordOpen(row, col)
	case "m":
		return g.CycleMark(row, col)
	}
	return ErrUnknownCommand
}
