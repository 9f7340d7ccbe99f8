package mines

import (
	"fmt"
	"strings"
)

type Difficulty uint8

const (
	Custom Difficulty = iota
	Easy
	Medium
	Hard
)

type preset struct {
	rows, cols, mines int
}

var presets = map[Difficulty]preset{
	Easy:   {9, 9, 10},
	Medium: {16, 16, 40},
	Hard:   {16, 30, 99},
}

// Classify maps board dimensions to a preset. Only exact matches count:
// a custom board that happens to equal a preset is reported as that
// preset.
func Classify(rows, cols, mines int) Difficulty {
	for d, p := range presets {
		if p.rows == rows && p.cols == cols && p.mines == mines {
			return d
		}
	}
	return Custom
}

// Preset returns the dimensions of a preset difficulty. ok is false for
// Custom.
func (d Difficulty) Preset() (rows, cols, mines int, ok bool) {
	p, ok := presets[d]
	return p.rows, p.cols, p.mines, ok
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return "Custom"
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "custom":
		return Custom, nil
	}
	return Custom, fmt.Errorf("unknown difficulty %q", s)
}

// [Difficulty] implements [encoding.TextMarshaler]
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(d.String())), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
