package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/scores"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type AuthForm struct {
	Username string `schema:"username,required"`
	Password string `schema:"password,required"`
}

func ParseAuthForm(src map[string][]string) (AuthForm, error) {
	var dto AuthForm
	err := decoder.Decode(&dto, src)
	return dto, err
}

type AuthDTO struct {
	Token    string `json:"token"`
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

var (
	ErrBadElapsedTime = errors.New("elapsed_time must not be negative")
	ErrBadMineCount   = errors.New("found_mines must be between 0 and total_mines")
)

// ScoreDTO is a validated score submission.
type ScoreDTO struct {
	Difficulty  mines.Difficulty
	ElapsedTime int
	FoundMines  int
	TotalMines  int
	PlayedAt    time.Time
}

// ParseScoreForm decodes and validates a score submission. A missing
// played_at means now.
func ParseScoreForm(src map[string][]string, now time.Time) (ScoreDTO, error) {
	var form scores.Form
	if err := decoder.Decode(&form, src); err != nil {
		return ScoreDTO{}, err
	}
	difficulty, err := mines.ParseDifficulty(form.Difficulty)
	if err != nil {
		return ScoreDTO{}, err
	}
	if form.ElapsedTime < 0 {
		return ScoreDTO{}, ErrBadElapsedTime
	}
	if form.TotalMines <= 0 || form.FoundMines < 0 || form.FoundMines > form.TotalMines {
		return ScoreDTO{}, ErrBadMineCount
	}
	playedAt := now
	if form.PlayedAt > 0 {
		playedAt = time.Unix(form.PlayedAt, 0)
	}
	if playedAt.After(now.Add(time.Minute)) {
		return ScoreDTO{}, fmt.Errorf("played_at %d is in the future", form.PlayedAt)
	}
	return ScoreDTO{
		Difficulty:  difficulty,
		ElapsedTime: form.ElapsedTime,
		FoundMines:  form.FoundMines,
		TotalMines:  form.TotalMines,
		PlayedAt:    playedAt,
	}, nil
}

type ScoreQuery struct {
	Difficulty string `schema:"difficulty"`
	Username   string `schema:"username"`
	Limit      int    `schema:"limit"`
}

func ParseScoreQuery(src map[string][]string) (ScoreQuery, error) {
	var dto ScoreQuery
	err := decoder.Decode(&dto, src)
	return dto, err
}

// PlayRequest is a message sent by a websocket play client.
type PlayRequest struct {
	Op    string `json:"op"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Mines int    `json:"mines"`
}

type CellDTO struct {
	Row   int              `json:"row"`
	Col   int              `json:"col"`
	State string           `json:"state"`
	Value *mines.CellValue `json:"value,omitempty"`
}

// NewCellDTO hides the value of every cell the player cannot see.
func NewCellDTO(c mines.Cell) CellDTO {
	dto := CellDTO{Row: c.Row, Col: c.Col, State: c.State.String()}
	if c.State == mines.Revealed {
		v := c.Value
		dto.Value = &v
	}
	return dto
}

type EventDTO struct {
	Kind           string   `json:"kind"`
	Cell           *CellDTO `json:"cell,omitempty"`
	RemainingFlags *int     `json:"remaining_flags,omitempty"`
	Won            *bool    `json:"won,omitempty"`
	Rows           int      `json:"rows,omitempty"`
	Cols           int      `json:"cols,omitempty"`
	Mines          int      `json:"mines,omitempty"`
}

func NewEventDTO(e mines.Event) EventDTO {
	dto := EventDTO{Kind: e.Kind.String()}
	switch e.Kind {
	case mines.CellChanged:
		cell := NewCellDTO(e.Cell)
		dto.Cell = &cell
	case mines.FlagsChanged:
		dto.RemainingFlags = &e.RemainingFlags
	case mines.GameOver:
		dto.Won = &e.Won
		dto.RemainingFlags = &e.RemainingFlags
	case mines.NewGameStarted:
		dto.Rows, dto.Cols, dto.Mines = e.Rows, e.Cols, e.Mines
		dto.RemainingFlags = &e.RemainingFlags
	}
	return dto
}

type GameDTO struct {
	SessionId      string      `json:"session_id"`
	Rows           int         `json:"rows"`
	Cols           int         `json:"cols"`
	Mines          int         `json:"mines"`
	Difficulty     string      `json:"difficulty"`
	RemainingFlags int         `json:"remaining_flags"`
	NotRevealed    int         `json:"not_revealed"`
	GameOver       bool        `json:"game_over"`
	Won            bool        `json:"won"`
	Cells          [][]CellDTO `json:"cells,omitempty"`
}

func NewGameDTO(sessionId string, g *mines.Game, withCells bool) GameDTO {
	dto := GameDTO{
		SessionId:      sessionId,
		Rows:           g.Rows(),
		Cols:           g.Cols(),
		Mines:          g.TotalMines(),
		Difficulty:     g.Difficulty().String(),
		RemainingFlags: g.RemainingFlags(),
		NotRevealed:    g.NotRevealedCount(),
		GameOver:       g.IsGameOver(),
		Won:            g.Won(),
	}
	if withCells {
		snapshot := g.Snapshot()
		dto.Cells = make([][]CellDTO, g.Rows())
		for row := range dto.Cells {
			dto.Cells[row] = make([]CellDTO, g.Cols())
			for col := range dto.Cells[row] {
				dto.Cells[row][col] = NewCellDTO(snapshot[row*g.Cols()+col])
			}
		}
	}
	return dto
}

// PlayReply answers every PlayRequest with the events it caused and
// the resulting game state.
type PlayReply struct {
	Events []EventDTO `json:"events"`
	Game   GameDTO    `json:"game"`
	Error  string     `json:"error,omitempty"`
}
