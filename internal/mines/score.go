package mines

import "time"

// Score is the result of a finished game as handed to a [ScoreSaver].
type Score struct {
	Name        string     `json:"name"`
	Difficulty  Difficulty `json:"difficulty"`
	ElapsedTime int        `json:"elapsed_time"`
	FoundMines  int        `json:"found_mines"`
	TotalMines  int        `json:"total_mines"`
	PlayedAt    time.Time  `json:"played_at"`
}

// Session identifies a signed in player. The caller attaches it to a
// game; without one, scores are only saved locally.
type Session struct {
	PlayerID int64
	Username string
	Token    string
}

// ScoreSaver persists finished games. Both methods may fail
// independently; the game logs the failure and carries on.
type ScoreSaver interface {
	SaveLocal(s Score) error
	SaveRemote(session Session, s Score) error
}

type discardSaver struct{}

func (discardSaver) SaveLocal(Score) error           { return nil }
func (discardSaver) SaveRemote(Session, Score) error { return nil }
