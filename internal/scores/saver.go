package scores

import (
	"context"
	"errors"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrNoSession = errors.New("no session token")

// Saver stores finished games locally and, for signed in players, on
// the score server. Either side may be nil to skip it.
type Saver struct {
	Local   *Local
	Remote  *Client
	Timeout time.Duration
}

// [Saver] implements [mines.ScoreSaver]
func (s *Saver) SaveLocal(score mines.Score) error {
	if s.Local == nil {
		return nil
	}
	return s.Local.Save(score)
}

func (s *Saver) SaveRemote(session mines.Session, score mines.Score) error {
	if s.Remote == nil {
		return nil
	}
	if session.Token == "" {
		return ErrNoSession
	}
	timeout := s.Timeout
	if timeout == 0 {
		timeout = time.Second * 10
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Remote.Submit(ctx, session.Token, score)
}
