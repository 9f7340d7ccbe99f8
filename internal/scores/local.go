package scores

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/store"
)

// Local keeps scores on this machine, one gob record per game.
type Local struct {
	store *store.Store
}

func NewLocal(s *store.Store) *Local {
	return &Local{store: s}
}

// OpenLocal opens the local score database at path.
func OpenLocal(path string) (*Local, error) {
	s, err := store.Open(path, "scores")
	if err != nil {
		return nil, err
	}
	return NewLocal(s), nil
}

func (l *Local) Close() error {
	return l.store.Close()
}

// Keys start with the play time so that key order is play order.
func scoreKey(s mines.Score) string {
	return fmt.Sprintf("%020d-%s", s.PlayedAt.UnixNano(), uuid.NewString())
}

func (l *Local) Save(s mines.Score) error {
	if err := l.store.Set(scoreKey(s), s); err != nil {
		return fmt.Errorf("unable to store score: %w", err)
	}
	return nil
}

// List returns stored scores oldest first. A nil difficulty lists all.
func (l *Local) List(difficulty *mines.Difficulty) ([]mines.Score, error) {
	scores := make([]mines.Score, 0)
	err := l.store.Each(func(key string, decode func(any) error) error {
		var s mines.Score
		if err := decode(&s); err != nil {
			return fmt.Errorf("unable to decode score %s: %w", key, err)
		}
		if difficulty == nil || s.Difficulty == *difficulty {
			scores = append(scores, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func (l *Local) Clear() error {
	return l.store.Clear()
}
