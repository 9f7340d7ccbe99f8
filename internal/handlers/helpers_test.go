package handlers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/repository"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestJWT(t *testing.T) *config.JWT {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return config.NewJWTWithKeys(key, &key.PublicKey, time.Hour)
}

type fakePlayers struct {
	mu      sync.Mutex
	players map[string]*repository.Player
	err     error
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{players: make(map[string]*repository.Player)}
}

func (f *fakePlayers) CreatePlayer(
	ctx context.Context, params repository.CreatePlayerParams,
) (*repository.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.players[params.Username]; ok {
		return nil, &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	p := &repository.Player{
		PlayerId:     int64(len(f.players) + 1),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
	}
	f.players[p.Username] = p
	return p, nil
}

func (f *fakePlayers) FetchPlayer(ctx context.Context, username string) (*repository.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.players[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

type fakeScores struct {
	mu      sync.Mutex
	created []repository.CreateScoreParams
	filters []repository.ScoreFilter
	list    []repository.Score
	err     error
}

func (f *fakeScores) CreateScore(
	ctx context.Context, params repository.CreateScoreParams,
) (*repository.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, params)
	return &repository.Score{
		ScoreId:     int64(len(f.created)),
		Username:    "ann",
		Difficulty:  params.Difficulty,
		ElapsedTime: params.ElapsedTime,
		FoundMines:  params.FoundMines,
		TotalMines:  params.TotalMines,
		PlayedAt:    params.PlayedAt,
	}, nil
}

func (f *fakeScores) GetScores(
	ctx context.Context, filter repository.ScoreFilter,
) ([]repository.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	return f.list, f.err
}

func (f *fakeScores) Created() []repository.CreateScoreParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]repository.CreateScoreParams(nil), f.created...)
}

func formBody(kv ...string) io.Reader {
	form := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		form.Set(kv[i], kv[i+1])
	}
	return strings.NewReader(form.Encode())
}
