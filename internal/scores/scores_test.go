package scores

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper/internal/mines"
)

func openTestLocal(t *testing.T) *Local {
	t.Helper()
	l, err := OpenLocal(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func testScore(d mines.Difficulty, at int64) mines.Score {
	return mines.Score{
		Name:        "Local",
		Difficulty:  d,
		ElapsedTime: 42,
		FoundMines:  10,
		TotalMines:  10,
		PlayedAt:    time.Unix(at, 0).UTC(),
	}
}

func TestLocalSaveAndList(t *testing.T) {
	l := openTestLocal(t)

	require.NoError(t, l.Save(testScore(mines.Hard, 300)))
	require.NoError(t, l.Save(testScore(mines.Easy, 100)))
	require.NoError(t, l.Save(testScore(mines.Easy, 200)))

	all, err := l.List(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(100), all[0].PlayedAt.Unix())
	assert.Equal(t, int64(200), all[1].PlayedAt.Unix())
	assert.Equal(t, int64(300), all[2].PlayedAt.Unix())
	assert.Equal(t, mines.Hard, all[2].Difficulty)

	easy := mines.Easy
	filtered, err := l.List(&easy)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	for _, s := range filtered {
		assert.Equal(t, mines.Easy, s.Difficulty)
	}
}

func TestLocalSameTimestamp(t *testing.T) {
	l := openTestLocal(t)

	require.NoError(t, l.Save(testScore(mines.Easy, 100)))
	require.NoError(t, l.Save(testScore(mines.Easy, 100)))

	all, err := l.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLocalClear(t *testing.T) {
	l := openTestLocal(t)
	require.NoError(t, l.Save(testScore(mines.Medium, 1)))
	require.NoError(t, l.Clear())

	all, err := l.List(nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClientSubmit(t *testing.T) {
	var got Form
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scores", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		require.NoError(t, schema.NewDecoder().Decode(&got, r.PostForm))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", nil)
	err := c.Submit(context.Background(), "secret", testScore(mines.Medium, 1700000000))
	require.NoError(t, err)

	assert.Equal(t, Form{
		Difficulty:  "medium",
		ElapsedTime: 42,
		FoundMines:  10,
		TotalMines:  10,
		PlayedAt:    1700000000,
	}, got)
}

func TestClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Submit(context.Background(), "bad", testScore(mines.Easy, 1))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Submit(context.Background(), "t", testScore(mines.Easy, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hard", r.URL.Query().Get("difficulty"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"score_id":7,"username":"ann","difficulty":"hard",` +
			`"elapsed_time":99,"found_mines":99,"total_mines":99,` +
			`"played_at":"2024-01-02T03:04:05Z"}]`))
	}))
	defer srv.Close()

	hard := mines.Hard
	records, err := NewClient(srv.URL, nil).List(context.Background(), &hard)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Record{
		ScoreId:     7,
		Username:    "ann",
		Difficulty:  mines.Hard,
		ElapsedTime: 99,
		FoundMines:  99,
		TotalMines:  99,
		PlayedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, records[0])
}

func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ann", r.PostForm.Get("username"))
		assert.Equal(t, "pw", r.PostForm.Get("password"))
		switch r.URL.Path {
		case "/register":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"token":"new","player_id":2,"username":"ann"}`))
		case "/login":
			w.Write([]byte(`{"token":"old","player_id":2,"username":"ann"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	session, err := c.Login(context.Background(), "ann", "pw", false)
	require.NoError(t, err)
	assert.Equal(t, mines.Session{PlayerID: 2, Username: "ann", Token: "old"}, session)

	session, err = c.Login(context.Background(), "ann", "pw", true)
	require.NoError(t, err)
	assert.Equal(t, "new", session.Token)
}

func TestSaver(t *testing.T) {
	var submitted int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submitted++
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	l := openTestLocal(t)
	s := &Saver{Local: l, Remote: NewClient(srv.URL, nil), Timeout: time.Second}

	require.NoError(t, s.SaveLocal(testScore(mines.Easy, 1)))
	all, err := l.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	err = s.SaveRemote(mines.Session{Username: "ann"}, testScore(mines.Easy, 1))
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 0, submitted)

	err = s.SaveRemote(mines.Session{Username: "ann", Token: "t"}, testScore(mines.Easy, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, submitted)
}

func TestSaverWithoutBackends(t *testing.T) {
	var s Saver
	assert.NoError(t, s.SaveLocal(testScore(mines.Easy, 1)))
	assert.NoError(t, s.SaveRemote(mines.Session{Token: "t"}, testScore(mines.Easy, 1)))
}

func TestSaverWithGame(t *testing.T) {
	l := openTestLocal(t)
	g := mines.New(2, 2, 3,
		mines.WithScoreSaver(&Saver{Local: l}),
		mines.WithClock(func() time.Time { return time.Unix(500, 0) }),
	)
	require.NoError(t, g.Reveal(0, 0))
	require.True(t, g.IsGameOver())

	all, err := l.List(nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, g.Won())
	assert.Equal(t, 3, all[0].FoundMines)
	assert.Equal(t, int64(500), all[0].PlayedAt.Unix())
}
