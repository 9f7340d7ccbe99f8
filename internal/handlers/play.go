package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

var ErrUnknownOp = errors.New("unknown op")

type Play struct {
	logger *slog.Logger
	ws     *config.WebSocket
	scores ScoreRepository
	now    func() time.Time
}

func NewPlay(logger *slog.Logger, ws *config.WebSocket, scores ScoreRepository) *Play {
	return &Play{
		logger: logger,
		ws:     ws,
		scores: scores,
		now:    time.Now,
	}
}

// repoSaver stores the wins of signed in players. The server keeps no
// local scores.
type repoSaver struct {
	repo    ScoreRepository
	timeout time.Duration
}

// [repoSaver] implements [mines.ScoreSaver]
func (s repoSaver) SaveLocal(mines.Score) error {
	return nil
}

func (s repoSaver) SaveRemote(session mines.Session, score mines.Score) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, err := s.repo.CreateScore(ctx, repository.CreateScoreParams{
		PlayerId:    session.PlayerID,
		Difficulty:  strings.ToLower(score.Difficulty.String()),
		ElapsedTime: score.ElapsedTime,
		FoundMines:  score.FoundMines,
		TotalMines:  score.TotalMines,
		PlayedAt:    score.PlayedAt,
	})
	return err
}

// playSession owns one game for the lifetime of a connection. Only the
// connection's read loop touches it.
type playSession struct {
	id        string
	game      *mines.Game
	events    []EventDTO
	startedAt time.Time
	now       func() time.Time
}

func (s *playSession) Notify(e mines.Event) {
	s.events = append(s.events, NewEventDTO(e))
}

func (s *playSession) apply(req PlayRequest) error {
	started := s.game.Started()
	if started {
		s.game.SetElapsedTime(int(s.now().Sub(s.startedAt) / time.Second))
	}

	var err error
	switch req.Op {
	case "new":
		if req.Rows > 0 || req.Cols > 0 || req.Mines > 0 {
			s.game.NewGameWith(req.Rows, req.Cols, req.Mines)
		} else {
			s.game.NewGame()
		}
		return nil
	case "reveal":
		err = s.game.Reveal(req.Row, req.Col)
	case "chord":
		err = s.game.ChordOpen(req.Row, req.Col)
	case "mark":
		err = s.game.CycleMark(req.Row, req.Col)
	case "press":
		err = s.game.Press(req.Row, req.Col)
	case "release":
		err = s.game.Release(req.Row, req.Col)
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
	}

	if !started && s.game.Started() {
		s.startedAt = s.now()
	}
	return err
}

func (s *playSession) reply(withCells bool, err error) PlayReply {
	reply := PlayReply{
		Events: s.events,
		Game:   NewGameDTO(s.id, s.game, withCells),
	}
	if reply.Events == nil {
		reply.Events = []EventDTO{}
	}
	if err != nil {
		reply.Error = err.Error()
	}
	s.events = nil
	return reply
}

// Connect upgrades the request to a websocket and plays a game over it.
// Every request message is answered with one [PlayReply].
func (p Play) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := p.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	session := &playSession{id: uuid.NewString(), now: p.now}
	logger := p.logger.With(slog.String("sessionId", session.id))
	claims, loggedIn := middleware.PlayerClaims(r.Context())
	if loggedIn {
		logger = logger.With(slog.String("username", claims.Username))
	}

	rows, cols, count, _ := mines.Easy.Preset()
	session.game = mines.New(rows, cols, count,
		mines.WithLogger(logger),
		mines.WithObserver(session),
		mines.WithClock(p.now),
		mines.WithScoreSaver(repoSaver{repo: p.scores, timeout: p.ws.WriteTimeout}),
	)
	if loggedIn {
		session.game.SetSession(&mines.Session{
			PlayerID: claims.PlayerId,
			Username: claims.Username,
		})
	}
	logger.Debug("play session opened")

	conn.SetReadDeadline(time.Now().Add(p.ws.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(p.ws.PongTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go p.ping(conn, done)

	write := func(reply PlayReply) error {
		conn.SetWriteDeadline(time.Now().Add(p.ws.WriteTimeout))
		return conn.WriteJSON(reply)
	}

	if err := write(session.reply(true, nil)); err != nil {
		logger.Error("unable to send game", slog.Any("error", err))
		return
	}

	for {
		var req PlayRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				logger.Warn("play session closed unexpectedly", slog.Any("error", err))
			}
			logger.Debug("play session closed")
			return
		}

		err := session.apply(req)
		if err != nil {
			logger.Debug("rejected play request", slog.String("op", req.Op), slog.Any("error", err))
		}
		if err := write(session.reply(req.Op == "new", err)); err != nil {
			logger.Error("unable to send reply", slog.Any("error", err))
			return
		}
	}
}

func (p Play) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(p.ws.PongTimeout * 9 / 10)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(p.ws.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
