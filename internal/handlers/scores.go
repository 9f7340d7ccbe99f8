package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

type Scores struct {
	logger *slog.Logger
	repo   ScoreRepository
	now    func() time.Time
}

func NewScores(logger *slog.Logger, repo ScoreRepository) *Scores {
	return &Scores{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

// Submit stores a score for the signed in player.
func (s Scores) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		sendError(w, s.logger, http.StatusBadRequest, err)
		return
	}
	dto, err := ParseScoreForm(r.PostForm, s.now())
	if err != nil {
		sendError(w, s.logger, http.StatusBadRequest, err)
		return
	}

	score, err := s.repo.CreateScore(r.Context(), repository.CreateScoreParams{
		PlayerId:    claims.PlayerId,
		Difficulty:  strings.ToLower(dto.Difficulty.String()),
		ElapsedTime: dto.ElapsedTime,
		FoundMines:  dto.FoundMines,
		TotalMines:  dto.TotalMines,
		PlayedAt:    dto.PlayedAt,
	})
	if err != nil {
		internalError(w, s.logger, "unable to insert score", err)
		return
	}

	s.logger.Info("score saved",
		slog.String("username", claims.Username),
		slog.String("difficulty", score.Difficulty),
		slog.Int("elapsedTime", score.ElapsedTime),
	)
	sendJSON(w, s.logger, http.StatusCreated, score)
}

// List returns the leaderboard. An unknown difficulty lists every
// difficulty.
func (s Scores) List(w http.ResponseWriter, r *http.Request) {
	query, err := ParseScoreQuery(r.URL.Query())
	if err != nil {
		sendError(w, s.logger, http.StatusBadRequest, err)
		return
	}

	filter := repository.ScoreFilter{Limit: query.Limit}
	if d, err := mines.ParseDifficulty(query.Difficulty); err == nil {
		difficulty := strings.ToLower(d.String())
		filter.Difficulty = &difficulty
	}
	if query.Username != "" {
		filter.Username = &query.Username
	}

	s.list(w, r, filter)
}

// Mine returns the scores of the signed in player.
func (s Scores) Mine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	s.list(w, r, repository.ScoreFilter{PlayerId: &claims.PlayerId})
}

func (s Scores) list(w http.ResponseWriter, r *http.Request, filter repository.ScoreFilter) {
	scores, err := s.repo.GetScores(r.Context(), filter)
	if err != nil {
		internalError(w, s.logger, "unable to fetch scores", err)
		return
	}
	if scores == nil {
		scores = []repository.Score{}
	}
	sendJSON(w, s.logger, http.StatusOK, scores)
}
