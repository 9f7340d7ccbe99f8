package app

import (
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

type Repository interface {
	handlers.PlayerRepository
	handlers.ScoreRepository
}

var _ Repository = (*repository.Queries)(nil)

func (a *App) loadRoutes(repo Repository) {
	auth := handlers.NewAuth(a.logger, repo, a.jwt)
	scores := handlers.NewScores(a.logger, repo)
	play := handlers.NewPlay(a.logger, a.ws, repo)

	router := a.router
	if base := config.BasePath(); base != "" {
		router = a.router.PathPrefix(base).Subrouter()
	}

	router.Methods(http.MethodGet).Path("/status").HandlerFunc(status)
	router.Methods(http.MethodPost).Path("/register").HandlerFunc(auth.Register)
	router.Methods(http.MethodPost).Path("/login").HandlerFunc(auth.Login)

	router.Methods(http.MethodGet).Path("/scores").HandlerFunc(scores.List)
	router.Methods(http.MethodGet).Path("/scores/me").
		Handler(middleware.RequireAuth(http.HandlerFunc(scores.Mine)))
	router.Methods(http.MethodPost).Path("/scores").
		Handler(middleware.RequireAuth(http.HandlerFunc(scores.Submit)))

	router.Methods(http.MethodGet).Path("/play").HandlerFunc(play.Connect)
}

func status(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
