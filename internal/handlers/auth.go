package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/repository"
)

type Auth struct {
	logger  *slog.Logger
	players PlayerRepository
	jwt     *config.JWT
}

func NewAuth(logger *slog.Logger, players PlayerRepository, jwt *config.JWT) *Auth {
	return &Auth{
		logger:  logger,
		players: players,
		jwt:     jwt,
	}
}

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username taken")
	ErrBadCredentials     = errors.New("wrong username or password")
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordLength = 72

func (a Auth) sendToken(w http.ResponseWriter, status int, player *repository.Player) {
	token, err := a.jwt.Sign(config.NewPlayerClaims(player.PlayerId, player.Username))
	if err != nil {
		internalError(w, a.logger, "unable to create a jwt token", err)
		return
	}
	sendJSON(w, a.logger, status, AuthDTO{
		Token:    token,
		PlayerId: player.PlayerId,
		Username: player.Username,
	})
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return
	}

	form, err := ParseAuthForm(r.PostForm)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return
	}

	passwordBytes := []byte(form.Password)
	if len(passwordBytes) > maxPasswordLength {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadPasswordTooLong)
		return
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		internalError(w, a.logger, "unable to hash password", err)
		return
	}

	player, err := a.players.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     form.Username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, a.logger, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to insert player", err)
		return
	}

	a.logger.Info("player registered", slog.String("username", player.Username))
	a.sendToken(w, http.StatusCreated, player)
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return
	}

	form, err := ParseAuthForm(r.PostForm)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return
	}

	player, err := a.players.FetchPlayer(r.Context(), form.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to fetch player", err)
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(form.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to compare password hash", err)
		return
	}

	a.sendToken(w, http.StatusOK, player)
}
