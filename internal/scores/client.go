package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrUnauthorized = errors.New("score server rejected the credentials")

// Form is the body of a score submission.
type Form struct {
	Difficulty  string `schema:"difficulty,required"`
	ElapsedTime int    `schema:"elapsed_time"`
	FoundMines  int    `schema:"found_mines"`
	TotalMines  int    `schema:"total_mines,required"`
	PlayedAt    int64  `schema:"played_at"`
}

func NewForm(s mines.Score) Form {
	return Form{
		Difficulty:  strings.ToLower(s.Difficulty.String()),
		ElapsedTime: s.ElapsedTime,
		FoundMines:  s.FoundMines,
		TotalMines:  s.TotalMines,
		PlayedAt:    s.PlayedAt.Unix(),
	}
}

type credentials struct {
	Username string `schema:"username"`
	Password string `schema:"password"`
}

type authReply struct {
	Token    string `json:"token"`
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

// Record is a score as listed by the score server.
type Record struct {
	ScoreId     int64            `json:"score_id"`
	Username    string           `json:"username"`
	Difficulty  mines.Difficulty `json:"difficulty"`
	ElapsedTime int              `json:"elapsed_time"`
	FoundMines  int              `json:"found_mines"`
	TotalMines  int              `json:"total_mines"`
	PlayedAt    time.Time        `json:"played_at"`
}

// Client talks to the score server.
type Client struct {
	baseURL string
	http    *http.Client
	enc     *schema.Encoder
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Second * 10}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		enc:     schema.NewEncoder(),
	}
}

func (c *Client) do(req *http.Request, v any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case res.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("score server replied %s: %s", res.Status, strings.TrimSpace(string(body)))
	}
	if v == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(v)
}

// Submit uploads s on behalf of the player the token belongs to.
func (c *Client) Submit(ctx context.Context, token string, s mines.Score) error {
	form := url.Values{}
	if err := c.enc.Encode(NewForm(s), form); err != nil {
		return fmt.Errorf("unable to encode score: %w", err)
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/scores", strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	return c.do(req, nil)
}

// List fetches the scores of a difficulty, or every score when
// difficulty is nil.
func (c *Client) List(ctx context.Context, difficulty *mines.Difficulty) ([]Record, error) {
	u := c.baseURL + "/scores"
	if difficulty != nil {
		u += "?difficulty=" + strings.ToLower(difficulty.String())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Login signs the player in, or registers them first when register is
// set, and returns the session to attach to games.
func (c *Client) Login(ctx context.Context, username, password string, register bool) (mines.Session, error) {
	form := url.Values{}
	if err := c.enc.Encode(credentials{username, password}, form); err != nil {
		return mines.Session{}, fmt.Errorf("unable to encode credentials: %w", err)
	}
	path := "/login"
	if register {
		path = "/register"
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return mines.Session{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var reply authReply
	if err := c.do(req, &reply); err != nil {
		return mines.Session{}, err
	}
	return mines.Session{
		PlayerID: reply.PlayerId,
		Username: reply.Username,
		Token:    reply.Token,
	}, nil
}
