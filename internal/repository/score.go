package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type Score struct {
	ScoreId     int64     `db:"score_id" json:"score_id"`
	Username    string    `db:"username" json:"username"`
	Difficulty  string    `db:"difficulty" json:"difficulty"`
	ElapsedTime int       `db:"elapsed_time" json:"elapsed_time"`
	FoundMines  int       `db:"found_mines" json:"found_mines"`
	TotalMines  int       `db:"total_mines" json:"total_mines"`
	PlayedAt    time.Time `db:"played_at" json:"played_at"`
}

type CreateScoreParams struct {
	PlayerId    int64
	Difficulty  string
	ElapsedTime int
	FoundMines  int
	TotalMines  int
	PlayedAt    time.Time
}

func (q *Queries) CreateScore(ctx context.Context, params CreateScoreParams) (*Score, error) {
	rows, _ := q.db.Query(
		ctx,
		`WITH inserted AS (
			INSERT INTO score (
				player_id, difficulty, elapsed_time, found_mines, total_mines, played_at
			)
			VALUES (
				@player_id, @difficulty, @elapsed_time, @found_mines, @total_mines, @played_at
			)
			RETURNING *
		)
		SELECT
			score_id, username, difficulty, elapsed_time, found_mines, total_mines, played_at
		FROM inserted
			JOIN player USING (player_id);`,
		pgx.NamedArgs{
			"player_id":    params.PlayerId,
			"difficulty":   params.Difficulty,
			"elapsed_time": params.ElapsedTime,
			"found_mines":  params.FoundMines,
			"total_mines":  params.TotalMines,
			"played_at":    params.PlayedAt,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Score])
}

type ScoreFilter struct {
	Username   *string
	PlayerId   *int64
	Difficulty *string
	Limit      int
}

func (f ScoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.PlayerId != nil {
		clauses = append(clauses, "player_id = @player_id")
		args["player_id"] = *f.PlayerId
	}
	if f.Difficulty != nil {
		clauses = append(clauses, "difficulty = @difficulty")
		args["difficulty"] = *f.Difficulty
	}
	return strings.Join(clauses, " AND "), args
}

const defaultScoreLimit = 100

// GetScores lists scores best first: more mines found, then less time.
func (q *Queries) GetScores(ctx context.Context, filter ScoreFilter) ([]Score, error) {
	query := `
	SELECT
		score_id,
		username,
		difficulty,
		elapsed_time,
		found_mines,
		total_mines,
		played_at
	FROM score
		JOIN player USING (player_id)
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultScoreLimit
	}
	args["limit"] = limit

	query += " ORDER BY found_mines DESC, elapsed_time ASC, played_at ASC LIMIT @limit;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Score])
}
