package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestScoreFilterWhereClause(t *testing.T) {
	username := "ann"
	playerId := int64(4)
	difficulty := "hard"

	tests := []struct {
		name       string
		filter     ScoreFilter
		wantClause string
		wantArgs   pgx.NamedArgs
	}{
		{
			name:       "empty",
			filter:     ScoreFilter{},
			wantClause: "",
			wantArgs:   pgx.NamedArgs{},
		},
		{
			name:       "difficulty",
			filter:     ScoreFilter{Difficulty: &difficulty},
			wantClause: "difficulty = @difficulty",
			wantArgs:   pgx.NamedArgs{"difficulty": "hard"},
		},
		{
			name:       "all",
			filter:     ScoreFilter{Username: &username, PlayerId: &playerId, Difficulty: &difficulty},
			wantClause: "username = @username AND player_id = @player_id AND difficulty = @difficulty",
			wantArgs: pgx.NamedArgs{
				"username":   "ann",
				"player_id":  int64(4),
				"difficulty": "hard",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clause, args := test.filter.WhereClause()
			assert.Equal(t, test.wantClause, clause)
			assert.Equal(t, test.wantArgs, args)
		})
	}
}
