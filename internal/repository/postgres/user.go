package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"user-seeding-service/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	countProblemsQuery = `SELECT COUNT(*) FROM users WHERE has_problems = TRUE`

	// A single UPDATE is one implicit transaction: the rows-affected count it
	// reports is exactly the set of rows transitioned, no concurrent writer
	// can slip between count and update.
	resetProblemsQuery = `UPDATE users SET has_problems = FALSE WHERE has_problems = TRUE`
)

var usersColumns = []string{"first_name", "last_name", "age", "gender", "has_problems"}

// CopyUsers bulk-inserts one batch of users via the COPY protocol.
func (p *Postgres) CopyUsers(ctx context.Context, users []entities.User) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	n, err := p.db.CopyFrom(ctx, pgx.Identifier{"users"}, usersColumns,
		pgx.CopyFromSlice(len(users), func(i int) ([]any, error) {
			u := users[i]
			return []any{u.FirstName, u.LastName, u.Age, u.Gender, u.HasProblems}, nil
		}),
	)
	if err != nil {
		p.log.Errorw("failed to copy users", "error", err, "batch_size", len(users))
		return 0, fmt.Errorf("%w: %w", entities.ErrBatchWrite, mapPgError(err))
	}

	return n, nil
}

// CountUsersWithProblems returns the number of flagged rows.
func (p *Postgres) CountUsersWithProblems(ctx context.Context) (int64, error) {
	var cnt int64
	if err := p.db.QueryRow(ctx, countProblemsQuery).Scan(&cnt); err != nil {
		return 0, fmt.Errorf("count users with problems: %w", mapPgError(err))
	}
	return cnt, nil
}

// ResetProblems clears the problems flag on all flagged rows and returns the
// number of rows transitioned.
func (p *Postgres) ResetProblems(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, resetProblemsQuery)
	if err != nil {
		p.log.Errorw("failed to reset problems flag", "error", err)
		return 0, fmt.Errorf("reset problems: %w", mapPgError(err))
	}

	affected := tag.RowsAffected()
	p.log.Infow("problems flag reset", "rows", affected)
	return affected, nil
}

// mapPgError translates driver error codes onto domain sentinels.
// 40001 is serialization_failure, 40P01 is deadlock_detected; both mean the
// whole operation may be retried. Class 08 covers connection exceptions.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001" || pgErr.Code == "40P01":
			return fmt.Errorf("%w: %s", entities.ErrTxConflict, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %s", entities.ErrConnection, pgErr.Message)
		}
	}
	return err
}
