package usecase

import (
	"context"

	"user-seeding-service/internal/entities"
)

// UserUsecaseInterface abstracts user-record operations for the delivery layer.
type UserUsecaseInterface interface {
	// SeedUsers bulk-inserts synthetic users. A nil total means the
	// configured default (one million rows).
	SeedUsers(ctx context.Context, total *int) (entities.SeedResult, error)

	// ResetProblems atomically clears the problems flag on all flagged rows
	// and returns how many rows were transitioned.
	ResetProblems(ctx context.Context) (int64, error)
}
