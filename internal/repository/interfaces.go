// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"user-seeding-service/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user-record operations.
type UserInterface interface {
	// CopyUsers persists one batch of users in a single round trip and
	// returns the number of rows written. The batch is atomic: either all
	// rows land or none do.
	CopyUsers(ctx context.Context, users []entities.User) (int64, error)

	// CountUsersWithProblems returns how many rows currently have the
	// problems flag set.
	CountUsersWithProblems(ctx context.Context) (int64, error)

	// ResetProblems clears the problems flag on every flagged row and
	// returns the number of rows actually transitioned, observed within a
	// single atomic statement.
	ResetProblems(ctx context.Context) (int64, error)
}

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	UserInterface
}
