package domain

import (
	"context"
	"math/rand"
	"time"

	"user-seeding-service/config"
	"user-seeding-service/internal/repository"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx       context.Context
	log       *zap.SugaredLogger
	repo      repository.Repository
	timeout   time.Duration
	seeder    config.SeederConfig
	flagReset config.FlagResetConfig

	// newSource yields a fresh random source per seeding run; injected so
	// tests can pin a seed and get reproducible rows.
	newSource func() rand.Source
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	cfg *config.Config,
	newSource func() rand.Source,
) *Usecase {
	seeder := cfg.Seeder
	// Effective write parallelism is bounded by the pool; more workers than
	// connections would only queue on Acquire.
	if int32(seeder.Workers) > cfg.Postgres.MaxConns {
		seeder.Workers = int(cfg.Postgres.MaxConns)
	}

	return &Usecase{
		ctx:       ctx,
		log:       log,
		repo:      repo,
		timeout:   cfg.HTTP.RequestTimeout,
		seeder:    seeder,
		flagReset: cfg.FlagReset,
		newSource: newSource,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
