// Package domain contains application usecases orchestrating bulk seeding
// and the problems-flag reset.
package domain

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"

	"user-seeding-service/internal/entities"
	"user-seeding-service/internal/generator"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SeedUsers bulk-inserts synthetic users in batches written by a bounded
// worker pool. A nil total means the configured default.
//
// Batches commit independently: on a failing batch the remaining work is
// cancelled and rows committed before the failure stay committed. The
// returned result carries the exact committed count either way.
func (u *Usecase) SeedUsers(ctx context.Context, total *int) (entities.SeedResult, error) {
	res := entities.SeedResult{RunID: uuid.NewString()}

	n := u.seeder.DefaultTotal
	if total != nil {
		n = *total
	}
	if n < 0 {
		return res, fmt.Errorf("%w: total must be non-negative, got %d", entities.ErrInvalidArgument, n)
	}

	ctx, cancel := withTimeout(ctx, u.seeder.RunTimeout)
	defer cancel()

	log := u.log.With("run_id", res.RunID, "total", n)
	log.Infow("seeding started", "batch_size", u.seeder.BatchSize, "workers", u.seeder.Workers)

	var inserted atomic.Int64
	batches := make(chan []entities.User)
	g, ctx := errgroup.WithContext(ctx)

	// Single producer keeps generation in index order over one random
	// source, so a fixed seed reproduces the run exactly. Workers only write.
	g.Go(func() error {
		defer close(batches)

		gen := generator.New(rand.New(u.newSource()))
		batch := make([]entities.User, 0, u.seeder.BatchSize)
		for i := 0; i < n; i++ {
			batch = append(batch, gen.UserAt(i))
			if len(batch) < u.seeder.BatchSize {
				continue
			}
			select {
			case batches <- batch:
				batch = make([]entities.User, 0, u.seeder.BatchSize)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if len(batch) > 0 {
			select {
			case batches <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < u.seeder.Workers; w++ {
		g.Go(func() error {
			for batch := range batches {
				if err := ctx.Err(); err != nil {
					return err
				}
				written, err := u.repo.CopyUsers(ctx, batch)
				if err != nil {
					return err
				}
				inserted.Add(written)
			}
			return nil
		})
	}

	err := g.Wait()
	res.Inserted = inserted.Load()
	if err != nil {
		log.Errorw("seeding aborted", "error", err, "inserted", res.Inserted)
		return res, err
	}

	log.Infow("seeding complete", "inserted", res.Inserted)
	return res, nil
}
