package usecase

import (
	"context"
	"math/rand"

	"user-seeding-service/config"
	"user-seeding-service/internal/repository"
	"user-seeding-service/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	UserUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, cfg *config.Config, newSource func() rand.Source) InterfaceUsecase {
	return domain.New(log, ctx, repo, cfg, newSource)
}
