package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type SeedProfileUseCase struct {
	profileRepo profile.Repository
	invalidator service.CacheInvalidator
	logger      logger.Logger
	now         func() time.Time
}

func NewSeedProfileUseCase(pRepo profile.Repository, inv service.CacheInvalidator, log logger.Logger) *SeedProfileUseCase {
	return &SeedProfileUseCase{
		profileRepo: pRepo,
		invalidator: inv,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute writes the demo profile and its matching current draft for an empty
// account. When another request seeded or edited the account first, the stored
// profile is returned untouched.
func (uc *SeedProfileUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (profile.Data, error) {
	ctx, span := tracer.Start(ctx, "SeedProfile")
	defer span.End()

	demo := profile.NewDemo()
	record := profile.ToRecord(ownerID, demo, uc.now())

	stored, seeded, err := uc.profileRepo.SeedIfEmpty(ctx, record, demo)
	if err != nil {
		span.RecordError(err)
		return profile.NewDefault(), apperror.NewStorageFailure("failed to seed demo profile", err)
	}

	if !seeded {
		uc.logger.Info("Profile already populated, skip seeding", zap.String("owner_id", ownerID.String()))
		return profile.Normalize(stored), nil
	}

	uc.logger.Info("Seeded demo profile", zap.String("owner_id", ownerID.String()))
	if err := uc.invalidator.Revalidate(ctx, service.PublicPath); err != nil {
		uc.logger.Warn("Failed to signal public page revalidation after seed", zap.String("owner_id", ownerID.String()), zap.Error(err))
	}
	return demo, nil
}
