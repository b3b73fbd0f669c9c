package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type GetPublicProfileUseCase struct {
	profileRepo   profile.Repository
	masterOwnerID uuid.UUID
	logger        logger.Logger
}

func NewGetPublicProfileUseCase(pRepo profile.Repository, masterOwnerID uuid.UUID, log logger.Logger) *GetPublicProfileUseCase {
	return &GetPublicProfileUseCase{
		profileRepo:   pRepo,
		masterOwnerID: masterOwnerID,
		logger:        log,
	}
}

type GetPublicProfileOutput struct {
	Profile profile.Data
	Source  Source
}

// Execute returns production data only; drafts are never shown to visitors.
// Lookup order: master owner, most recently updated record, empty default.
func (uc *GetPublicProfileUseCase) Execute(ctx context.Context) *GetPublicProfileOutput {
	ctx, span := tracer.Start(ctx, "GetPublicProfile")
	defer span.End()

	if uc.masterOwnerID != uuid.Nil {
		record, err := uc.profileRepo.GetByOwnerID(ctx, uc.masterOwnerID)
		switch {
		case err == nil:
			return &GetPublicProfileOutput{Profile: profile.Normalize(record), Source: SourceProduction}
		case errors.Is(err, profile.ErrProfileNotFound):
			uc.logger.Warn("Master profile not found, falling back to most recent", zap.String("master_owner_id", uc.masterOwnerID.String()))
		default:
			span.RecordError(err)
			uc.logger.Error("Failed to load master profile", err, zap.String("master_owner_id", uc.masterOwnerID.String()))
		}
	}

	record, err := uc.profileRepo.GetMostRecent(ctx)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			span.RecordError(err)
			uc.logger.Error("Failed to load most recent profile", err)
		}
		return &GetPublicProfileOutput{Profile: profile.NewDefault(), Source: SourceDefault}
	}

	return &GetPublicProfileOutput{Profile: profile.Normalize(record), Source: SourceProduction}
}
