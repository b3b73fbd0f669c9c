package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

// Source tells where the data returned by a read came from.
type Source string

const (
	SourceDraft      Source = "draft"
	SourceProduction Source = "production"
	SourceSeed       Source = "seed"
	SourceDefault    Source = "default"
	// SourceEmpty marks an account whose record has no real data yet and needs seeding.
	SourceEmpty Source = "empty"
)

type Resolution struct {
	Profile profile.Data
	Source  Source
}

type GetProfileUseCase struct {
	profileRepo profile.Repository
	draftRepo   profile.DraftRepository
	seeder      *SeedProfileUseCase
	logger      logger.Logger
}

func NewGetProfileUseCase(pRepo profile.Repository, dRepo profile.DraftRepository, seeder *SeedProfileUseCase, log logger.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{
		profileRepo: pRepo,
		draftRepo:   dRepo,
		seeder:      seeder,
		logger:      log,
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile profile.Data
	Source  Source
}

// Execute returns the editor's view of the owner's profile, seeding a demo profile
// the first time the account is found empty. Storage failures degrade to the best
// available data and are only logged.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	if input.OwnerID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("no owner in session")
	}
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	res := uc.Resolve(ctx, input.OwnerID)
	if res.Source != SourceEmpty {
		span.SetAttributes(attribute.String("profile.source", string(res.Source)))
		return &GetProfileOutput{Profile: res.Profile, Source: res.Source}, nil
	}

	seeded, err := uc.seeder.Execute(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to seed demo profile", err, zap.String("owner_id", input.OwnerID.String()))
		return &GetProfileOutput{Profile: profile.NewDefault(), Source: SourceDefault}, nil
	}

	span.SetAttributes(attribute.String("profile.source", string(SourceSeed)))
	return &GetProfileOutput{Profile: seeded, Source: SourceSeed}, nil
}

// Resolve decides between the current draft and the production record without
// writing anything. An account with no real data resolves to SourceEmpty.
func (uc *GetProfileUseCase) Resolve(ctx context.Context, ownerID uuid.UUID) Resolution {
	var (
		record    *profile.Record
		draft     *profile.Draft
		recordErr error
		draftErr  error
		g         errgroup.Group
	)

	g.Go(func() error {
		record, recordErr = uc.profileRepo.GetByOwnerID(ctx, ownerID)
		return nil
	})
	g.Go(func() error {
		draft, draftErr = uc.draftRepo.GetCurrent(ctx, ownerID)
		return nil
	})
	_ = g.Wait()

	if draftErr != nil {
		uc.logger.Warn("Failed to load current draft, using production only", zap.String("owner_id", ownerID.String()), zap.Error(draftErr))
		draft = nil
	}

	if recordErr != nil && !errors.Is(recordErr, profile.ErrProfileNotFound) {
		uc.logger.Error("Failed to load profile record", recordErr, zap.String("owner_id", ownerID.String()))
		// Never seed on a failed read: the stored profile may well be populated.
		if draft != nil && !draft.Content.IsBlank() {
			return Resolution{Profile: draft.Content, Source: SourceDraft}
		}
		return Resolution{Profile: profile.NewDefault(), Source: SourceDefault}
	}
	if recordErr != nil {
		record = nil
	}

	if !record.HasRealData() {
		return Resolution{Source: SourceEmpty}
	}

	switch {
	case draft == nil:
		return Resolution{Profile: profile.Normalize(record), Source: SourceProduction}
	case draft.Content.IsBlank():
		uc.logger.Warn("Current draft is blank, falling back to production", zap.String("owner_id", ownerID.String()), zap.String("draft_id", draft.ID.String()))
		return Resolution{Profile: profile.Normalize(record), Source: SourceProduction}
	case record.UpdatedAt.After(draft.UpdatedAt):
		return Resolution{Profile: profile.Normalize(record), Source: SourceProduction}
	default:
		return Resolution{Profile: draft.Content, Source: SourceDraft}
	}
}
