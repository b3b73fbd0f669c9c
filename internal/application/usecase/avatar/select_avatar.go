package avatar

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type SelectAvatarUseCase struct {
	profileRepo profile.Repository
	invalidator service.CacheInvalidator
	logger      logger.Logger
	now         func() time.Time
}

func NewSelectAvatarUseCase(pRepo profile.Repository, inv service.CacheInvalidator, log logger.Logger) *SelectAvatarUseCase {
	return &SelectAvatarUseCase{
		profileRepo: pRepo,
		invalidator: inv,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type SelectAvatarInput struct {
	OwnerID uuid.UUID
	URL     string
}

func (in SelectAvatarInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.URL, validation.Required.Error("url is required"), is.URL),
	)
}

// Execute makes url the active avatar without touching the gallery.
func (uc *SelectAvatarUseCase) Execute(ctx context.Context, input SelectAvatarInput) error {
	ctx, span := tracer.Start(ctx, "SelectAvatar")
	defer span.End()

	if input.OwnerID == uuid.Nil {
		return apperror.NewNotAuthenticated("avatar selection without session")
	}
	input.URL = strings.TrimSpace(input.URL)
	if err := input.Validate(); err != nil {
		return apperror.NewInvalidInput(err.Error(), err)
	}

	var gallery []string
	record, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	switch {
	case err == nil:
		gallery = record.AvatarGallery
	case !errors.Is(err, profile.ErrProfileNotFound):
		span.RecordError(err)
		return apperror.NewStorageFailure("failed to load current avatar", err)
	}

	state := profile.AvatarState{URL: input.URL, Gallery: gallery}
	if err := uc.profileRepo.UpdateAvatar(ctx, input.OwnerID, state, uc.now()); err != nil {
		span.RecordError(err)
		return apperror.NewStorageFailure("failed to save avatar", err)
	}

	notify(ctx, uc.invalidator, uc.logger, input.OwnerID)
	return nil
}
