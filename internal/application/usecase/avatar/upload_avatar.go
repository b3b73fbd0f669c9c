package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

const Folder = "avatars"

var tracer = otel.Tracer("avatar_usecase")

type UploadAvatarUseCase struct {
	profileRepo profile.Repository
	uploader    service.Uploader
	invalidator service.CacheInvalidator
	logger      logger.Logger
	now         func() time.Time
}

func NewUploadAvatarUseCase(pRepo profile.Repository, u service.Uploader, inv service.CacheInvalidator, log logger.Logger) *UploadAvatarUseCase {
	return &UploadAvatarUseCase{
		profileRepo: pRepo,
		uploader:    u,
		invalidator: inv,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type UploadAvatarInput struct {
	OwnerID uuid.UUID
	Slot    int
	File    io.Reader
}

func (in UploadAvatarInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Slot, validation.Min(0), validation.Max(profile.MinPhotoSlots-1)),
		validation.Field(&in.File, validation.Required.Error("file is required")),
	)
}

type UploadAvatarOutput struct {
	URL    string
	Photos []string
}

// Execute stores the image, places it in the given gallery slot and makes it the
// active avatar. Other slots are left as they were.
func (uc *UploadAvatarUseCase) Execute(ctx context.Context, input UploadAvatarInput) (*UploadAvatarOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadAvatar")
	defer span.End()

	if input.OwnerID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("avatar upload without session")
	}
	if err := input.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()), attribute.Int("slot", input.Slot))

	photos, err := uc.currentPhotos(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewStorageFailure("failed to load current avatar", err)
	}

	now := uc.now()
	publicID := fmt.Sprintf("%s-%d-%d", input.OwnerID, input.Slot, now.Unix())
	result, err := uc.uploader.Upload(ctx, input.File, Folder, publicID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	photos[input.Slot] = result.URL
	state := profile.AvatarState{URL: result.URL, Gallery: photos}
	if err := uc.profileRepo.UpdateAvatar(ctx, input.OwnerID, state, now); err != nil {
		span.RecordError(err)
		uc.logger.Error("Avatar uploaded but not saved", err, zap.String("public_id", result.PublicID))
		return nil, apperror.NewStorageFailure("failed to save avatar", err)
	}

	notify(ctx, uc.invalidator, uc.logger, input.OwnerID)
	return &UploadAvatarOutput{URL: result.URL, Photos: photos}, nil
}

func (uc *UploadAvatarUseCase) currentPhotos(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	record, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return profile.PadPhotos(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return profile.Normalize(record).PersonalInfo.Photos, nil
}

func notify(ctx context.Context, inv service.CacheInvalidator, log logger.Logger, ownerID uuid.UUID) {
	if err := inv.Revalidate(ctx, service.PublicPath); err != nil {
		log.Warn("Failed to signal public page revalidation", zap.String("owner_id", ownerID.String()), zap.Error(err))
	}
}
