package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	draftRepo   profile.DraftRepository
	invalidator service.CacheInvalidator
	logger      logger.Logger
	now         func() time.Time
}

func NewUpdateProfileUseCase(pRepo profile.Repository, dRepo profile.DraftRepository, inv service.CacheInvalidator, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profileRepo: pRepo,
		draftRepo:   dRepo,
		invalidator: inv,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// UpdateProfileInput mirrors the editor form. Skills, Experience, Education and
// ContactInfo hold JSON documents.
type UpdateProfileInput struct {
	OwnerID     uuid.UUID
	FullName    string
	Role        string
	Bio         string
	ThemeColor  string
	Skills      string
	Experience  string
	Education   string
	ContactInfo string
}

type UpdateProfileOutput struct {
	Profile profile.Data
}

// Execute saves an edit as the new current draft, then upserts the production record.
// Nothing is written unless every JSON field parses.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	if input.OwnerID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("profile update without session")
	}
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	skills, err := parseJSONField("skills", input.Skills)
	if err != nil {
		return nil, err
	}
	experience, err := parseJSONField("experience", input.Experience)
	if err != nil {
		return nil, err
	}
	education, err := parseJSONField("education", input.Education)
	if err != nil {
		return nil, err
	}
	contactRaw, err := parseJSONField("contact_info", input.ContactInfo)
	if err != nil {
		return nil, err
	}
	contact, err := json.Marshal(profile.NormalizeContactInfo(contactRaw))
	if err != nil {
		return nil, apperror.NewInternal("failed to encode contact_info", err)
	}

	// The avatar flow writes these columns on its own; always build from the stored values.
	avatar, err := uc.currentAvatar(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewStorageFailure("failed to load current avatar", err)
	}

	now := uc.now()
	record := &profile.Record{
		OwnerID:       input.OwnerID,
		FullName:      &input.FullName,
		Role:          &input.Role,
		Bio:           &input.Bio,
		Skills:        skills,
		Experience:    experience,
		Education:     education,
		ContactInfo:   contact,
		AvatarURL:     &avatar.URL,
		AvatarGallery: avatar.Gallery,
		UpdatedAt:     now,
	}
	if input.ThemeColor != "" {
		record.ThemeColor = &input.ThemeColor
	}
	content := profile.Normalize(record)

	if _, err := uc.draftRepo.SaveCurrent(ctx, input.OwnerID, content, now); err != nil {
		span.RecordError(err)
		return nil, apperror.NewStorageFailure("failed to save draft", err)
	}

	if err := uc.profileRepo.Upsert(ctx, record); err != nil {
		span.RecordError(err)
		uc.logger.Error("Draft saved but profile upsert failed", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewStorageFailure("failed to update profile", err)
	}

	if err := uc.invalidator.Revalidate(ctx, service.PublicPath); err != nil {
		uc.logger.Warn("Failed to signal public page revalidation", zap.String("owner_id", input.OwnerID.String()), zap.Error(err))
	}

	return &UpdateProfileOutput{Profile: content}, nil
}

func (uc *UpdateProfileUseCase) currentAvatar(ctx context.Context, ownerID uuid.UUID) (profile.AvatarState, error) {
	record, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return profile.AvatarState{}, nil
	}
	if err != nil {
		return profile.AvatarState{}, err
	}

	state := profile.AvatarState{Gallery: record.AvatarGallery}
	if record.AvatarURL != nil {
		state.URL = *record.AvatarURL
	}
	return state, nil
}

func parseJSONField(name, value string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(value)); err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("'%s' is not valid JSON", name), err)
	}
	return buf.Bytes(), nil
}
