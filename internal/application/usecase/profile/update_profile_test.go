package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/apperror"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type updateFixture struct {
	profiles    *memoryProfileRepo
	drafts      *memoryDraftRepo
	invalidator *recordingInvalidator
	uc          *UpdateProfileUseCase
	get         *GetProfileUseCase
}

func newUpdateFixture(now time.Time) *updateFixture {
	log := logger.NewNopLogger()
	drafts := newMemoryDraftRepo()
	profiles := newMemoryProfileRepo(drafts)
	inv := &recordingInvalidator{}
	uc := NewUpdateProfileUseCase(profiles, drafts, inv, log)
	uc.now = func() time.Time { return now }
	return &updateFixture{
		profiles:    profiles,
		drafts:      drafts,
		invalidator: inv,
		uc:          uc,
		get:         NewGetProfileUseCase(profiles, drafts, NewSeedProfileUseCase(profiles, inv, log), log),
	}
}

func validInput(ownerID uuid.UUID) UpdateProfileInput {
	return UpdateProfileInput{
		OwnerID:     ownerID,
		FullName:    "Ana Ruiz",
		Role:        "Engineer",
		Bio:         "Builds reliable systems",
		ThemeColor:  "#123456",
		Skills:      `{"professional":["Go","PostgreSQL"]}`,
		Experience:  `[{"id":1,"period":"2020 - 2024","title":"Backend","description":"APIs","bullets":["a"]}]`,
		Education:   `[{"id":1,"period":"2010 - 2015","degree":"BSc","institution":"UN"}]`,
		ContactInfo: `{"email":"ana@example.com","phone":"+57 1"}`,
	}
}

func TestUpdateProfile_PersistsDraftAndRecord(t *testing.T) {
	f := newUpdateFixture(t2)
	ownerID := uuid.New()

	out, err := f.uc.Execute(context.Background(), validInput(ownerID))
	require.NoError(t, err)

	assert.Equal(t, "Ana", out.Profile.PersonalInfo.Name)
	assert.Equal(t, "Ruiz", out.Profile.PersonalInfo.LastName)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, out.Profile.Skills.Professional)
	assert.Equal(t, "#123456", out.Profile.ThemeColor)

	stored := f.profiles.get(ownerID)
	require.NotNil(t, stored)
	assert.Equal(t, t2, stored.UpdatedAt)
	assert.Equal(t, out.Profile, profile.Normalize(stored))

	draft, err := f.drafts.GetCurrent(context.Background(), ownerID)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, out.Profile, draft.Content)
	assert.Equal(t, t2, draft.UpdatedAt)

	assert.Equal(t, []string{service.PublicPath}, f.invalidator.paths)

	read, err := f.get.Execute(context.Background(), GetProfileInput{OwnerID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, SourceDraft, read.Source)
	assert.Equal(t, out.Profile, read.Profile)
}

func TestUpdateProfile_StripsContactInfo(t *testing.T) {
	f := newUpdateFixture(t1)
	ownerID := uuid.New()
	in := validInput(ownerID)
	in.ContactInfo = `{"email":"a@b.com","linkedin":"x"}`

	_, err := f.uc.Execute(context.Background(), in)
	require.NoError(t, err)

	stored := f.profiles.get(ownerID)
	var persisted map[string]any
	require.NoError(t, json.Unmarshal(stored.ContactInfo, &persisted))
	assert.Equal(t, map[string]any{"email": "a@b.com", "phone": ""}, persisted)

	draft, err := f.drafts.GetCurrent(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, profile.ContactInfo{Email: "a@b.com"}, draft.Content.PersonalInfo.ContactInfo)
}

func TestUpdateProfile_MalformedJSONPersistsNothing(t *testing.T) {
	fields := map[string]func(*UpdateProfileInput){
		"skills":       func(in *UpdateProfileInput) { in.Skills = `{"professional":[` },
		"experience":   func(in *UpdateProfileInput) { in.Experience = `not json` },
		"education":    func(in *UpdateProfileInput) { in.Education = `` },
		"contact_info": func(in *UpdateProfileInput) { in.ContactInfo = `{email:}` },
	}

	for name, mutate := range fields {
		t.Run(name, func(t *testing.T) {
			f := newUpdateFixture(t2)
			ownerID := uuid.New()
			original := anaRecord(ownerID, t1)
			f.profiles.put(original)

			in := validInput(ownerID)
			mutate(&in)

			_, err := f.uc.Execute(context.Background(), in)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Equal(t, original, f.profiles.get(ownerID))
			total, _ := f.drafts.count(ownerID)
			assert.Zero(t, total)
			assert.Zero(t, f.invalidator.calls())
		})
	}
}

func TestUpdateProfile_PreservesAvatarState(t *testing.T) {
	f := newUpdateFixture(t2)
	ownerID := uuid.New()
	rec := anaRecord(ownerID, t1)
	rec.AvatarURL = strPtr("https://cdn/new.jpg")
	rec.AvatarGallery = []string{"https://cdn/old.jpg", "https://cdn/new.jpg"}
	f.profiles.put(rec)

	out, err := f.uc.Execute(context.Background(), validInput(ownerID))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn/new.jpg", out.Profile.PersonalInfo.Photo)
	assert.Equal(t, []string{"https://cdn/old.jpg", "https://cdn/new.jpg", ""}, out.Profile.PersonalInfo.Photos)

	stored := f.profiles.get(ownerID)
	assert.Equal(t, "https://cdn/new.jpg", *stored.AvatarURL)
	assert.Equal(t, rec.AvatarGallery, stored.AvatarGallery)
}

func TestUpdateProfile_KeepsSingleCurrentDraft(t *testing.T) {
	f := newUpdateFixture(t1)
	ownerID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := f.uc.Execute(context.Background(), validInput(ownerID))
		require.NoError(t, err)
	}

	total, current := f.drafts.count(ownerID)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, current)
}

func TestUpdateProfile_UpsertFailureLeavesDraftAhead(t *testing.T) {
	f := newUpdateFixture(t2)
	ownerID := uuid.New()
	f.profiles.upsertErr = errors.New("constraint violation")

	_, err := f.uc.Execute(context.Background(), validInput(ownerID))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInternal)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Could not save changes", appErr.Message)

	_, current := f.drafts.count(ownerID)
	assert.Equal(t, 1, current)
	assert.Nil(t, f.profiles.get(ownerID))
	assert.Zero(t, f.invalidator.calls())
}

func TestUpdateProfile_DraftFailureSkipsRecord(t *testing.T) {
	f := newUpdateFixture(t2)
	ownerID := uuid.New()
	f.drafts.saveErr = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), validInput(ownerID))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Zero(t, f.profiles.upserts)
}

func TestUpdateProfile_AvatarLookupFailureAborts(t *testing.T) {
	f := newUpdateFixture(t2)
	f.profiles.getErr = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), validInput(uuid.New()))

	require.Error(t, err)
	assert.Zero(t, f.profiles.upserts)
}

func TestUpdateProfile_InvalidatorFailureIsNotFatal(t *testing.T) {
	f := newUpdateFixture(t2)
	f.invalidator.err = errors.New("kafka unavailable")

	_, err := f.uc.Execute(context.Background(), validInput(uuid.New()))

	assert.NoError(t, err)
}

func TestUpdateProfile_EmptyThemeColorUsesDefault(t *testing.T) {
	f := newUpdateFixture(t2)
	in := validInput(uuid.New())
	in.ThemeColor = ""

	out, err := f.uc.Execute(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, profile.DefaultThemeColor, out.Profile.ThemeColor)
}

func TestUpdateProfile_RequiresOwner(t *testing.T) {
	f := newUpdateFixture(t2)

	_, err := f.uc.Execute(context.Background(), validInput(uuid.Nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
