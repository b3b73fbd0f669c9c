package avatar

import (
	"context"
	"errors"
	"io"
	"strings"
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

type stubProfileRepo struct {
	profile.Repository
	record    *profile.Record
	getErr    error
	updateErr error

	saved     *profile.AvatarState
	updatedAt time.Time
}

func (r *stubProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Record, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.record == nil {
		return nil, profile.ErrProfileNotFound
	}
	return r.record, nil
}

func (r *stubProfileRepo) UpdateAvatar(ctx context.Context, ownerID uuid.UUID, state profile.AvatarState, updatedAt time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.saved = &state
	r.updatedAt = updatedAt
	return nil
}

type stubUploader struct {
	folder   string
	publicID string
	err      error
}

func (u *stubUploader) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (*service.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.folder = folder
	u.publicID = publicID
	return &service.UploadResult{URL: "https://cdn/" + folder + "/" + publicID + ".jpg", PublicID: folder + "/" + publicID, Format: "jpg"}, nil
}

func (u *stubUploader) Delete(ctx context.Context, publicID string) error { return nil }

type countingInvalidator struct {
	calls int
	err   error
}

func (i *countingInvalidator) Revalidate(ctx context.Context, path string) error {
	i.calls++
	return i.err
}

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newUpload(repo *stubProfileRepo, up *stubUploader, inv *countingInvalidator) *UploadAvatarUseCase {
	uc := NewUploadAvatarUseCase(repo, up, inv, logger.NewNopLogger())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestUploadAvatar_KeepsOtherSlots(t *testing.T) {
	ownerID := uuid.New()
	url := "https://cdn/old.jpg"
	repo := &stubProfileRepo{record: &profile.Record{
		OwnerID:       ownerID,
		AvatarURL:     &url,
		AvatarGallery: []string{"https://cdn/old.jpg", "https://cdn/second.jpg"},
	}}
	up := &stubUploader{}
	inv := &countingInvalidator{}

	out, err := newUpload(repo, up, inv).Execute(context.Background(), UploadAvatarInput{
		OwnerID: ownerID, Slot: 2, File: strings.NewReader("img"),
	})

	require.NoError(t, err)
	assert.Equal(t, Folder, up.folder)
	assert.Equal(t, ownerID.String()+"-2-1740823200", up.publicID)
	assert.Equal(t, []string{"https://cdn/old.jpg", "https://cdn/second.jpg", out.URL}, out.Photos)
	require.NotNil(t, repo.saved)
	assert.Equal(t, out.URL, repo.saved.URL)
	assert.Equal(t, out.Photos, repo.saved.Gallery)
	assert.Equal(t, fixedNow, repo.updatedAt)
	assert.Equal(t, 1, inv.calls)
}

func TestUploadAvatar_NoRecordYet(t *testing.T) {
	repo := &stubProfileRepo{}

	out, err := newUpload(repo, &stubUploader{}, &countingInvalidator{}).Execute(context.Background(), UploadAvatarInput{
		OwnerID: uuid.New(), Slot: 0, File: strings.NewReader("img"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{out.URL, "", ""}, out.Photos)
}

func TestUploadAvatar_LegacyAvatarMovesToFirstSlot(t *testing.T) {
	url := "https://cdn/legacy.jpg"
	repo := &stubProfileRepo{record: &profile.Record{AvatarURL: &url}}

	out, err := newUpload(repo, &stubUploader{}, &countingInvalidator{}).Execute(context.Background(), UploadAvatarInput{
		OwnerID: uuid.New(), Slot: 1, File: strings.NewReader("img"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{url, out.URL, ""}, out.Photos)
}

func TestUploadAvatar_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   UploadAvatarInput
		repo    *stubProfileRepo
		up      *stubUploader
		wantErr error
	}{
		{"slot too high", UploadAvatarInput{OwnerID: uuid.New(), Slot: 3, File: strings.NewReader("x")}, &stubProfileRepo{}, &stubUploader{}, apperror.ErrInvalidInput},
		{"negative slot", UploadAvatarInput{OwnerID: uuid.New(), Slot: -1, File: strings.NewReader("x")}, &stubProfileRepo{}, &stubUploader{}, apperror.ErrInvalidInput},
		{"missing file", UploadAvatarInput{OwnerID: uuid.New(), Slot: 0}, &stubProfileRepo{}, &stubUploader{}, apperror.ErrInvalidInput},
		{"no session", UploadAvatarInput{Slot: 0, File: strings.NewReader("x")}, &stubProfileRepo{}, &stubUploader{}, apperror.ErrUnauthorized},
		{"upload fails", UploadAvatarInput{OwnerID: uuid.New(), Slot: 0, File: strings.NewReader("x")}, &stubProfileRepo{}, &stubUploader{err: errors.New("quota")}, apperror.ErrInternal},
		{"save fails", UploadAvatarInput{OwnerID: uuid.New(), Slot: 0, File: strings.NewReader("x")}, &stubProfileRepo{updateErr: errors.New("db")}, &stubUploader{}, apperror.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &countingInvalidator{}
			_, err := newUpload(tt.repo, tt.up, inv).Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, inv.calls)
		})
	}
}

func TestSelectAvatar(t *testing.T) {
	ownerID := uuid.New()
	repo := &stubProfileRepo{record: &profile.Record{AvatarGallery: []string{"https://cdn/a.jpg", "https://cdn/b.jpg", ""}}}
	inv := &countingInvalidator{err: errors.New("kafka down")}
	uc := NewSelectAvatarUseCase(repo, inv, logger.NewNopLogger())

	err := uc.Execute(context.Background(), SelectAvatarInput{OwnerID: ownerID, URL: " https://cdn/b.jpg "})

	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.Equal(t, "https://cdn/b.jpg", repo.saved.URL)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg", ""}, repo.saved.Gallery)
	assert.Equal(t, 1, inv.calls)
}

func TestSelectAvatar_RejectsInvalidURL(t *testing.T) {
	repo := &stubProfileRepo{}
	uc := NewSelectAvatarUseCase(repo, &countingInvalidator{}, logger.NewNopLogger())

	err := uc.Execute(context.Background(), SelectAvatarInput{OwnerID: uuid.New(), URL: "not a url"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	err = uc.Execute(context.Background(), SelectAvatarInput{OwnerID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Nil(t, repo.saved)
}
