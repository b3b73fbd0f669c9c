package http

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/domain/document"
	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/internal/domain/user"
)

type memStore struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*profile.Record
	drafts    map[uuid.UUID]*profile.Draft
	users     map[uuid.UUID]*user.User
	documents map[uuid.UUID]*document.Document
	revoked   map[string]bool
	paths     []string
}

func newMemStore() *memStore {
	return &memStore{
		records:   map[uuid.UUID]*profile.Record{},
		drafts:    map[uuid.UUID]*profile.Draft{},
		users:     map[uuid.UUID]*user.User{},
		documents: map[uuid.UUID]*document.Document{},
		revoked:   map[string]bool{},
	}
}

type memProfileRepo struct{ s *memStore }

func (r memProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.records[ownerID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r memProfileRepo) GetMostRecent(ctx context.Context) (*profile.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *profile.Record
	for _, rec := range r.s.records {
		if latest == nil || rec.UpdatedAt.After(latest.UpdatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, profile.ErrProfileNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r memProfileRepo) Upsert(ctx context.Context, rec *profile.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	if existing, ok := r.s.records[rec.OwnerID]; ok {
		cp.AvatarURL = existing.AvatarURL
		cp.AvatarGallery = existing.AvatarGallery
	}
	r.s.records[rec.OwnerID] = &cp
	return nil
}

func (r memProfileRepo) UpdateAvatar(ctx context.Context, ownerID uuid.UUID, state profile.AvatarState, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.records[ownerID]
	if !ok {
		rec = &profile.Record{OwnerID: ownerID}
		r.s.records[ownerID] = rec
	}
	url := state.URL
	rec.AvatarURL = &url
	rec.AvatarGallery = state.Gallery
	rec.UpdatedAt = updatedAt
	return nil
}

func (r memProfileRepo) SeedIfEmpty(ctx context.Context, rec *profile.Record, content profile.Data) (*profile.Record, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.records[rec.OwnerID]; ok && existing.HasRealData() {
		cp := *existing
		return &cp, false, nil
	}
	cp := *rec
	r.s.records[rec.OwnerID] = &cp
	r.s.drafts[rec.OwnerID] = &profile.Draft{ID: uuid.New(), OwnerID: rec.OwnerID, Content: content, IsCurrent: true, UpdatedAt: rec.UpdatedAt}
	out := cp
	return &out, true, nil
}

type memDraftRepo struct{ s *memStore }

func (r memDraftRepo) GetCurrent(ctx context.Context, ownerID uuid.UUID) (*profile.Draft, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.drafts[ownerID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r memDraftRepo) SaveCurrent(ctx context.Context, ownerID uuid.UUID, content profile.Data, updatedAt time.Time) (*profile.Draft, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := &profile.Draft{ID: uuid.New(), OwnerID: ownerID, Content: content, IsCurrent: true, UpdatedAt: updatedAt}
	r.s.drafts[ownerID] = d
	cp := *d
	return &cp, nil
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type memDocumentRepo struct{ s *memStore }

func (r memDocumentRepo) Save(ctx context.Context, d *document.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.documents[d.ID] = d
	return nil
}

func (r memDocumentRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok || d.OwnerID != ownerID {
		return nil, document.ErrDocumentNotFound
	}
	return d, nil
}

func (r memDocumentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	docs := []*document.Document{}
	for _, d := range r.s.documents {
		if d.OwnerID == ownerID {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (r memDocumentRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok || d.OwnerID != ownerID {
		return document.ErrDocumentNotFound
	}
	delete(r.s.documents, id)
	return nil
}

type memUploader struct{}

func (memUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (*service.UploadResult, error) {
	_, _ = io.Copy(io.Discard, file)
	return &service.UploadResult{URL: "https://cdn.test/" + folder + "/" + publicID, PublicID: folder + "/" + publicID, Format: "png"}, nil
}

func (memUploader) Delete(ctx context.Context, publicID string) error { return nil }

type memRevoker struct{ s *memStore }

func (r memRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.revoked[tokenID] = true
	return nil
}

func (r memRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.revoked[tokenID], nil
}

type memInvalidator struct{ s *memStore }

func (i memInvalidator) Revalidate(ctx context.Context, path string) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	i.s.paths = append(i.s.paths, path)
	return nil
}
