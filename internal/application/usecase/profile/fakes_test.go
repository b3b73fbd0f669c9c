package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
)

type memoryProfileRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*profile.Record
	drafts  *memoryDraftRepo

	getErr        error
	mostRecentErr error
	upsertErr     error
	seedErr       error

	upserts int
	seeds   int
}

func newMemoryProfileRepo(drafts *memoryDraftRepo) *memoryProfileRepo {
	return &memoryProfileRepo{records: make(map[uuid.UUID]*profile.Record), drafts: drafts}
}

func (r *memoryProfileRepo) put(rec *profile.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records[rec.OwnerID] = &cp
}

func (r *memoryProfileRepo) get(ownerID uuid.UUID) *profile.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[ownerID]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

func (r *memoryProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Record, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	rec := r.get(ownerID)
	if rec == nil {
		return nil, profile.ErrProfileNotFound
	}
	return rec, nil
}

func (r *memoryProfileRepo) GetMostRecent(ctx context.Context) (*profile.Record, error) {
	if r.mostRecentErr != nil {
		return nil, r.mostRecentErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *profile.Record
	for _, rec := range r.records {
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

func (r *memoryProfileRepo) Upsert(ctx context.Context, rec *profile.Record) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	cp := *rec
	if existing, ok := r.records[rec.OwnerID]; ok {
		cp.AvatarURL = existing.AvatarURL
		cp.AvatarGallery = existing.AvatarGallery
	}
	r.records[rec.OwnerID] = &cp
	return nil
}

func (r *memoryProfileRepo) UpdateAvatar(ctx context.Context, ownerID uuid.UUID, state profile.AvatarState, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[ownerID]
	if !ok {
		rec = &profile.Record{OwnerID: ownerID}
		r.records[ownerID] = rec
	}
	url := state.URL
	rec.AvatarURL = &url
	rec.AvatarGallery = state.Gallery
	rec.UpdatedAt = updatedAt
	return nil
}

func (r *memoryProfileRepo) SeedIfEmpty(ctx context.Context, rec *profile.Record, content profile.Data) (*profile.Record, bool, error) {
	if r.seedErr != nil {
		return nil, false, r.seedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.records[rec.OwnerID]; ok && existing.HasRealData() {
		cp := *existing
		return &cp, false, nil
	}
	r.seeds++
	cp := *rec
	r.records[rec.OwnerID] = &cp
	if _, err := r.drafts.SaveCurrent(ctx, rec.OwnerID, content, rec.UpdatedAt); err != nil {
		return nil, false, err
	}
	out := cp
	return &out, true, nil
}

type memoryDraftRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID][]*profile.Draft

	getErr  error
	saveErr error
}

func newMemoryDraftRepo() *memoryDraftRepo {
	return &memoryDraftRepo{drafts: make(map[uuid.UUID][]*profile.Draft)}
}

func (r *memoryDraftRepo) GetCurrent(ctx context.Context, ownerID uuid.UUID) (*profile.Draft, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drafts[ownerID] {
		if d.IsCurrent {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryDraftRepo) SaveCurrent(ctx context.Context, ownerID uuid.UUID, content profile.Data, updatedAt time.Time) (*profile.Draft, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drafts[ownerID] {
		d.IsCurrent = false
	}
	d := &profile.Draft{ID: uuid.New(), OwnerID: ownerID, Content: content, IsCurrent: true, UpdatedAt: updatedAt}
	r.drafts[ownerID] = append(r.drafts[ownerID], d)
	cp := *d
	return &cp, nil
}

func (r *memoryDraftRepo) put(ownerID uuid.UUID, content profile.Data, updatedAt time.Time) {
	_, _ = r.SaveCurrent(context.Background(), ownerID, content, updatedAt)
}

func (r *memoryDraftRepo) count(ownerID uuid.UUID) (total, current int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drafts[ownerID] {
		total++
		if d.IsCurrent {
			current++
		}
	}
	return total, current
}

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (i *recordingInvalidator) Revalidate(ctx context.Context, path string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.paths = append(i.paths, path)
	return i.err
}

func (i *recordingInvalidator) calls() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.paths)
}

func strPtr(s string) *string { return &s }
