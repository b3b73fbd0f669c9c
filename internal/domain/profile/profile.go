package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultThemeColor = "#FF5E1A"
	// MinPhotoSlots is the number of avatar slots the editor always shows.
	MinPhotoSlots = 3
)

var ErrProfileNotFound = errors.New("profile not found")

type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PersonalInfo struct {
	Name        string      `json:"name"`
	LastName    string      `json:"lastName"`
	Role        string      `json:"role"`
	Photo       string      `json:"photo"`
	Photos      []string    `json:"photos"`
	ContactInfo ContactInfo `json:"contactInfo"`
}

type SkillSet struct {
	Professional []string `json:"professional"`
}

type Experience struct {
	ID          int      `json:"id"`
	Period      string   `json:"period"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
}

type Education struct {
	ID          int    `json:"id"`
	Period      string `json:"period"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

// Data is the canonical profile shape served to the editor and the public page.
// Every field is always populated; slices are never nil.
type Data struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Skills       SkillSet     `json:"skills"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Objective    string       `json:"objective"`
	ThemeColor   string       `json:"themeColor"`
}

// IsBlank reports whether the content carries neither a name nor an objective.
func (d Data) IsBlank() bool {
	return isBlank(d.PersonalInfo.Name) && isBlank(d.Objective)
}

// Record is the persisted production row. Text columns are nullable and the JSON
// columns are kept raw because older rows carry legacy shapes.
type Record struct {
	OwnerID       uuid.UUID
	FullName      *string
	Role          *string
	Bio           *string
	Skills        json.RawMessage
	Experience    json.RawMessage
	Education     json.RawMessage
	ContactInfo   json.RawMessage
	ThemeColor    *string
	AvatarURL     *string
	AvatarGallery []string
	UpdatedAt     time.Time
}

// HasRealData reports whether the record holds owner-entered content.
func (r *Record) HasRealData() bool {
	if r == nil {
		return false
	}
	return !isBlank(deref(r.FullName)) || !isBlank(deref(r.Bio))
}

// AvatarState is the part of a record owned by the avatar upload flow.
type AvatarState struct {
	URL     string
	Gallery []string
}

type Draft struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   Data
	IsCurrent bool
	UpdatedAt time.Time
}

type Repository interface {
	// GetByOwnerID returns ErrProfileNotFound when the owner has no row.
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Record, error)
	// GetMostRecent returns the most recently updated record of any owner.
	GetMostRecent(ctx context.Context) (*Record, error)
	// Upsert writes every column except the avatar ones on an existing row.
	Upsert(ctx context.Context, record *Record) error
	// UpdateAvatar sets the avatar columns, creating the row when absent.
	UpdateAvatar(ctx context.Context, ownerID uuid.UUID, state AvatarState, updatedAt time.Time) error
	// SeedIfEmpty atomically writes record and a current draft with content unless
	// the stored record already has real data. It returns the record that is stored
	// afterwards and whether this call wrote it.
	SeedIfEmpty(ctx context.Context, record *Record, content Data) (*Record, bool, error)
}

type DraftRepository interface {
	// GetCurrent returns nil, nil when the owner has no current draft.
	GetCurrent(ctx context.Context, ownerID uuid.UUID) (*Draft, error)
	// SaveCurrent demotes every draft of the owner and inserts content as the current one.
	SaveCurrent(ctx context.Context, ownerID uuid.UUID, content Data, updatedAt time.Time) (*Draft, error)
}
