package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("document not found")

// Document is a file the owner keeps next to the CV (certificates, cover letters).
type Document struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	PublicID  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Document, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Document, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}
