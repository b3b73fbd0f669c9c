package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/cv-portfolio/internal/domain/document"
	"github.com/khoahotran/cv-portfolio/internal/domain/user"
)

// Auth DTOs
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type MeDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name,omitempty"`
}

func ToMeDTO(u *user.User) MeDTO {
	return MeDTO{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Profile DTOs
// UpdateProfileForm carries the editor's autosave fields. The structured
// sections arrive as JSON-encoded strings.
type UpdateProfileForm struct {
	FullName    string `form:"full_name"`
	Role        string `form:"role"`
	Bio         string `form:"bio"`
	ThemeColor  string `form:"theme_color"`
	Skills      string `form:"skills"`
	Experience  string `form:"experience"`
	Education   string `form:"education"`
	ContactInfo string `form:"contact_info"`
}

type SelectAvatarRequest struct {
	URL string `json:"url" binding:"required"`
}

type AvatarDTO struct {
	URL    string   `json:"url"`
	Photos []string `json:"photos"`
}

// Document DTOs
type DocumentDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDocumentDTO(d *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:        d.ID,
		UserID:    d.OwnerID,
		Name:      d.Name,
		FileURL:   d.FileURL,
		FileType:  d.FileType,
		CreatedAt: d.CreatedAt,
	}
}

func ToDocumentDTOs(docs []*document.Document) []DocumentDTO {
	dtos := make([]DocumentDTO, len(docs))
	for i, d := range docs {
		dtos[i] = ToDocumentDTO(d)
	}
	return dtos
}
