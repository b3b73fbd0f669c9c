package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"owner_id", "full_name", "role", "bio", "skills", "experience", "education",
	"contact_info", "theme_color", "avatar_url", "avatar_gallery", "updated_at",
}

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func scanRecord(row pgx.Row) (*profile.Record, error) {
	rec := &profile.Record{}
	var skillsBytes, experienceBytes, educationBytes, contactBytes, galleryBytes []byte

	err := row.Scan(
		&rec.OwnerID,
		&rec.FullName,
		&rec.Role,
		&rec.Bio,
		&skillsBytes,
		&experienceBytes,
		&educationBytes,
		&contactBytes,
		&rec.ThemeColor,
		&rec.AvatarURL,
		&galleryBytes,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile row: %w", err)
	}

	rec.Skills = skillsBytes
	rec.Experience = experienceBytes
	rec.Education = educationBytes
	rec.ContactInfo = contactBytes
	if len(galleryBytes) > 0 {
		if err := json.Unmarshal(galleryBytes, &rec.AvatarGallery); err != nil {
			rec.AvatarGallery = nil
		}
	}
	return rec, nil
}

func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Record, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile query: %w", err)
	}
	return scanRecord(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresProfileRepo) GetMostRecent(ctx context.Context) (*profile.Record, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile query: %w", err)
	}
	return scanRecord(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, rec *profile.Record) error {
	// Avatar columns are only inserted; on conflict they belong to UpdateAvatar.
	query := `
		INSERT INTO profiles (owner_id, full_name, role, bio, skills, experience, education,
			contact_info, theme_color, avatar_url, avatar_gallery, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (owner_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			contact_info = EXCLUDED.contact_info,
			theme_color = EXCLUDED.theme_color,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query, recordArgs(rec)...)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *postgresProfileRepo) UpdateAvatar(ctx context.Context, ownerID uuid.UUID, state profile.AvatarState, updatedAt time.Time) error {
	query := `
		INSERT INTO profiles (owner_id, avatar_url, avatar_gallery, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id) DO UPDATE SET
			avatar_url = EXCLUDED.avatar_url,
			avatar_gallery = EXCLUDED.avatar_gallery,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query, ownerID, state.URL, galleryColumn(state.Gallery), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}

func (r *postgresProfileRepo) SeedIfEmpty(ctx context.Context, rec *profile.Record, content profile.Data) (*profile.Record, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Make sure a row exists so concurrent seeders serialize on its lock.
	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (owner_id, updated_at) VALUES ($1, $2) ON CONFLICT (owner_id) DO NOTHING`,
		rec.OwnerID, rec.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reserve profile row: %w", err)
	}

	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"owner_id": rec.OwnerID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build profile query: %w", err)
	}
	existing, err := scanRecord(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, false, err
	}

	if existing.HasRealData() {
		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("failed to commit seed transaction: %w", err)
		}
		return existing, false, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE profiles SET
			full_name = $2, role = $3, bio = $4, skills = $5, experience = $6, education = $7,
			contact_info = $8, theme_color = $9, avatar_url = $10, avatar_gallery = $11, updated_at = $12
		WHERE owner_id = $1
	`, recordArgs(rec)...)
	if err != nil {
		return nil, false, fmt.Errorf("failed to write seeded profile: %w", err)
	}

	if _, err := saveCurrentDraft(ctx, tx, rec.OwnerID, content, rec.UpdatedAt); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	r.logger.Debug("Seed transaction committed", zap.String("owner_id", rec.OwnerID.String()))
	seeded := *rec
	seeded.AvatarGallery = nonNilGallery(rec.AvatarGallery)
	return &seeded, true, nil
}

func recordArgs(rec *profile.Record) []any {
	return []any{
		rec.OwnerID,
		rec.FullName,
		rec.Role,
		rec.Bio,
		jsonColumn(rec.Skills),
		jsonColumn(rec.Experience),
		jsonColumn(rec.Education),
		jsonColumn(rec.ContactInfo),
		rec.ThemeColor,
		rec.AvatarURL,
		galleryColumn(rec.AvatarGallery),
		rec.UpdatedAt,
	}
}

// jsonColumn maps an empty document to SQL NULL.
func jsonColumn(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func nonNilGallery(gallery []string) []string {
	if gallery == nil {
		return []string{}
	}
	return gallery
}

func galleryColumn(gallery []string) string {
	b, _ := json.Marshal(nonNilGallery(gallery))
	return string(b)
}
