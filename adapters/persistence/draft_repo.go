package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/domain/profile"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

type postgresDraftRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresDraftRepo(db *pgxpool.Pool, logger logger.Logger) profile.DraftRepository {
	return &postgresDraftRepo{db: db, logger: logger}
}

func (r *postgresDraftRepo) GetCurrent(ctx context.Context, ownerID uuid.UUID) (*profile.Draft, error) {
	query := `
		SELECT id, user_id, content, is_current, updated_at
		FROM drafts
		WHERE user_id = $1 AND is_current
	`
	d := &profile.Draft{}
	var contentBytes []byte

	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&d.ID,
		&d.OwnerID,
		&contentBytes,
		&d.IsCurrent,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query current draft: %w", err)
	}

	if err := json.Unmarshal(contentBytes, &d.Content); err != nil {
		// An unreadable draft cannot win reconciliation; treat it as blank.
		r.logger.Warn("Failed to unmarshal draft content", zap.String("draft_id", d.ID.String()), zap.Error(err))
		d.Content = profile.Data{}
	}
	return d, nil
}

func (r *postgresDraftRepo) SaveCurrent(ctx context.Context, ownerID uuid.UUID, content profile.Data, updatedAt time.Time) (*profile.Draft, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin draft transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	d, err := saveCurrentDraft(ctx, tx, ownerID, content, updatedAt)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit draft transaction: %w", err)
	}
	return d, nil
}

// saveCurrentDraft demotes the owner's current draft and inserts content as the
// new current one inside tx.
func saveCurrentDraft(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, content profile.Data, updatedAt time.Time) (*profile.Draft, error) {
	contentBytes, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft content: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE drafts SET is_current = FALSE WHERE user_id = $1 AND is_current`, ownerID); err != nil {
		return nil, fmt.Errorf("failed to demote current draft: %w", err)
	}

	d := &profile.Draft{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		IsCurrent: true,
		UpdatedAt: updatedAt,
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO drafts (id, user_id, content, is_current, updated_at)
		VALUES ($1, $2, $3, TRUE, $4)
	`, d.ID, d.OwnerID, string(contentBytes), d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert draft: %w", err)
	}
	return d, nil
}
