package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/cv-portfolio/internal/domain/document"
)

type postgresDocumentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresDocumentRepo(db *pgxpool.Pool) document.Repository {
	return &postgresDocumentRepo{db: db}
}

var documentColumns = []string{"id", "user_id", "name", "file_url", "file_type", "public_id", "created_at"}

func scanDocument(row pgx.Row) (*document.Document, error) {
	d := &document.Document{}
	err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &d.FileURL, &d.FileType, &d.PublicID, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to scan document row: %w", err)
	}
	return d, nil
}

func (r *postgresDocumentRepo) Save(ctx context.Context, d *document.Document) error {
	query, args, err := psql.Insert("documents").
		Columns(documentColumns...).
		Values(d.ID, d.OwnerID, d.Name, d.FileURL, d.FileType, d.PublicID, d.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build document insert: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *postgresDocumentRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*document.Document, error) {
	query, args, err := psql.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build document query: %w", err)
	}
	return scanDocument(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresDocumentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*document.Document, error) {
	query, args, err := psql.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build document query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents by owner: %w", err)
	}
	defer rows.Close()

	docs := make([]*document.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

func (r *postgresDocumentRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}
	return nil
}
