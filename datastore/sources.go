package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coreybb/newsflash/apperrors"
	"github.com/coreybb/newsflash/models"
	"github.com/google/uuid"
)

// sourcesChannel is the pg_notify channel appends publish on and the live
// feed listens to.
const sourcesChannel = "sources_changed"

// Store is the append-only persistence surface for Source records. There is
// deliberately no update or delete: records are immutable once written.
type Store interface {
	Append(ctx context.Context, source *models.Source) (string, error)
	List(ctx context.Context) ([]models.Source, error)
}

// SourceRepository implements Store over Postgres.
type SourceRepository struct {
	db *sql.DB
}

func NewSourceRepository(db *sql.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// validateSource enforces the persistence invariants shared by every Store
// implementation: a Source never persists without a title, a non-empty
// summary, and a valid category.
func validateSource(source *models.Source) error {
	if strings.TrimSpace(source.Title) == "" {
		return apperrors.NewValidationError("title", apperrors.ValidationMissingField)
	}
	if strings.TrimSpace(source.Summary) == "" {
		return apperrors.NewValidationError("summary", apperrors.ValidationMissingField)
	}
	if !source.Category.IsValid() {
		return apperrors.NewValidationError("category", apperrors.ValidationInvalidEnum)
	}
	if source.Circle != "" && !source.Circle.IsValid() {
		return apperrors.NewValidationError("circle", apperrors.ValidationInvalidEnum)
	}
	return nil
}

// nullable maps an absent optional field to SQL NULL so partial records never
// persist empty-string placeholders.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Append assigns the record's id and createdAt, writes it, and notifies feed
// listeners in the same transaction. The returned id is durable by the time
// Append returns. Unreachable database yields StoreError{Unavailable}.
func (r *SourceRepository) Append(ctx context.Context, source *models.Source) (string, error) {
	if err := validateSource(source); err != nil {
		return "", err
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperrors.NewStoreError(apperrors.StoreUnavailable, err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO sources
			(id, created_at, title, content, summary, category, circle, url, image_url, contributor, is_bookmarked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.ExecContext(ctx, query,
		id, createdAt, source.Title,
		nullable(source.Content), source.Summary, string(source.Category),
		nullable(string(source.Circle)), nullable(source.URL), nullable(source.ImageURL),
		nullable(source.Contributor), source.IsBookmarked,
	)
	if err != nil {
		return "", apperrors.NewStoreError(apperrors.StoreUnavailable, fmt.Errorf("failed to insert source: %w", err))
	}

	if _, err = tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, sourcesChannel, id); err != nil {
		return "", apperrors.NewStoreError(apperrors.StoreUnavailable, fmt.Errorf("failed to notify feed: %w", err))
	}

	if err = tx.Commit(); err != nil {
		return "", apperrors.NewStoreError(apperrors.StoreUnavailable, fmt.Errorf("failed to commit source: %w", err))
	}

	source.ID = id
	source.CreatedAt = createdAt
	return id, nil
}

// List returns the full set of sources newest first. Equal timestamps are
// tie-broken by id so the ordering is total and stable across readers.
func (r *SourceRepository) List(ctx context.Context) ([]models.Source, error) {
	const query = `
		SELECT id, created_at, title, content, summary, category, circle, url, image_url, contributor, is_bookmarked
		FROM sources
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStoreError(apperrors.StoreUnavailable, fmt.Errorf("failed to query sources: %w", err))
	}
	defer rows.Close()

	sources := []models.Source{}
	for rows.Next() {
		var (
			source                               models.Source
			content, circle, url, imageURL, con sql.NullString
		)
		if err := rows.Scan(
			&source.ID, &source.CreatedAt, &source.Title,
			&content, &source.Summary, &source.Category,
			&circle, &url, &imageURL, &con, &source.IsBookmarked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		source.Content = content.String
		source.Circle = models.Circle(circle.String)
		source.URL = url.String
		source.ImageURL = imageURL.String
		source.Contributor = con.String
		sources = append(sources, source)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.NewStoreError(apperrors.StoreUnavailable, fmt.Errorf("error iterating source rows: %w", err))
	}
	return sources, nil
}
