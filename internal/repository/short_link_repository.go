package repository

//go:generate mockgen -source=short_link_repository.go -destination=mocks/mock_short_link_repository.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"shortlink-be/internal/entities"
)

var (
	ErrNotFound        = errors.New("short link not found")
	ErrAlreadyExists   = errors.New("short link id already exists")
	ErrCreatorMismatch = errors.New("short link belongs to another creator")
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// ShortLinkRepository defines the mapping store operations. Implementations must make
// IncrementVisitCount, UpdateTarget and Delete atomic per record. UpdateTarget and Delete
// only apply while the stored creator IP equals creatorIP and report ErrCreatorMismatch
// otherwise.
type ShortLinkRepository interface {
	Insert(ctx context.Context, id, target, creatorIP string) (*entities.ShortLink, error)
	FindByID(ctx context.Context, id string) (*entities.ShortLink, error)
	IncrementVisitCount(ctx context.Context, id string) error
	UpdateTarget(ctx context.Context, id, creatorIP, newTarget, newCreatorIP string) error
	Delete(ctx context.Context, id, creatorIP string) error
	Ping(ctx context.Context) error
}

const (
	insertShortLinkQuery = `
		INSERT INTO short_links (id, target, creator_ip)
		VALUES ($1, $2, $3)
		RETURNING id, target, visit_count, creator_ip, created_at
	`
	findShortLinkQuery = `
		SELECT id, target, visit_count, creator_ip, created_at
		FROM short_links
		WHERE id = $1
	`
	incrementVisitCountQuery = `
		UPDATE short_links
		SET visit_count = visit_count + 1
		WHERE id = $1
	`
	updateTargetQuery = `
		UPDATE short_links
		SET target = $3, creator_ip = $4, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $1 AND creator_ip = $2
	`
	deleteShortLinkQuery = `DELETE FROM short_links WHERE id = $1 AND creator_ip = $2`
	shortLinkExistsQuery = `SELECT EXISTS (SELECT 1 FROM short_links WHERE id = $1)`
)

type postgresShortLinkRepository struct {
	db *sql.DB
}

// NewPostgresShortLinkRepository creates a repository backed by the short_links table
func NewPostgresShortLinkRepository(db *sql.DB) ShortLinkRepository {
	return &postgresShortLinkRepository{db: db}
}

// Insert creates a record with a zero visit count
func (r *postgresShortLinkRepository) Insert(ctx context.Context, id, target, creatorIP string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	err := r.db.QueryRowContext(ctx, insertShortLinkQuery, id, target, creatorIP).Scan(
		&link.ID,
		&link.Target,
		&link.VisitCount,
		&link.CreatorIP,
		&link.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert short link: %w", err)
	}

	return &link, nil
}

// FindByID returns the record for id
func (r *postgresShortLinkRepository) FindByID(ctx context.Context, id string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	err := r.db.QueryRowContext(ctx, findShortLinkQuery, id).Scan(
		&link.ID,
		&link.Target,
		&link.VisitCount,
		&link.CreatorIP,
		&link.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find short link: %w", err)
	}

	return &link, nil
}

// IncrementVisitCount adds one to the counter in a single row update
func (r *postgresShortLinkRepository) IncrementVisitCount(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, incrementVisitCountQuery, id)
	if err != nil {
		return fmt.Errorf("failed to increment visit count: %w", err)
	}
	return requireAffected(result)
}

// UpdateTarget replaces target and creator IP together
func (r *postgresShortLinkRepository) UpdateTarget(ctx context.Context, id, creatorIP, newTarget, newCreatorIP string) error {
	result, err := r.db.ExecContext(ctx, updateTargetQuery, id, creatorIP, newTarget, newCreatorIP)
	if err != nil {
		return fmt.Errorf("failed to update short link: %w", err)
	}
	return r.requireOwnedRow(ctx, id, result)
}

// Delete removes the record
func (r *postgresShortLinkRepository) Delete(ctx context.Context, id, creatorIP string) error {
	result, err := r.db.ExecContext(ctx, deleteShortLinkQuery, id, creatorIP)
	if err != nil {
		return fmt.Errorf("failed to delete short link: %w", err)
	}
	return r.requireOwnedRow(ctx, id, result)
}

func (r *postgresShortLinkRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// requireOwnedRow tells a missing row from one held by another creator after a write
// guarded by creator_ip touched nothing.
func (r *postgresShortLinkRepository) requireOwnedRow(ctx context.Context, id string, result sql.Result) error {
	err := requireAffected(result)
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, shortLinkExistsQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check short link: %w", err)
	}
	if exists {
		return ErrCreatorMismatch
	}
	return ErrNotFound
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
