package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizdocs/internal/domain"
	"bizdocs/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, rec *domain.DocumentRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now().UTC()

	query := `INSERT INTO documents (
		id, kind, number, customer_name, customer_email,
		file_name, file_size, storage_key, public_url,
		grand_total, emailed, created_by, created_at
	) VALUES (
		:id, :kind, :number, :customer_name, :customer_email,
		:file_name, :file_size, :storage_key, :public_url,
		:grand_total, :emailed, :created_by, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error) {
	var rec domain.DocumentRecord
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &rec, nil
}

// List returns records newest first. An empty kind lists every kind.
func (r *documentRepo) List(ctx context.Context, kind domain.DocumentKind, offset, limit int) ([]domain.DocumentRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE ($1 = '' OR kind = $1)", string(kind))
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	recs := []domain.DocumentRecord{}
	err = r.db.SelectContext(ctx, &recs,
		`SELECT * FROM documents WHERE ($1 = '' OR kind = $1)
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		string(kind), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return recs, total, nil
}
