package port

import (
	"context"

	"github.com/google/uuid"

	"bizdocs/internal/domain"
)

// DocumentRepository defines the contract for the generated-document registry.
type DocumentRepository interface {
	Create(ctx context.Context, rec *domain.DocumentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRecord, error)
	List(ctx context.Context, kind domain.DocumentKind, offset, limit int) ([]domain.DocumentRecord, int, error)
}
