package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotify-api/internal/domain/entity"
	"github.com/sangkips/quotify-api/internal/domain/enum"
	"github.com/sangkips/quotify-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations.
// Every operation is scoped to the owning user.
type QuotationRepository interface {
	// Create persists a new quotation; ErrDuplicateKey if the number collides
	Create(ctx context.Context, quotation *entity.Quotation) error
	// FindByID returns the quotation if it exists and is owned by ownerID; ErrNotFound otherwise
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*entity.Quotation, error)
	// List returns one page of the owner's quotations, newest first, and the total match count
	List(ctx context.Context, ownerID uuid.UUID, params *QuotationFilterParams) ([]entity.Quotation, int64, error)
	// Update merges patch into a DRAFT quotation; ErrNotFound or ErrImmutable
	Update(ctx context.Context, id, ownerID uuid.UUID, patch *entity.QuotationPatch) (*entity.Quotation, error)
	// Delete removes a DRAFT quotation; ErrNotFound or ErrImmutable
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	// Finalize moves the quotation to FINAL; finalizing a FINAL quotation is a no-op
	Finalize(ctx context.Context, id, ownerID uuid.UUID) (*entity.Quotation, error)
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination *pagination.Params
	Search     string
	Status     *enum.QuotationStatus
}
