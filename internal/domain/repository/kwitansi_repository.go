package repository

//go:generate mockgen -destination=mocks/mock_kwitansi_repository.go -package=mocks . KwitansiRepository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/pkg/pagination"
)

// KwitansiRepository defines the interface for kwitansi data operations.
// Errors are *apperror.AppError values that tell connectivity, permission
// and validation failures apart.
type KwitansiRepository interface {
	// Create inserts rec with its tax lines and sets CreatedAt
	Create(ctx context.Context, rec *entity.Kwitansi) error
	// Replace overwrites rec and all of its tax lines and sets UpdatedAt
	Replace(ctx context.Context, rec *entity.Kwitansi) error
	// Upsert writes rec under its own ID, creating or replacing it
	Upsert(ctx context.Context, rec *entity.Kwitansi) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Kwitansi, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *KwitansiFilterParams) ([]entity.Kwitansi, int64, error)
	ListAll(ctx context.Context, userID uuid.UUID, kind *enum.ReceiptKind) ([]entity.Kwitansi, error)
}

// KwitansiFilterParams contains filtering parameters for kwitansi queries
type KwitansiFilterParams struct {
	Pagination *pagination.PaginationParams
	Kind       *enum.ReceiptKind
	Search     string
	SortBy     string
	SortOrder  string
}
