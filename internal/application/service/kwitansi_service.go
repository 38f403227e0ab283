package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/application/form"
	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
	"github.com/sangkips/kwitansi-api/pkg/pagination"
)

// KwitansiService serves the Laporan: saved kwitansi of the current user
type KwitansiService struct {
	repo     repository.KwitansiRepository
	location string
	logger   *zap.Logger
}

// NewKwitansiService creates a new kwitansi service
func NewKwitansiService(repo repository.KwitansiRepository, location string, logger *zap.Logger) *KwitansiService {
	return &KwitansiService{
		repo:     repo,
		location: location,
		logger:   logger,
	}
}

// ListKwitansiInput represents the input for listing kwitansi
type ListKwitansiInput struct {
	UserID    uuid.UUID
	Kind      *enum.ReceiptKind
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// ListKwitansi returns a page of the user's kwitansi
func (s *KwitansiService) ListKwitansi(ctx context.Context, input *ListKwitansiInput) (*pagination.PaginatedResult[entity.Kwitansi], error) {
	if input.Kind != nil && !input.Kind.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown kwitansi kind: " + string(*input.Kind))
	}

	params := &pagination.PaginationParams{Page: input.Page, PerPage: input.PerPage}
	params.Validate()

	items, total, err := s.repo.List(ctx, input.UserID, &repository.KwitansiFilterParams{
		Pagination: params,
		Kind:       input.Kind,
		Search:     strings.TrimSpace(input.Search),
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(items, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetKwitansi returns one kwitansi of the user. Records of other users are
// reported as not found.
func (s *KwitansiService) GetKwitansi(ctx context.Context, userID, id uuid.UUID) (*entity.Kwitansi, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.UserID != userID {
		return nil, apperror.NewNotFoundError("Kwitansi")
	}
	return rec, nil
}

// DeleteKwitansi removes a kwitansi and its tax lines
func (s *KwitansiService) DeleteKwitansi(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetKwitansi(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Kwitansi deleted",
		zap.String("kwitansi_id", id.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// Snapshot returns the printable view of a saved kwitansi
func (s *KwitansiService) Snapshot(ctx context.Context, userID, id uuid.UUID) (*entity.PrintSnapshot, error) {
	rec, err := s.GetKwitansi(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	title := rec.Kind.Title()
	if p, ok := form.ProfileFor(rec.Kind); ok {
		title = p.Title
	}
	snap := form.BuildSnapshot(rec, title, s.location)
	return &snap, nil
}
