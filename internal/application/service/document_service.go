package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
	"github.com/sangkips/kwitansi-api/pkg/pdf"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

// Document is a rendered file ready for download
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SnapshotSource resolves what to render: an open form or a saved record
type SnapshotSource func(ctx context.Context) (*entity.PrintSnapshot, error)

// DocumentService renders kwitansi for download and print. Renderers only
// receive snapshots; figures are never recomputed here.
type DocumentService struct {
	forms    *FormService
	kwitansi *KwitansiService
	printer  *PrinterService
	pdfOpts  pdf.Options
}

// NewDocumentService creates a new document service
func NewDocumentService(forms *FormService, kwitansi *KwitansiService, printer *PrinterService, pdfOpts pdf.Options) *DocumentService {
	return &DocumentService{
		forms:    forms,
		kwitansi: kwitansi,
		printer:  printer,
		pdfOpts:  pdfOpts,
	}
}

// FormSource renders the open form formID of userID
func (s *DocumentService) FormSource(userID, formID uuid.UUID) SnapshotSource {
	return func(context.Context) (*entity.PrintSnapshot, error) {
		return s.forms.Snapshot(userID, formID)
	}
}

// RecordSource renders the saved kwitansi id of userID
func (s *DocumentService) RecordSource(userID, id uuid.UUID) SnapshotSource {
	return func(ctx context.Context) (*entity.PrintSnapshot, error) {
		return s.kwitansi.Snapshot(ctx, userID, id)
	}
}

// PDF renders src as an A4 PDF
func (s *DocumentService) PDF(ctx context.Context, src SnapshotSource) (*Document, error) {
	snap, err := src(ctx)
	if err != nil {
		return nil, err
	}

	data, err := pdf.Render(*snap, s.pdfOpts)
	if err != nil {
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Gagal membuat PDF").Wrap(err)
	}

	return &Document{
		FileName:    utils.DocumentFileName(snap.Kind.String(), snap.TerimaDari, "pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// Print sends src to the thermal printer and returns what was printed
func (s *DocumentService) Print(ctx context.Context, src SnapshotSource) (*entity.PrintSnapshot, error) {
	snap, err := src(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
