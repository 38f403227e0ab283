package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/sangkips/kwitansi-api/internal/application/form"
	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// ReportService builds the Laporan spreadsheet and per-kind totals
type ReportService struct {
	repo repository.KwitansiRepository
	now  func() time.Time
}

// NewReportService creates a new report service
func NewReportService(repo repository.KwitansiRepository) *ReportService {
	return &ReportService{repo: repo, now: time.Now}
}

// KindSummary totals the kwitansi of one kind
type KindSummary struct {
	Kind              enum.ReceiptKind           `json:"kind"`
	Count             int                        `json:"count"`
	NotaPembayaran    int64                      `json:"nota_pembayaran"`
	TotalPajak        int64                      `json:"total_pajak"`
	JumlahDiterimakan int64                      `json:"jumlah_diterimakan"`
	PerCategory       map[enum.TaxCategory]int64 `json:"per_category"`
}

// Summary represents the Laporan totals of a user
type Summary struct {
	Kinds             []KindSummary `json:"kinds"`
	Count             int           `json:"count"`
	TotalPajak        int64         `json:"total_pajak"`
	JumlahDiterimakan int64         `json:"jumlah_diterimakan"`
}

// GetSummary totals every saved kwitansi of userID by kind
func (s *ReportService) GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	items, err := s.repo.ListAll(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	byKind := lo.GroupBy(items, func(k entity.Kwitansi) enum.ReceiptKind { return k.Kind })

	out := &Summary{Count: len(items)}
	for _, kind := range enum.ReceiptKinds {
		recs := byKind[kind]
		ks := KindSummary{
			Kind:              kind,
			Count:             len(recs),
			NotaPembayaran:    lo.SumBy(recs, func(k entity.Kwitansi) int64 { return k.NotaPembayaran }),
			TotalPajak:        lo.SumBy(recs, func(k entity.Kwitansi) int64 { return k.TotalPajak }),
			JumlahDiterimakan: lo.SumBy(recs, func(k entity.Kwitansi) int64 { return k.JumlahDiterimakan }),
			PerCategory:       make(map[enum.TaxCategory]int64),
		}
		for _, rec := range recs {
			for _, l := range rec.TaxLines {
				if l.Amount != nil {
					ks.PerCategory[l.Category] += *l.Amount
				}
			}
		}
		out.Kinds = append(out.Kinds, ks)
		out.TotalPajak += ks.TotalPajak
		out.JumlahDiterimakan += ks.JumlahDiterimakan
	}
	return out, nil
}

// ExportXLSX writes the user's kwitansi to a workbook with one sheet per
// kind. A non-nil kind limits the workbook to that kind.
func (s *ReportService) ExportXLSX(ctx context.Context, userID uuid.UUID, kind *enum.ReceiptKind) (*Document, error) {
	kinds := enum.ReceiptKinds
	if kind != nil {
		if !kind.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown kwitansi kind: " + string(*kind))
		}
		kinds = []enum.ReceiptKind{*kind}
	}

	items, err := s.repo.ListAll(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	byKind := lo.GroupBy(items, func(k entity.Kwitansi) enum.ReceiptKind { return k.Kind })

	f := excelize.NewFile()
	defer f.Close()

	for i, k := range kinds {
		sheet := "Laporan " + k.Title()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to add sheet: %w", err)
		}
		if err := writeKindSheet(f, sheet, k, byKind[k]); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	name := "laporan-kwitansi"
	if kind != nil {
		name += "-" + kind.String()
	}
	name += "-" + s.now().Format("20060102") + ".xlsx"

	return &Document{
		FileName:    name,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func writeKindSheet(f *excelize.File, sheet string, kind enum.ReceiptKind, recs []entity.Kwitansi) error {
	categories := enum.TaxCategories
	if p, ok := form.ProfileFor(kind); ok {
		categories = p.Categories
	}

	header := []interface{}{"No", "Tanggal", "Terima Dari", "Untuk Pembayaran", "Uraian", "Bukti Kas", "Kode Rekening", "Nota Pembayaran", "DPP"}
	for _, c := range categories {
		header = append(header, c.Label())
	}
	header = append(header, "Total Pajak", "Jumlah Diterimakan")

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range recs {
		row := []interface{}{
			i + 1,
			rec.Tanggal.Format("2006-01-02"),
			rec.TerimaDari,
			rec.UntukPembayaran,
			rec.Uraian,
			rec.BuktiKas,
			rec.KodeRekening,
			rec.NotaPembayaran,
			rec.DPP,
		}
		for _, c := range categories {
			row = append(row, rec.TaxAmount(c))
		}
		row = append(row, rec.TotalPajak, rec.JumlahDiterimakan)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	if len(recs) > 0 {
		// #,##0 on every amount column
		money, err := f.NewStyle(&excelize.Style{NumFmt: 3})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "H2", fmt.Sprintf("%s%d", lastCol, len(recs)+1), money); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "B", "G", 18); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "H", lastCol, 16)
}
