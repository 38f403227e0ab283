package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
	"github.com/sangkips/kwitansi-api/pkg/printer"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

// Printer messages shown to the user
const (
	MsgPrinterNotConfigured = "Printer belum dikonfigurasi"
	MsgPrinterUnavailable   = "Gagal mencetak. Periksa printer lalu coba lagi."
)

// PrinterService formats kwitansi for thermal printers and sends them.
type PrinterService struct {
	printer printer.Printer
	width   int
	logger  *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, width int, logger *zap.Logger) *PrinterService {
	return &PrinterService{
		printer: p,
		width:   width,
		logger:  logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != printer.TypeNone,
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
		Width:      s.width,
	}
}

// TestPrint prints a sample kwitansi and returns it so the caller can show
// what was sent.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.PrintSnapshot, error) {
	snap := &entity.PrintSnapshot{
		Kind:              enum.ReceiptKindHonor,
		Title:             "TES PRINTER",
		TerimaDari:        "Tes Printer",
		UntukPembayaran:   "Uji cetak kwitansi",
		NotaPembayaran:    100000,
		DPP:               100000,
		JumlahDiterimakan: 100000,
		UangSebanyak:      "Seratus Ribu Rupiah",
		Tanggal:           time.Now(),
	}
	return snap, s.Print(ctx, snap)
}

// Print sends snap to the printer. Device failures come back as retryable
// 503s so the client can try again once the printer is back.
func (s *PrinterService) Print(ctx context.Context, snap *entity.PrintSnapshot) error {
	data := FormatKwitansi(snap, s.width)
	err := s.printer.Print(ctx, data)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, printer.ErrNotConfigured):
		return apperror.NewAppError(http.StatusUnprocessableEntity, MsgPrinterNotConfigured)
	default:
		s.logger.Error("Printer error", zap.String("terima_dari", snap.TerimaDari), zap.Error(err))
		return apperror.NewUnavailableError(MsgPrinterUnavailable, err)
	}
}

// FormatKwitansi converts a kwitansi into ESC/POS bytes.
func FormatKwitansi(snap *entity.PrintSnapshot, width int) []byte {
	doc := printer.NewDocument(width)
	const labelWidth = 11

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text("KWITANSI").
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if snap.Title != "" {
		doc.Text(snap.Title)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	if snap.Lembar != "" {
		doc.Field("Lembar", snap.Lembar, labelWidth)
	}
	if snap.BuktiKas != "" {
		doc.Field("Bukti Kas", snap.BuktiKas, labelWidth)
	}
	if snap.KodeRekening != "" {
		doc.Field("Kode Rek.", snap.KodeRekening, labelWidth)
	}
	doc.Field("Terima dari", snap.TerimaDari, labelWidth).
		Field("Untuk", snap.UntukPembayaran, labelWidth)
	if snap.Uraian != "" {
		doc.Field("Uraian", snap.Uraian, labelWidth)
	}

	doc.Separator('-')

	doc.KeyValue("Nota", utils.FormatRupiah(snap.NotaPembayaran))
	if snap.BaseSelection == enum.BaseDerived {
		doc.KeyValue("DPP", utils.FormatRupiah(snap.DPP))
	}
	for _, l := range snap.Lines {
		if l.Amount == 0 && l.Rate == 0 {
			continue
		}
		doc.KeyValue(fmt.Sprintf("%s %s", l.Label, utils.FormatRate(l.Rate)), utils.FormatRupiah(l.Amount))
	}
	if len(snap.Lines) > 1 {
		doc.KeyValue("Jumlah Pajak", utils.FormatRupiah(snap.TotalPajak))
	}
	doc.SetBold(true).
		KeyValue("DITERIMAKAN", utils.FormatRupiah(snap.JumlahDiterimakan)).
		SetBold(false)

	doc.Separator('-')
	if snap.UangSebanyak != "" {
		doc.Text(snap.UangSebanyak)
		doc.Separator('-')
	}

	place := snap.Location
	if t := utils.FormatTanggal(snap.Tanggal); t != "" {
		if place != "" {
			place += ", "
		}
		place += t
	}

	doc.SetAlign(printer.AlignRight).
		Text(place).
		SetAlign(printer.AlignLeft).
		Columns("Bendahara", "Penerima").
		FeedLines(3).
		Columns(blankName(snap.Signatures.Bendahara.Nama), blankName(snap.Signatures.Penerima.Nama))

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

func blankName(s string) string {
	if s == "" {
		return "(............)"
	}
	return s
}
