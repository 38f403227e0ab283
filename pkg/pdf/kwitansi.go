// Package pdf renders kwitansi as A4 documents with maroto.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

// Options controls the rendered document
type Options struct {
	// Copies is how many identical kwitansi are stacked on the page
	Copies int
	// Instansi is printed above the title when set
	Instansi string
}

var (
	labelText = props.Text{Size: 9}
	valueText = props.Text{Size: 9, Style: fontstyle.Bold}
	smallText = props.Text{Size: 8}
	moneyText = props.Text{Size: 9, Align: align.Right}
)

// Render returns the PDF bytes of snap
func Render(snap entity.PrintSnapshot, opts Options) ([]byte, error) {
	if opts.Copies < 1 {
		opts.Copies = 1
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(12).
		WithTopMargin(8).
		WithRightMargin(12).
		WithBottomMargin(8).
		Build()

	m := maroto.New(cfg)
	for i := 0; i < opts.Copies; i++ {
		if i > 0 {
			m.AddRow(6, line.NewCol(12, props.Line{Style: linestyle.Dashed, Thickness: 0.3}))
		}
		addCopy(m, snap, opts.Instansi)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: failed to generate kwitansi: %w", err)
	}
	return doc.GetBytes(), nil
}

func addCopy(m core.Maroto, snap entity.PrintSnapshot, instansi string) {
	meta := func(label, value string) {
		m.AddRow(4,
			col.New(7),
			text.NewCol(2, label, smallText),
			text.NewCol(3, ": "+value, smallText),
		)
	}
	meta("Lembar", snap.Lembar)
	meta("Bukti Kas Nomor", snap.BuktiKas)
	meta("Kode Rekening", snap.KodeRekening)

	if instansi != "" {
		m.AddRow(5, text.NewCol(12, instansi, props.Text{Size: 9, Align: align.Center}))
	}
	m.AddRow(8, text.NewCol(12, "KWITANSI", props.Text{Top: 1, Size: 14, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(5, text.NewCol(12, snap.Title, props.Text{Size: 9, Style: fontstyle.Italic, Align: align.Center}))

	field := func(h float64, label, value string, style props.Text) {
		m.AddRow(h,
			text.NewCol(3, label, labelText),
			text.NewCol(9, ": "+value, style),
		)
	}
	field(6, "Terima Dari", snap.TerimaDari, valueText)
	field(10, "Uang Sebanyak", snap.UangSebanyak, props.Text{Size: 9, Style: fontstyle.BoldItalic})
	field(10, "Untuk Pembayaran", snap.UntukPembayaran, labelText)
	if snap.Uraian != "" {
		field(6, "Uraian", snap.Uraian, labelText)
	}

	amount := func(label string, value int64, style props.Text) {
		m.AddRow(5,
			col.New(3),
			text.NewCol(4, label, style),
			text.NewCol(1, ": Rp", style),
			text.NewCol(3, utils.FormatThousands(value), props.Text{Size: style.Size, Style: style.Style, Align: align.Right}),
		)
	}
	amount("Nota Pembayaran", snap.NotaPembayaran, labelText)
	if snap.BaseSelection == enum.BaseDerived {
		amount("DPP", snap.DPP, labelText)
	}
	for _, l := range snap.Lines {
		if l.Amount == 0 && l.Rate == 0 {
			continue
		}
		amount(fmt.Sprintf("%s (%s)", l.Label, utils.FormatRate(l.Rate)), l.Amount, labelText)
	}
	if len(snap.Lines) > 1 {
		amount("Jumlah Pajak", snap.TotalPajak, labelText)
	}
	m.AddRow(1, col.New(3), line.NewCol(8))
	amount("Jumlah Diterimakan", snap.JumlahDiterimakan, valueText)

	m.AddRow(4)
	addSignatures(m, snap)
}

func addSignatures(m core.Maroto, snap entity.PrintSnapshot) {
	center := props.Text{Size: 8, Align: align.Center}
	name := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}

	place := snap.Location + ","
	if t := utils.FormatTanggal(snap.Tanggal); t != "" {
		place += " " + t
	}

	m.AddRow(4,
		text.NewCol(3, "Setuju dibayar", center),
		text.NewCol(3, "Mengetahui", center),
		text.NewCol(3, "Lunas dibayar", center),
		text.NewCol(3, place, center),
	)
	m.AddRow(4,
		text.NewCol(3, "Pengguna Anggaran", center),
		text.NewCol(3, "PPTK", center),
		text.NewCol(3, "Bendahara", center),
		text.NewCol(3, "Penerima", center),
	)
	m.AddRow(14)

	sig := snap.Signatures
	m.AddRow(4,
		text.NewCol(3, orPlaceholder(sig.Pengguna.Nama, "Nama"), name),
		text.NewCol(3, orPlaceholder(sig.PPTK.Nama, "Nama"), name),
		text.NewCol(3, orPlaceholder(sig.Bendahara.Nama, "Nama"), name),
		text.NewCol(3, orPlaceholder(sig.Penerima.Nama, "Nama"), name),
	)
	m.AddRow(4,
		text.NewCol(3, nip(sig.Pengguna.NIP), center),
		text.NewCol(3, nip(sig.PPTK.NIP), center),
		text.NewCol(3, nip(sig.Bendahara.NIP), center),
		col.New(3),
	)
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func nip(s string) string {
	if s == "" {
		return "NIP"
	}
	return "NIP. " + s
}
