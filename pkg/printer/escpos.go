package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width and height
	FontWide   = 0x10
	FontTall   = 0x01
)

// Paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream. Widths are counted in runes so
// long Indonesian labels wrap at the right column.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document for paper charWidth characters wide
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width returns the print width in characters
func (d *Document) Width() int {
	return d.width
}

// Init sends ESC @
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s followed by a line feed, wrapping at the print width
func (d *Document) Text(s string) *Document {
	for _, line := range Wrap(s, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints char across the full width
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key on the left and value flush right.
// Example: "Jumlah Pajak          Rp 190.000"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		d.Text(key)
		return d.SetAlign(AlignRight).Text(value).SetAlign(AlignLeft)
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// Field prints "label: value" with continuation lines indented under the
// value. Example:
//
//	Terima dari : Budi Santoso,
//	              S.Kom
func (d *Document) Field(label, value string, labelWidth int) *Document {
	prefix := label + strings.Repeat(" ", max(labelWidth-utf8.RuneCountInString(label), 0)) + ": "
	indent := utf8.RuneCountInString(prefix)
	if indent >= d.width/2 {
		d.Text(prefix)
		return d.Text(value)
	}

	lines := Wrap(value, d.width-indent)
	if len(lines) == 0 {
		lines = []string{""}
	}
	for i, line := range lines {
		if i == 0 {
			d.buf.WriteString(prefix)
		} else {
			d.buf.WriteString(strings.Repeat(" ", indent))
		}
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

// Columns prints left and right halves side by side, each truncated to
// half the width
func (d *Document) Columns(left, right string) *Document {
	half := d.width / 2
	d.buf.WriteString(pad(truncate(left, half), half))
	d.buf.WriteString(truncate(right, d.width-half))
	d.buf.WriteByte(LF)
	return d
}

// Cut sends a full paper cut
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated byte stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}

// Wrap splits s into lines of at most width runes, breaking on spaces.
// Words longer than width are split hard. Blank input yields no lines.
func Wrap(s string, width int) []string {
	if width <= 0 {
		width = Width58mm
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		var cur []rune
		for _, w := range words {
			wr := []rune(w)
			for len(wr) > width {
				if len(cur) > 0 {
					lines = append(lines, string(cur))
					cur = cur[:0]
				}
				lines = append(lines, string(wr[:width]))
				wr = wr[width:]
			}
			switch {
			case len(cur) == 0:
				cur = append(cur, wr...)
			case len(cur)+1+len(wr) <= width:
				cur = append(cur, ' ')
				cur = append(cur, wr...)
			default:
				lines = append(lines, string(cur))
				cur = append(cur[:0], wr...)
			}
		}
		if len(cur) > 0 {
			lines = append(lines, string(cur))
		}
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}
