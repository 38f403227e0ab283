package form

import (
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
	"github.com/sangkips/kwitansi-api/pkg/terbilang"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

// Save validation messages
const (
	MsgRecipientRequired = "Terima Dari wajib diisi"
	MsgBaseRequired      = "Nota Pembayaran harus lebih dari 0"
	MsgNetNotPositive    = "Jumlah yang diterimakan harus lebih dari 0"
	MsgCannotSave        = "Kwitansi tidak dapat disimpan. Lengkapi Terima Dari, Uang Sebanyak, dan Nota Pembayaran terlebih dahulu."
)

// Fields are the free-text parts of a kwitansi
type Fields struct {
	Lembar          string            `json:"lembar"`
	BuktiKas        string            `json:"bukti_kas"`
	KodeRekening    string            `json:"kode_rekening"`
	TerimaDari      string            `json:"terima_dari"`
	UntukPembayaran string            `json:"untuk_pembayaran"`
	Uraian          string            `json:"uraian"`
	Tanggal         time.Time         `json:"tanggal"`
	Signatures      entity.Signatures `json:"signatures"`
}

// Patch is one user edit. Nil fields are left untouched.
type Patch struct {
	Lembar          *string
	BuktiKas        *string
	KodeRekening    *string
	TerimaDari      *string
	UntukPembayaran *string
	Uraian          *string
	Tanggal         *time.Time
	Signatures      *entity.Signatures
	// NotaPembayaran is raw user text, normalized by stripping non-digits
	NotaPembayaran *string
	Rates          map[enum.TaxCategory]float64
	BaseSelection  *enum.BaseSelection
	Applicability  *enum.Applicability
}

// IsEmpty reports whether p changes nothing
func (p Patch) IsEmpty() bool {
	return p.Lembar == nil && p.BuktiKas == nil && p.KodeRekening == nil &&
		p.TerimaDari == nil && p.UntukPembayaran == nil && p.Uraian == nil &&
		p.Tanggal == nil && p.Signatures == nil && p.NotaPembayaran == nil &&
		len(p.Rates) == 0 && p.BaseSelection == nil && p.Applicability == nil
}

// Option configures a Form
type Option func(*Form)

// WithCurrencyUnit sets the word appended to the terbilang rendering
func WithCurrencyUnit(unit string) Option {
	return func(f *Form) { f.unit = unit }
}

// WithLocation sets the place printed before the date
func WithLocation(location string) Option {
	return func(f *Form) { f.location = location }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// Form is the working copy of one open kwitansi. It is safe for concurrent
// use; every input change recomputes all derived figures from current state.
type Form struct {
	mu sync.Mutex

	id       uuid.UUID
	profile  Profile
	recordID uuid.UUID
	created  time.Time

	fields Fields
	base   int64
	rates  tax.Rates
	mode   tax.Mode

	result tax.Result
	words  string

	state  enum.FormState
	dirty  bool
	saving bool

	unit     string
	location string
	now      func() time.Time
}

// New opens an empty form for profile
func New(profile Profile, opts ...Option) *Form {
	f := &Form{
		id:      uuid.New(),
		profile: profile,
		unit:    "Rupiah",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.clear()
	return f
}

// Load fills the form from a persisted record for editing. Rates missing
// from older records are inferred from their stored amounts.
func (f *Form) Load(rec *entity.Kwitansi) error {
	if rec.Kind != f.profile.Kind {
		return apperror.NewBadRequestError(fmt.Sprintf("Record is a %s kwitansi, not %s", rec.Kind, f.profile.Kind))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saving {
		return apperror.ErrSaveInProgress
	}

	f.recordID = rec.ID
	f.created = rec.CreatedAt
	f.fields = Fields{
		Lembar:          rec.Lembar,
		BuktiKas:        rec.BuktiKas,
		KodeRekening:    rec.KodeRekening,
		TerimaDari:      rec.TerimaDari,
		UntukPembayaran: rec.UntukPembayaran,
		Uraian:          rec.Uraian,
		Tanggal:         rec.Tanggal,
		Signatures:      rec.Signatures,
	}
	f.base = tax.NormalizeAmount(rec.NotaPembayaran)

	f.mode = f.profile.DefaultMode
	if stored := (tax.Mode{Base: rec.BaseSelection, Applicability: rec.Applicability}); f.profile.AllowsMode(stored) {
		f.mode = stored
	}

	original := tax.EffectiveBase(rec.NotaPembayaran, rec.BaseSelection)
	f.rates = tax.ResolveRates(rec.StoredTaxes(), f.profile.Categories, original)
	for c, r := range f.rates {
		f.rates[c] = tax.NormalizeRate(r)
	}

	f.state = enum.FormStateEditing
	f.dirty = false
	f.recompute()
	return nil
}

// Apply records one user edit and recomputes every derived figure
func (f *Form) Apply(p Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.writable(); err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}
	if errs := f.checkPatch(p); len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}

	setString(&f.fields.Lembar, p.Lembar)
	setString(&f.fields.BuktiKas, p.BuktiKas)
	setString(&f.fields.KodeRekening, p.KodeRekening)
	setString(&f.fields.TerimaDari, p.TerimaDari)
	setString(&f.fields.UntukPembayaran, p.UntukPembayaran)
	setString(&f.fields.Uraian, p.Uraian)
	if p.Tanggal != nil {
		f.fields.Tanggal = *p.Tanggal
	}
	if p.Signatures != nil {
		f.fields.Signatures = *p.Signatures
	}
	if p.NotaPembayaran != nil {
		f.base = utils.ParseAmount(*p.NotaPembayaran)
	}
	for c, r := range p.Rates {
		f.rates[c] = tax.NormalizeRate(r)
	}
	if p.BaseSelection != nil {
		f.mode.Base = *p.BaseSelection
	}
	if p.Applicability != nil {
		f.mode.Applicability = *p.Applicability
	}

	if f.state == enum.FormStateEmpty {
		f.state = enum.FormStateEditing
	}
	f.dirty = true
	f.recompute()
	return nil
}

// Reset returns the form to Empty, as the "create new" flow does.
// The form stops tracking any record it was editing.
func (f *Form) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saving {
		return apperror.ErrSaveInProgress
	}
	if f.state == enum.FormStateDiscarded {
		return apperror.ErrFormClosed
	}
	f.clear()
	return nil
}

// Validate lists every unmet save condition
func (f *Form) Validate() []apperror.FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate()
}

// BeginSave validates the form, takes the save lock and returns the record
// to persist. Only one save may be in flight per form.
func (f *Form) BeginSave() (*entity.Kwitansi, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.writable(); err != nil {
		return nil, err
	}
	if errs := f.validate(); len(errs) > 0 {
		return nil, &apperror.AppError{
			Code:    http.StatusUnprocessableEntity,
			Message: MsgCannotSave,
			Errors:  errs,
		}
	}

	f.saving = true
	return f.record(), nil
}

// CompleteSave releases the save lock and moves the form to Saved
func (f *Form) CompleteSave(saved *entity.Kwitansi) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saving = false
	f.recordID = saved.ID
	f.created = saved.CreatedAt
	f.state = enum.FormStateSaved
	f.dirty = false
}

// FailSave releases the save lock; the working copy is kept for a retry
func (f *Form) FailSave() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saving = false
}

// HasUnsavedChanges reports whether leaving now would lose edits
func (f *Form) HasUnsavedChanges() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty && !f.state.IsTerminal()
}

// ID identifies the open form
func (f *Form) ID() uuid.UUID {
	return f.id
}

// Kind is the receipt kind of the form
func (f *Form) Kind() enum.ReceiptKind {
	return f.profile.Kind
}

// State returns the lifecycle state
func (f *Form) State() enum.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// RecordID is the persisted record being edited, or uuid.Nil for a new kwitansi
func (f *Form) RecordID() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recordID
}

// Result returns the current computation
func (f *Form) Result() tax.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Rates returns a copy of the current rates
func (f *Form) Rates() tax.Rates {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.rates)
}

// Record returns the record shape of the current state
func (f *Form) Record() *entity.Kwitansi {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record()
}

// Snapshot returns a read-only, fully computed copy for rendering
func (f *Form) Snapshot() entity.PrintSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return BuildSnapshot(f.record(), f.profile.Title, f.location)
}

// View is the JSON shape of an open form
type View struct {
	ID             uuid.UUID             `json:"id"`
	Kind           enum.ReceiptKind      `json:"kind"`
	RecordID       *uuid.UUID            `json:"record_id,omitempty"`
	State          enum.FormState        `json:"state"`
	Dirty          bool                  `json:"dirty"`
	Saving         bool                  `json:"saving"`
	Fields         Fields                `json:"fields"`
	NotaPembayaran int64                 `json:"nota_pembayaran"`
	Rates          tax.Rates             `json:"rates"`
	Mode           tax.Mode              `json:"mode"`
	ModeToggle     bool                  `json:"mode_toggle"`
	Result         tax.Result            `json:"result"`
	UangSebanyak   string                `json:"uang_sebanyak"`
	Missing        []apperror.FieldError `json:"missing,omitempty"`
}

// View returns the JSON shape of the form
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		ID:             f.id,
		Kind:           f.profile.Kind,
		State:          f.state,
		Dirty:          f.dirty,
		Saving:         f.saving,
		Fields:         f.fields,
		NotaPembayaran: f.base,
		Rates:          maps.Clone(f.rates),
		Mode:           f.mode,
		ModeToggle:     f.profile.ModeToggle,
		Result:         f.result,
		UangSebanyak:   f.words,
		Missing:        f.validate(),
	}
	if f.recordID != uuid.Nil {
		v.RecordID = lo.ToPtr(f.recordID)
	}
	return v
}

func (f *Form) writable() error {
	if f.saving {
		return apperror.ErrSaveInProgress
	}
	if f.state.IsTerminal() {
		return apperror.ErrFormClosed
	}
	return nil
}

func (f *Form) checkPatch(p Patch) []apperror.FieldError {
	var errs []apperror.FieldError
	for c := range p.Rates {
		if !f.profile.Allows(c) {
			errs = append(errs, apperror.FieldError{
				Field:   "rates." + string(c),
				Message: fmt.Sprintf("%s is not available on %s", c.Label(), f.profile.Title),
			})
		}
	}

	next := f.mode
	if p.BaseSelection != nil {
		next.Base = *p.BaseSelection
	}
	if p.Applicability != nil {
		next.Applicability = *p.Applicability
	}
	switch {
	case !next.Base.IsValid():
		errs = append(errs, apperror.FieldError{Field: "base_selection", Message: "Unknown base selection"})
	case !next.Applicability.IsValid():
		errs = append(errs, apperror.FieldError{Field: "applicability", Message: "Unknown applicability"})
	case !f.profile.AllowsMode(next):
		errs = append(errs, apperror.FieldError{
			Field:   "mode",
			Message: fmt.Sprintf("%s only supports the default computation mode", f.profile.Title),
		})
	}
	return errs
}

// clear zeroes every input and re-applies the zero-base reset
func (f *Form) clear() {
	f.recordID = uuid.Nil
	f.created = time.Time{}
	f.fields = Fields{}
	f.base = 0
	f.rates = make(tax.Rates, len(f.profile.Categories))
	for _, c := range f.profile.Categories {
		f.rates[c] = 0
	}
	f.mode = f.profile.DefaultMode
	f.state = enum.FormStateEmpty
	f.dirty = false
	f.recompute()
}

// recompute derives everything from the current inputs. A zero base forces
// every rate to zero so no stale tax survives a cleared nota. Categories
// below their profile minimum keep their rate but compute as zero.
func (f *Form) recompute() {
	if f.base == 0 {
		for c := range f.rates {
			f.rates[c] = 0
		}
	}

	f.result = tax.Compute(f.base, f.profile.EffectiveRates(f.base, f.rates), f.mode)

	f.words = ""
	if f.result.Net > 0 {
		f.words = terbilang.WithUnit(terbilang.ToWords(f.result.Net), f.unit)
	}

	if f.state == enum.FormStateEditing || f.state == enum.FormStateReadyToSave {
		if len(f.validate()) == 0 {
			f.state = enum.FormStateReadyToSave
		} else {
			f.state = enum.FormStateEditing
		}
	}
}

func (f *Form) validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(f.fields.TerimaDari) == "" {
		errs = append(errs, apperror.FieldError{Field: "terima_dari", Message: MsgRecipientRequired})
	}
	if f.base <= 0 {
		errs = append(errs, apperror.FieldError{Field: "nota_pembayaran", Message: MsgBaseRequired})
	}
	if f.result.Net <= 0 {
		errs = append(errs, apperror.FieldError{Field: "jumlah_diterimakan", Message: MsgNetNotPositive})
	}
	return errs
}

func (f *Form) record() *entity.Kwitansi {
	tanggal := f.fields.Tanggal
	if tanggal.IsZero() {
		tanggal = f.now()
	}

	rec := &entity.Kwitansi{
		ID:                f.recordID,
		Kind:              f.profile.Kind,
		Lembar:            f.fields.Lembar,
		BuktiKas:          f.fields.BuktiKas,
		KodeRekening:      f.fields.KodeRekening,
		TerimaDari:        strings.TrimSpace(f.fields.TerimaDari),
		UntukPembayaran:   f.fields.UntukPembayaran,
		Uraian:            f.fields.Uraian,
		NotaPembayaran:    f.base,
		BaseSelection:     f.mode.Base,
		Applicability:     f.mode.Applicability,
		DPP:               f.result.EffectiveBase,
		TotalPajak:        f.result.TotalTax,
		JumlahDiterimakan: f.result.Net,
		UangSebanyak:      f.words,
		Tanggal:           tanggal,
		Signatures:        f.fields.Signatures,
		CreatedAt:         f.created,
	}
	for _, c := range f.profile.Categories {
		rec.TaxLines = append(rec.TaxLines, entity.KwitansiTaxLine{
			KwitansiID: f.recordID,
			Category:   c,
			Rate:       lo.ToPtr(f.rates[c]),
			Amount:     lo.ToPtr(f.result.Amount(c)),
		})
	}
	return rec
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
