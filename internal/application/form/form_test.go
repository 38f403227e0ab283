package form

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

func newForm(t *testing.T, kind enum.ReceiptKind) *Form {
	t.Helper()
	p, ok := ProfileFor(kind)
	require.True(t, ok)
	fixed := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	return New(p, WithLocation("Nganjuk"), WithClock(func() time.Time { return fixed }))
}

func fieldNames(errs []apperror.FieldError) []string {
	return lo.Map(errs, func(e apperror.FieldError, _ int) string { return e.Field })
}

func TestForm_HonorSingleCategory(t *testing.T) {
	f := newForm(t, enum.ReceiptKindHonor)
	require.Equal(t, enum.FormStateEmpty, f.State())

	require.NoError(t, f.Apply(Patch{
		NotaPembayaran: lo.ToPtr("Rp 2.000.000"),
		Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 5},
	}))

	res := f.Result()
	assert.Equal(t, int64(100000), res.Amount(enum.TaxPPh21))
	assert.Equal(t, int64(1900000), res.Net)
	assert.Equal(t, "Satu Juta Sembilan Ratus Ribu Rupiah", f.View().UangSebanyak)
	assert.Equal(t, enum.FormStateEditing, f.State())

	require.NoError(t, f.Apply(Patch{TerimaDari: lo.ToPtr("Budi Santoso")}))
	assert.Equal(t, enum.FormStateReadyToSave, f.State())
	assert.True(t, f.HasUnsavedChanges())
}

func TestForm_ZeroBaseGivesZeroEverywhere(t *testing.T) {
	f := newForm(t, enum.ReceiptKindBarang)

	require.NoError(t, f.Apply(Patch{NotaPembayaran: lo.ToPtr("0")}))

	res := f.Result()
	require.Len(t, res.Lines, 5)
	for _, l := range res.Lines {
		assert.Zero(t, l.Amount)
	}
	assert.Zero(t, res.Net)
	assert.Equal(t, "", f.View().UangSebanyak)
}

func TestForm_ClearingBaseResetsRates(t *testing.T) {
	f := newForm(t, enum.ReceiptKindBarang)
	require.NoError(t, f.Apply(Patch{
		NotaPembayaran: lo.ToPtr("1000000"),
		Rates: map[enum.TaxCategory]float64{
			enum.TaxPPh22: 1.5, enum.TaxPPN: 11, enum.TaxPAD: 10,
		},
	}))
	require.Equal(t, int64(110000), f.Result().Amount(enum.TaxPPN))

	require.NoError(t, f.Apply(Patch{NotaPembayaran: lo.ToPtr("")}))

	for c, r := range f.Rates() {
		assert.Zero(t, r, "rate %s", c)
	}
	assert.Zero(t, f.Result().TotalTax)

	// restoring the base does not bring the old rates back
	require.NoError(t, f.Apply(Patch{NotaPembayaran: lo.ToPtr("1000000")}))
	assert.Zero(t, f.Result().TotalTax)
}

func TestForm_RecomputeIsOrderIndependent(t *testing.T) {
	rates := map[enum.TaxCategory]float64{enum.TaxPPh21: 2.5, enum.TaxPPN: 11}

	a := newForm(t, enum.ReceiptKindJasa)
	require.NoError(t, a.Apply(Patch{NotaPembayaran: lo.ToPtr("3500000")}))
	require.NoError(t, a.Apply(Patch{Rates: rates}))
	require.NoError(t, a.Apply(Patch{Applicability: lo.ToPtr(enum.Additive)}))

	b := newForm(t, enum.ReceiptKindJasa)
	require.NoError(t, b.Apply(Patch{Applicability: lo.ToPtr(enum.Additive)}))
	require.NoError(t, b.Apply(Patch{NotaPembayaran: lo.ToPtr("3500000"), Rates: rates}))

	assert.Equal(t, a.Result(), b.Result())
	assert.Equal(t, int64(3500000+87500+385000), a.Result().Net)
}

func TestForm_LoadLegacyRecordInfersRate(t *testing.T) {
	f := newForm(t, enum.ReceiptKindJasa)
	rec := &entity.Kwitansi{
		ID:             uuid.New(),
		Kind:           enum.ReceiptKindJasa,
		TerimaDari:     "CV Maju Jaya",
		NotaPembayaran: 1000000,
		TaxLines: []entity.KwitansiTaxLine{
			{Category: enum.TaxPPN, Amount: lo.ToPtr(int64(110000))},
			{Category: enum.TaxPPh23, Rate: lo.ToPtr(2.0), Amount: lo.ToPtr(int64(20000))},
		},
	}

	require.NoError(t, f.Load(rec))

	rates := f.Rates()
	assert.Equal(t, 11.0, rates[enum.TaxPPN])
	assert.Equal(t, 2.0, rates[enum.TaxPPh23])
	assert.Zero(t, rates[enum.TaxPPh21])
	assert.Equal(t, rec.ID, f.RecordID())
	assert.False(t, f.HasUnsavedChanges())
	assert.Equal(t, enum.FormStateReadyToSave, f.State())
	assert.Equal(t, int64(870000), f.Result().Net)
}

func TestForm_LoadRejectsOtherKind(t *testing.T) {
	f := newForm(t, enum.ReceiptKindHonor)
	err := f.Load(&entity.Kwitansi{Kind: enum.ReceiptKindBarang})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestForm_SaveValidation(t *testing.T) {
	tcs := []struct {
		name  string
		patch Patch
		want  []string
	}{
		{
			name:  "empty form",
			patch: Patch{},
			want:  []string{"terima_dari", "nota_pembayaran", "jumlah_diterimakan"},
		},
		{
			name:  "blank recipient",
			patch: Patch{TerimaDari: lo.ToPtr("   "), NotaPembayaran: lo.ToPtr("500000")},
			want:  []string{"terima_dari"},
		},
		{
			name: "tax consumes whole base",
			patch: Patch{
				TerimaDari:     lo.ToPtr("Budi"),
				NotaPembayaran: lo.ToPtr("500000"),
				Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 60, enum.TaxPPN: 40},
			},
			want: []string{"jumlah_diterimakan"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := newForm(t, enum.ReceiptKindBarang)
			require.NoError(t, f.Apply(tc.patch))

			rec, err := f.BeginSave()
			require.Error(t, err)
			assert.Nil(t, rec)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
			assert.Equal(t, MsgCannotSave, appErr.Message)
			assert.Equal(t, tc.want, fieldNames(appErr.Errors))

			// the lock was never taken
			assert.NoError(t, f.Apply(Patch{Uraian: lo.ToPtr("x")}))
		})
	}
}

func TestForm_SaveLifecycle(t *testing.T) {
	f := newForm(t, enum.ReceiptKindHonor)
	require.NoError(t, f.Apply(Patch{
		TerimaDari:     lo.ToPtr("Siti Aminah"),
		NotaPembayaran: lo.ToPtr("750000"),
		Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 5},
	}))

	rec, err := f.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, rec.ID)
	assert.Equal(t, int64(712500), rec.JumlahDiterimakan)
	assert.Equal(t, "Tujuh Ratus Dua Belas Ribu Lima Ratus Rupiah", rec.UangSebanyak)
	assert.Equal(t, 2025, rec.Tanggal.Year())
	require.Len(t, rec.TaxLines, 1)
	assert.Equal(t, 5.0, *rec.TaxLines[0].Rate)
	assert.Equal(t, int64(37500), *rec.TaxLines[0].Amount)

	_, err = f.BeginSave()
	assert.ErrorIs(t, err, apperror.ErrSaveInProgress)
	assert.ErrorIs(t, f.Apply(Patch{Uraian: lo.ToPtr("late edit")}), apperror.ErrSaveInProgress)

	// a failed save keeps the working copy
	f.FailSave()
	assert.Equal(t, enum.FormStateReadyToSave, f.State())
	assert.True(t, f.HasUnsavedChanges())
	assert.Equal(t, int64(712500), f.Result().Net)

	rec, err = f.BeginSave()
	require.NoError(t, err)
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	f.CompleteSave(rec)

	assert.Equal(t, enum.FormStateSaved, f.State())
	assert.False(t, f.HasUnsavedChanges())
	assert.Equal(t, rec.ID, f.RecordID())
	assert.ErrorIs(t, f.Apply(Patch{Uraian: lo.ToPtr("x")}), apperror.ErrFormClosed)

	require.NoError(t, f.Reset())
	assert.Equal(t, enum.FormStateEmpty, f.State())
	assert.Equal(t, uuid.Nil, f.RecordID())
}

func TestForm_ResetClearsEverything(t *testing.T) {
	f := newForm(t, enum.ReceiptKindJasa)
	require.NoError(t, f.Apply(Patch{
		TerimaDari:     lo.ToPtr("Budi"),
		NotaPembayaran: lo.ToPtr("1000000"),
		Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 5},
		BaseSelection:  lo.ToPtr(enum.BaseDerived),
	}))

	require.NoError(t, f.Reset())

	v := f.View()
	assert.Equal(t, enum.FormStateEmpty, v.State)
	assert.False(t, f.HasUnsavedChanges())
	assert.Zero(t, v.NotaPembayaran)
	assert.Equal(t, tax.DefaultMode, v.Mode)
	for _, r := range v.Rates {
		assert.Zero(t, r)
	}
	assert.Empty(t, v.Fields.TerimaDari)
}

func TestForm_ProfileRestrictions(t *testing.T) {
	honor := newForm(t, enum.ReceiptKindHonor)

	err := honor.Apply(Patch{Rates: map[enum.TaxCategory]float64{enum.TaxPPN: 11}})
	require.Error(t, err)
	assert.Equal(t, []string{"rates.ppn"}, fieldNames(apperror.GetAppError(err).Errors))

	err = honor.Apply(Patch{Applicability: lo.ToPtr(enum.Additive)})
	require.Error(t, err)
	assert.Equal(t, []string{"mode"}, fieldNames(apperror.GetAppError(err).Errors))

	// rejected patches do not count as edits
	assert.Equal(t, enum.FormStateEmpty, honor.State())
}

func TestForm_DerivedBaseOnJasa(t *testing.T) {
	f := newForm(t, enum.ReceiptKindJasa)

	require.NoError(t, f.Apply(Patch{
		NotaPembayaran: lo.ToPtr("1110000"),
		BaseSelection:  lo.ToPtr(enum.BaseDerived),
		Rates:          map[enum.TaxCategory]float64{enum.TaxPPh23: 2},
	}))

	rec := f.Record()
	assert.Equal(t, int64(1110000), rec.NotaPembayaran)
	assert.Equal(t, int64(1000000), rec.DPP)
	assert.Equal(t, int64(20000), rec.TotalPajak)
	assert.Equal(t, int64(980000), rec.JumlahDiterimakan)
	assert.Equal(t, enum.BaseDerived, rec.BaseSelection)
}

func TestForm_JasaPPh21NeedsNotaAboveMinimum(t *testing.T) {
	tcs := []struct {
		name    string
		nota    string
		wantPPh int64
		wantNet int64
	}{
		{name: "at minimum", nota: "1000000", wantPPh: 0, wantNet: 1000000 - 110000},
		{name: "above minimum", nota: "1000001", wantPPh: 50000, wantNet: 1000001 - 50000 - 110000},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := newForm(t, enum.ReceiptKindJasa)
			require.NoError(t, f.Apply(Patch{
				NotaPembayaran: lo.ToPtr(tc.nota),
				Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 5, enum.TaxPPN: 11},
			}))

			res := f.Result()
			assert.Equal(t, tc.wantPPh, res.Amount(enum.TaxPPh21))
			assert.Equal(t, int64(110000), res.Amount(enum.TaxPPN))
			assert.Equal(t, tc.wantNet, res.Net)
			// the entered rate survives so it applies once the nota grows
			assert.Equal(t, 5.0, f.Rates()[enum.TaxPPh21])
		})
	}

	t.Run("honor has no minimum", func(t *testing.T) {
		f := newForm(t, enum.ReceiptKindHonor)
		require.NoError(t, f.Apply(Patch{
			NotaPembayaran: lo.ToPtr("1000000"),
			Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 5},
		}))
		assert.Equal(t, int64(50000), f.Result().Amount(enum.TaxPPh21))
	})
}

func TestForm_HugeRateCannotBeSaved(t *testing.T) {
	f := newForm(t, enum.ReceiptKindHonor)
	require.NoError(t, f.Apply(Patch{
		TerimaDari:     lo.ToPtr("Budi"),
		NotaPembayaran: lo.ToPtr("1000000"),
		Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 1e15},
	}))

	res := f.Result()
	assert.Equal(t, int64(math.MaxInt64), res.Amount(enum.TaxPPh21))
	assert.Zero(t, res.Net)
	assert.Empty(t, f.View().UangSebanyak)

	_, err := f.BeginSave()
	require.Error(t, err)
	assert.Equal(t, []string{"jumlah_diterimakan"}, fieldNames(apperror.GetAppError(err).Errors))
}

func TestForm_NearMaxBaseStaysNonNegative(t *testing.T) {
	f := newForm(t, enum.ReceiptKindJasa)
	require.NoError(t, f.Apply(Patch{
		TerimaDari:     lo.ToPtr("CV Maju"),
		NotaPembayaran: lo.ToPtr("4611686018427387903"),
		Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 100, enum.TaxPPN: 100},
		Applicability:  lo.ToPtr(enum.Additive),
	}))

	rec, err := f.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), rec.JumlahDiterimakan)
	assert.Equal(t, int64(math.MaxInt64-1), rec.TotalPajak)
	for _, l := range rec.TaxLines {
		require.NotNil(t, l.Amount)
		assert.GreaterOrEqual(t, *l.Amount, int64(0))
	}
}

func TestForm_RejectsUnknownModes(t *testing.T) {
	f := newForm(t, enum.ReceiptKindJasa)

	err := f.Apply(Patch{Applicability: lo.ToPtr(enum.Applicability(5))})
	require.Error(t, err)
	assert.Equal(t, []string{"applicability"}, fieldNames(apperror.GetAppError(err).Errors))

	err = f.Apply(Patch{BaseSelection: lo.ToPtr(enum.BaseSelection(-1))})
	require.Error(t, err)
	assert.Equal(t, []string{"base_selection"}, fieldNames(apperror.GetAppError(err).Errors))

	assert.Equal(t, tax.DefaultMode, f.View().Mode)
	assert.Equal(t, enum.FormStateEmpty, f.State())
}

func TestForm_Snapshot(t *testing.T) {
	f := newForm(t, enum.ReceiptKindHonor)
	require.NoError(t, f.Apply(Patch{
		TerimaDari:     lo.ToPtr("Budi"),
		NotaPembayaran: lo.ToPtr("2000000"),
		Rates:          map[enum.TaxCategory]float64{enum.TaxPPh21: 5},
		Signatures: &entity.Signatures{
			Bendahara: entity.Signatory{Nama: "Rina", NIP: "19800101"},
		},
	}))

	snap := f.Snapshot()
	assert.Equal(t, "Kwitansi Honor", snap.Title)
	assert.Equal(t, "Nganjuk", snap.Location)
	assert.Equal(t, int64(1900000), snap.JumlahDiterimakan)
	assert.Equal(t, "Rina", snap.Signatures.Bendahara.Nama)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "PPh 21", snap.Lines[0].Label)
	assert.Equal(t, int64(100000), snap.Lines[0].Amount)
}

func TestGuard_ConfirmDiscard(t *testing.T) {
	ctx := context.Background()

	t.Run("clean form leaves without asking", func(t *testing.T) {
		f := newForm(t, enum.ReceiptKindHonor)
		asked := false
		g := f.Guard(ConfirmFunc(func(context.Context, string) (bool, error) {
			asked = true
			return false, nil
		}))

		ok, err := g.ConfirmDiscard(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, asked)
		assert.Equal(t, enum.FormStateDiscarded, f.State())
	})

	t.Run("declined keeps the form", func(t *testing.T) {
		f := newForm(t, enum.ReceiptKindHonor)
		require.NoError(t, f.Apply(Patch{TerimaDari: lo.ToPtr("Budi")}))
		g := f.Guard(Answer(false))

		assert.True(t, g.HasUnsavedChanges())
		ok, err := g.ConfirmDiscard(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, enum.FormStateEditing, f.State())
		assert.True(t, f.HasUnsavedChanges())
	})

	t.Run("confirmed discards", func(t *testing.T) {
		f := newForm(t, enum.ReceiptKindHonor)
		require.NoError(t, f.Apply(Patch{TerimaDari: lo.ToPtr("Budi")}))

		var prompt string
		g := f.Guard(ConfirmFunc(func(_ context.Context, p string) (bool, error) {
			prompt = p
			return true, nil
		}))

		ok, err := g.ConfirmDiscard(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, DiscardPrompt, prompt)
		assert.Equal(t, enum.FormStateDiscarded, f.State())
		assert.False(t, g.HasUnsavedChanges())
		assert.ErrorIs(t, f.Apply(Patch{Uraian: lo.ToPtr("x")}), apperror.ErrFormClosed)
		assert.ErrorIs(t, f.Reset(), apperror.ErrFormClosed)
	})

	t.Run("confirmer error blocks navigation", func(t *testing.T) {
		f := newForm(t, enum.ReceiptKindHonor)
		require.NoError(t, f.Apply(Patch{TerimaDari: lo.ToPtr("Budi")}))
		boom := errors.New("dialog closed")

		ok, err := f.Guard(ConfirmFunc(func(context.Context, string) (bool, error) {
			return false, boom
		})).ConfirmDiscard(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, enum.FormStateEditing, f.State())
	})

	t.Run("save in flight cannot be discarded", func(t *testing.T) {
		f := newForm(t, enum.ReceiptKindHonor)
		require.NoError(t, f.Apply(Patch{
			TerimaDari:     lo.ToPtr("Budi"),
			NotaPembayaran: lo.ToPtr("100000"),
		}))
		_, err := f.BeginSave()
		require.NoError(t, err)

		ok, err := f.Guard(Answer(true)).ConfirmDiscard(ctx)
		assert.False(t, ok)
		assert.ErrorIs(t, err, apperror.ErrSaveInProgress)
	})
}

func TestCalculate(t *testing.T) {
	calc, err := Calculate(enum.ReceiptKindHonor, "2.000.000", map[enum.TaxCategory]float64{enum.TaxPPh21: 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1900000), calc.Result.Net)
	assert.Equal(t, "Satu Juta Sembilan Ratus Ribu Rupiah", calc.UangSebanyak)

	_, err = Calculate("kas", "1000", nil, nil)
	assert.Error(t, err)
}
