package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/application/form"
	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// FormService drives open kwitansi forms on behalf of their owners
type FormService struct {
	repo   repository.KwitansiRepository
	store  *form.Store
	opts   []form.Option
	logger *zap.Logger
}

// FormOptions configures every form the service opens
type FormOptions struct {
	CurrencyUnit string
	Location     string
	Clock        func() time.Time
}

// NewFormService creates a new form service
func NewFormService(repo repository.KwitansiRepository, store *form.Store, fo FormOptions, logger *zap.Logger) *FormService {
	var opts []form.Option
	if fo.CurrencyUnit != "" {
		opts = append(opts, form.WithCurrencyUnit(fo.CurrencyUnit))
	}
	if fo.Location != "" {
		opts = append(opts, form.WithLocation(fo.Location))
	}
	if fo.Clock != nil {
		opts = append(opts, form.WithClock(fo.Clock))
	}

	return &FormService{
		repo:   repo,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Profiles lists the category set and mode availability of every kind
func (s *FormService) Profiles() []form.Profile {
	return form.Profiles()
}

// CalculateInput represents a stateless computation request
type CalculateInput struct {
	Kind           enum.ReceiptKind
	NotaPembayaran string
	Rates          map[enum.TaxCategory]float64
	Mode           *tax.Mode
}

// Calculate previews the figures of a kwitansi without opening a form
func (s *FormService) Calculate(input *CalculateInput) (*form.Calculation, error) {
	return form.Calculate(input.Kind, input.NotaPembayaran, input.Rates, input.Mode, s.opts...)
}

// OpenNew opens an empty form of kind for userID
func (s *FormService) OpenNew(userID uuid.UUID, kind enum.ReceiptKind) (*form.View, error) {
	profile, ok := form.ProfileFor(kind)
	if !ok {
		return nil, apperror.NewBadRequestError("Unknown kwitansi kind: " + string(kind))
	}

	f := form.New(profile, s.opts...)
	s.store.Put(userID, f)

	v := f.View()
	return &v, nil
}

// OpenEdit opens a form over a saved kwitansi of userID
func (s *FormService) OpenEdit(ctx context.Context, userID, recordID uuid.UUID) (*form.View, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.UserID != userID {
		return nil, apperror.NewNotFoundError("Kwitansi")
	}

	profile, ok := form.ProfileFor(rec.Kind)
	if !ok {
		return nil, apperror.NewBadRequestError("Unknown kwitansi kind: " + string(rec.Kind))
	}

	f := form.New(profile, s.opts...)
	if err := f.Load(rec); err != nil {
		return nil, err
	}
	s.store.Put(userID, f)

	v := f.View()
	return &v, nil
}

// GetForm returns the current view of an open form
func (s *FormService) GetForm(userID, formID uuid.UUID) (*form.View, error) {
	f, err := s.store.Get(userID, formID)
	if err != nil {
		return nil, err
	}
	v := f.View()
	return &v, nil
}

// UpdateForm applies one edit to an open form
func (s *FormService) UpdateForm(userID, formID uuid.UUID, patch form.Patch) (*form.View, error) {
	f, err := s.store.Get(userID, formID)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(patch); err != nil {
		return nil, err
	}
	v := f.View()
	return &v, nil
}

// ResetForm clears an open form back to Empty
func (s *FormService) ResetForm(userID, formID uuid.UUID) (*form.View, error) {
	f, err := s.store.Get(userID, formID)
	if err != nil {
		return nil, err
	}
	if err := f.Reset(); err != nil {
		return nil, err
	}
	v := f.View()
	return &v, nil
}

// SaveOutput is the result of a successful save
type SaveOutput struct {
	Kwitansi *entity.Kwitansi `json:"kwitansi"`
	Form     form.View        `json:"form"`
}

// SaveForm persists an open form. New forms are created and edited forms
// replace their record. On failure the form keeps its working copy so the
// user can retry.
func (s *FormService) SaveForm(ctx context.Context, userID, formID uuid.UUID) (*SaveOutput, error) {
	f, err := s.store.Get(userID, formID)
	if err != nil {
		return nil, err
	}

	rec, err := f.BeginSave()
	if err != nil {
		return nil, err
	}
	rec.UserID = userID

	if rec.ID == uuid.Nil {
		err = s.repo.Create(ctx, rec)
	} else {
		err = s.repo.Replace(ctx, rec)
	}
	if err != nil {
		f.FailSave()
		s.logger.Warn("Kwitansi save failed",
			zap.String("form_id", formID.String()),
			zap.String("user_id", userID.String()),
			zap.Bool("retryable", apperror.IsRetryable(err)),
			zap.Error(err))
		return nil, err
	}

	f.CompleteSave(rec)
	s.logger.Info("Kwitansi saved",
		zap.String("kwitansi_id", rec.ID.String()),
		zap.String("kind", rec.Kind.String()),
		zap.Int64("jumlah_diterimakan", rec.JumlahDiterimakan))

	return &SaveOutput{Kwitansi: rec, Form: f.View()}, nil
}

// DiscardForm closes an open form. Unsaved changes are only dropped when
// confirm is true; otherwise ErrUnsavedChanges is returned and the form
// stays open.
func (s *FormService) DiscardForm(ctx context.Context, userID, formID uuid.UUID, confirm bool) error {
	f, err := s.store.Get(userID, formID)
	if err != nil {
		return err
	}

	ok, err := f.Guard(form.Answer(confirm)).ConfirmDiscard(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrUnsavedChanges
	}

	s.store.Remove(userID, formID)
	return nil
}

// Snapshot returns the printable view of an open form
func (s *FormService) Snapshot(userID, formID uuid.UUID) (*entity.PrintSnapshot, error) {
	f, err := s.store.Get(userID, formID)
	if err != nil {
		return nil, err
	}
	snap := f.Snapshot()
	return &snap, nil
}
