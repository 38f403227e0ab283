package form

import (
	"context"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// DiscardPrompt is shown when leaving a form with unsaved changes
const DiscardPrompt = "Ada perubahan yang belum disimpan. Tinggalkan kwitansi tanpa menyimpan?"

// NavigationGuard is what routing consults before leaving an open form
type NavigationGuard interface {
	HasUnsavedChanges() bool
	ConfirmDiscard(ctx context.Context) (bool, error)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls fn
func (fn ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return fn(ctx, prompt)
}

// Answer returns a Confirmer that always answers ok
func Answer(ok bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return ok, nil })
}

type guard struct {
	form      *Form
	confirmer Confirmer
}

// Guard exposes f to navigation, asking c before dropping unsaved changes
func (f *Form) Guard(c Confirmer) NavigationGuard {
	return &guard{form: f, confirmer: c}
}

func (g *guard) HasUnsavedChanges() bool {
	return g.form.HasUnsavedChanges()
}

// ConfirmDiscard resolves the navigation gate. It returns true when leaving
// may proceed; on a confirmed discard the form becomes Discarded.
func (g *guard) ConfirmDiscard(ctx context.Context) (bool, error) {
	f := g.form

	f.mu.Lock()
	if f.saving {
		f.mu.Unlock()
		return false, apperror.ErrSaveInProgress
	}
	if f.state.IsTerminal() {
		f.mu.Unlock()
		return true, nil
	}
	needsConfirm := f.dirty
	f.mu.Unlock()

	if needsConfirm {
		if g.confirmer == nil {
			return false, nil
		}
		ok, err := g.confirmer.Confirm(ctx, DiscardPrompt)
		if err != nil || !ok {
			return false, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// a save may have started while the user was answering
	if f.saving {
		return false, apperror.ErrSaveInProgress
	}
	if f.state != enum.FormStateSaved {
		f.state = enum.FormStateDiscarded
	}
	f.dirty = false
	return true, nil
}
