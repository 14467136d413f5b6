// Package dialog implements the credential entry dialog: the state machine
// behind a modal that shows, edits, validates and saves an API key. It knows
// nothing about rendering; the web and terminal adapters drive it.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// DefaultAutoCloseDelay is how long the success message stays visible before
// the dialog asks the host to close it.
const DefaultAutoCloseDelay = 1500 * time.Millisecond

var (
	// ErrClosed is returned by Save when the dialog is not open.
	ErrClosed = errors.New("dialog is not open")

	// ErrSaveInProgress is returned by Save while another save is running.
	ErrSaveInProgress = errors.New("save already in progress")
)

// Options configures a Dialog. All fields are optional.
type Options struct {
	// OnRequestClose asks the host to hide the dialog. The dialog never
	// changes its own visibility.
	OnRequestClose func()

	// OnSaved is called synchronously after a successful store write. Its
	// outcome is not observed.
	OnSaved func()

	AutoCloseDelay time.Duration
	Logger         *slog.Logger
}

// View is a read-only snapshot of the dialog for rendering.
type View struct {
	State

	Open bool

	// CanSave is false while a store write is running, including one
	// started before the dialog was last reopened, or while the input is
	// not a genuine edit.
	CanSave bool

	// ShowClear is true when a stored credential exists.
	ShowClear bool

	AutoCloseDelay time.Duration
}

// Dialog owns the state of one credential entry dialog. Every mutation goes
// through Reduce. The mutex is held only around state changes, never across
// store calls or host callbacks.
type Dialog struct {
	store     driven.CredentialStore
	scheduler driven.Scheduler

	onRequestClose func()
	onSaved        func()
	delay          time.Duration
	logger         *slog.Logger

	mu    sync.Mutex
	open  bool
	state State
	timer driven.Timer
	// writing is set while a store write runs. Unlike State.Saving it
	// survives close and reopen, so at most one write is ever in flight.
	writing bool
	// generation increments on every open and close so a timer or save from
	// an earlier open cycle can recognise that it is stale.
	generation uint64
}

// New creates a closed Dialog backed by store. scheduler drives the
// post-save auto-close.
func New(store driven.CredentialStore, scheduler driven.Scheduler, opts Options) *Dialog {
	d := &Dialog{
		store:          store,
		scheduler:      scheduler,
		onRequestClose: opts.OnRequestClose,
		onSaved:        opts.OnSaved,
		delay:          opts.AutoCloseDelay,
		logger:         opts.Logger,
		state:          State{Status: StatusIdle},
	}
	if d.delay <= 0 {
		d.delay = DefaultAutoCloseDelay
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// SetOpen applies the host's visibility flag. Opening re-initialises the
// state from the store; closing discards it. Both cancel a pending
// auto-close. Calling it with the current visibility is a no-op.
func (d *Dialog) SetOpen(ctx context.Context, open bool) {
	d.mu.Lock()
	if d.open == open {
		d.mu.Unlock()
		return
	}
	d.open = open
	d.generation++
	d.stopTimerLocked()
	gen := d.generation
	if !open {
		d.state = Reduce(d.state, Closed{})
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	existing := d.loadExisting(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generation != gen {
		return
	}
	d.state = Reduce(d.state, Opened{Existing: existing})
}

// Edit replaces the input with value and clears any feedback.
func (d *Dialog) Edit(value string) {
	d.dispatch(Edited{Value: value})
}

// ToggleReveal switches between obscured and plain-text display.
func (d *Dialog) ToggleReveal() {
	d.dispatch(RevealToggled{})
}

// Clear empties the draft. The stored credential is left untouched.
func (d *Dialog) Clear() {
	d.dispatch(Cleared{})
}

// Save validates the current input and, if it passes, writes the trimmed
// value to the store. Validation and store errors are recorded in the state
// and also returned; they are never fatal to the host.
func (d *Dialog) Save(ctx context.Context) error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.state.Saving || d.writing {
		d.mu.Unlock()
		return ErrSaveInProgress
	}
	input := d.state.Input
	if err := CheckPreconditions(input); err != nil {
		d.state = Reduce(d.state, SaveFailed{Err: err})
		d.mu.Unlock()
		return err
	}
	d.state = Reduce(d.state, SaveStarted{})
	d.writing = true
	gen := d.generation
	d.mu.Unlock()

	err := d.write(ctx, input)

	d.mu.Lock()
	d.writing = false
	current := d.generation == gen
	if current {
		if err != nil {
			d.state = Reduce(d.state, SaveFailed{Err: err})
		} else {
			d.state = Reduce(d.state, SaveSucceeded{})
		}
	}
	d.mu.Unlock()

	if err != nil {
		return err
	}

	if d.onSaved != nil {
		d.onSaved()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generation == gen {
		d.stopTimerLocked()
		d.timer = d.scheduler.AfterFunc(d.delay, func() { d.autoClose(gen) })
	}
	return nil
}

// Snapshot returns the current state for rendering.
func (d *Dialog) Snapshot() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return View{
		State:          d.state,
		Open:           d.open,
		CanSave:        !d.state.Saving && !d.writing && IsGenuineEdit(d.state.Input),
		ShowClear:      d.state.HasExisting,
		AutoCloseDelay: d.delay,
	}
}

func (d *Dialog) write(ctx context.Context, input string) error {
	value, err := Validate(input)
	if err != nil {
		return err
	}
	if err := d.store.Set(ctx, value); err != nil {
		d.logger.Error("failed to save credential", "error", err)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

func (d *Dialog) autoClose(gen uint64) {
	d.mu.Lock()
	if d.generation != gen || !d.open {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.state = Reduce(d.state, AutoCloseFired{})
	d.mu.Unlock()

	if d.onRequestClose != nil {
		d.onRequestClose()
	}
}

func (d *Dialog) loadExisting(ctx context.Context) string {
	ok, err := d.store.Exists(ctx)
	if err != nil {
		d.logger.Warn("failed to check for stored credential", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	value, err := d.store.Get(ctx)
	if err != nil {
		d.logger.Warn("failed to load stored credential", "error", err)
		return ""
	}
	return value
}

func (d *Dialog) dispatch(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return
	}
	d.state = Reduce(d.state, ev)
}

func (d *Dialog) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
