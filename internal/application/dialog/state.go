package dialog

import "github.com/ericfisherdev/keypanel/internal/domain/model"

// SaveStatus is the feedback state of the most recent save attempt.
type SaveStatus string

const (
	StatusIdle    SaveStatus = "idle"
	StatusSuccess SaveStatus = "success"
	StatusError   SaveStatus = "error"
)

// State is the transient UI state of one open dialog. It is created on open,
// reset on every open and discarded on close.
type State struct {
	Input        string
	Revealed     bool
	Saving       bool
	Status       SaveStatus
	ErrorMessage string

	// HasExisting is true when the store reported a credential on open, or
	// after a successful save in the same open cycle.
	HasExisting bool
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Opened is dispatched when the host makes the dialog visible. Existing is the
// stored credential, or "" if none.
type Opened struct{ Existing string }

// Edited carries the full input value after a keystroke.
type Edited struct{ Value string }

// RevealToggled flips between obscured and plain-text rendering.
type RevealToggled struct{}

// Cleared resets the draft. The store is not touched.
type Cleared struct{}

// SaveStarted marks a save in flight.
type SaveStarted struct{}

// SaveFailed records a precondition, validation or store failure.
type SaveFailed struct{ Err error }

// SaveSucceeded records a completed store write.
type SaveSucceeded struct{}

// AutoCloseFired is dispatched when the post-save timer runs.
type AutoCloseFired struct{}

// Closed is dispatched when the host hides the dialog.
type Closed struct{}

func (Opened) isEvent()         {}
func (Edited) isEvent()         {}
func (RevealToggled) isEvent()  {}
func (Cleared) isEvent()        {}
func (SaveStarted) isEvent()    {}
func (SaveFailed) isEvent()     {}
func (SaveSucceeded) isEvent()  {}
func (AutoCloseFired) isEvent() {}
func (Closed) isEvent()         {}

// Reduce returns the state that results from applying ev to s. It has no side
// effects; store access and timers live in Dialog.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case Opened:
		next := State{Status: StatusIdle}
		if ev.Existing != "" {
			next.Input = model.MaskCredential(ev.Existing)
			next.HasExisting = true
		}
		return next

	case Edited:
		s.Input = ev.Value
		s.Status = StatusIdle
		s.ErrorMessage = ""
		return s

	case RevealToggled:
		s.Revealed = !s.Revealed
		return s

	case Cleared:
		s.Input = ""
		s.Revealed = false
		s.Status = StatusIdle
		s.ErrorMessage = ""
		return s

	case SaveStarted:
		s.Saving = true
		s.Status = StatusIdle
		s.ErrorMessage = ""
		return s

	case SaveFailed:
		s.Saving = false
		s.Status = StatusError
		s.ErrorMessage = Message(ev.Err)
		return s

	case SaveSucceeded:
		s.Saving = false
		s.Status = StatusSuccess
		s.ErrorMessage = ""
		s.HasExisting = true
		return s

	case AutoCloseFired:
		s.Status = StatusIdle
		return s

	case Closed:
		return State{Status: StatusIdle}
	}

	return s
}

// IsGenuineEdit reports whether input is something the user typed rather than
// an empty field or the masked display of the stored key.
func IsGenuineEdit(input string) bool {
	return !model.IsMasked(input) && !isBlank(input)
}
