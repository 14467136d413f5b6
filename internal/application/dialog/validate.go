package dialog

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// MinKeyLength is the shortest trimmed input accepted as an API key. It is a
// sanity check only; the provider owns the real key format.
const MinKeyLength = 20

var (
	// ErrEmptyInput is returned when the field is blank.
	ErrEmptyInput = errors.New("please enter an API key")

	// ErrUnmodifiedMask is returned when the masked display of the stored key
	// is submitted instead of a new key.
	ErrUnmodifiedMask = errors.New("enter a new API key, or clear the field and type it again")

	// ErrTooShort is returned when the trimmed input is shorter than MinKeyLength.
	ErrTooShort = errors.New("API key is too short, please check it and try again")

	// ErrSaveFailed wraps store failures. Its text is what the user sees.
	ErrSaveFailed = errors.New("could not save the API key")
)

// CheckPreconditions rejects input that must never reach length validation:
// a blank field or the unmodified masked display.
func CheckPreconditions(input string) error {
	if isBlank(input) {
		return ErrEmptyInput
	}
	if model.IsMasked(input) {
		return ErrUnmodifiedMask
	}
	return nil
}

// Validate runs every check a save performs and returns the trimmed value
// that would be handed to the store.
func Validate(input string) (string, error) {
	if err := CheckPreconditions(input); err != nil {
		return "", err
	}
	value := strings.TrimSpace(input)
	if utf8.RuneCountInString(value) < MinKeyLength {
		return "", ErrTooShort
	}
	return value, nil
}

// Message returns the user-facing text for a save error. Anything that is
// not a validation failure is reported with the generic ErrSaveFailed text.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return ErrEmptyInput.Error()
	case errors.Is(err, ErrUnmodifiedMask):
		return ErrUnmodifiedMask.Error()
	case errors.Is(err, ErrTooShort):
		return ErrTooShort.Error()
	default:
		return ErrSaveFailed.Error()
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
