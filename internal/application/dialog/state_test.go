package dialog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/keypanel/internal/application/dialog"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

func TestReduce(t *testing.T) {
	dirty := dialog.State{
		Input:        "draft-value",
		Revealed:     true,
		Status:       dialog.StatusError,
		ErrorMessage: "previous failure",
		HasExisting:  true,
	}

	tests := []struct {
		name  string
		start dialog.State
		event dialog.Event
		want  dialog.State
	}{
		{
			name:  "opened without stored key",
			start: dirty,
			event: dialog.Opened{},
			want:  dialog.State{Status: dialog.StatusIdle},
		},
		{
			name:  "opened with stored key shows mask",
			start: dirty,
			event: dialog.Opened{Existing: "abcdefgh1234"},
			want: dialog.State{
				Input:       strings.Repeat(model.MaskGlyph, 8) + "1234",
				Status:      dialog.StatusIdle,
				HasExisting: true,
			},
		},
		{
			name:  "edit replaces input and clears feedback",
			start: dirty,
			event: dialog.Edited{Value: " new value "},
			want: dialog.State{
				Input:       " new value ",
				Revealed:    true,
				Status:      dialog.StatusIdle,
				HasExisting: true,
			},
		},
		{
			name:  "reveal toggles only visibility",
			start: dirty,
			event: dialog.RevealToggled{},
			want: dialog.State{
				Input:        "draft-value",
				Status:       dialog.StatusError,
				ErrorMessage: "previous failure",
				HasExisting:  true,
			},
		},
		{
			name:  "clear resets draft but keeps existing indicator",
			start: dirty,
			event: dialog.Cleared{},
			want:  dialog.State{Status: dialog.StatusIdle, HasExisting: true},
		},
		{
			name:  "save started",
			start: dirty,
			event: dialog.SaveStarted{},
			want: dialog.State{
				Input:       "draft-value",
				Revealed:    true,
				Saving:      true,
				Status:      dialog.StatusIdle,
				HasExisting: true,
			},
		},
		{
			name:  "save failed maps error to message",
			start: dialog.State{Input: "short", Saving: true, Status: dialog.StatusIdle},
			event: dialog.SaveFailed{Err: dialog.ErrTooShort},
			want: dialog.State{
				Input:        "short",
				Status:       dialog.StatusError,
				ErrorMessage: dialog.ErrTooShort.Error(),
			},
		},
		{
			name:  "save succeeded",
			start: dialog.State{Input: "a-valid-key", Saving: true, Status: dialog.StatusIdle},
			event: dialog.SaveSucceeded{},
			want: dialog.State{
				Input:       "a-valid-key",
				Status:      dialog.StatusSuccess,
				HasExisting: true,
			},
		},
		{
			name:  "auto close resets status",
			start: dialog.State{Input: "a-valid-key", Status: dialog.StatusSuccess, HasExisting: true},
			event: dialog.AutoCloseFired{},
			want:  dialog.State{Input: "a-valid-key", Status: dialog.StatusIdle, HasExisting: true},
		},
		{
			name:  "closed discards state",
			start: dirty,
			event: dialog.Closed{},
			want:  dialog.State{Status: dialog.StatusIdle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dialog.Reduce(tt.start, tt.event)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_RevealTwiceIsIdentity(t *testing.T) {
	start := dialog.State{Input: "some-input", Status: dialog.StatusError, ErrorMessage: "x"}

	got := dialog.Reduce(dialog.Reduce(start, dialog.RevealToggled{}), dialog.RevealToggled{})

	if diff := cmp.Diff(start, got); diff != "" {
		t.Errorf("reveal round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_StoreErrorUsesGenericMessage(t *testing.T) {
	got := dialog.Reduce(dialog.State{Saving: true}, dialog.SaveFailed{Err: errors.New("database is locked")})

	assert.Equal(t, dialog.StatusError, got.Status)
	assert.Equal(t, dialog.ErrSaveFailed.Error(), got.ErrorMessage)
	assert.False(t, got.Saving)
}

func TestIsGenuineEdit(t *testing.T) {
	assert.False(t, dialog.IsGenuineEdit(""))
	assert.False(t, dialog.IsGenuineEdit("   "))
	assert.False(t, dialog.IsGenuineEdit(model.MaskCredential("AIzaSyABCDEFGHIJKLMNOPQRSTUVWXYZ1234")))
	assert.True(t, dialog.IsGenuineEdit("x"))
}
