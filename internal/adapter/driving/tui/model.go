// Package tui implements the terminal driving adapter: the API key dialog
// rendered as a bubbletea program.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/application/dialog"
)

// closedMsg is delivered when the host hides the dialog.
type closedMsg struct{}

// saveFinishedMsg carries the outcome of a save started from the keyboard.
type saveFinishedMsg struct {
	err error
}

// Model is the bubbletea model for the API key dialog. The host must already
// be open when the model is created; the program quits once the host closes.
type Model struct {
	ctx    context.Context
	host   *application.SettingsHost
	closed <-chan struct{}
	input  textinput.Model
	width  int
}

// New creates a Model for host. closed must receive a value whenever the host
// hides the dialog (see application.SettingsHostConfig.OnClose).
func New(ctx context.Context, host *application.SettingsHost, closed <-chan struct{}) Model {
	ti := textinput.New()
	ti.Focus()
	ti.Width = 48
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	m := Model{
		ctx:    ctx,
		host:   host,
		closed: closed,
		input:  ti,
	}
	m.syncInput()
	return m
}

// Init starts the cursor blink and the wait for the host to close.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForClose(m.closed))
}

// Update handles key presses and the asynchronous save and close messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	d := m.host.Dialog()

	switch msg := msg.(type) {
	case closedMsg:
		return m, tea.Quit

	case saveFinishedMsg:
		m.syncInput()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.host.RequestClose()
			return m, tea.Quit
		case "enter":
			if !d.Snapshot().CanSave {
				return m, nil
			}
			return m, m.save()
		case "ctrl+r":
			if v := d.Snapshot(); v.Saving || v.Input == "" {
				return m, nil
			}
			d.ToggleReveal()
			m.syncInput()
			return m, nil
		case "ctrl+x":
			if !d.Snapshot().ShowClear || d.Snapshot().Saving {
				return m, nil
			}
			d.Clear()
			m.syncInput()
			return m, nil
		}

		if d.Snapshot().Saving {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != d.Snapshot().Input {
		d.Edit(value)
	}
	return m, cmd
}

// save runs the store write off the event loop so the view can show the
// saving state.
func (m Model) save() tea.Cmd {
	d := m.host.Dialog()
	ctx := m.ctx
	return func() tea.Msg {
		return saveFinishedMsg{err: d.Save(ctx)}
	}
}

// syncInput copies the dialog's input, reveal state and placeholder into the
// text field.
func (m *Model) syncInput() {
	v := m.host.Dialog().Snapshot()
	if v.HasExisting {
		m.input.Placeholder = "Enter a new API key to replace the saved one"
	} else {
		m.input.Placeholder = "Enter your API key"
	}
	if m.input.Value() != v.Input {
		m.input.SetValue(v.Input)
		m.input.CursorEnd()
	}
	if v.Revealed {
		m.input.EchoMode = textinput.EchoNormal
	} else {
		m.input.EchoMode = textinput.EchoPassword
	}
}

func waitForClose(closed <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-closed
		return closedMsg{}
	}
}

func (m Model) snapshot() dialog.View {
	return m.host.Dialog().Snapshot()
}
