package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/keypanel/internal/application/dialog"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	existingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
)

// View renders the dialog box.
func (m Model) View() string {
	v := m.snapshot()
	if !v.Open {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("API Key Settings"))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Get a key at " + model.GeminiKeyURL))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("1. Sign in with your Google account."))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("2. Create an API key, or pick an existing one."))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("3. Paste it below."))
	b.WriteString("\n\n")

	if v.HasExisting {
		b.WriteString(existingStyle.Render("An API key is already saved."))
		b.WriteString("\n\n")
	}

	b.WriteString("Gemini API Key\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if line := feedback(v); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	b.WriteString(infoStyle.Render("Your API key is stored on this machine and is only ever sent to the Gemini API."))
	b.WriteString("\n\n")
	b.WriteString(help(v))

	box := boxStyle
	if m.width > 0 && m.width < 72 {
		box = box.Width(m.width - 2)
	}
	return box.Render(b.String()) + "\n"
}

func feedback(v dialog.View) string {
	switch {
	case v.Saving:
		return infoStyle.Render("Saving…")
	case v.ErrorMessage != "":
		return errorStyle.Render(v.ErrorMessage)
	case v.Status == dialog.StatusSuccess:
		return successStyle.Render("API key saved.")
	}
	return ""
}

func help(v dialog.View) string {
	save := "enter save"
	if !v.CanSave {
		save = disabledStyle.Render(save)
	} else {
		save = helpStyle.Render(save)
	}

	parts := []string{save}
	if v.Input != "" {
		reveal := "ctrl+r show"
		if v.Revealed {
			reveal = "ctrl+r hide"
		}
		parts = append(parts, helpStyle.Render(reveal))
	}
	if v.ShowClear {
		parts = append(parts, helpStyle.Render("ctrl+x clear"))
	}
	parts = append(parts, helpStyle.Render("esc close"))
	return strings.Join(parts, helpStyle.Render(" • "))
}
