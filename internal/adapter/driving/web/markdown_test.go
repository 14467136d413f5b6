package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/keypanel/internal/application/dialog"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

func TestInstructionsHTML_ThreeStepsInOrder(t *testing.T) {
	require.True(t, strings.HasPrefix(instructionsHTML, "<ol>"))
	assert.Equal(t, 3, strings.Count(instructionsHTML, "<li>"))

	steps := []string{
		"Sign in with your Google account.",
		"Click <strong>Create API key</strong>, or pick an existing key.",
		"Copy the key and paste it into the field below.",
	}
	last := -1
	for _, step := range steps {
		i := strings.Index(instructionsHTML, "<li>"+step+"</li>")
		require.GreaterOrEqual(t, i, 0, "missing step %q", step)
		assert.Greater(t, i, last, "step %q out of order", step)
		last = i
	}
}

func TestInstructionsHTML_HeredocIndentIsNotACodeBlock(t *testing.T) {
	assert.False(t, strings.HasPrefix(keyInstructions, "\t"))
	assert.NotContains(t, instructionsHTML, "<pre>")
	assert.NotContains(t, instructionsHTML, "<code>")
}

func TestInstructionsHTML_PassesSanitiserUnchanged(t *testing.T) {
	assert.Equal(t, instructionsHTML, htmlSanitizer.Sanitize(instructionsHTML))
}

func TestRenderMarkdown_StripsActiveContentFromInstructions(t *testing.T) {
	tampered := keyInstructions +
		"\n<script>fetch('/steal?k='+document.cookie)</script>\n" +
		"\n[Open AI Studio](javascript:alert(1))\n" +
		"\n<a href=\"" + ProviderKeyURL + "\" onclick=\"alert(1)\">AI Studio</a>\n"

	out := RenderMarkdown(tampered)

	assert.Contains(t, out, "<strong>Create API key</strong>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "document.cookie")
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, `href="`+ProviderKeyURL+`"`)
}

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestDialogViewModel_CarriesInstructionsAndProviderLink(t *testing.T) {
	m := toDialogViewModel(dialog.View{Open: true}, "tok")

	assert.Equal(t, instructionsHTML, m.InstructionsHTML)
	assert.Equal(t, model.GeminiKeyURL, m.ProviderURL)
	assert.Equal(t, "password", m.InputType)
}
