package web

import (
	"bytes"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// ProviderKeyURL is the page where users create a Gemini API key.
const ProviderKeyURL = model.GeminiKeyURL

// keyInstructions is shown in the dialog's info block.
var keyInstructions = heredoc.Doc(`
	1. Sign in with your Google account.
	2. Click **Create API key**, or pick an existing key.
	3. Copy the key and paste it into the field below.
`)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy

	// instructionsHTML is keyInstructions rendered once at startup.
	instructionsHTML string
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	htmlSanitizer = bluemonday.UGCPolicy()

	instructionsHTML = RenderMarkdown(keyInstructions)
}

// RenderMarkdown converts a markdown string to sanitized HTML.
// Returns empty string for empty input.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return htmlSanitizer.Sanitize(src)
	}

	return htmlSanitizer.Sanitize(buf.String())
}
