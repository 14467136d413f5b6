// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from application state types.
package viewmodel

// DialogViewModel holds presentation-ready data for the API key dialog.
type DialogViewModel struct {
	Open bool

	Input     string
	InputType string // "password" or "text"
	Revealed  bool
	Saving    bool

	ErrorMessage string
	Success      bool

	HasExisting bool
	ShowClear   bool
	CanSave     bool

	// AutoCloseMillis is how long after a successful save the browser
	// re-fetches the dialog to pick up the server-side close.
	AutoCloseMillis int64

	ProviderURL      string
	InstructionsHTML string
	CSRFToken        string
}

// StatusViewModel holds presentation data for the credential status card.
type StatusViewModel struct {
	Configured  bool
	KeyMasked   string
	ClientReady bool
	Model       string
}

// PageViewModel holds all data needed to render the settings page.
type PageViewModel struct {
	Title  string
	Dialog DialogViewModel
	Status StatusViewModel
}
