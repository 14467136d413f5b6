// Package templates holds the templ components that render the settings
// page and the API key dialog.
package templates

//go:generate go tool templ generate

import "strconv"

func millis(ms int64) string {
	return strconv.FormatInt(ms, 10) + "ms"
}
