// Package assets embeds the dashboard page template and stylesheet for the empdash CLI.
package assets

import _ "embed"

// DashboardTemplate is the html/template source of the dashboard page
//
//go:embed templates/dashboard.html
var DashboardTemplate string

// Stylesheet is inlined into every rendered page so reports open standalone
//
//go:embed static/style.css
var Stylesheet string
