// ABOUTME: Embeds page templates and static assets into the server binary
// ABOUTME: Keeps the deployable a single file

package web

import "embed"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS
