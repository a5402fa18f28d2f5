// ABOUTME: Embeds the goose SQL migrations shipped with the server binary
// ABOUTME: Applied automatically on store startup

package store

import "embed"

//go:embed migrations/*.sql
var migrationsFS embed.FS
