// Package migrations embeds the goose migrations for the client's offline
// snapshot database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
