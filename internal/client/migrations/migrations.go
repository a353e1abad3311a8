// Package migrations embeds the goose migrations for the client's local
// sqlite database (credential metadata and offline read cache).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
