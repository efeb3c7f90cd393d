// Package migrations embeds the SQLite schema for the kv backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
