// Package psychrometer holds assets embedded into the psychrometer binary.
package psychrometer

import "embed"

// MigrationsDir is the directory of Migrations passed to goose.
const MigrationsDir = "migrations"

// Migrations contains the goose SQL migrations of the batches database.
//
//go:embed migrations/*.sql
var Migrations embed.FS
