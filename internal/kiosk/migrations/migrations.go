// Package migrations embeds the goose SQL migrations for every supported
// dialect. Each dialect lives in its own directory.
package migrations

import "embed"

const (
	DirSQLite   = "sqlite"
	DirPostgres = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
