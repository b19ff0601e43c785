// Package migrations holds the schema of the postgres user store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
