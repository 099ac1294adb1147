// Package migrations holds the customer schema, applied at startup by
// database.Migrate and by the Postgres test container.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
