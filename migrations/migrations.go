// Package migrations embeds the SQL schema migrations for every supported dialect.
package migrations

import "embed"

// FS holds one directory of migrations per dialect: sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
