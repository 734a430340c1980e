// Package migrations embeds SQL migration files.
package migrations

import "embed"

// ProfilesFS contains the migrations for the profiles table (driver postgres).
// Files use {{table}} as a placeholder for the quoted table name.
//
//go:embed profiles/*.sql
var ProfilesFS embed.FS

// ProfilesDir is the directory within ProfilesFS where migrations live.
const ProfilesDir = "profiles"
