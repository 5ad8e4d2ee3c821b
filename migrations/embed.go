package migrations

import "embed"

// Files exposes the embedded golang-migrate SQL files.
//
//go:embed *.sql
var Files embed.FS
