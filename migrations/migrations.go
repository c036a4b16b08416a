// Package migrations embeds the PostgreSQL schema for the schedule database.
package migrations

import "embed"

// Files holds the ordered *.sql migrations.
//
//go:embed *.sql
var Files embed.FS
