// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// CatalogSQL creates the title and rating tables. It is idempotent and valid
// for both SQLite and PostgreSQL.
//
//go:embed sql/001_catalog.sql
var CatalogSQL string
