// Package db embeds the SQL migrations applied by the postgres repository.
package db

import "embed"

// MigrationsDir is the directory inside Migrations holding goose files.
const MigrationsDir = "migrations"

// Migrations holds goose migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
