// Package storage holds the pgx repositories behind the booking ports.
package storage

import (
	"context"
	_ "embed"

	"github.com/FabioF7/TheBooker/libs/db"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the idempotent DDL on startup.
func EnsureSchema(ctx context.Context, pool *db.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
