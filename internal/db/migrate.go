package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abdmnsor/MOVIES-API/internal/db/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded schema migrations. goose wants a database/sql
// handle, so a short-lived one is opened via the pgx stdlib driver.
func Migrate(ctx context.Context, dbURL string) error {
	sqldb, err := sql.Open("pgx", dbURL)

	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}

	defer sqldb.Close()

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, sqldb, ".")
}
