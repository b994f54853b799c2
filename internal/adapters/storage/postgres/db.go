package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pets (
	id         BIGSERIAL PRIMARY KEY,
	food       DOUBLE PRECISION NOT NULL DEFAULT 100,
	water      DOUBLE PRECISION NOT NULL DEFAULT 100,
	fun        DOUBLE PRECISION NOT NULL DEFAULT 100,
	xp         DOUBLE PRECISION NOT NULL DEFAULT 0,
	level      INTEGER          NOT NULL DEFAULT 1,
	last_decay TIMESTAMPTZ      NOT NULL DEFAULT now()
)`

// EnsureSchema crea las tablas si no existen. Se llama una vez al arrancar.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
