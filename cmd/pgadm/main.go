// Package main implements the pgadm CLI tool for exercising the adapter
// against a live database: connectivity checks, a demo schema round-trip,
// and column introspection.
//
// Usage:
//
//	go run ./cmd/pgadm --task=ping
//	go run ./cmd/pgadm --task=demo
//	go run ./cmd/pgadm --task=columns --table=pgadm_demo
//	go run ./cmd/pgadm --task=drop --table=pgadm_demo
//
// The tool reads DATABASE_URL from environment variables (or a .env file
// via godotenv).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/IamKirbki/npm-database-handler-pg/config"
	"github.com/IamKirbki/npm-database-handler-pg/db"
	"github.com/IamKirbki/npm-database-handler-pg/schema"
)

const demoTable = "pgadm_demo"

func main() {
	taskFlag := flag.String("task", "", "Task to execute: ping, demo, columns, drop")
	tableFlag := flag.String("table", demoTable, "Target table for columns/drop")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pgadm [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Exercise the adapter against the configured database.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	if *taskFlag == "" {
		fmt.Fprintf(os.Stderr, "error: --task is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load .env for local development before reading config. Missing file
	// is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgpool, err := config.Connect(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgpool.Close()

	pool := db.NewPgxPool(pgpool)

	switch *taskFlag {
	case "ping":
		logger.Info("database reachable")
	case "demo":
		err = runDemo(ctx, pool, logger)
	case "columns":
		err = runColumns(ctx, pgpool, *tableFlag, logger)
	case "drop":
		err = schema.NewBuilder(pool, nil, logger).DropTable(ctx, *tableFlag)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown task %q\n", *taskFlag)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("task failed", "task", *taskFlag, "error", err)
		os.Exit(1)
	}
	logger.Info("task complete", "task", *taskFlag)
}

// runDemo round-trips the adapter end to end: create a table through the
// fluent builder, insert rows with named parameters inside a transaction,
// and read them back.
func runDemo(ctx context.Context, pool db.Pool, logger *slog.Logger) error {
	builder := schema.NewBuilder(pool, nil, logger)
	if err := builder.CreateTable(ctx, demoTable, func(t *schema.Table) {
		t.UUID("id").Primary()
		t.String("title", 120).NotNullable()
		t.Enum("status", []string{"draft", "published"})
		t.Integer("views").DefaultTo(0)
		t.Timestamps()
		t.SoftDeletes()
	}); err != nil {
		return err
	}

	coordinator := db.NewCoordinator(pool, logger)
	if err := coordinator.Transact(ctx, func(ctx context.Context, tx db.Querier) error {
		for _, title := range []string{"first", "second"} {
			stmt := db.Bind(tx, fmt.Sprintf(
				"INSERT INTO %s (id, title, status) VALUES (@id, @title, @status)", demoTable))
			if _, err := stmt.Run(ctx, map[string]any{
				"id":     uuid.NewString(),
				"title":  title,
				"status": "draft",
			}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	rows, err := db.Prepare(ctx, pool, fmt.Sprintf(
		"SELECT id, title, status FROM %s WHERE status = @status", demoTable)).
		All(ctx, map[string]any{"status": "draft"})
	if err != nil {
		return err
	}
	for _, row := range rows {
		logger.Info("demo row", "id", row["id"], "title", row["title"], "status", row["status"])
	}
	return nil
}

func runColumns(ctx context.Context, q db.Querier, table string, logger *slog.Logger) error {
	cols, err := db.NewInspector(q).Columns(ctx, table)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		logger.Warn("no columns found", "table", table)
		return nil
	}
	for _, col := range cols {
		def := ""
		if col.Default != nil {
			def = *col.Default
		}
		logger.Info("column",
			"ordinal", col.Ordinal,
			"name", col.Name,
			"type", col.DataType,
			"nullable", col.Nullable,
			"default", def,
		)
	}
	return nil
}
