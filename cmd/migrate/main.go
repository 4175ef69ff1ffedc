package main

import (
	"database/sql"
	"fmt"
	"os"

	"peer-review-service/internal/config"
	"peer-review-service/internal/database"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

func main() {
	cfg, cfgErr := config.LoadConfig()
	logger := config.NewLogger(cfg.LogLevel)
	if cfgErr != nil {
		logger.Debugf(".env not found: %v", cfgErr)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: migrate <command>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  up          Migrate to the latest version")
		fmt.Fprintln(os.Stderr, "  up-one      Migrate one version up")
		fmt.Fprintln(os.Stderr, "  down        Roll back one version")
		fmt.Fprintln(os.Stderr, "  status      Show migration status")
		fmt.Fprintln(os.Stderr, "  version     Show current version")
		fmt.Fprintln(os.Stderr, "  reset       Roll back all migrations")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Connection settings are read from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME.")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", database.DSN(cfg))
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := database.SetupGoose(); err != nil {
		logger.Fatalf("set dialect: %v", err)
	}

	cmd := args[0]
	switch cmd {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "up-one":
		err = goose.UpByOne(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	case "version":
		err = goose.Version(db, migrationsDir)
	case "reset":
		err = goose.Reset(db, migrationsDir)
	default:
		logger.Fatalf("unknown command: %s", cmd)
	}

	if err != nil {
		logger.Fatalf("%s: %v", cmd, err)
	}
	logger.WithField("command", cmd).Info("Migration command completed")
}
