// migrator manages the PostgreSQL schema and loads seed data.
//
//	migrator --command up
//	migrator --command seed --file seed.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"niti/internal/infrastructure/database"
	"niti/internal/infrastructure/database/queries"
	"niti/internal/infrastructure/seed"
	"niti/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	var command, file, dsn string
	var verbose, overwriteProfiles bool
	flagSet := pflag.NewFlagSet("migrator", pflag.ContinueOnError)
	flagSet.StringVarP(&command, "command", "c", "up", "one of up, down, version, seed")
	flagSet.StringVarP(&file, "file", "f", "", "seed file (YAML) for --command seed")
	flagSet.StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "postgres connection URL")
	flagSet.BoolVar(&overwriteProfiles, "overwrite-profiles", false, "replace existing profiles with the seed file's version")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logging.Setup(level)

	if dsn == "" {
		return errors.New("DATABASE_URL or --database-url is required")
	}

	switch command {
	case "up", "down", "version":
		return migrate(command, dsn)
	case "seed":
		if file == "" {
			return errors.New("--file is required for seed")
		}
		return seedDatabase(dsn, file, seed.Options{OverwriteProfiles: overwriteProfiles})
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func migrate(command, dsn string) error {
	m, err := database.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
	case "down":
		if err := m.Down(); err != nil {
			return err
		}
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	slog.Info("schema version", "version", version, "dirty", dirty)
	return nil
}

func seedDatabase(dsn, path string, opts seed.Options) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	q := queries.New(pool)
	return seed.Apply(ctx, f, database.NewProfileRepository(q), database.NewEventRepository(q), opts)
}
