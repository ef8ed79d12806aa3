package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/logging"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg := config.Load()
	logging.Setup(logging.Options{Level: cfg.LogLevel})

	migrationsPath, err := findMigrations()
	if err != nil {
		slog.Error("migrations directory not found", "error", err)
		os.Exit(1)
	}

	m, err := migrate.New("file://"+migrationsPath, cfg.MigrationURL())
	if err != nil {
		slog.Error("migrate init failed", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			slog.Error("read version failed", "error", verr)
			os.Exit(1)
		}
		slog.Info("schema version", "version", version, "dirty", dirty)
		return
	default:
		slog.Error("unknown command, expected up, down or version", "command", cmd)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		slog.Error("migration failed", "command", cmd, "error", err)
		os.Exit(1)
	}
	slog.Info("migration complete", "command", cmd)
}

// findMigrations walks up from the working directory, then the executable's
// directory, looking for migrations/.
func findMigrations() (string, error) {
	var roots []string
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd)
	}
	if exe, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(exe))
	}

	for _, root := range roots {
		current := root
		for i := 0; i < 6; i++ {
			candidate := filepath.Join(current, "migrations")
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return filepath.Abs(candidate)
			}
			parent := filepath.Dir(current)
			if parent == current {
				break
			}
			current = parent
		}
	}
	return "", errors.New("no migrations/ directory above working directory or executable")
}
