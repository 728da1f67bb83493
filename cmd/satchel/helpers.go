package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/satchel-app/satchel/internal/budget"
	"github.com/satchel-app/satchel/internal/cli"
	"github.com/satchel-app/satchel/internal/service"
	"github.com/satchel-app/satchel/internal/storage"
)

// app bundles the live engine with its snapshot store for one command
// invocation.
type app struct {
	store *budget.Store
	snaps service.Snapshots
}

// databasePath resolves the snapshot database location from config.
func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "satchel", "satchel.db"), nil
}

// openSnapshots opens the snapshot store with auto-migration.
func openSnapshots(ctx context.Context) (*storage.SQLiteStore, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}
	snaps, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := snaps.Migrate(ctx); err != nil {
		_ = snaps.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return snaps, nil
}

// initApp opens the store and loads the state, running the legacy upgrade
// if the stored data still has the old shape.
func initApp(ctx context.Context) (*app, error) {
	snaps, err := openSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	state, migrated, err := storage.LoadState(ctx, snaps)
	if err != nil {
		_ = snaps.Close()
		return nil, err
	}
	if migrated {
		fmt.Println(cli.InfoStyle.Render("Upgraded legacy budget data to the current format."))
	}

	return &app{store: budget.New(state), snaps: snaps}, nil
}

// persist writes the current state out. Persistence is fire-and-forget for
// the engine: a failure is logged, not propagated, so the in-memory result
// of the operation still stands.
func (a *app) persist(ctx context.Context) {
	if err := storage.SaveState(ctx, a.snaps, a.store.State()); err != nil {
		slog.Error("Failed to persist budget state", "error", err)
	}
}

func (a *app) close() {
	if err := a.snaps.Close(); err != nil {
		slog.Error("Failed to close snapshot store", "error", err)
	}
}

// renderOpError prints engine failures the way the UI contract expects:
// validation messages verbatim per field, a reassignment hint for in-use
// categories, and the plain message otherwise.
func renderOpError(err error) error {
	var verrs budget.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs {
			fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("✗ %s: %s", ve.Field, ve.Message)))
		}
		return fmt.Errorf("validation failed")
	}

	var inUse *budget.CategoryInUseError
	if errors.As(err, &inUse) {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf(
			"Category still has %d expense(s). Reassign them first with --reassign-to.",
			inUse.ExpenseCount)))
		return err
	}

	return err
}
