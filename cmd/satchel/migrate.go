package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/satchel-app/satchel/internal/cli"
	"github.com/satchel-app/satchel/internal/legacy"
	"github.com/satchel-app/satchel/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade legacy budget data",
		Long: `Upgrade stored data from the old free-text-category format to the
current categorized format. Normal commands run this automatically at
load time; this command exists to run it explicitly or to inspect what
is stored without touching it.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "show what is stored without migrating")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	statusOnly, _ := cmd.Flags().GetBool("status")

	snaps, err := openSnapshots(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = snaps.Close() }()

	raw, err := snaps.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	if statusOnly {
		return printMigrateStatus(cmd, snaps, raw)
	}

	if !legacy.NeedsMigration(raw) {
		fmt.Println(cli.InfoStyle.Render("Stored data is already in the current format."))
		return nil
	}

	snap, err := legacy.Decode(raw)
	if err != nil {
		return fmt.Errorf("failed to decode legacy data: %w", err)
	}

	// Scan pass: report what the migration is about to do.
	names := make(map[string]bool, len(snap.CategoryAllocations))
	for name := range snap.CategoryAllocations {
		names[name] = true
	}
	uncategorized := 0
	bar := progressbar.NewOptions(len(snap.Expenses),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Scanning legacy expenses...[reset]"),
	)
	for _, exp := range snap.Expenses {
		if exp.Category == "" {
			uncategorized++
		} else {
			names[exp.Category] = true
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	state := legacy.NewMigrator().MigrateSnapshot(snap)
	if err := storage.SaveState(ctx, snaps, state); err != nil {
		return fmt.Errorf("failed to persist migrated state: %w", err)
	}

	slog.Info("Migration complete",
		"categories", len(state.Categories),
		"expenses", len(state.Expenses))
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
		"✓ Migrated %d expense(s) into %d categor(ies)", len(state.Expenses), len(state.Categories))))
	if uncategorized > 0 {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf(
			"%d expense(s) had no category and were marked unknown.", uncategorized)))
	}
	return nil
}

func printMigrateStatus(cmd *cobra.Command, snaps *storage.SQLiteStore, raw []byte) error {
	dbVersion, err := snaps.Version(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Database schema version: %d\n", dbVersion)

	switch {
	case len(raw) == 0:
		fmt.Println(cli.InfoStyle.Render("No budget data stored yet."))
	case legacy.NeedsMigration(raw):
		fmt.Println(cli.WarningStyle.Render("Stored data is in the legacy format and will be migrated on next use."))
	default:
		var probe struct {
			SchemaVersion int `json:"schemaVersion"`
		}
		_ = json.Unmarshal(raw, &probe)
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
			"Stored data is current (snapshot schema version %d).", probe.SchemaVersion)))
	}
	return nil
}
