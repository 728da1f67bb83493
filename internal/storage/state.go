package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/satchel-app/satchel/internal/legacy"
	"github.com/satchel-app/satchel/internal/model"
	"github.com/satchel-app/satchel/internal/service"
)

// LoadState reads the stored blob and adopts it as live state. A missing
// blob loads as empty defaults. A legacy-shaped blob is migrated and the
// migrated form is saved back immediately, so detection fires at most once
// per dataset. The returned bool reports whether a migration ran.
func LoadState(ctx context.Context, snaps service.Snapshots) (model.BudgetState, bool, error) {
	raw, err := snaps.LoadSnapshot(ctx)
	if err != nil {
		return model.BudgetState{}, false, err
	}
	if len(raw) == 0 {
		return model.NewBudgetState(), false, nil
	}

	if legacy.NeedsMigration(raw) {
		snap, decodeErr := legacy.Decode(raw)
		if decodeErr != nil {
			return model.BudgetState{}, false, fmt.Errorf("failed to decode legacy data: %w", decodeErr)
		}
		state := legacy.NewMigrator().MigrateSnapshot(snap)
		slog.Info("Migrated legacy budget data",
			"categories", len(state.Categories),
			"expenses", len(state.Expenses))

		if saveErr := SaveState(ctx, snaps, state); saveErr != nil {
			return model.BudgetState{}, false, fmt.Errorf("failed to persist migrated state: %w", saveErr)
		}
		return state, true, nil
	}

	var state model.BudgetState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.BudgetState{}, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if state.SchemaVersion > model.SchemaVersion {
		return model.BudgetState{}, false, fmt.Errorf(
			"snapshot schema version %d is newer than supported version %d",
			state.SchemaVersion, model.SchemaVersion)
	}
	state.SchemaVersion = model.SchemaVersion
	return state, false, nil
}

// SaveState marshals the state and writes it through the snapshot store.
func SaveState(ctx context.Context, snaps service.Snapshots, state model.BudgetState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return snaps.SaveSnapshot(ctx, data, state.SchemaVersion)
}
