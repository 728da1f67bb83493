// Package legacy upgrades the old free-text-category data shape into the
// categorized model. Old snapshots carried a categoryAllocations name->amount
// map and expenses whose category field was a plain string; this package
// detects that shape and converts it exactly once at load time.
//
// The detection here is a one-time compatibility shim. Snapshots written by
// the current code carry an explicit schemaVersion tag instead, and that tag
// is what future upgrades should key on.
package legacy

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/satchel-app/satchel/internal/model"
)

// MigrationNotice is the description stamped on every synthesized category.
const MigrationNotice = "Migrated from your earlier budget data"

// UnknownCategoryID is the sentinel reference given to a legacy expense
// whose category name appears in neither the allocations map nor the
// expense list. Well-formed legacy data never produces it; malformed data
// is salvaged rather than rejected.
const UnknownCategoryID = "unknown"

// Expense is the legacy expense shape with its free-text category.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
}

// Snapshot is the legacy stored shape.
type Snapshot struct {
	StartingBudget      float64            `json:"startingBudget"`
	CategoryAllocations map[string]float64 `json:"categoryAllocations"`
	Expenses            []Expense          `json:"expenses"`
}

// categoryStyle pairs the color and icon assigned to a known legacy
// category name.
type categoryStyle struct {
	Color string
	Icon  string
}

var defaultStyle = categoryStyle{Color: "#6B7280", Icon: "Wallet"}

// styleByName maps the category names the old app shipped with to their
// color and icon in the new model. Unrecognized names fall back to
// defaultStyle.
var styleByName = map[string]categoryStyle{
	"Food":           {Color: "#F59E0B", Icon: "Utensils"},
	"Transportation": {Color: "#10B981", Icon: "Car"},
	"Accommodation":  {Color: "#3B82F6", Icon: "Bed"},
	"Flights":        {Color: "#06B6D4", Icon: "Plane"},
	"Activities":     {Color: "#8B5CF6", Icon: "Ticket"},
	"Shopping":       {Color: "#EC4899", Icon: "ShoppingBag"},
	"Drinks":         {Color: "#F97316", Icon: "Coffee"},
	"Health":         {Color: "#EF4444", Icon: "Heart"},
	"Entertainment":  {Color: "#EAB308", Icon: "Music"},
	"Miscellaneous":  {Color: "#6B7280", Icon: "Wallet"},
}

// NeedsMigration reports whether raw is a legacy-shaped blob: it has a
// categoryAllocations map, or expenses whose category field is a plain
// string. Missing, empty, unparseable, and already-migrated data all
// return false.
func NeedsMigration(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}

	var probe struct {
		CategoryAllocations map[string]float64 `json:"categoryAllocations"`
		Expenses            []struct {
			Category json.RawMessage `json:"category"`
		} `json:"expenses"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}

	if probe.CategoryAllocations != nil {
		return true
	}
	for _, exp := range probe.Expenses {
		if len(exp.Category) > 0 && exp.Category[0] == '"' {
			return true
		}
	}
	return false
}

// Decode parses a raw legacy blob into its snapshot shape.
func Decode(raw []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Result is the converted portion of the state.
type Result struct {
	Categories []model.Category
	Expenses   []model.Expense
}

// Migrator converts legacy data into the categorized model. Ids are freshly
// generated on every run, so a migrator must be applied at most once per
// stored dataset; afterwards the migrated snapshot is persisted and
// NeedsMigration stays false.
type Migrator struct {
	now   func() time.Time
	newID func() string
}

// NewMigrator returns a migrator stamping categories with the current time.
func NewMigrator() *Migrator {
	return &Migrator{now: time.Now, newID: uuid.NewString}
}

// Migrate synthesizes one category per distinct legacy name appearing in
// either the allocations map or the expense list, then rewrites every
// legacy expense against the synthesized ids. It never fails: a malformed
// expense degrades to the unknown-category sentinel or a zero date instead
// of aborting, since partially salvaged data beats data loss.
func (m *Migrator) Migrate(expenses []Expense, allocations map[string]float64) Result {
	now := m.now()

	names := make([]string, 0, len(allocations))
	for name := range allocations {
		names = append(names, name)
	}
	sort.Strings(names)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for _, exp := range expenses {
		if exp.Category != "" && !seen[exp.Category] {
			seen[exp.Category] = true
			names = append(names, exp.Category)
		}
	}

	var res Result
	idByName := make(map[string]string, len(names))
	for _, name := range names {
		style, ok := styleByName[name]
		if !ok {
			style = defaultStyle
		}
		cat := model.Category{
			ID:          m.newID(),
			Name:        name,
			Description: MigrationNotice,
			Color:       style.Color,
			Icon:        style.Icon,
			Allocated:   allocations[name],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		idByName[name] = cat.ID
		res.Categories = append(res.Categories, cat)
	}

	for _, exp := range expenses {
		categoryID, ok := idByName[exp.Category]
		if !ok {
			categoryID = UnknownCategoryID
		}

		date, err := model.ParseDate(exp.Date)
		if err != nil {
			date = model.Date{}
		}

		id := exp.ID
		if id == "" {
			id = m.newID()
		}
		res.Expenses = append(res.Expenses, model.Expense{
			ID:          id,
			Description: exp.Description,
			Amount:      exp.Amount,
			CategoryID:  categoryID,
			Date:        date,
			CreatedAt:   now,
		})
	}

	return res
}

// MigrateSnapshot converts a whole decoded legacy snapshot into a
// current-version BudgetState.
func (m *Migrator) MigrateSnapshot(snap Snapshot) model.BudgetState {
	res := m.Migrate(snap.Expenses, snap.CategoryAllocations)
	state := model.NewBudgetState()
	state.StartingBudget = snap.StartingBudget
	state.Categories = res.Categories
	state.Expenses = res.Expenses
	return state
}
