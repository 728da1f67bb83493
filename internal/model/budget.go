package model

// SchemaVersion is the version tag attached to every persisted snapshot.
// Legacy data predates versioning and carries no tag at all; the legacy
// package detects that shape by structure rather than by version.
const SchemaVersion = 2

// BudgetState is the single aggregate the engine operates on: the starting
// budget plus the ordered category and expense sequences. A zero
// StartingBudget means the budget has not been set yet.
type BudgetState struct {
	SchemaVersion  int        `json:"schemaVersion"`
	StartingBudget float64    `json:"startingBudget"`
	Categories     []Category `json:"categories"`
	Expenses       []Expense  `json:"expenses"`
}

// NewBudgetState returns an empty state at the current schema version.
func NewBudgetState() BudgetState {
	return BudgetState{SchemaVersion: SchemaVersion}
}

// Clone returns a deep copy. Callers outside the store only ever see clones,
// so nothing they do can desync the live aggregate.
func (s BudgetState) Clone() BudgetState {
	out := s
	out.Categories = make([]Category, len(s.Categories))
	copy(out.Categories, s.Categories)
	out.Expenses = make([]Expense, len(s.Expenses))
	copy(out.Expenses, s.Expenses)
	return out
}
