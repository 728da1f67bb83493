package budget

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/satchel-app/satchel/internal/model"
)

// ClearScope selects how much of the state Clear resets.
type ClearScope int

const (
	// ClearExpenses removes expenses only, keeping categories and the
	// starting budget.
	ClearExpenses ClearScope = iota
	// ClearAll resets the state to empty defaults.
	ClearAll
)

// Store owns the BudgetState aggregate and is the only writer to it. Every
// operation either fully applies or rejects with one of the package's error
// kinds; no partial update is ever observable. Reads hand out clones, and
// aggregates are recomputed from the live sequences on every call.
//
// Store is not safe for concurrent use. Operations are expected to arrive
// from a single logical actor; a multi-actor deployment would need version
// stamps on top of this model first.
type Store struct {
	now   func() time.Time
	newID func() string
	state model.BudgetState
}

// New creates a store over an initial state, normally the snapshot loaded
// from storage or an empty default.
func New(initial model.BudgetState) *Store {
	initial.SchemaVersion = model.SchemaVersion
	return &Store{
		now:   time.Now,
		newID: uuid.NewString,
		state: initial,
	}
}

// State returns a deep copy of the current aggregate, suitable for
// persisting or rendering.
func (s *Store) State() model.BudgetState {
	return s.state.Clone()
}

// Categories returns a copy of the category sequence in insertion order.
func (s *Store) Categories() []model.Category {
	out := make([]model.Category, len(s.state.Categories))
	copy(out, s.state.Categories)
	return out
}

// Expenses returns a copy of the expense sequence in insertion order.
func (s *Store) Expenses() []model.Expense {
	out := make([]model.Expense, len(s.state.Expenses))
	copy(out, s.state.Expenses)
	return out
}

// Category looks up a category by id.
func (s *Store) Category(id string) (model.Category, error) {
	cat := findCategory(s.state.Categories, id)
	if cat == nil {
		return model.Category{}, &NotFoundError{Entity: "category", ID: id}
	}
	return *cat, nil
}

// StartingBudget returns the overall budget figure; 0 means unset.
func (s *Store) StartingBudget() float64 {
	return s.state.StartingBudget
}

// SetStartingBudget replaces the starting budget. Setting it away from 0 is
// the transition out of the initial "budget unset" state.
func (s *Store) SetStartingBudget(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	s.state.StartingBudget = amount
	return nil
}

// AddCategory validates the form and appends a new category with a fresh id
// and matching creation/update stamps.
func (s *Store) AddCategory(form model.CategoryForm) (model.Category, error) {
	if errs := ValidateCategory(form, s.state.Categories, ""); len(errs) > 0 {
		return model.Category{}, errs
	}

	now := s.now()
	cat := model.Category{
		ID:          s.newID(),
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		Color:       form.Color,
		Icon:        form.Icon,
		Allocated:   form.Allocated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.state.Categories = append(s.state.Categories, cat)
	return cat, nil
}

// UpdateCategory replaces the editable fields of an existing category. ID
// and CreatedAt are immutable; UpdatedAt is bumped. The category's own name
// is excluded from the uniqueness check so an edit that keeps the name is
// never a duplicate.
func (s *Store) UpdateCategory(id string, form model.CategoryForm) (model.Category, error) {
	cat := findCategory(s.state.Categories, id)
	if cat == nil {
		return model.Category{}, &NotFoundError{Entity: "category", ID: id}
	}
	if errs := ValidateCategory(form, s.state.Categories, id); len(errs) > 0 {
		return model.Category{}, errs
	}

	cat.Name = strings.TrimSpace(form.Name)
	cat.Description = strings.TrimSpace(form.Description)
	cat.Color = form.Color
	cat.Icon = form.Icon
	cat.Allocated = form.Allocated
	cat.UpdatedAt = s.now()
	return *cat, nil
}

// DeleteCategory removes a category that no expense references. It never
// cascades: if expenses still point at the category it rejects with
// CategoryInUseError and the caller must reassign them first.
func (s *Store) DeleteCategory(id string) error {
	if findCategory(s.state.Categories, id) == nil {
		return &NotFoundError{Entity: "category", ID: id}
	}
	if check := CheckDeletable(id, s.state.Expenses); !check.CanDelete {
		return &CategoryInUseError{ExpenseCount: check.ExpenseCount}
	}

	kept := s.state.Categories[:0]
	for _, cat := range s.state.Categories {
		if cat.ID != id {
			kept = append(kept, cat)
		}
	}
	s.state.Categories = kept
	return nil
}

// ReassignExpenses rewrites every expense referencing fromID to reference
// toID, returning how many were rewritten. It does not delete the source
// category; callers compose it with DeleteCategory for the
// reassign-then-delete workflow.
func (s *Store) ReassignExpenses(fromID, toID string) (int, error) {
	if findCategory(s.state.Categories, fromID) == nil {
		return 0, &NotFoundError{Entity: "category", ID: fromID}
	}
	if findCategory(s.state.Categories, toID) == nil {
		return 0, &NotFoundError{Entity: "category", ID: toID}
	}
	if fromID == toID {
		return 0, ErrNoOp
	}

	moved := 0
	for i := range s.state.Expenses {
		if s.state.Expenses[i].CategoryID == fromID {
			s.state.Expenses[i].CategoryID = toID
			moved++
		}
	}
	return moved, nil
}

// AddExpense validates the form and appends a new expense. The category
// reference must resolve at creation time.
func (s *Store) AddExpense(form model.ExpenseForm) (model.Expense, error) {
	if errs := validateExpense(form, s.state.Categories); len(errs) > 0 {
		return model.Expense{}, errs
	}

	exp := model.Expense{
		ID:          s.newID(),
		Description: strings.TrimSpace(form.Description),
		Amount:      form.Amount,
		CategoryID:  form.CategoryID,
		Date:        form.Date,
		CreatedAt:   s.now(),
	}
	s.state.Expenses = append(s.state.Expenses, exp)
	return exp, nil
}

// DeleteExpense removes a single expense. No cascading effects.
func (s *Store) DeleteExpense(id string) error {
	for i, exp := range s.state.Expenses {
		if exp.ID == id {
			s.state.Expenses = append(s.state.Expenses[:i], s.state.Expenses[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Entity: "expense", ID: id}
}

// Clear resets the state according to scope: expenses only, or everything
// including categories and the starting budget.
func (s *Store) Clear(scope ClearScope) {
	s.state.Expenses = nil
	if scope == ClearAll {
		s.state.Categories = nil
		s.state.StartingBudget = 0
	}
}

// TotalAllocated sums every category's allocation.
func (s *Store) TotalAllocated() float64 {
	total := 0.0
	for _, cat := range s.state.Categories {
		total += cat.Allocated
	}
	return total
}

// TotalSpent sums every expense amount.
func (s *Store) TotalSpent() float64 {
	total := 0.0
	for _, exp := range s.state.Expenses {
		total += exp.Amount
	}
	return total
}

// RemainingBudget is the starting budget minus total spend. It goes
// negative when the trip is over budget.
func (s *Store) RemainingBudget() float64 {
	return s.state.StartingBudget - s.TotalSpent()
}

// BudgetProgress is total spend as a percentage of the starting budget,
// defined as 0 while the budget is unset.
func (s *Store) BudgetProgress() float64 {
	if s.state.StartingBudget == 0 {
		return 0
	}
	return s.TotalSpent() / s.state.StartingBudget * 100
}

// CategorySpend sums the amounts of expenses assigned to categoryID.
func (s *Store) CategorySpend(categoryID string) float64 {
	total := 0.0
	for _, exp := range s.state.Expenses {
		if exp.CategoryID == categoryID {
			total += exp.Amount
		}
	}
	return total
}

// CategorySummary is the derived per-category view.
type CategorySummary struct {
	Category  model.Category
	Spent     float64
	Remaining float64
	// Progress is spend as a percentage of the allocation, 0 when nothing
	// is allocated. Over 100 means the category is over budget.
	Progress float64
}

// Summary is the full derived picture of the budget.
type Summary struct {
	StartingBudget float64
	TotalAllocated float64
	TotalSpent     float64
	Remaining      float64
	Progress       float64
	Categories     []CategorySummary
}

// Summarize computes the whole derived view in one pass, fresh from the
// current sequences.
func (s *Store) Summarize() Summary {
	sum := Summary{
		StartingBudget: s.state.StartingBudget,
		TotalAllocated: s.TotalAllocated(),
		TotalSpent:     s.TotalSpent(),
		Categories:     make([]CategorySummary, 0, len(s.state.Categories)),
	}
	sum.Remaining = sum.StartingBudget - sum.TotalSpent
	if sum.StartingBudget != 0 {
		sum.Progress = sum.TotalSpent / sum.StartingBudget * 100
	}

	for _, cat := range s.state.Categories {
		spent := s.CategorySpend(cat.ID)
		cs := CategorySummary{
			Category:  cat,
			Spent:     spent,
			Remaining: cat.Allocated - spent,
		}
		if cat.Allocated > 0 {
			cs.Progress = spent / cat.Allocated * 100
		}
		sum.Categories = append(sum.Categories, cs)
	}
	return sum
}
