// Package budget implements the budget consistency and category-lifecycle
// engine: the stateful store over the BudgetState aggregate, the validation
// rules for categories and expenses, and the guard that protects category
// deletion from orphaning expenses.
package budget

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds surfaced by store operations. Every failure is local and
// recoverable: the operation is rejected and state is left untouched.
var (
	// ErrInvalidAmount rejects non-positive starting budgets.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrNoOp rejects reassignment of a category onto itself.
	ErrNoOp = errors.New("source and target are the same")
	// ErrNotFound is wrapped by NotFoundError for errors.Is matching.
	ErrNotFound = errors.New("not found")
	// ErrCategoryInUse is wrapped by CategoryInUseError.
	ErrCategoryInUse = errors.New("category has expenses assigned")
)

// Field identifies which part of a submitted form a validation error
// belongs to. The presentation layer dispatches on it to place messages
// next to the offending input.
type Field string

// Fields a ValidationError can be tagged with.
const (
	FieldName        Field = "name"
	FieldColor       Field = "color"
	FieldIcon        Field = "icon"
	FieldAllocated   Field = "allocated"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldCategory    Field = "category"
)

// ValidationError is a single field-tagged rule violation.
type ValidationError struct {
	Field   Field
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violation found in one form submission.
// Checks do not short-circuit, so the caller can surface all messages at
// once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether any violation is tagged with field.
func (e ValidationErrors) Has(field Field) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// NotFoundError reports that an operation referenced an entity id that is
// not present in the state.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// CategoryInUseError reports a rejected deletion: ExpenseCount expenses
// still reference the category, and the caller must reassign them first.
type CategoryInUseError struct {
	ExpenseCount int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("%v: %d expense(s) reference it", ErrCategoryInUse, e.ExpenseCount)
}

func (e *CategoryInUseError) Unwrap() error {
	return ErrCategoryInUse
}
