package budget

import "github.com/satchel-app/satchel/internal/model"

// Deletable is the result of a pre-deletion check.
type Deletable struct {
	CanDelete    bool
	ExpenseCount int
}

// CheckDeletable reports whether a category can be removed outright.
// CanDelete is true iff no expense references categoryID; ExpenseCount is
// the exact number of referencing expenses, which drives the reassignment
// prompt in the presentation layer.
func CheckDeletable(categoryID string, expenses []model.Expense) Deletable {
	count := 0
	for _, exp := range expenses {
		if exp.CategoryID == categoryID {
			count++
		}
	}
	return Deletable{CanDelete: count == 0, ExpenseCount: count}
}
