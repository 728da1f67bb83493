package model

import "time"

// Expense represents a single dated spend assigned to exactly one category.
// CategoryID is a weak reference: the expense does not own the category, but
// the store guarantees the reference resolves after every operation.
type Expense struct {
	CreatedAt   time.Time `json:"createdAt"`
	Date        Date      `json:"date"`
	ID          string    `json:"id"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Amount      float64   `json:"amount"`
}

// ExpenseForm carries the user-entered fields of a new expense.
type ExpenseForm struct {
	Description string
	CategoryID  string
	Date        Date
	Amount      float64
}
