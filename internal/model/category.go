// Package model defines the core entities of the travel budget.
package model

import "time"

// Category represents a named spending bucket with a budget allocation.
type Category struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Allocated   float64   `json:"allocated"`
}

// CategoryForm carries the editable fields of a category as entered by the
// user. ID and CreatedAt are never part of the form; they are assigned by
// the store and immutable afterwards.
type CategoryForm struct {
	Name        string
	Description string
	Color       string
	Icon        string
	Allocated   float64
}
