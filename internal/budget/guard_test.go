package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/satchel-app/satchel/internal/model"
)

func TestCheckDeletable(t *testing.T) {
	expenses := []model.Expense{
		{ID: "e1", CategoryID: "cat-food"},
		{ID: "e2", CategoryID: "cat-food"},
		{ID: "e3", CategoryID: "cat-transport"},
	}

	t.Run("referenced category cannot be deleted", func(t *testing.T) {
		check := CheckDeletable("cat-food", expenses)
		assert.False(t, check.CanDelete)
		assert.Equal(t, 2, check.ExpenseCount)
	})

	t.Run("single reference", func(t *testing.T) {
		check := CheckDeletable("cat-transport", expenses)
		assert.False(t, check.CanDelete)
		assert.Equal(t, 1, check.ExpenseCount)
	})

	t.Run("unreferenced category can be deleted", func(t *testing.T) {
		check := CheckDeletable("cat-misc", expenses)
		assert.True(t, check.CanDelete)
		assert.Zero(t, check.ExpenseCount)
	})

	t.Run("no expenses at all", func(t *testing.T) {
		check := CheckDeletable("cat-food", nil)
		assert.True(t, check.CanDelete)
		assert.Zero(t, check.ExpenseCount)
	})
}
