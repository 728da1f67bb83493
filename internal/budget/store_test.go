package budget

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satchel-app/satchel/internal/model"
)

// newTestStore returns a store with a deterministic clock and id sequence.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := New(model.NewBudgetState())
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	seq := 0
	store.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return store
}

func validCategoryForm(name string) model.CategoryForm {
	return model.CategoryForm{
		Name:      name,
		Color:     "#10B981",
		Icon:      "Car",
		Allocated: 100,
	}
}

func mustAddCategory(t *testing.T, store *Store, name string) model.Category {
	t.Helper()
	cat, err := store.AddCategory(validCategoryForm(name))
	require.NoError(t, err)
	return cat
}

func mustAddExpense(t *testing.T, store *Store, categoryID string, amount float64) model.Expense {
	t.Helper()
	exp, err := store.AddExpense(model.ExpenseForm{
		Description: "test expense",
		Amount:      amount,
		CategoryID:  categoryID,
		Date:        model.NewDate(2024, time.June, 1),
	})
	require.NoError(t, err)
	return exp
}

func TestSetStartingBudget(t *testing.T) {
	t.Run("rejects zero", func(t *testing.T) {
		store := newTestStore(t)
		err := store.SetStartingBudget(0)
		require.ErrorIs(t, err, ErrInvalidAmount)
		assert.Zero(t, store.StartingBudget())
	})

	t.Run("rejects negative", func(t *testing.T) {
		store := newTestStore(t)
		require.ErrorIs(t, store.SetStartingBudget(-50), ErrInvalidAmount)
	})

	t.Run("replaces the budget", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.SetStartingBudget(1000))
		assert.Equal(t, 1000.0, store.StartingBudget())

		require.NoError(t, store.SetStartingBudget(1500))
		assert.Equal(t, 1500.0, store.StartingBudget())
	})
}

func TestAddCategory(t *testing.T) {
	t.Run("appends with generated id and matching stamps", func(t *testing.T) {
		store := newTestStore(t)
		cat, err := store.AddCategory(validCategoryForm("Food"))
		require.NoError(t, err)

		assert.Equal(t, "id-1", cat.ID)
		assert.Equal(t, "Food", cat.Name)
		assert.Equal(t, cat.CreatedAt, cat.UpdatedAt)
		assert.Len(t, store.Categories(), 1)
	})

	t.Run("trims the stored name", func(t *testing.T) {
		store := newTestStore(t)
		cat, err := store.AddCategory(validCategoryForm("  Food  "))
		require.NoError(t, err)
		assert.Equal(t, "Food", cat.Name)
	})

	t.Run("rejects case-insensitive duplicate name", func(t *testing.T) {
		store := newTestStore(t)
		mustAddCategory(t, store, "Food")

		_, err := store.AddCategory(validCategoryForm("food"))
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has(FieldName))
		assert.Len(t, store.Categories(), 1)
	})

	t.Run("returns all violations together", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.AddCategory(model.CategoryForm{
			Name:      "!",
			Color:     "green",
			Icon:      "NoSuchIcon",
			Allocated: -1,
		})

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has(FieldName))
		assert.True(t, verrs.Has(FieldColor))
		assert.True(t, verrs.Has(FieldIcon))
		assert.True(t, verrs.Has(FieldAllocated))
		assert.Empty(t, store.Categories())
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("keeps id and createdAt, bumps updatedAt", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		updated, err := store.UpdateCategory(cat.ID, model.CategoryForm{
			Name:      "Groceries",
			Color:     "#3B82F6",
			Icon:      "Utensils",
			Allocated: 250,
		})
		require.NoError(t, err)

		assert.Equal(t, cat.ID, updated.ID)
		assert.Equal(t, cat.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(cat.UpdatedAt))
		assert.Equal(t, "Groceries", updated.Name)
		assert.Equal(t, "#3B82F6", updated.Color)
		assert.Equal(t, 250.0, updated.Allocated)
	})

	t.Run("editing to its own name is not a duplicate", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		form := validCategoryForm("Food")
		form.Allocated = 400
		updated, err := store.UpdateCategory(cat.ID, form)
		require.NoError(t, err)
		assert.Equal(t, 400.0, updated.Allocated)
	})

	t.Run("duplicate against another category still fails", func(t *testing.T) {
		store := newTestStore(t)
		mustAddCategory(t, store, "Food")
		cat := mustAddCategory(t, store, "Transport")

		_, err := store.UpdateCategory(cat.ID, validCategoryForm("FOOD"))
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has(FieldName))
	})

	t.Run("unknown id", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.UpdateCategory("missing", validCategoryForm("Food"))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejected update leaves the category untouched", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		_, err := store.UpdateCategory(cat.ID, model.CategoryForm{Name: "x"})
		require.Error(t, err)

		current, err := store.Category(cat.ID)
		require.NoError(t, err)
		assert.Equal(t, cat, current)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("removes an unreferenced category", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		require.NoError(t, store.DeleteCategory(cat.ID))
		assert.Empty(t, store.Categories())
	})

	t.Run("unknown id", func(t *testing.T) {
		store := newTestStore(t)
		err := store.DeleteCategory("missing")
		require.ErrorIs(t, err, ErrNotFound)

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "category", nf.Entity)
		assert.Equal(t, "missing", nf.ID)
	})

	t.Run("rejects while expenses reference it", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")
		mustAddExpense(t, store, cat.ID, 10)
		mustAddExpense(t, store, cat.ID, 20)

		err := store.DeleteCategory(cat.ID)
		require.ErrorIs(t, err, ErrCategoryInUse)

		var inUse *CategoryInUseError
		require.ErrorAs(t, err, &inUse)
		assert.Equal(t, 2, inUse.ExpenseCount)
		assert.Len(t, store.Categories(), 1)
	})

	t.Run("reassign then delete leaves no dangling references", func(t *testing.T) {
		store := newTestStore(t)
		food := mustAddCategory(t, store, "Food")
		misc := mustAddCategory(t, store, "Misc")
		mustAddExpense(t, store, food.ID, 10)
		mustAddExpense(t, store, misc.ID, 5)
		mustAddExpense(t, store, food.ID, 30)

		moved, err := store.ReassignExpenses(food.ID, misc.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, moved)

		require.NoError(t, store.DeleteCategory(food.ID))

		for _, exp := range store.Expenses() {
			assert.Equal(t, misc.ID, exp.CategoryID)
		}
	})
}

func TestReassignExpenses(t *testing.T) {
	t.Run("unknown source", func(t *testing.T) {
		store := newTestStore(t)
		misc := mustAddCategory(t, store, "Misc")
		_, err := store.ReassignExpenses("missing", misc.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown target", func(t *testing.T) {
		store := newTestStore(t)
		food := mustAddCategory(t, store, "Food")
		_, err := store.ReassignExpenses(food.ID, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("same source and target", func(t *testing.T) {
		store := newTestStore(t)
		food := mustAddCategory(t, store, "Food")
		_, err := store.ReassignExpenses(food.ID, food.ID)
		require.ErrorIs(t, err, ErrNoOp)
	})

	t.Run("does not delete the source category", func(t *testing.T) {
		store := newTestStore(t)
		food := mustAddCategory(t, store, "Food")
		misc := mustAddCategory(t, store, "Misc")
		mustAddExpense(t, store, food.ID, 10)

		moved, err := store.ReassignExpenses(food.ID, misc.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, moved)
		assert.Len(t, store.Categories(), 2)
	})
}

func TestAddExpense(t *testing.T) {
	t.Run("appends with generated id", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		exp, err := store.AddExpense(model.ExpenseForm{
			Description: "  Lunch  ",
			Amount:      12.5,
			CategoryID:  cat.ID,
			Date:        model.NewDate(2024, time.June, 2),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, exp.ID)
		assert.Equal(t, "Lunch", exp.Description)
		assert.False(t, exp.CreatedAt.IsZero())
	})

	t.Run("rejects blank description", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		_, err := store.AddExpense(model.ExpenseForm{
			Description: "   ",
			Amount:      10,
			CategoryID:  cat.ID,
		})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has(FieldDescription))
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		_, err := store.AddExpense(model.ExpenseForm{
			Description: "Lunch",
			Amount:      0,
			CategoryID:  cat.ID,
		})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has(FieldAmount))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.AddExpense(model.ExpenseForm{
			Description: "Lunch",
			Amount:      10,
			CategoryID:  "missing",
		})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has(FieldCategory))
		assert.Empty(t, store.Expenses())
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("removes the expense", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")
		exp := mustAddExpense(t, store, cat.ID, 10)
		keep := mustAddExpense(t, store, cat.ID, 20)

		require.NoError(t, store.DeleteExpense(exp.ID))

		expenses := store.Expenses()
		require.Len(t, expenses, 1)
		assert.Equal(t, keep.ID, expenses[0].ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		store := newTestStore(t)
		err := store.DeleteExpense("missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClear(t *testing.T) {
	seed := func(t *testing.T) *Store {
		t.Helper()
		store := newTestStore(t)
		require.NoError(t, store.SetStartingBudget(1000))
		cat := mustAddCategory(t, store, "Food")
		mustAddExpense(t, store, cat.ID, 50)
		return store
	}

	t.Run("expenses only", func(t *testing.T) {
		store := seed(t)
		store.Clear(ClearExpenses)

		assert.Empty(t, store.Expenses())
		assert.Len(t, store.Categories(), 1)
		assert.Equal(t, 1000.0, store.StartingBudget())
	})

	t.Run("full reset", func(t *testing.T) {
		store := seed(t)
		store.Clear(ClearAll)

		assert.Empty(t, store.Expenses())
		assert.Empty(t, store.Categories())
		assert.Zero(t, store.StartingBudget())
	})
}

func TestAggregates(t *testing.T) {
	t.Run("over-allocated category scenario", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.SetStartingBudget(1000))

		form := validCategoryForm("Food")
		form.Allocated = 300
		food, err := store.AddCategory(form)
		require.NoError(t, err)

		mustAddExpense(t, store, food.ID, 350)

		assert.Equal(t, 350.0, store.TotalSpent())
		assert.Equal(t, 650.0, store.RemainingBudget())
		assert.Equal(t, 300.0, store.TotalAllocated())
		assert.Equal(t, 350.0, store.CategorySpend(food.ID))

		sum := store.Summarize()
		require.Len(t, sum.Categories, 1)
		assert.Equal(t, -50.0, sum.Categories[0].Remaining)
		assert.Greater(t, sum.Categories[0].Progress, 100.0)
		assert.InDelta(t, 35.0, sum.Progress, 0.001)
	})

	t.Run("progress is zero while budget is unset", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")
		mustAddExpense(t, store, cat.ID, 50)

		progress := store.BudgetProgress()
		assert.Zero(t, progress)
		assert.False(t, progress != progress, "progress must not be NaN")
	})

	t.Run("recomputed fresh after every change", func(t *testing.T) {
		store := newTestStore(t)
		cat := mustAddCategory(t, store, "Food")

		exp := mustAddExpense(t, store, cat.ID, 50)
		assert.Equal(t, 50.0, store.TotalSpent())

		mustAddExpense(t, store, cat.ID, 25)
		assert.Equal(t, 75.0, store.TotalSpent())

		require.NoError(t, store.DeleteExpense(exp.ID))
		assert.Equal(t, 25.0, store.TotalSpent())
		assert.Equal(t, 25.0, store.CategorySpend(cat.ID))
		assert.Zero(t, store.CategorySpend("other"))
	})
}

func TestStateIsolation(t *testing.T) {
	store := newTestStore(t)
	cat := mustAddCategory(t, store, "Food")

	snapshot := store.State()
	snapshot.Categories[0].Name = "Tampered"
	snapshot.StartingBudget = 9999

	current, err := store.Category(cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", current.Name)
	assert.Zero(t, store.StartingBudget())
	assert.True(t, errors.Is(store.DeleteCategory("nope"), ErrNotFound))
}
