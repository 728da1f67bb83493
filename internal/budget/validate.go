package budget

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/satchel-app/satchel/internal/model"
)

// Category name constraints.
const (
	nameMinLen = 2
	nameMaxLen = 30
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ValidateCategory checks a candidate category form against the naming,
// color, icon, and allocation rules. All applicable violations are returned
// together rather than short-circuiting on the first one. excludeID names
// the category being edited, if any, so a category can keep its own name.
//
// Names are trimmed before the length and uniqueness checks, so "Food" and
// " food " collide.
func ValidateCategory(form model.CategoryForm, existing []model.Category, excludeID string) ValidationErrors {
	var errs ValidationErrors

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		errs = append(errs, ValidationError{FieldName, "name is required"})
	case len(name) < nameMinLen || len(name) > nameMaxLen:
		errs = append(errs, ValidationError{FieldName,
			fmt.Sprintf("name must be %d-%d characters", nameMinLen, nameMaxLen)})
	case !namePattern.MatchString(name):
		errs = append(errs, ValidationError{FieldName,
			"name may only contain letters, digits, spaces, hyphens, and underscores"})
	default:
		for _, cat := range existing {
			if cat.ID == excludeID {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(cat.Name), name) {
				errs = append(errs, ValidationError{FieldName,
					fmt.Sprintf("a category named %q already exists", cat.Name)})
				break
			}
		}
	}

	switch {
	case form.Color == "":
		errs = append(errs, ValidationError{FieldColor, "color is required"})
	case !model.ValidColor(form.Color):
		errs = append(errs, ValidationError{FieldColor,
			"color must be one of the preset #RRGGBB codes"})
	}

	switch {
	case form.Icon == "":
		errs = append(errs, ValidationError{FieldIcon, "icon is required"})
	case !model.ValidIcon(form.Icon):
		errs = append(errs, ValidationError{FieldIcon,
			fmt.Sprintf("unknown icon %q", form.Icon)})
	}

	if form.Allocated < 0 {
		errs = append(errs, ValidationError{FieldAllocated,
			"allocation cannot be negative"})
	}

	return errs
}

// validateExpense checks a new expense form. Category existence is checked
// against the live category list because an expense must never be created
// with a dangling reference.
func validateExpense(form model.ExpenseForm, categories []model.Category) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(form.Description) == "" {
		errs = append(errs, ValidationError{FieldDescription, "description is required"})
	}

	if form.Amount <= 0 {
		errs = append(errs, ValidationError{FieldAmount, "amount must be greater than zero"})
	}

	if form.CategoryID == "" {
		errs = append(errs, ValidationError{FieldCategory, "category is required"})
	} else if findCategory(categories, form.CategoryID) == nil {
		errs = append(errs, ValidationError{FieldCategory,
			fmt.Sprintf("category %q does not exist", form.CategoryID)})
	}

	return errs
}

func findCategory(categories []model.Category, id string) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
