package store

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/view"
)

// CategoriesState holds blog categories and their search term.
type CategoriesState struct {
	Items  []models.Category   `json:"items"`
	Filter view.CategoryFilter `json:"filter"`
}

// Reduce applies a to the category slice of state. Deleting a category
// leaves posts that name it untouched.
func (s CategoriesState) Reduce(a Action) CategoriesState {
	switch a := a.(type) {
	case Add:
		if c, ok := a.Record.(models.Category); ok {
			s.Items = prepend(s.Items, c)
		}
	case Update:
		if c, ok := a.Record.(models.Category); ok {
			s.Items = replace(s.Items, c)
		}
	case Delete:
		if a.Kind == models.KindCategories {
			s.Items = remove(s.Items, a.ID)
		}
	case SetFilter:
		if a.Kind == models.KindCategories && a.Field == FieldSearch {
			s.Filter.Search = a.Value
		}
	}
	return s
}

// Get looks up a category by id.
func (s CategoriesState) Get(id string) (models.Category, bool) { return find(s.Items, id) }

// View returns the categories visible under the current search term.
func (s CategoriesState) View() []models.Category { return view.Categories(s.Items, s.Filter) }
