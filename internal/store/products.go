package store

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/view"
)

// ProductsState holds the product catalogue and its page filter.
type ProductsState struct {
	Items  []models.Product   `json:"items"`
	Filter view.ProductFilter `json:"filter"`
}

// Reduce applies a to the product slice of state.
func (s ProductsState) Reduce(a Action) ProductsState {
	switch a := a.(type) {
	case Add:
		if p, ok := a.Record.(models.Product); ok {
			s.Items = prepend(s.Items, p)
		}
	case Update:
		if p, ok := a.Record.(models.Product); ok {
			s.Items = replace(s.Items, p)
		}
	case Delete:
		if a.Kind == models.KindProducts {
			s.Items = remove(s.Items, a.ID)
		}
	case SetFilter:
		if a.Kind != models.KindProducts {
			break
		}
		switch a.Field {
		case FieldSearch:
			s.Filter.Search = a.Value
		case FieldCategory:
			s.Filter.Category = a.Value
		}
	}
	return s
}

// Get looks up a product by id.
func (s ProductsState) Get(id string) (models.Product, bool) { return find(s.Items, id) }

// View returns the products visible under the current filter.
func (s ProductsState) View() []models.Product { return view.Products(s.Items, s.Filter) }

// Categories returns the distinct product categories for the filter dropdown.
func (s ProductsState) Categories() []string {
	return view.Distinct(s.Items, func(p models.Product) string { return p.Category })
}
