package store

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/view"
)

// OrdersState holds customer orders and their page filter.
type OrdersState struct {
	Items  []models.Order   `json:"items"`
	Filter view.OrderFilter `json:"filter"`
}

// Reduce applies a to the order slice of state.
func (s OrdersState) Reduce(a Action) OrdersState {
	switch a := a.(type) {
	case Add:
		if o, ok := a.Record.(models.Order); ok {
			s.Items = prepend(s.Items, o)
		}
	case Update:
		if o, ok := a.Record.(models.Order); ok {
			s.Items = replace(s.Items, o)
		}
	case Delete:
		if a.Kind == models.KindOrders {
			s.Items = remove(s.Items, a.ID)
		}
	case SetFilter:
		if a.Kind != models.KindOrders {
			break
		}
		switch a.Field {
		case FieldSearch:
			s.Filter.Search = a.Value
		case FieldStatus:
			s.Filter.Status = a.Value
		}
	}
	return s
}

// Get looks up an order by id.
func (s OrdersState) Get(id string) (models.Order, bool) { return find(s.Items, id) }

// View returns the orders visible under the current filter.
func (s OrdersState) View() []models.Order { return view.Orders(s.Items, s.Filter) }
