// Package store holds the admin entity collections and their filter state.
//
// State is an immutable value. Reduce produces a new State from an Action
// without touching the old one; Store wraps that in an injectable container
// that serialises dispatches.
package store

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/view"
)

// State is the combined state tree of every entity kind.
type State struct {
	Products      ProductsState      `json:"products"`
	Orders        OrdersState        `json:"orders"`
	Users         UsersState         `json:"users"`
	Blog          BlogState          `json:"blog"`
	Categories    CategoriesState    `json:"categories"`
	Notifications NotificationsState `json:"notifications"`
}

// Empty returns a State with no records and every categorical filter set to
// view.All.
func Empty() State {
	return State{
		Products:      ProductsState{Items: []models.Product{}, Filter: view.ProductFilter{Category: view.All}},
		Orders:        OrdersState{Items: []models.Order{}, Filter: view.OrderFilter{Status: view.All}},
		Users:         UsersState{Items: []models.User{}, Filter: view.UserFilter{Role: view.All}},
		Blog:          BlogState{Items: []models.BlogPost{}, Filter: view.BlogFilter{Category: view.All}},
		Categories:    CategoriesState{Items: []models.Category{}},
		Notifications: NotificationsState{Items: []models.Notification{}, Filter: view.NotificationFilter{Status: view.All}},
	}
}

// Reduce returns the state that results from applying a to s. Each kind
// ignores actions addressed to another kind.
func Reduce(s State, a Action) State {
	s.Products = s.Products.Reduce(a)
	s.Orders = s.Orders.Reduce(a)
	s.Users = s.Users.Reduce(a)
	s.Blog = s.Blog.Reduce(a)
	s.Categories = s.Categories.Reduce(a)
	s.Notifications = s.Notifications.Reduce(a)
	return s
}

// Len returns the number of records held for kind.
func (s State) Len(kind models.Kind) int {
	switch kind {
	case models.KindProducts:
		return len(s.Products.Items)
	case models.KindOrders:
		return len(s.Orders.Items)
	case models.KindUsers:
		return len(s.Users.Items)
	case models.KindBlog:
		return len(s.Blog.Items)
	case models.KindCategories:
		return len(s.Categories.Items)
	case models.KindNotifications:
		return len(s.Notifications.Items)
	}
	return 0
}
