// Package view projects entity collections through their filter state.
//
// Every function here is pure: it never mutates its input and always returns
// a fresh, non-nil slice in the collection's original order.
package view

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// All is the categorical filter value that applies no constraint.
const All = "all"

// ProductFilter is the filter state of the products page.
type ProductFilter struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// OrderFilter is the filter state of the orders page. Status matches either
// the payment or the delivery axis.
type OrderFilter struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

// UserFilter is the filter state of the users page.
type UserFilter struct {
	Search string `json:"search"`
	Role   string `json:"role"`
}

// BlogFilter is the filter state of the blog page.
type BlogFilter struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// CategoryFilter is the filter state of the categories page.
type CategoryFilter struct {
	Search string `json:"search"`
}

// NotificationFilter is the filter state of the notifications page.
type NotificationFilter struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

// Products keeps products whose title or description contains the search
// term and whose category matches.
func Products(items []models.Product, f ProductFilter) []models.Product {
	term := strings.ToLower(f.Search)
	return keep(items, func(p models.Product) bool {
		return anyContains(term, p.Title, p.Description) && choice(p.Category, f.Category)
	})
}

// Orders keeps orders matching the search on product, customer or email and
// whose payment or delivery status equals the status filter.
func Orders(items []models.Order, f OrderFilter) []models.Order {
	term := strings.ToLower(f.Search)
	return keep(items, func(o models.Order) bool {
		if !anyContains(term, o.ProductName, o.Customer, o.CustomerEmail) {
			return false
		}
		return choice(string(o.PaymentStatus), f.Status) || choice(string(o.DeliveryStatus), f.Status)
	})
}

// Users keeps users matching the search on name or email and the role filter.
func Users(items []models.User, f UserFilter) []models.User {
	term := strings.ToLower(f.Search)
	return keep(items, func(u models.User) bool {
		return anyContains(term, u.Name, u.Email) && choice(string(u.Role), f.Role)
	})
}

// Posts keeps blog posts whose title, content or any single tag contains the
// search term and whose category matches.
func Posts(items []models.BlogPost, f BlogFilter) []models.BlogPost {
	term := strings.ToLower(f.Search)
	return keep(items, func(b models.BlogPost) bool {
		hit := anyContains(term, b.Title, b.Content)
		if !hit {
			for _, tag := range b.Tags {
				if anyContains(term, tag) {
					hit = true
					break
				}
			}
		}
		return hit && choice(b.Category, f.Category)
	})
}

// Categories keeps categories whose name, slug or description contains the
// search term. An empty description never matches a non-empty term.
func Categories(items []models.Category, f CategoryFilter) []models.Category {
	term := strings.ToLower(f.Search)
	return keep(items, func(c models.Category) bool {
		return anyContains(term, c.Name, c.Slug) || (c.Description != "" && anyContains(term, c.Description))
	})
}

// Notifications keeps notifications whose message contains the search term
// and whose read status matches.
func Notifications(items []models.Notification, f NotificationFilter) []models.Notification {
	term := strings.ToLower(f.Search)
	return keep(items, func(n models.Notification) bool {
		return anyContains(term, n.Message) && choice(string(n.Status), f.Status)
	})
}

// Distinct returns the unique non-empty keys of items in first-seen order.
func Distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, it := range items {
		k := key(it)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// anyContains reports whether any field contains the already-lowered term.
func anyContains(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func choice(value, filter string) bool {
	return filter == All || value == filter
}
