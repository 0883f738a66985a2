// Package metrics computes the aggregates shown on the dashboard and
// analytics pages. Every function is a pure read over a State.
package metrics

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

// RecentOrderLimit is how many orders the dashboard lists.
const RecentOrderLimit = 5

// Dashboard is the summary behind the dashboard cards.
type Dashboard struct {
	TotalRevenue        float64                  `json:"totalRevenue"`
	TotalOrders         int                      `json:"totalOrders"`
	PendingOrders       int                      `json:"pendingOrders"`
	TotalProducts       int                      `json:"totalProducts"`
	ActiveProducts      int                      `json:"activeProducts"`
	TotalStock          int                      `json:"totalStock"`
	TotalUsers          int                      `json:"totalUsers"`
	ActiveUsers         int                      `json:"activeUsers"`
	TotalPosts          int                      `json:"totalPosts"`
	PublishedPosts      int                      `json:"publishedPosts"`
	UnreadNotifications int                      `json:"unreadNotifications"`
	ReadNotifications   int                      `json:"readNotifications"`
	RecentOrders        []models.Order           `json:"recentOrders"`
	PostsByCategory     map[string]int           `json:"postsByCategory"`
	StockBands          map[models.StockBand]int `json:"stockBands"`
}

// Summarize computes the dashboard aggregates over the full collections,
// ignoring filter state.
func Summarize(s store.State) Dashboard {
	orders := s.Orders.Items
	products := s.Products.Items
	users := s.Users.Items
	posts := s.Blog.Items
	unread := s.Notifications.UnreadCount()

	stock := 0
	for _, p := range products {
		stock += p.Stock
	}

	return Dashboard{
		TotalRevenue:        Sum(orders, func(o models.Order) float64 { return o.Amount }),
		TotalOrders:         len(orders),
		PendingOrders:       Count(orders, func(o models.Order) bool { return o.PaymentStatus == models.PaymentPending }),
		TotalProducts:       len(products),
		ActiveProducts:      Count(products, func(p models.Product) bool { return p.Status == models.StatusActive }),
		TotalStock:          stock,
		TotalUsers:          len(users),
		ActiveUsers:         Count(users, func(u models.User) bool { return u.Status == models.StatusActive }),
		TotalPosts:          len(posts),
		PublishedPosts:      Count(posts, func(b models.BlogPost) bool { return b.Status == models.PostPublished }),
		UnreadNotifications: unread,
		ReadNotifications:   len(s.Notifications.Items) - unread,
		RecentOrders:        head(orders, RecentOrderLimit),
		PostsByCategory:     PostsByCategory(posts),
		StockBands:          StockBands(products),
	}
}

// StockBands counts products per stock band. Every band is present.
func StockBands(products []models.Product) map[models.StockBand]int {
	out := map[models.StockBand]int{models.StockIn: 0, models.StockLow: 0, models.StockOut: 0}
	for _, p := range products {
		out[p.StockBand()]++
	}
	return out
}

// PostsByCategory tallies posts per category name. It is derived from the
// blog collection and is independent of the stored Category.PostCount.
func PostsByCategory(posts []models.BlogPost) map[string]int {
	out := make(map[string]int)
	for _, p := range posts {
		out[p.Category]++
	}
	return out
}

// Sum adds up f over items.
func Sum[T any](items []T, f func(T) float64) float64 {
	var total float64
	for _, it := range items {
		total += f(it)
	}
	return total
}

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// Percentage returns part/whole*100, or 0 when whole is 0.
func Percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func head[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
