package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/ansuz/internal/models"
)

var sampleProducts = []models.Product{
	{ID: "1", Title: "Wireless Headphones", Description: "noise cancellation", Category: "Electronics"},
	{ID: "2", Title: "Leather Backpack", Description: "for professionals", Category: "Fashion"},
}

func ids[T models.Record](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.RecordID()
	}
	return out
}

func TestProductsSearchAndCategory(t *testing.T) {
	assert.Equal(t, []string{"2"}, ids(Products(sampleProducts, ProductFilter{Search: "back", Category: All})))
	assert.Equal(t, []string{"1"}, ids(Products(sampleProducts, ProductFilter{Search: "", Category: "Electronics"})))
	assert.Equal(t, []string{"1"}, ids(Products(sampleProducts, ProductFilter{Search: "NOISE", Category: All})))
	assert.Empty(t, Products(sampleProducts, ProductFilter{Search: "back", Category: "Electronics"}))
}

func TestAllSentinelKeepsEverything(t *testing.T) {
	assert.Equal(t, sampleProducts, Products(sampleProducts, ProductFilter{Category: All}))

	users := []models.User{{ID: "1", Role: models.RoleAdmin}, {ID: "2", Role: models.RoleUser}}
	assert.Equal(t, users, Users(users, UserFilter{Role: All}))
}

func TestAllIsNotALiteralCategory(t *testing.T) {
	items := []models.Product{{ID: "1", Category: "all"}, {ID: "2", Category: "Books"}}
	assert.Len(t, Products(items, ProductFilter{Category: All}), 2)
}

func TestFilteringIsIdempotent(t *testing.T) {
	for _, term := range []string{"", "e", "back", "zzz", "LEATHER"} {
		f := ProductFilter{Search: term, Category: All}
		once := Products(sampleProducts, f)
		assert.Equal(t, once, Products(once, f), "term %q", term)
	}
}

func TestOrdersStatusMatchesEitherAxis(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Customer: "John Doe", PaymentStatus: models.PaymentPaid, DeliveryStatus: models.DeliveryDelivered},
		{ID: "2", Customer: "Jane", CustomerEmail: "jane@example.com", PaymentStatus: models.PaymentPending, DeliveryStatus: models.DeliveryProcessing},
	}

	assert.Equal(t, []string{"2"}, ids(Orders(orders, OrderFilter{Status: "pending"})))
	assert.Equal(t, []string{"1"}, ids(Orders(orders, OrderFilter{Status: "delivered"})))
	assert.Equal(t, []string{"2"}, ids(Orders(orders, OrderFilter{Search: "EXAMPLE.com", Status: All})))
}

func TestPostsSearchScansTags(t *testing.T) {
	posts := []models.BlogPost{
		{ID: "1", Title: "Getting Started", Tags: []string{"nextjs", "React"}, Category: "Technology"},
		{ID: "2", Title: "Design Principles", Tags: []string{"ui"}, Category: "Design"},
	}

	assert.Equal(t, []string{"1"}, ids(Posts(posts, BlogFilter{Search: "reac", Category: All})))
	assert.Empty(t, Posts(posts, BlogFilter{Search: "reac", Category: "Design"}))
	assert.Len(t, Posts(posts, BlogFilter{Category: All}), 2)
}

func TestCategoriesOptionalDescription(t *testing.T) {
	cats := []models.Category{
		{ID: "1", Name: "Technology", Slug: "technology", Description: "Latest trends"},
		{ID: "2", Name: "Business", Slug: "business"},
	}
	assert.Equal(t, []string{"1"}, ids(Categories(cats, CategoryFilter{Search: "trend"})))
	assert.Equal(t, []string{"2"}, ids(Categories(cats, CategoryFilter{Search: "busi"})))
	assert.Len(t, Categories(cats, CategoryFilter{}), 2)
}

func TestNotificationsStatus(t *testing.T) {
	ns := []models.Notification{
		{ID: "1", Message: "New order", Status: models.Unread},
		{ID: "2", Message: "Payment processed", Status: models.Read},
	}
	assert.Equal(t, []string{"1"}, ids(Notifications(ns, NotificationFilter{Status: "unread"})))
	assert.Equal(t, []string{"2"}, ids(Notifications(ns, NotificationFilter{Search: "payment", Status: All})))
}

func TestEmptyInputYieldsEmptyNonNil(t *testing.T) {
	got := Users(nil, UserFilter{Role: All})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDistinct(t *testing.T) {
	got := Distinct([]string{"b", "a", "", "b"}, func(s string) string { return s })
	assert.Equal(t, []string{"b", "a"}, got)
}
