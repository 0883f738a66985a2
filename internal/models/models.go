// Package models defines the admin record types shared by the store, views and API.
package models

import (
	"encoding/json"
	"time"
)

// Kind names an entity collection. The value doubles as the URL segment and
// the event prefix.
type Kind string

const (
	KindProducts      Kind = "products"
	KindOrders        Kind = "orders"
	KindUsers         Kind = "users"
	KindBlog          Kind = "blog"
	KindCategories    Kind = "categories"
	KindNotifications Kind = "notifications"
)

// Kinds lists every entity kind in dashboard order.
var Kinds = []Kind{KindProducts, KindOrders, KindUsers, KindBlog, KindCategories, KindNotifications}

// ParseKind resolves s to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Singular names one record of k, as used in event types ("product.created").
func (k Kind) Singular() string {
	switch k {
	case KindProducts:
		return "product"
	case KindOrders:
		return "order"
	case KindUsers:
		return "user"
	case KindBlog:
		return "post"
	case KindCategories:
		return "category"
	case KindNotifications:
		return "notification"
	}
	return string(k)
}

// Record is implemented by every entity so collections can be keyed on identity.
type Record interface {
	RecordID() string
}

// ActiveStatus is shared by products and users.
type ActiveStatus string

const (
	StatusActive   ActiveStatus = "active"
	StatusInactive ActiveStatus = "inactive"
)

// PaymentStatus is the payment axis of an order.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// DeliveryStatus is the delivery axis of an order.
type DeliveryStatus string

const (
	DeliveryDelivered  DeliveryStatus = "delivered"
	DeliveryShipped    DeliveryStatus = "shipped"
	DeliveryProcessing DeliveryStatus = "processing"
	DeliveryCancelled  DeliveryStatus = "cancelled"
)

// Role is a user's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostPublished PostStatus = "published"
	PostDraft     PostStatus = "draft"
)

// NotificationType is the severity of a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// ReadStatus marks a notification read or unread.
type ReadStatus string

const (
	Read   ReadStatus = "read"
	Unread ReadStatus = "unread"
)

// StockBand is the display tier for a product's stock level.
type StockBand string

const (
	StockIn  StockBand = "in_stock"
	StockLow StockBand = "low_stock"
	StockOut StockBand = "out_of_stock"
)

// Product is a catalogue item.
type Product struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Image       string       `json:"image" yaml:"image"`
	Price       float64      `json:"price" yaml:"price"`
	Description string       `json:"description" yaml:"description"`
	Category    string       `json:"category" yaml:"category"`
	Stock       int          `json:"stock" yaml:"stock"`
	Status      ActiveStatus `json:"status" yaml:"status"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
}

// RecordID implements Record.
func (p Product) RecordID() string { return p.ID }

// StockBand classifies stock as in stock (>10), low (>0) or out.
func (p Product) StockBand() StockBand {
	switch {
	case p.Stock > 10:
		return StockIn
	case p.Stock > 0:
		return StockLow
	default:
		return StockOut
	}
}

// MarshalJSON adds the derived stockBand to the stored fields.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		StockBand StockBand `json:"stockBand"`
	}{plain(p), p.StockBand()})
}

// Order is a customer purchase. Payment and delivery are independent axes.
type Order struct {
	ID             string         `json:"id" yaml:"id"`
	ProductName    string         `json:"productName" yaml:"productName"`
	Customer       string         `json:"customer" yaml:"customer"`
	CustomerEmail  string         `json:"customerEmail" yaml:"customerEmail"`
	Amount         float64        `json:"amount" yaml:"amount"`
	PaymentStatus  PaymentStatus  `json:"paymentStatus" yaml:"paymentStatus"`
	DeliveryStatus DeliveryStatus `json:"deliveryStatus" yaml:"deliveryStatus"`
	CreatedAt      time.Time      `json:"createdAt" yaml:"createdAt"`
}

// RecordID implements Record.
func (o Order) RecordID() string { return o.ID }

// User is a back-office account.
type User struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Email     string       `json:"email" yaml:"email"`
	Role      Role         `json:"role" yaml:"role"`
	Avatar    string       `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Status    ActiveStatus `json:"status" yaml:"status"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt"`
}

// RecordID implements Record.
func (u User) RecordID() string { return u.ID }

// BlogPost is an article. Category is a free-form name, not a reference.
type BlogPost struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Slug      string     `json:"slug" yaml:"slug"`
	Image     string     `json:"image" yaml:"image"`
	Category  string     `json:"category" yaml:"category"`
	Content   string     `json:"content" yaml:"content"`
	Tags      []string   `json:"tags" yaml:"tags"`
	Status    PostStatus `json:"status" yaml:"status"`
	Author    string     `json:"author" yaml:"author"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
}

// RecordID implements Record.
func (b BlogPost) RecordID() string { return b.ID }

// Category groups blog posts. PostCount is stored as entered and is not
// recomputed from the blog collection.
type Category struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Slug        string    `json:"slug" yaml:"slug"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	PostCount   int       `json:"postCount" yaml:"postCount"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// RecordID implements Record.
func (c Category) RecordID() string { return c.ID }

// Notification is an inbox message for administrators.
type Notification struct {
	ID      string           `json:"id" yaml:"id"`
	Message string           `json:"message" yaml:"message"`
	Type    NotificationType `json:"type" yaml:"type"`
	Status  ReadStatus       `json:"status" yaml:"status"`
	Date    time.Time        `json:"date" yaml:"date"`
}

// RecordID implements Record.
func (n Notification) RecordID() string { return n.ID }

// KindOf reports the collection r belongs to.
func KindOf(r Record) (Kind, bool) {
	switch r.(type) {
	case Product:
		return KindProducts, true
	case Order:
		return KindOrders, true
	case User:
		return KindUsers, true
	case BlogPost:
		return KindBlog, true
	case Category:
		return KindCategories, true
	case Notification:
		return KindNotifications, true
	}
	return "", false
}
