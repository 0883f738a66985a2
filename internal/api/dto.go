package api

import (
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/ansuz/internal/admin"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

var errInvalidJSON = errors.New("invalid JSON body")

// ListResponse is a projected collection (aliased from the domain layer).
type ListResponse = admin.Page

// FilterRequest sets one filter field of a collection.
type FilterRequest struct {
	Field string `json:"field" example:"search" validate:"required"`
	Value string `json:"value" example:"back"`
}

// Validate checks that Field is one the collection filters on.
func (r FilterRequest) Validate(kind models.Kind) error {
	fields := store.FilterFields(kind)
	allowed := make([]any, len(fields))
	for i, f := range fields {
		allowed[i] = f
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Field, validation.Required, validation.In(allowed...)),
	)
}

// UnreadResponse reports the unread notification count after a read action.
type UnreadResponse struct {
	UnreadCount int `json:"unreadCount" example:"2" validate:"required"`
}

// CategoriesResponse lists the distinct categories of a collection.
type CategoriesResponse struct {
	Categories []string `json:"categories" validate:"required"`
}

// decodeRecord parses body into the record type of kind. A non-empty id
// overrides whatever id the body carries.
func decodeRecord(kind models.Kind, body []byte, id string) (models.Record, error) {
	switch kind {
	case models.KindProducts:
		var p models.Product
		if err := unmarshal(body, &p); err != nil {
			return nil, err
		}
		if id != "" {
			p.ID = id
		}
		return p, validation.ValidateStruct(&p,
			validation.Field(&p.Title, validation.Required),
			validation.Field(&p.Price, validation.Min(0.0)),
			validation.Field(&p.Stock, validation.Min(0)),
			validation.Field(&p.Status, validation.In(models.StatusActive, models.StatusInactive)),
		)
	case models.KindOrders:
		var o models.Order
		if err := unmarshal(body, &o); err != nil {
			return nil, err
		}
		if id != "" {
			o.ID = id
		}
		return o, validation.ValidateStruct(&o,
			validation.Field(&o.ProductName, validation.Required),
			validation.Field(&o.Customer, validation.Required),
			validation.Field(&o.CustomerEmail, is.EmailFormat),
			validation.Field(&o.Amount, validation.Min(0.0)),
			validation.Field(&o.PaymentStatus, validation.In(models.PaymentPaid, models.PaymentPending, models.PaymentFailed)),
			validation.Field(&o.DeliveryStatus, validation.In(
				models.DeliveryDelivered, models.DeliveryShipped, models.DeliveryProcessing, models.DeliveryCancelled)),
		)
	case models.KindUsers:
		var u models.User
		if err := unmarshal(body, &u); err != nil {
			return nil, err
		}
		if id != "" {
			u.ID = id
		}
		return u, validation.ValidateStruct(&u,
			validation.Field(&u.Name, validation.Required),
			validation.Field(&u.Email, validation.Required, is.EmailFormat),
			validation.Field(&u.Role, validation.In(models.RoleAdmin, models.RoleEditor, models.RoleUser)),
			validation.Field(&u.Status, validation.In(models.StatusActive, models.StatusInactive)),
		)
	case models.KindBlog:
		var b models.BlogPost
		if err := unmarshal(body, &b); err != nil {
			return nil, err
		}
		if id != "" {
			b.ID = id
		}
		return b, validation.ValidateStruct(&b,
			validation.Field(&b.Title, validation.Required),
			validation.Field(&b.Status, validation.In(models.PostPublished, models.PostDraft)),
		)
	case models.KindCategories:
		var c models.Category
		if err := unmarshal(body, &c); err != nil {
			return nil, err
		}
		if id != "" {
			c.ID = id
		}
		return c, validation.ValidateStruct(&c,
			validation.Field(&c.Name, validation.Required),
			validation.Field(&c.PostCount, validation.Min(0)),
		)
	case models.KindNotifications:
		var n models.Notification
		if err := unmarshal(body, &n); err != nil {
			return nil, err
		}
		if id != "" {
			n.ID = id
		}
		return n, validation.ValidateStruct(&n,
			validation.Field(&n.Message, validation.Required),
			validation.Field(&n.Type, validation.In(
				models.NotificationInfo, models.NotificationSuccess, models.NotificationWarning, models.NotificationError)),
			validation.Field(&n.Status, validation.In(models.Read, models.Unread)),
		)
	}
	return nil, fmt.Errorf("api: no decoder for %q", kind)
}

func unmarshal(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return errInvalidJSON
	}
	return nil
}
