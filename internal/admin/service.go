// Package admin coordinates the entity store with change events. It is the
// entry point shared by the HTTP API and the MCP server.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/metrics"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/store"
)

// Publisher receives record change notifications.
type Publisher interface {
	PublishChange(kind models.Kind, op, id string)
}

type nopPublisher struct{}

func (nopPublisher) PublishChange(models.Kind, string, string) {}

// Page is one projected view of a collection.
type Page struct {
	Items  any `json:"items"`
	Total  int `json:"total"`
	Filter any `json:"filter"`
}

// Service dispatches actions to the store and reports what changed.
type Service struct {
	store  *store.Store
	events Publisher
	series metrics.Series
	now    func() time.Time
}

// NewService creates a service over st. events may be nil.
func NewService(st *store.Store, events Publisher, series metrics.Series) *Service {
	if events == nil {
		events = nopPublisher{}
	}
	return &Service{store: st, events: events, series: series, now: time.Now}
}

// State returns the current state tree.
func (s *Service) State() store.State { return s.store.State() }

// List projects kind through its stored filter. Non-empty overrides replace
// filter fields for this call only; the stored filter is untouched.
func (s *Service) List(_ context.Context, kind models.Kind, overrides map[string]string) (Page, error) {
	if _, ok := models.ParseKind(string(kind)); !ok {
		return Page{}, fmt.Errorf("admin: list %q: %w", kind, apperr.ErrUnknownKind)
	}
	st := s.store.State()
	for _, field := range store.FilterFields(kind) {
		if v, ok := overrides[field]; ok && v != "" {
			st = store.Reduce(st, store.SetFilter{Kind: kind, Field: field, Value: v})
		}
	}
	return project(st, kind), nil
}

func project(st store.State, kind models.Kind) Page {
	var p Page
	switch kind {
	case models.KindProducts:
		items := st.Products.View()
		p = Page{Items: items, Total: len(items), Filter: st.Products.Filter}
	case models.KindOrders:
		items := st.Orders.View()
		p = Page{Items: items, Total: len(items), Filter: st.Orders.Filter}
	case models.KindUsers:
		items := st.Users.View()
		p = Page{Items: items, Total: len(items), Filter: st.Users.Filter}
	case models.KindBlog:
		items := st.Blog.View()
		p = Page{Items: items, Total: len(items), Filter: st.Blog.Filter}
	case models.KindCategories:
		items := st.Categories.View()
		p = Page{Items: items, Total: len(items), Filter: st.Categories.Filter}
	case models.KindNotifications:
		items := st.Notifications.View()
		p = Page{Items: items, Total: len(items), Filter: st.Notifications.Filter}
	}
	return p
}

// Get returns one record of kind by id.
func (s *Service) Get(_ context.Context, kind models.Kind, id string) (models.Record, error) {
	st := s.store.State()
	var (
		rec models.Record
		ok  bool
	)
	switch kind {
	case models.KindProducts:
		rec, ok = st.Products.Get(id)
	case models.KindOrders:
		rec, ok = st.Orders.Get(id)
	case models.KindUsers:
		rec, ok = st.Users.Get(id)
	case models.KindBlog:
		rec, ok = st.Blog.Get(id)
	case models.KindCategories:
		rec, ok = st.Categories.Get(id)
	case models.KindNotifications:
		rec, ok = st.Notifications.Get(id)
	default:
		return nil, fmt.Errorf("admin: get %q: %w", kind, apperr.ErrUnknownKind)
	}
	if !ok {
		return nil, fmt.Errorf("admin: get %s/%s: %w", kind, id, apperr.ErrNotFound)
	}
	return rec, nil
}

// Create prepends rec to its collection. A missing id or creation time is
// filled in; nothing else is validated.
func (s *Service) Create(_ context.Context, rec models.Record) (models.Record, error) {
	kind, ok := models.KindOf(rec)
	if !ok {
		return nil, fmt.Errorf("admin: create %T: %w", rec, apperr.ErrUnknownKind)
	}
	rec = s.stamp(rec)
	s.store.Dispatch(store.Add{Record: rec})
	s.events.PublishChange(kind, sse.OpCreated, rec.RecordID())
	return rec, nil
}

// stamp assigns a uuid and the current time where rec lacks them.
func (s *Service) stamp(rec models.Record) models.Record {
	id := rec.RecordID()
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now().UTC()
	switch r := rec.(type) {
	case models.Product:
		r.ID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		return r
	case models.Order:
		r.ID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		return r
	case models.User:
		r.ID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		return r
	case models.BlogPost:
		r.ID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.Tags == nil {
			r.Tags = []string{}
		}
		return r
	case models.Category:
		r.ID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		return r
	case models.Notification:
		r.ID = id
		if r.Date.IsZero() {
			r.Date = now
		}
		return r
	}
	return rec
}

// Update replaces the record with rec's id and returns the record as
// stored. It reports whether a record was replaced; an absent id is not an
// error. Blog post tags are never stored as null.
func (s *Service) Update(_ context.Context, rec models.Record) (models.Record, bool, error) {
	kind, ok := models.KindOf(rec)
	if !ok {
		return nil, false, fmt.Errorf("admin: update %T: %w", rec, apperr.ErrUnknownKind)
	}
	if post, ok := rec.(models.BlogPost); ok && post.Tags == nil {
		post.Tags = []string{}
		rec = post
	}
	before, _ := s.store.Apply(store.Update{Record: rec})
	if !contains(before, kind, rec.RecordID()) {
		return rec, false, nil
	}
	s.events.PublishChange(kind, sse.OpUpdated, rec.RecordID())
	return rec, true, nil
}

// Delete removes the record of kind with id. It reports whether a record was
// removed; an absent id is not an error.
func (s *Service) Delete(_ context.Context, kind models.Kind, id string) (bool, error) {
	if _, ok := models.ParseKind(string(kind)); !ok {
		return false, fmt.Errorf("admin: delete %q: %w", kind, apperr.ErrUnknownKind)
	}
	before, _ := s.store.Apply(store.Delete{Kind: kind, ID: id})
	if !contains(before, kind, id) {
		return false, nil
	}
	s.events.PublishChange(kind, sse.OpDeleted, id)
	return true, nil
}

func contains(st store.State, kind models.Kind, id string) bool {
	var ok bool
	switch kind {
	case models.KindProducts:
		_, ok = st.Products.Get(id)
	case models.KindOrders:
		_, ok = st.Orders.Get(id)
	case models.KindUsers:
		_, ok = st.Users.Get(id)
	case models.KindBlog:
		_, ok = st.Blog.Get(id)
	case models.KindCategories:
		_, ok = st.Categories.Get(id)
	case models.KindNotifications:
		_, ok = st.Notifications.Get(id)
	}
	return ok
}

// SetFilter stores value in one filter field of kind and returns the
// resulting view. Fields the kind does not have are ignored.
func (s *Service) SetFilter(_ context.Context, kind models.Kind, field, value string) (Page, error) {
	if _, ok := models.ParseKind(string(kind)); !ok {
		return Page{}, fmt.Errorf("admin: filter %q: %w", kind, apperr.ErrUnknownKind)
	}
	next := s.store.Dispatch(store.SetFilter{Kind: kind, Field: field, Value: value})
	s.events.PublishChange(kind, sse.OpFilter, "")
	return project(next, kind), nil
}

// MarkAsRead flips one notification to read. Unknown ids are ignored.
func (s *Service) MarkAsRead(_ context.Context, id string) int {
	next := s.store.Dispatch(store.MarkAsRead{ID: id})
	s.events.PublishChange(models.KindNotifications, sse.OpRead, id)
	return next.Notifications.UnreadCount()
}

// MarkAllAsRead flips every notification to read and returns the new unread
// count, which is always zero.
func (s *Service) MarkAllAsRead(_ context.Context) int {
	next := s.store.Dispatch(store.MarkAllAsRead{})
	s.events.PublishChange(models.KindNotifications, sse.OpRead, "")
	return next.Notifications.UnreadCount()
}

// UnreadCount is the number of unread notifications.
func (s *Service) UnreadCount(_ context.Context) int {
	return s.store.State().Notifications.UnreadCount()
}

// Categories lists the distinct categories present in products or blog posts.
func (s *Service) Categories(_ context.Context, kind models.Kind) ([]string, error) {
	st := s.store.State()
	switch kind {
	case models.KindProducts:
		return st.Products.Categories(), nil
	case models.KindBlog:
		return st.Blog.Categories(), nil
	}
	return nil, fmt.Errorf("admin: categories of %q: %w", kind, apperr.ErrUnknownKind)
}

// Dashboard summarises the current collections.
func (s *Service) Dashboard(_ context.Context) metrics.Dashboard {
	return metrics.Summarize(s.store.State())
}

// Analytics combines live totals with the static series.
func (s *Service) Analytics(_ context.Context) metrics.Analytics {
	return metrics.BuildAnalytics(s.store.State(), s.series)
}

// Funnel returns the conversion funnel with per-step rates.
func (s *Service) Funnel(_ context.Context) []metrics.FunnelRow {
	return metrics.Funnel(s.series.Funnel)
}

// Reload replaces the whole state, as after an external snapshot rewrite.
func (s *Service) Reload(next store.State) {
	s.store.Replace(next)
	for _, k := range models.Kinds {
		s.events.PublishChange(k, sse.OpReload, "")
	}
}
