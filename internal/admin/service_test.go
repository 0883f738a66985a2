package admin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/metrics"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
	"github.com/starford/ansuz/internal/view"
)

type recordedEvent struct {
	kind models.Kind
	op   string
	id   string
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) PublishChange(kind models.Kind, op, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{kind, op, id})
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.kind.Singular() + "." + e.op
	}
	return out
}

func fixture() store.State {
	s := store.Empty()
	s.Products.Items = []models.Product{
		{ID: "p1", Title: "Wireless Headphones", Description: "Noise cancelling", Category: "Electronics", Stock: 45},
		{ID: "p2", Title: "Leather Backpack", Description: "Stylish", Category: "Fashion", Stock: 8},
	}
	s.Notifications.Items = []models.Notification{
		{ID: "n1", Message: "New order", Status: models.Unread},
		{ID: "n2", Message: "Low stock", Status: models.Unread},
		{ID: "n3", Message: "Backup done", Status: models.Read},
	}
	s.Blog.Items = []models.BlogPost{
		{ID: "b1", Title: "Go tips", Category: "Tech", Tags: []string{"go"}},
		{ID: "b2", Title: "Spring", Category: "Fashion"},
	}
	return s
}

func newTestService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	rec := &recorder{}
	series := metrics.Series{Funnel: []metrics.FunnelStep{{Name: "Visit", Visitors: 200, Conversions: 20}}}
	svc := NewService(store.New(fixture()), rec, series)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, rec
}

func TestService_ListWithStoredFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetFilter(ctx, models.KindProducts, store.FieldSearch, "back")
	require.NoError(t, err)

	page, err := svc.List(ctx, models.KindProducts, nil)
	require.NoError(t, err)
	items := page.Items.([]models.Product)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, view.ProductFilter{Search: "back", Category: view.All}, page.Filter)
}

func TestService_ListOverridesDoNotPersist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	page, err := svc.List(ctx, models.KindProducts, map[string]string{store.FieldCategory: "Electronics", "bogus": "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	assert.Equal(t, view.All, svc.State().Products.Filter.Category)
	page, err = svc.List(ctx, models.KindProducts, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestService_ListUnknownKind(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.List(context.Background(), models.Kind("widgets"), nil)
	assert.ErrorIs(t, err, apperr.ErrUnknownKind)
}

func TestService_CreateAssignsIDAndTime(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	got, err := svc.Create(ctx, models.Order{ProductName: "Watch", Amount: 199})
	require.NoError(t, err)
	o := got.(models.Order)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, svc.now().UTC(), o.CreatedAt)

	first := svc.State().Orders.Items[0]
	assert.Equal(t, o.ID, first.ID)
	assert.Equal(t, []string{"order.created"}, rec.types())
}

func TestService_CreateKeepsCallerID(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Create(context.Background(), models.Notification{ID: "n9", Message: "hi", Status: models.Unread})
	require.NoError(t, err)
	assert.Equal(t, "n9", got.RecordID())
	assert.False(t, got.(models.Notification).Date.IsZero())
	assert.Equal(t, 3, svc.UnreadCount(context.Background()))
}

func TestService_CreateBlogPostNonNilTags(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Create(context.Background(), models.BlogPost{Title: "x"})
	require.NoError(t, err)
	assert.NotNil(t, got.(models.BlogPost).Tags)
}

func TestService_GetAndNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Get(ctx, models.KindProducts, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", r.(models.Product).Title)

	_, err = svc.Get(ctx, models.KindProducts, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Get(ctx, models.Kind("nope"), "p1")
	assert.ErrorIs(t, err, apperr.ErrUnknownKind)
}

func TestService_UpdateAndDeleteReportPresence(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	_, ok, err := svc.Update(ctx, models.Product{ID: "p1", Title: "Renamed"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Renamed", svc.State().Products.Items[0].Title)

	_, ok, err = svc.Update(ctx, models.Product{ID: "ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, svc.State().Products.Items, 2)

	ok, err = svc.Delete(ctx, models.KindProducts, "p2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(ctx, models.KindProducts, "p2")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"product.updated", "product.deleted"}, rec.types())
}

func TestService_UpdateBlogPostNonNilTags(t *testing.T) {
	svc, _ := newTestService(t)
	got, ok, err := svc.Update(context.Background(), models.BlogPost{ID: "b1", Title: "Go tips, revised"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, got.(models.BlogPost).Tags)

	stored := svc.State().Blog.Items[0]
	assert.Equal(t, "Go tips, revised", stored.Title)
	assert.NotNil(t, stored.Tags)
}

func TestService_PresenceUnderConcurrentDeletes(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	removed := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.Delete(ctx, models.KindProducts, "p1")
			assert.NoError(t, err)
			removed <- ok
		}()
	}
	wg.Wait()
	close(removed)

	n := 0
	for ok := range removed {
		if ok {
			n++
		}
	}
	assert.Equal(t, 1, n, "exactly one delete removes the record")
	assert.Equal(t, []string{"product.deleted"}, rec.types())
}

func TestService_MarkAsRead(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, 1, svc.MarkAsRead(ctx, "n1"))
	assert.Equal(t, 1, svc.MarkAsRead(ctx, "n1"))
	assert.Equal(t, 1, svc.MarkAsRead(ctx, "unknown"))
	assert.Equal(t, 0, svc.MarkAllAsRead(ctx))

	for _, n := range svc.State().Notifications.Items {
		assert.Equal(t, models.Read, n.Status)
	}
	assert.Contains(t, rec.types(), "notification.read")
}

func TestService_Categories(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cats, err := svc.Categories(ctx, models.KindProducts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Fashion"}, cats)

	cats, err = svc.Categories(ctx, models.KindBlog)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tech", "Fashion"}, cats)

	_, err = svc.Categories(ctx, models.KindOrders)
	assert.ErrorIs(t, err, apperr.ErrUnknownKind)
}

func TestService_MetricsAndFunnel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	d := svc.Dashboard(ctx)
	assert.Equal(t, 2, d.TotalProducts)
	assert.Equal(t, 53, d.TotalStock)
	assert.Equal(t, 2, d.UnreadNotifications)

	rows := svc.Funnel(ctx)
	require.Len(t, rows, 1)
	assert.InDelta(t, 10.0, rows[0].Rate, 1e-9)

	a := svc.Analytics(ctx)
	assert.Equal(t, 2, a.Totals.Products)
}

func TestService_ReloadReplacesState(t *testing.T) {
	svc, rec := newTestService(t)
	svc.Reload(store.Empty())

	assert.Zero(t, svc.State().Len(models.KindProducts))
	assert.Len(t, rec.types(), len(models.Kinds))
}

func TestService_NilPublisher(t *testing.T) {
	svc := NewService(store.New(store.Empty()), nil, metrics.Series{})
	_, err := svc.Create(context.Background(), models.User{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.State().Len(models.KindUsers))
}
