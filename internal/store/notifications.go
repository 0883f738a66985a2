package store

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/view"
)

// NotificationsState holds the admin inbox. The unread count is derived from
// item status on every read rather than kept as a parallel counter.
type NotificationsState struct {
	Items  []models.Notification   `json:"items"`
	Filter view.NotificationFilter `json:"filter"`
}

// Reduce applies a to the notification slice of state.
func (s NotificationsState) Reduce(a Action) NotificationsState {
	switch a := a.(type) {
	case Add:
		if n, ok := a.Record.(models.Notification); ok {
			s.Items = prepend(s.Items, n)
		}
	case Update:
		if n, ok := a.Record.(models.Notification); ok {
			s.Items = replace(s.Items, n)
		}
	case Delete:
		if a.Kind == models.KindNotifications {
			s.Items = remove(s.Items, a.ID)
		}
	case MarkAsRead:
		if n, ok := find(s.Items, a.ID); ok && n.Status == models.Unread {
			n.Status = models.Read
			s.Items = replace(s.Items, n)
		}
	case MarkAllAsRead:
		out := make([]models.Notification, len(s.Items))
		for i, n := range s.Items {
			n.Status = models.Read
			out[i] = n
		}
		s.Items = out
	case SetFilter:
		if a.Kind != models.KindNotifications {
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

// Get looks up a notification by id.
func (s NotificationsState) Get(id string) (models.Notification, bool) { return find(s.Items, id) }

// View returns the notifications visible under the current filter.
func (s NotificationsState) View() []models.Notification {
	return view.Notifications(s.Items, s.Filter)
}

// UnreadCount counts notifications whose status is unread.
func (s NotificationsState) UnreadCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Status == models.Unread {
			n++
		}
	}
	return n
}
