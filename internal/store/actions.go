package store

import "github.com/starford/ansuz/internal/models"

// Filter field names accepted by SetFilter. Which ones a kind honours depends
// on its filter state; the rest are ignored.
const (
	FieldSearch   = "search"
	FieldCategory = "category"
	FieldStatus   = "status"
	FieldRole     = "role"
)

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

// Add prepends Record to the collection of its concrete type. No validation
// and no duplicate-id check is performed.
type Add struct {
	Record models.Record
}

// Update replaces the record with the same id wholesale. It is a no-op when
// the id is absent.
type Update struct {
	Record models.Record
}

// Delete removes the record of Kind with ID. It is a no-op when absent.
type Delete struct {
	Kind models.Kind
	ID   string
}

// SetFilter overwrites one filter field of Kind. Value is not checked
// against the enumerated options.
type SetFilter struct {
	Kind  models.Kind
	Field string
	Value string
}

// MarkAsRead flips one unread notification to read.
type MarkAsRead struct {
	ID string
}

// MarkAllAsRead flips every notification to read.
type MarkAllAsRead struct{}

func (Add) isAction() {}
func (Update) isAction() {}
func (Delete) isAction() {}
func (SetFilter) isAction() {}
func (MarkAsRead) isAction() {}
func (MarkAllAsRead) isAction() {}

// FilterFields returns the filter fields that kind honours.
func FilterFields(kind models.Kind) []string {
	switch kind {
	case models.KindProducts, models.KindBlog:
		return []string{FieldSearch, FieldCategory}
	case models.KindOrders, models.KindNotifications:
		return []string{FieldSearch, FieldStatus}
	case models.KindUsers:
		return []string{FieldSearch, FieldRole}
	case models.KindCategories:
		return []string{FieldSearch}
	}
	return nil
}
