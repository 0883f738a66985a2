package store

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/view"
)

// UsersState holds back-office accounts and their page filter.
type UsersState struct {
	Items  []models.User   `json:"items"`
	Filter view.UserFilter `json:"filter"`
}

// Reduce applies a to the user slice of state.
func (s UsersState) Reduce(a Action) UsersState {
	switch a := a.(type) {
	case Add:
		if u, ok := a.Record.(models.User); ok {
			s.Items = prepend(s.Items, u)
		}
	case Update:
		if u, ok := a.Record.(models.User); ok {
			s.Items = replace(s.Items, u)
		}
	case Delete:
		if a.Kind == models.KindUsers {
			s.Items = remove(s.Items, a.ID)
		}
	case SetFilter:
		if a.Kind != models.KindUsers {
			break
		}
		switch a.Field {
		case FieldSearch:
			s.Filter.Search = a.Value
		case FieldRole:
			s.Filter.Role = a.Value
		}
	}
	return s
}

// Get looks up a user by id.
func (s UsersState) Get(id string) (models.User, bool) { return find(s.Items, id) }

// View returns the users visible under the current filter.
func (s UsersState) View() []models.User { return view.Users(s.Items, s.Filter) }
