package store

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/view"
)

// BlogState holds blog posts and their page filter.
type BlogState struct {
	Items  []models.BlogPost `json:"items"`
	Filter view.BlogFilter   `json:"filter"`
}

// Reduce applies a to the blog slice of state.
func (s BlogState) Reduce(a Action) BlogState {
	switch a := a.(type) {
	case Add:
		if b, ok := a.Record.(models.BlogPost); ok {
			s.Items = prepend(s.Items, b)
		}
	case Update:
		if b, ok := a.Record.(models.BlogPost); ok {
			s.Items = replace(s.Items, b)
		}
	case Delete:
		if a.Kind == models.KindBlog {
			s.Items = remove(s.Items, a.ID)
		}
	case SetFilter:
		if a.Kind != models.KindBlog {
			break
		}
		switch a.Field {
		case FieldSearch:
			s.Filter.Search = a.Value
		case FieldCategory:
			s.Filter.Category = a.Value
		}
	}
	return s
}

// Get looks up a post by id.
func (s BlogState) Get(id string) (models.BlogPost, bool) { return find(s.Items, id) }

// View returns the posts visible under the current filter.
func (s BlogState) View() []models.BlogPost { return view.Posts(s.Items, s.Filter) }

// Categories returns the distinct post categories for the filter dropdown.
func (s BlogState) Categories() []string {
	return view.Distinct(s.Items, func(b models.BlogPost) string { return b.Category })
}
