// Package seed provides the built-in records used when no snapshot can be
// rehydrated, and the static analytics series.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/metrics"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

//go:embed seed.yaml
var defaultYAML []byte

// Data is the decoded seed file.
type Data struct {
	Products      []models.Product      `yaml:"products"`
	Orders        []models.Order        `yaml:"orders"`
	Users         []models.User         `yaml:"users"`
	Blog          []models.BlogPost     `yaml:"blog"`
	Categories    []models.Category     `yaml:"categories"`
	Notifications []models.Notification `yaml:"notifications"`
	Analytics     metrics.Series        `yaml:"analytics"`
}

// Parse decodes a seed document.
func Parse(data []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	return &d, nil
}

// Default decodes the embedded seed file.
func Default() (*Data, error) {
	return Parse(defaultYAML)
}

// State returns an initial store state holding the seed records with
// default filters.
func (d *Data) State() store.State {
	s := store.Empty()
	if d.Products != nil {
		s.Products.Items = d.Products
	}
	if d.Orders != nil {
		s.Orders.Items = d.Orders
	}
	if d.Users != nil {
		s.Users.Items = d.Users
	}
	if d.Blog != nil {
		s.Blog.Items = d.Blog
	}
	if d.Categories != nil {
		s.Categories.Items = d.Categories
	}
	if d.Notifications != nil {
		s.Notifications.Items = d.Notifications
	}
	return s
}
