// Package palette holds the catalog of node templates a user can drag onto
// the canvas.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meikuraledutech/flow"
)

// ErrTemplateNotFound is returned by Lookup for an unknown template id.
var ErrTemplateNotFound = errors.New("palette: template not found")

// Catalog holds all known templates.
type Catalog struct {
	templates []flow.Template
	byID      map[string]*flow.Template
}

// New creates a catalog from a list of templates.
func New(templates []flow.Template) *Catalog {
	c := &Catalog{
		templates: templates,
		byID:      make(map[string]*flow.Template, len(templates)),
	}
	for i := range c.templates {
		c.byID[c.templates[i].ID] = &c.templates[i]
	}
	return c
}

// All returns all templates in the catalog.
func (c *Catalog) All() []flow.Template {
	return c.templates
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// Get returns a template by id.
func (c *Catalog) Get(id string) (flow.Template, bool) {
	t, ok := c.byID[id]
	if !ok {
		return flow.Template{}, false
	}
	return *t, true
}

// Lookup is Get with an error for callers that propagate one.
func (c *Catalog) Lookup(id string) (flow.Template, error) {
	t, ok := c.Get(id)
	if !ok {
		return flow.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return t, nil
}

// Search finds templates whose display name or description contains query,
// ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) []flow.Template {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []flow.Template
	for _, t := range c.templates {
		if matches(t, q) {
			results = append(results, t)
		}
	}
	return results
}

// ByCategory returns templates filtered by category.
func (c *Catalog) ByCategory(category flow.Category) []flow.Template {
	var results []flow.Template
	for _, t := range c.templates {
		if t.Category == category {
			results = append(results, t)
		}
	}
	return results
}

// Filter combines Search and ByCategory. An empty category matches all.
func (c *Catalog) Filter(query string, category flow.Category) []flow.Template {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []flow.Template
	for _, t := range c.templates {
		if category != "" && t.Category != category {
			continue
		}
		if matches(t, q) {
			results = append(results, t)
		}
	}
	return results
}

// Categories returns the categories present in the catalog, in the order of
// flow.Categories.
func (c *Catalog) Categories() []flow.Category {
	present := make(map[flow.Category]bool)
	for _, t := range c.templates {
		present[t.Category] = true
	}
	var cats []flow.Category
	for _, cat := range flow.Categories {
		if present[cat] {
			cats = append(cats, cat)
		}
	}
	return cats
}

// Group is one category section of the palette.
type Group struct {
	Category  flow.Category   `json:"category"`
	Templates []flow.Template `json:"templates"`
}

// Grouped returns the templates sectioned by category for browsing.
func (c *Catalog) Grouped() []Group {
	var groups []Group
	for _, cat := range c.Categories() {
		groups = append(groups, Group{Category: cat, Templates: c.ByCategory(cat)})
	}
	return groups
}

func matches(t flow.Template, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.DisplayName), query) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), query)
}
