package palette

import (
	"testing"

	"github.com/meikuraledutech/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTemplates() []flow.Template {
	return []flow.Template{
		{ID: "webhook", DisplayName: "Webhook", Description: "Start on an HTTP request", Category: flow.CategoryTrigger},
		{ID: "summarize", DisplayName: "Summarize Text", Description: "Condense text with a model", Category: flow.CategoryAIAction, AICapable: true},
		{ID: "if", DisplayName: "If", Description: "Branch on a boolean expression", Category: flow.CategoryCondition},
		{ID: "http", DisplayName: "HTTP Request", Description: "Call an external API", Category: flow.CategoryAction},
	}
}

func TestNew(t *testing.T) {
	c := New(sampleTemplates())
	assert.Equal(t, 4, c.Len())

	tpl, ok := c.Get("if")
	require.True(t, ok)
	assert.Equal(t, "If", tpl.DisplayName)

	_, ok = c.Get("nope")
	assert.False(t, ok)

	_, err := c.Lookup("nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSearch(t *testing.T) {
	c := New(sampleTemplates())

	tests := []struct {
		query string
		want  []string
	}{
		{"http", []string{"webhook", "http"}},
		{"TEXT", []string{"summarize"}},
		{"boolean", []string{"if"}},
		{"", []string{"webhook", "summarize", "if", "http"}},
		{"nothing matches", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.Search(tt.query)))
		})
	}
}

func TestFilterAndCategories(t *testing.T) {
	c := New(sampleTemplates())

	assert.Equal(t, []string{"http"}, ids(c.Filter("http", flow.CategoryAction)))
	assert.Equal(t, []string{"summarize"}, ids(c.ByCategory(flow.CategoryAIAction)))
	assert.Equal(t, []flow.Category{
		flow.CategoryTrigger, flow.CategoryAction, flow.CategoryAIAction, flow.CategoryCondition,
	}, c.Categories())

	groups := c.Grouped()
	require.Len(t, groups, 4)
	assert.Equal(t, flow.CategoryTrigger, groups[0].Category)
	assert.Equal(t, []string{"webhook"}, ids(groups[0].Templates))
}

func TestDedup(t *testing.T) {
	in := []flow.Template{
		{ID: "a", DisplayName: "first"},
		{ID: "b", DisplayName: "B"},
		{ID: "a", DisplayName: "override"},
	}
	out := dedup(in)
	require.Len(t, out, 2)
	assert.Equal(t, "override", out[0].DisplayName)
	assert.Equal(t, "b", out[1].ID)
}

func ids(ts []flow.Template) []string {
	var out []string
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}
