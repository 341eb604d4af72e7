package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	var s Settings
	s = s.Set("b", 1)
	s = s.Set("a", "x")
	s = s.Set("b", 2)

	assert.Equal(t, []string{"b", "a"}, s.Keys())
	v, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestSettingsCloneIsDeep(t *testing.T) {
	s := Settings{
		{Key: "list", Value: []any{"a", map[string]any{"k": "v"}}},
		{Key: "obj", Value: map[string]any{"n": 1}},
	}
	c := s.Clone()

	c[0].Value.([]any)[1].(map[string]any)["k"] = "changed"
	c[1].Value.(map[string]any)["n"] = 2

	assert.Equal(t, "v", s[0].Value.([]any)[1].(map[string]any)["k"])
	assert.Equal(t, 1, s[1].Value.(map[string]any)["n"])
	assert.Nil(t, Settings(nil).Clone())
}
