package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("FLOW_POSTGRES_URL", "")
	t.Setenv("FLOW_LOGGER_LEVEL", "error")
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestPaletteCommands(t *testing.T) {
	require.NoError(t, run(t, "palette", "list"))
	require.NoError(t, run(t, "palette", "list", "--category", "trigger"))
	require.NoError(t, run(t, "palette", "search", "slack"))
	require.NoError(t, run(t, "palette", "show", "approval"))

	assert.Error(t, run(t, "palette", "list", "--category", "bogus"))
	assert.ErrorIs(t, run(t, "palette", "show", "nope"), palette.ErrTemplateNotFound)
}

func TestSchemaRequiresPostgres(t *testing.T) {
	assert.ErrorIs(t, run(t, "schema", "create"), flow.ErrNoPersister)
}

func TestBadConfigFile(t *testing.T) {
	assert.Error(t, run(t, "--config", "/does/not/exist.toml", "palette", "list"))
}

func TestTemplateRows(t *testing.T) {
	rows := templateRows([]flow.Template{{
		ID:          "classify",
		DisplayName: "Classify",
		AICapable:   true,
		Description: "Assign one of several labels to an input using a language model",
	}})
	require.Len(t, rows, 1)
	assert.Equal(t, "yes", rows[0][2])
	assert.Len(t, rows[0][3], 45)

	rows = templateRows([]flow.Template{{ID: "digest", Description: strings.Repeat("é", 50)}})
	assert.True(t, utf8.ValidString(rows[0][3]))
	assert.Equal(t, strings.Repeat("é", 42)+"...", rows[0][3])
}
