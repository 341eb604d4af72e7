package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf,
		[]string{"ID", "NAME"},
		[][]string{{"webhook", "Webhook"}, {"if", "If"}},
		fmt.Sprint,
	)
	assert.Equal(t, []string{
		"  ID       NAME",
		"  ───────  ───────",
		"  webhook  Webhook",
		"  if       If",
	}, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"))
}

func TestWriteTableCountsRunes(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, []string{"A", "B"}, [][]string{{"été", "x"}, {"ab", "y"}}, fmt.Sprint)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "  été  x", lines[2])
	assert.Equal(t, "  ab   y", lines[3])
}
