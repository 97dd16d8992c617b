package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestRenderTable_PadsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long value", "x"}, {"s", "y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "long value  x")
	assert.Contains(t, lines[3], "s           y")
}

func TestRenderTableRight_AlignsAmounts(t *testing.T) {
	out := RenderTableRight([]string{"NAME", "TOTAL"},
		[][]string{{"Flat 1", "5.00"}, {"Flat 2", "1,250.00"}}, 1)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[2], "    5.00"), lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "1,250.00"), lines[3])
}
