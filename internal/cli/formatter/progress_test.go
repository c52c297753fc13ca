package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress_Bounds(t *testing.T) {
	assert.Contains(t, RenderProgress(0, 10), "0%")
	assert.Contains(t, RenderProgress(1, 10), "100%")
	// Out-of-range input clamps instead of panicking.
	assert.Contains(t, RenderProgress(1.5, 10), "100%")
	assert.Contains(t, RenderProgress(-0.2, 10), "0%")
}

func TestRenderProgress_FillRatio(t *testing.T) {
	out := RenderProgress(0.5, 10)
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "█████░░░░░")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"a1", "short"},
			{"b2", "a much longer value"},
		},
	)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "a much longer value")
	assert.Contains(t, out, "─")
}
