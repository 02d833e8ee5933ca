package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestProcessTableStyles(t *testing.T) {
	style := ProcessTableStyles()

	assert.NotPanics(t, func() {
		_ = style.Header.Render("PID")
		_ = style.Cell.Render("1")
		_ = style.Selected.Render("row")
	})
}

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "PID", Width: 8},
		{Title: "Name", Width: 20},
	}
	rows := []table.Row{
		{"1", "init"},
		{"2", "bash"},
	}

	tbl := NewTable(columns, rows)

	view := tbl.View()
	assert.Contains(t, view, "PID")
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "init")
	assert.Contains(t, view, "bash")
}

func TestNewTable_EmptyRows(t *testing.T) {
	tbl := NewTable([]TableColumn{{Title: "Name", Width: 20}}, []table.Row{})
	assert.Contains(t, tbl.View(), "Name")
}

func TestRenderSimpleTable(t *testing.T) {
	output := RenderSimpleTable(
		[]TableColumn{{Title: "PID", Width: 8}, {Title: "Result", Width: 30}},
		[][]string{{"11", "terminated"}, {"10", "process not found"}},
	)

	assert.Contains(t, output, "PID")
	assert.Contains(t, output, "terminated")
	assert.Contains(t, output, "process not found")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "PID", Width: 8}}, nil))
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		width    int
		wantFull int
		wantText string
	}{
		{"zero", 0, 10, 0, "  0.0%"},
		{"half", 50, 10, 5, " 50.0%"},
		{"clamped high", 150, 10, 10, "100.0%"},
		{"clamped low", -5, 4, 0, "  0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderBar(tt.percent, tt.width)
			assert.Equal(t, tt.wantFull, strings.Count(out, string(barFilled)))
			assert.Equal(t, tt.width-tt.wantFull, strings.Count(out, string(barEmpty)))
			assert.True(t, strings.HasSuffix(out, tt.wantText), "got %q", out)
		})
	}

	assert.Empty(t, RenderBar(50, 0))
}

func TestThresholdColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, ThresholdColor(10))
	assert.Equal(t, ColorWarning, ThresholdColor(65))
	assert.Equal(t, ColorError, ThresholdColor(95))
}
