package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableStyles holds the lipgloss styles for the parts of a table.
type TableStyles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
}

// ProcessTableStyles returns the styling for the interactive process table.
func ProcessTableStyles() TableStyles {
	return TableStyles{
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			BorderBottom(true).
			Bold(true).
			Padding(0, 1).
			Foreground(ColorPrimary),
		Cell: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(ColorPrimary),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorSecondary),
	}
}

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	st := ProcessTableStyles()
	s := table.DefaultStyles()
	s.Header = st.Header
	s.Cell = st.Cell
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string for plain CLI output.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}
