// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/roster"
	"github.com/rosterdesk/rosterdesk/lib/tui"
)

// column is one table column. Sortable columns carry their field;
// the image column has none.
type column struct {
	title string
	field employee.Field
	width int // Fixed width; 0 for the flexible name and email columns.
}

var columns = []column{
	{title: employee.FieldID.Label(), field: employee.FieldID, width: 10},
	{title: "Image", width: 14},
	{title: employee.FieldName.Label(), field: employee.FieldName},
	{title: employee.FieldEmail.Label(), field: employee.FieldEmail},
	{title: employee.FieldMobile.Label(), field: employee.FieldMobile, width: 12},
	{title: employee.FieldDesignation.Label(), field: employee.FieldDesignation, width: 13},
	{title: employee.FieldGender.Label(), field: employee.FieldGender, width: 8},
	{title: employee.FieldCourses.Label(), field: employee.FieldCourses, width: 14},
	{title: employee.FieldCreateDate.Label(), field: employee.FieldCreateDate, width: 13},
}

const (
	minNameWidth  = 8
	minEmailWidth = 10
)

// columnWidths fits the columns into width. Name and email share what
// the fixed columns leave, two to three.
func columnWidths(width int) []int {
	widths := make([]int, len(columns))
	fixed := len(columns) // One space before each column.
	for index, column := range columns {
		widths[index] = column.width
		fixed += column.width
	}
	flexible := max(minNameWidth+minEmailWidth, width-fixed)
	nameWidth := max(minNameWidth, flexible*2/5)
	for index, column := range columns {
		switch column.field {
		case employee.FieldName:
			widths[index] = nameWidth
		case employee.FieldEmail:
			widths[index] = max(minEmailWidth, flexible-nameWidth)
		}
	}
	return widths
}

// cellText is what a row shows in a column.
func cellText(entry employee.Employee, column column) string {
	if column.field == "" {
		url := entry.ImageURL()
		if url == "" {
			return "-"
		}
		return path.Base(url)
	}
	if value := entry.DisplayValue(column.field); value != "" {
		return value
	}
	return "-"
}

// renderTableHeader draws the column titles. The focused column is
// highlighted and the active sort column carries ▲ or ▼.
func renderTableHeader(theme tui.Theme, widths []int, sort roster.Sort, focused employee.Field) string {
	normal := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	active := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(theme.ActiveColumn)

	var builder strings.Builder
	for index, column := range columns {
		title := column.title
		if column.field != "" && column.field == sort.Field {
			title += " " + sort.Direction.Indicator()
		}
		style := normal
		if column.field != "" && column.field == focused {
			style = active
		}
		builder.WriteString(" ")
		builder.WriteString(style.Render(tui.FitCell(title, widths[index])))
	}
	return builder.String()
}

// renderRow draws one employee.
func renderRow(theme tui.Theme, widths []int, entry employee.Employee, selected bool) string {
	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected {
		style = lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Bold(true)
	}
	var builder strings.Builder
	for index, column := range columns {
		builder.WriteString(" ")
		builder.WriteString(tui.FitCell(cellText(entry, column), widths[index]))
	}
	return style.Render(builder.String())
}
