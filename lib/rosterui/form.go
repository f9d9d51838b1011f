// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeform"
	"github.com/rosterdesk/rosterdesk/lib/tui"
)

// formField is a row of the create modal, in focus order.
type formField int

const (
	fieldName formField = iota
	fieldEmail
	fieldMobile
	fieldDesignation
	fieldGender
	fieldCourses
	fieldImage
	formFieldCount
)

func (field formField) label() string {
	switch field {
	case fieldName:
		return "Name"
	case fieldEmail:
		return "Email"
	case fieldMobile:
		return "Mobile No"
	case fieldDesignation:
		return "Designation"
	case fieldGender:
		return "Gender"
	case fieldCourses:
		return "Course"
	case fieldImage:
		return "Image"
	}
	return ""
}

// wireName is the draft field a text row writes, or "" for rows that
// are not free text.
func (field formField) wireName() string {
	switch field {
	case fieldName:
		return string(employee.FieldName)
	case fieldEmail:
		return string(employee.FieldEmail)
	case fieldMobile:
		return string(employee.FieldMobile)
	}
	return ""
}

func (field formField) isText() bool {
	return field == fieldName || field == fieldEmail || field == fieldMobile || field == fieldImage
}

const (
	formLabelWidth = 13
	formInputWidth = 36
)

// createForm is the create modal's view state. The draft itself lives
// in the employeeform.Controller; text inputs mirror it and write
// through on every keystroke. The image path is only read from disk on
// submit.
type createForm struct {
	inputs       [formFieldCount]textinput.Model // Only text rows are used.
	focus        formField
	courseCursor int
	dropdown     *tui.DropdownOverlay

	// attachedPath is the path whose contents are in the draft.
	attachedPath string
}

// newCreateForm builds the modal from an existing draft, so reopening
// after a cancel or a failed submit shows what was typed.
func newCreateForm(draft employeeform.Draft) *createForm {
	form := &createForm{}
	for field := formField(0); field < formFieldCount; field++ {
		if !field.isText() {
			continue
		}
		input := textinput.New()
		input.Prompt = ""
		input.Width = formInputWidth
		input.CharLimit = 256
		form.inputs[field] = input
	}
	form.inputs[fieldName].SetValue(draft.Name)
	form.inputs[fieldEmail].SetValue(draft.Email)
	form.inputs[fieldMobile].SetValue(draft.Mobile)
	form.inputs[fieldImage].Placeholder = "path to a photo (optional)"
	if draft.Image != nil {
		form.attachedPath = draft.Image.Name
		form.inputs[fieldImage].SetValue(draft.Image.Name)
	}
	form.inputs[fieldName].Focus()
	return form
}

// setFocus moves focus to field, blurring the previous text input.
func (form *createForm) setFocus(field formField) tea.Cmd {
	if form.focus.isText() {
		form.inputs[form.focus].Blur()
	}
	form.focus = (field + formFieldCount) % formFieldCount
	if form.focus.isText() {
		return form.inputs[form.focus].Focus()
	}
	return nil
}

// imagePath is the trimmed content of the image row.
func (form *createForm) imagePath() string {
	return strings.TrimSpace(form.inputs[fieldImage].Value())
}

// syncImage brings the draft's attachment in line with the image row:
// loads a newly typed path, or detaches when the row was cleared.
func (form *createForm) syncImage(controller *employeeform.Controller) error {
	path := form.imagePath()
	switch {
	case path == form.attachedPath:
		return nil
	case path == "":
		if err := controller.SetImage(nil); err != nil {
			return err
		}
	default:
		if err := controller.LoadImage(path); err != nil {
			return err
		}
	}
	form.attachedPath = path
	return nil
}

func designationOptions() []tui.DropdownOption {
	options := make([]tui.DropdownOption, 0, len(employee.Designations))
	for _, designation := range employee.Designations {
		options = append(options, tui.DropdownOption{Label: string(designation), Value: string(designation)})
	}
	return options
}

// render draws the modal. The second result is the screen offset,
// relative to the modal's top-left corner, where the designation
// dropdown opens.
func (form *createForm) render(draft employeeform.Draft, state employeeform.State, theme tui.Theme) ([]string, int, int) {
	background := lipgloss.NewStyle().Background(theme.OverlayBackground)
	text := background.Foreground(theme.OverlayForeground)
	faint := background.Foreground(theme.FaintText)
	accent := background.Foreground(theme.Accent).Bold(true)
	title := background.Foreground(theme.HeaderForeground).Bold(true)

	innerWidth := formLabelWidth + formInputWidth + 2
	line := func(content string) string {
		return tui.PadOverlayLine(content, innerWidth, background)
	}

	var lines []string
	lines = append(lines, line(title.Render("New Employee")), line(""))

	for field := formField(0); field < formFieldCount; field++ {
		labelStyle := text
		marker := "  "
		if field == form.focus {
			labelStyle = accent
			marker = "› "
		}
		label := labelStyle.Render(marker + tui.FitCell(field.label(), formLabelWidth-2))

		var value string
		switch field {
		case fieldDesignation:
			value = text.Render("[ " + string(draft.Designation) + " ▾ ]")
		case fieldGender:
			var options []string
			for _, gender := range employee.Genders {
				radio := "( )"
				if draft.Gender == gender {
					radio = "(•)"
				}
				options = append(options, radio+" "+string(gender))
			}
			value = text.Render(strings.Join(options, "  "))
		case fieldCourses:
			var boxes []string
			for index, course := range employee.AllCourses {
				box := "[ ]"
				if draft.Courses.Has(course) {
					box = "[x]"
				}
				style := text
				if field == form.focus && index == form.courseCursor {
					style = accent
				}
				boxes = append(boxes, style.Render(box+" "+string(course)))
			}
			value = strings.Join(boxes, text.Render("  "))
		default:
			value = form.inputs[field].View()
		}
		lines = append(lines, line(label+value))
	}

	if draft.Image != nil {
		digest := draft.Image.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		attached := fmt.Sprintf("attached %s (%d bytes, blake3 %s)", filepath.Base(draft.Image.Name), len(draft.Image.Data), digest)
		lines = append(lines, line(faint.Render(strings.Repeat(" ", formLabelWidth)+ansi.Truncate(attached, formInputWidth, "…"))))
	} else {
		lines = append(lines, line(""))
	}

	footer := "C-s submit  Esc cancel  Tab next field  Space toggle"
	if state == employeeform.StateSubmitting {
		footer = "Submitting…"
	}
	lines = append(lines, line(""), line(faint.Render(footer)))

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		BorderBackground(theme.OverlayBackground)
	rendered := strings.Split(frame.Render(strings.Join(lines, "\n")), "\n")

	// Border, padding column, label; border, title, blank line, rows.
	dropdownX := 1 + 1 + formLabelWidth
	dropdownY := 1 + 2 + int(fieldDesignation) + 1
	return rendered, dropdownX, dropdownY
}
