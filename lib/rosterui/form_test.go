// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeform"
	"github.com/rosterdesk/rosterdesk/lib/testutil"
	"github.com/rosterdesk/rosterdesk/lib/tui"
)

func TestCreateFormRender(t *testing.T) {
	draft := employeeform.NewDraft()
	draft.Name = "Ann"
	draft.Gender = employee.GenderFemale
	draft.Courses = employee.NewCourses(employee.CourseBCA)

	form := newCreateForm(draft)
	lines, dropdownX, dropdownY := form.render(draft, employeeform.StateOpen, tui.DefaultTheme)
	text := ansi.Strip(strings.Join(lines, "\n"))

	for _, want := range []string{"New Employee", "› Name", "Ann", "[ HR ▾ ]", "( ) Male", "(•) Female", "[ ] MCA", "[x] BCA", "C-s submit"} {
		if !strings.Contains(text, want) {
			t.Errorf("modal does not contain %q:\n%s", want, text)
		}
	}
	if dropdownX <= 0 || dropdownY <= 0 || dropdownY >= len(lines) {
		t.Errorf("dropdown anchor (%d, %d) outside the modal", dropdownX, dropdownY)
	}
	if !strings.Contains(ansi.Strip(lines[dropdownY-1]), "Designation") {
		t.Errorf("dropdown should open under the designation row, row above is %q", ansi.Strip(lines[dropdownY-1]))
	}

	submitting := ansi.Strip(strings.Join(mustRender(form, draft, employeeform.StateSubmitting), "\n"))
	if !strings.Contains(submitting, "Submitting…") {
		t.Errorf("submitting footer missing:\n%s", submitting)
	}
}

func mustRender(form *createForm, draft employeeform.Draft, state employeeform.State) []string {
	lines, _, _ := form.render(draft, state, tui.DefaultTheme)
	return lines
}

func TestCreateFormFocusWraps(t *testing.T) {
	form := newCreateForm(employeeform.NewDraft())
	form.setFocus(fieldName - 1)
	if form.focus != formFieldCount-1 {
		t.Errorf("focus before the first field = %d, want %d", form.focus, formFieldCount-1)
	}
	if form.inputs[fieldName].Focused() {
		t.Error("name input should blur")
	}
	form.setFocus(form.focus + 1)
	if form.focus != fieldName || !form.inputs[fieldName].Focused() {
		t.Errorf("focus after the last field = %d", form.focus)
	}
}

func TestSyncImage(t *testing.T) {
	controller := employeeform.NewController(nil, nil)
	controller.Open()
	form := newCreateForm(controller.Draft())
	path := testutil.WriteFile(t, "ann.png", "\x89PNG\r\n\x1a\nbody")

	form.inputs[fieldImage].SetValue(path)
	if err := form.syncImage(controller); err != nil {
		t.Fatalf("syncImage: %v", err)
	}
	if image := controller.Draft().Image; image == nil || len(image.Data) == 0 {
		t.Fatalf("image not attached: %+v", image)
	}

	form.inputs[fieldImage].SetValue("   ")
	if err := form.syncImage(controller); err != nil {
		t.Fatalf("syncImage clear: %v", err)
	}
	if controller.Draft().Image != nil {
		t.Error("clearing the row should detach the image")
	}
}
