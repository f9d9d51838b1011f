// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/rosterdesk/rosterdesk/lib/clock"
	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi/apitest"
	"github.com/rosterdesk/rosterdesk/lib/employeeform"
	"github.com/rosterdesk/rosterdesk/lib/roster"
	"github.com/rosterdesk/rosterdesk/lib/testutil"
)

const credential = "operator-token"

// harness plays the part of tea.Program: commands run on their own
// goroutines and their messages are fed back through Update on the
// test goroutine, one at a time.
type harness struct {
	t        *testing.T
	model    Model
	fake     *apitest.Server
	clock    *clock.FakeClock
	messages chan tea.Msg
}

type harnessOptions struct {
	credential string
	editor     Editor
}

func newHarness(t *testing.T, options harnessOptions, seed ...employee.Employee) *harness {
	t.Helper()
	fake := apitest.NewServer(t, credential)
	fake.Seed(seed...)
	client, err := employeeapi.New(fake.URL(), employeeapi.Options{MaxAttempts: 1})
	if err != nil {
		t.Fatalf("employeeapi.New: %v", err)
	}
	fakeClock := clock.Fake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	h := &harness{
		t:        t,
		fake:     fake,
		clock:    fakeClock,
		messages: make(chan tea.Msg, 64),
	}
	h.model = New(client, options.credential, Options{
		Editor:         options.editor,
		NoticeDuration: 3 * time.Second,
		Clock:          fakeClock,
	})
	h.send(tea.WindowSizeMsg{Width: 180, Height: 30})
	return h
}

// signedIn returns a harness with the operator credential whose first
// fetch has completed.
func signedIn(t *testing.T, seed ...employee.Employee) *harness {
	t.Helper()
	h := newHarness(t, harnessOptions{credential: credential}, seed...)
	h.dispatch(h.model.Init())
	await[rosterLoadedMsg](h)
	return h
}

func (h *harness) send(message tea.Msg) {
	h.t.Helper()
	updated, cmd := h.model.Update(message)
	h.model = updated.(Model)
	h.dispatch(cmd)
}

func (h *harness) dispatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		message := cmd()
		if batch, ok := message.(tea.BatchMsg); ok {
			for _, inner := range batch {
				h.dispatch(inner)
			}
			return
		}
		if message != nil {
			h.messages <- message
		}
	}()
}

func (h *harness) press(messages ...tea.KeyMsg) {
	h.t.Helper()
	for _, message := range messages {
		h.send(message)
	}
}

func (h *harness) view() string {
	return ansi.Strip(h.model.View())
}

// await feeds messages through Update until one of type T has been
// handled, and returns it.
func await[T tea.Msg](h *harness) T {
	h.t.Helper()
	var zero T
	for {
		message := testutil.RequireReceive(h.t, h.messages, 5*time.Second, "waiting for %T", zero)
		h.send(message)
		if typed, ok := message.(T); ok {
			return typed
		}
	}
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func keyOf(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func rowNames(model Model) []string {
	var names []string
	for _, row := range model.rows {
		names = append(names, row.Name)
	}
	return names
}

func TestInitialFetchSortsByName(t *testing.T) {
	h := signedIn(t,
		employee.Employee{ID: "1", Name: "Bob"},
		employee.Employee{ID: "2", Name: "ann"},
	)
	if got := rowNames(h.model); !slices.Equal(got, []string{"ann", "Bob"}) {
		t.Errorf("rows = %v, want [ann Bob]", got)
	}
	view := h.view()
	for _, want := range []string{"Total Count: 2", "Name ▲", "Unique Id", "Create Date"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q:\n%s", want, view)
		}
	}
}

func TestSignedOutSendsNothing(t *testing.T) {
	h := newHarness(t, harnessOptions{}, employee.Employee{ID: "1", Name: "Bob"})
	h.dispatch(h.model.Init())
	await[refreshRequestMsg](h)

	if h.fake.Requests("list") != 0 {
		t.Error("a fetch was sent without a credential")
	}
	view := h.view()
	if !strings.Contains(view, "Not signed in") || !strings.Contains(view, "signed out") {
		t.Errorf("view should show the signed-out state:\n%s", view)
	}

	h.press(runes("c"))
	if h.model.form != nil {
		t.Error("create modal opened without a credential")
	}
}

func TestSearchNarrowsByName(t *testing.T) {
	h := signedIn(t,
		employee.Employee{ID: "1", Name: "Bob", Email: "ann@example.com"},
		employee.Employee{ID: "2", Name: "ann"},
		employee.Employee{ID: "3", Name: "Joanna"},
	)

	h.press(runes("/"), runes("an"))
	if got := rowNames(h.model); !slices.Equal(got, []string{"ann", "Joanna"}) {
		t.Errorf("rows for \"an\" = %v, want [ann Joanna]", got)
	}
	if !strings.Contains(h.view(), "Total Count: 2") {
		t.Error("total should count the projection")
	}

	// Typing q in the search bar is text, not quit.
	h.press(runes("q"))
	if len(h.model.rows) != 0 {
		t.Errorf("rows for \"anq\" = %v", rowNames(h.model))
	}
	if !strings.Contains(h.view(), `No employee name contains "anq"`) {
		t.Errorf("empty result message missing:\n%s", h.view())
	}

	h.press(keyOf(tea.KeyEsc))
	if len(h.model.rows) != 3 || !h.model.searching {
		t.Errorf("first Esc should clear and stay in search, rows = %v", rowNames(h.model))
	}
	h.press(keyOf(tea.KeyEsc))
	if h.model.searching {
		t.Error("second Esc should leave the search bar")
	}
}

func TestNumberKeysSortColumns(t *testing.T) {
	h := signedIn(t,
		employee.Employee{ID: "10", Name: "Ann"},
		employee.Employee{ID: "9", Name: "Bob"},
		employee.Employee{ID: "11", Name: "Cy"},
	)

	h.press(runes("1"))
	if got := rowNames(h.model); !slices.Equal(got, []string{"Bob", "Ann", "Cy"}) {
		t.Errorf("id ascending = %v, want [Bob Ann Cy]", got)
	}
	h.press(runes("1"))
	if got := rowNames(h.model); !slices.Equal(got, []string{"Cy", "Ann", "Bob"}) {
		t.Errorf("id descending = %v, want [Cy Ann Bob]", got)
	}
	if !strings.Contains(h.view(), "Unique Id ▼") {
		t.Errorf("header should show the descending indicator:\n%s", h.view())
	}

	// Moving to another column keeps the direction.
	h.press(runes("l"), runes("s"))
	sort := h.model.Panel().Roster().Sort()
	if sort.Field != employee.FieldName || sort.Direction != roster.Descending {
		t.Errorf("sort after l,s = %+v, want name descending", sort)
	}
	h.press(runes("S"))
	if got := h.model.Panel().Roster().Sort().Direction; got != roster.Ascending {
		t.Errorf("S should reverse, direction = %s", got)
	}
}

func TestSelectionFollowsEmployeeAcrossSorts(t *testing.T) {
	h := signedIn(t,
		employee.Employee{ID: "1", Name: "Bob"},
		employee.Employee{ID: "2", Name: "ann"},
	)
	h.press(runes("j"))
	if selected, _ := h.model.selected(); selected.ID != "1" {
		t.Fatalf("selected = %s, want 1", selected.ID)
	}
	h.press(runes("S"))
	if selected, _ := h.model.selected(); selected.ID != "1" {
		t.Errorf("selection moved to %s after reversing", selected.ID)
	}
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	h := signedIn(t, employee.Employee{ID: "1", Name: "Bob"})
	cache := h.model.Panel().Roster()
	older := cache.BeginRefresh()
	newer := cache.BeginRefresh()

	h.send(rosterLoadedMsg{ticket: newer, employees: []employee.Employee{{ID: "5", Name: "Fresh"}}})
	h.send(rosterLoadedMsg{ticket: older, employees: []employee.Employee{{ID: "4", Name: "Stale"}}})

	if got := rowNames(h.model); !slices.Equal(got, []string{"Fresh"}) {
		t.Errorf("rows = %v, want [Fresh]", got)
	}
}

func TestDeleteAsksThenRefreshesOnce(t *testing.T) {
	h := signedIn(t,
		employee.Employee{ID: "1", Name: "Bob"},
		employee.Employee{ID: "2", Name: "ann"},
	)

	h.press(runes("d"))
	if !strings.Contains(h.view(), "Delete employee 2 (ann)? y/n") {
		t.Fatalf("confirmation prompt missing:\n%s", h.view())
	}
	h.press(runes("n"))
	if h.model.pendingDelete != nil || h.fake.Requests("delete") != 0 {
		t.Fatal("declining should send nothing")
	}

	listsBefore := h.fake.Requests("list")
	h.press(runes("d"), runes("y"))
	await[deleteResultMsg](h)
	await[rosterLoadedMsg](h)

	if got := h.fake.Requests("list") - listsBefore; got != 1 {
		t.Errorf("delete caused %d fetches, want 1", got)
	}
	if got := rowNames(h.model); !slices.Equal(got, []string{"Bob"}) {
		t.Errorf("rows = %v, want [Bob]", got)
	}
	if h.model.notice == nil || h.model.notice.text != "Employee 2 deleted" {
		t.Errorf("notice = %+v", h.model.notice)
	}
}

func TestDeleteFailureShowsServerMessage(t *testing.T) {
	h := signedIn(t, employee.Employee{ID: "1", Name: "Bob"})
	h.fake.FailNext("delete", http.StatusNotFound, `{"success":false,"message":"Employee not found"}`)

	listsBefore := h.fake.Requests("list")
	h.press(runes("d"), runes("y"))
	await[deleteResultMsg](h)

	if h.model.notice == nil || h.model.notice.text != "Employee not found" {
		t.Errorf("notice = %+v", h.model.notice)
	}
	if h.fake.Requests("list") != listsBefore {
		t.Error("a failed delete should not refresh")
	}
	if len(h.model.rows) != 1 {
		t.Errorf("rows = %v", rowNames(h.model))
	}
}

func TestCreateFlow(t *testing.T) {
	h := signedIn(t, employee.Employee{ID: "1", Name: "Bob", Email: "bob@example.com"})
	imagePath := testutil.WriteFile(t, "photos/ann.png", "\x89PNG\r\n\x1a\nrest-of-image")
	email := testutil.UniqueEmail("ann")

	h.press(runes("c"))
	if h.model.form == nil {
		t.Fatal("c should open the create modal")
	}
	h.press(
		runes("Ann Lee"), keyOf(tea.KeyTab),
		runes(email), keyOf(tea.KeyTab),
		runes("5550100"), keyOf(tea.KeyTab),
		keyOf(tea.KeyRight), keyOf(tea.KeyTab), // Designation: HR -> Manager.
		keyOf(tea.KeyRight), keyOf(tea.KeyTab), // Gender: Female.
		keyOf(tea.KeySpace), keyOf(tea.KeyRight), keyOf(tea.KeyRight), keyOf(tea.KeySpace), keyOf(tea.KeyTab),
		runes(imagePath),
	)

	draft := h.model.Panel().Form().Draft()
	if draft.Name != "Ann Lee" || draft.Email != email || draft.Mobile != "5550100" {
		t.Errorf("draft text fields = %+v", draft)
	}
	if draft.Designation != employee.DesignationManager || draft.Gender != employee.GenderFemale {
		t.Errorf("draft choices = %s, %s", draft.Designation, draft.Gender)
	}
	if !slices.Equal(draft.Courses, employee.NewCourses(employee.CourseMCA, employee.CourseBSc)) {
		t.Errorf("draft courses = %v", draft.Courses)
	}
	if !strings.Contains(h.view(), "New Employee") {
		t.Errorf("modal not rendered:\n%s", h.view())
	}

	h.press(keyOf(tea.KeyCtrlS))
	if h.model.Panel().Form().State() != employeeform.StateSubmitting {
		t.Fatalf("state after C-s = %v", h.model.Panel().Form().State())
	}
	// A second submit while the first is in flight does nothing.
	h.press(keyOf(tea.KeyCtrlS))

	await[createResultMsg](h)
	if h.model.form != nil {
		t.Error("modal should close on confirmed success")
	}
	if h.model.notice == nil || h.model.notice.text != "Employee created successfully" {
		t.Errorf("notice = %+v", h.model.notice)
	}
	await[rosterLoadedMsg](h)

	if h.fake.Requests("create") != 1 {
		t.Errorf("create requests = %d, want 1", h.fake.Requests("create"))
	}
	index := slices.IndexFunc(h.model.rows, func(row employee.Employee) bool { return row.Email == email })
	if index < 0 {
		t.Fatalf("created employee not in rows %v", rowNames(h.model))
	}
	created := h.model.rows[index]
	if created.Name != "Ann Lee" || created.Mobile != "5550100" ||
		created.Designation != employee.DesignationManager || created.Gender != employee.GenderFemale {
		t.Errorf("created = %+v", created)
	}
	if !strings.HasSuffix(created.ImageURL(), "/ann.png") {
		t.Errorf("image url = %q", created.ImageURL())
	}

	// The next open starts from a fresh draft.
	h.press(runes("c"))
	if got := h.model.form.inputs[fieldName].Value(); got != "" {
		t.Errorf("name after success = %q, want empty", got)
	}
}

func TestCreateRejectionKeepsModalAndDraft(t *testing.T) {
	h := signedIn(t, employee.Employee{ID: "1", Name: "Bob", Email: "bob@example.com"})

	h.press(runes("c"), runes("Robert"), keyOf(tea.KeyTab), runes("bob@example.com"), keyOf(tea.KeyCtrlS))
	await[createResultMsg](h)

	if h.model.form == nil {
		t.Fatal("modal should stay open after a rejection")
	}
	if h.model.Panel().Form().State() != employeeform.StateOpen {
		t.Errorf("state = %v, want open", h.model.Panel().Form().State())
	}
	if h.model.notice == nil || h.model.notice.text != "duplicate email" {
		t.Errorf("notice = %+v", h.model.notice)
	}
	if draft := h.model.Panel().Form().Draft(); draft.Name != "Robert" {
		t.Errorf("draft = %+v", draft)
	}
	if h.fake.Requests("list") != 1 {
		t.Error("a rejected create should not refresh")
	}
}

func TestCancelKeepsDraft(t *testing.T) {
	h := signedIn(t)
	h.press(runes("c"), runes("Half typed"), keyOf(tea.KeyEsc))
	if h.model.form != nil {
		t.Fatal("Esc should close the modal")
	}
	h.press(runes("c"))
	if got := h.model.form.inputs[fieldName].Value(); got != "Half typed" {
		t.Errorf("name after reopen = %q", got)
	}
}

func TestMissingImageKeepsModalOpen(t *testing.T) {
	h := signedIn(t)
	h.press(runes("c"), runes("Ann"))
	h.model.form.setFocus(fieldImage)
	h.press(runes("/nonexistent/photo.png"), keyOf(tea.KeyCtrlS))

	if h.model.Panel().Form().State() != employeeform.StateOpen {
		t.Errorf("state = %v, want open", h.model.Panel().Form().State())
	}
	if h.model.notice == nil || !strings.HasPrefix(h.model.notice.text, "Image: ") {
		t.Errorf("notice = %+v", h.model.notice)
	}
	if h.fake.Requests("create") != 0 {
		t.Error("nothing should be sent")
	}
}

func TestDesignationDropdown(t *testing.T) {
	h := signedIn(t)
	h.press(runes("c"))
	h.model.form.setFocus(fieldDesignation)
	h.press(keyOf(tea.KeyEnter))
	if h.model.form.dropdown == nil {
		t.Fatal("Enter should open the dropdown")
	}
	h.press(keyOf(tea.KeyDown), keyOf(tea.KeyDown), keyOf(tea.KeyEnter))
	if h.model.form.dropdown != nil {
		t.Error("Enter should close the dropdown")
	}
	if got := h.model.Panel().Form().Draft().Designation; got != employee.Designations[2] {
		t.Errorf("designation = %s, want %s", got, employee.Designations[2])
	}

	h.press(keyOf(tea.KeyEnter), keyOf(tea.KeyEsc))
	if h.model.form == nil || h.model.form.dropdown != nil {
		t.Error("Esc in the dropdown should close only the dropdown")
	}
}

func TestFetchErrorShowsRetryHint(t *testing.T) {
	h := newHarness(t, harnessOptions{credential: credential}, employee.Employee{ID: "1", Name: "Bob"})
	h.fake.FailNext("list", http.StatusServiceUnavailable, `{"success":false,"message":"maintenance"}`)
	h.dispatch(h.model.Init())
	await[rosterLoadedMsg](h)

	view := h.view()
	if !strings.Contains(view, "Could not load employees: maintenance. Press r to retry.") {
		t.Errorf("status bar should offer a retry:\n%s", view)
	}

	h.press(runes("r"))
	await[rosterLoadedMsg](h)
	if strings.Contains(h.view(), "Could not load") {
		t.Error("successful retry should clear the error")
	}
	if len(h.model.rows) != 1 {
		t.Errorf("rows = %v", rowNames(h.model))
	}
}

func TestNoticeFades(t *testing.T) {
	h := signedIn(t, employee.Employee{ID: "1", Name: "Bob"})
	h.press(runes("d"), runes("y"))
	await[deleteResultMsg](h)
	await[rosterLoadedMsg](h)
	if h.model.notice == nil {
		t.Fatal("expected a notice")
	}

	h.clock.Advance(3 * time.Second)
	await[noticeFadeMsg](h)
	if h.model.notice != nil {
		t.Errorf("notice should have faded, got %+v", h.model.notice)
	}
}

func TestNewerNoticeSurvivesOlderFade(t *testing.T) {
	h := signedIn(t)
	h.model.showNotice("first", h.model.theme.SuccessForeground, false)
	h.model.showNotice("second", h.model.theme.SuccessForeground, false)
	h.send(noticeFadeMsg{sequence: h.model.noticeSequence - 1})
	if h.model.notice == nil || h.model.notice.text != "second" {
		t.Errorf("notice = %+v, want second", h.model.notice)
	}
}

func TestLogRecordsDoNotHideMutationNotices(t *testing.T) {
	h := signedIn(t)
	h.send(logRecordMsg{Summary: "retrying request (attempt=2)", Level: 4})
	if h.model.notice == nil || h.model.notice.text != "retrying request (attempt=2)" {
		t.Fatalf("log record not shown: %+v", h.model.notice)
	}

	h.model.showNotice("Employee 3 deleted", h.model.theme.SuccessForeground, false)
	h.send(logRecordMsg{Summary: "employee deleted", Level: 4})
	if h.model.notice.text != "Employee 3 deleted" {
		t.Errorf("log record replaced a mutation notice: %+v", h.model.notice)
	}
}

type fakeEditor struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (editor *fakeEditor) Edit(employeeID string) tea.Cmd {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	editor.ids = append(editor.ids, employeeID)
	err := editor.err
	return func() tea.Msg { return editorFinishedMsg{id: employeeID, err: err} }
}

func TestEditHandsOffAndRefreshes(t *testing.T) {
	editor := &fakeEditor{}
	h := newHarness(t, harnessOptions{credential: credential, editor: editor}, employee.Employee{ID: "7", Name: "Gil"})
	h.dispatch(h.model.Init())
	await[rosterLoadedMsg](h)

	h.press(runes("e"))
	await[editorFinishedMsg](h)
	await[rosterLoadedMsg](h)

	if !slices.Equal(editor.ids, []string{"7"}) {
		t.Errorf("editor ids = %v", editor.ids)
	}
	if h.fake.Requests("list") != 2 {
		t.Errorf("list requests = %d, want 2", h.fake.Requests("list"))
	}
}

func TestEditFailureIsReported(t *testing.T) {
	editor := &fakeEditor{err: errors.New("exit status 2")}
	h := newHarness(t, harnessOptions{credential: credential, editor: editor}, employee.Employee{ID: "7", Name: "Gil"})
	h.dispatch(h.model.Init())
	await[rosterLoadedMsg](h)

	h.press(runes("e"))
	await[editorFinishedMsg](h)
	if h.model.notice == nil || h.model.notice.text != "Editor: exit status 2" {
		t.Errorf("notice = %+v", h.model.notice)
	}
}

func TestEditWithoutEditor(t *testing.T) {
	h := signedIn(t, employee.Employee{ID: "7", Name: "Gil"})
	h.press(runes("e"))
	if h.model.notice == nil || h.model.notice.text != ErrNoEditor.Error() {
		t.Errorf("notice = %+v", h.model.notice)
	}
}

func TestQuit(t *testing.T) {
	h := signedIn(t)
	_, cmd := h.model.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
