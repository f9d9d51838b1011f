// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rosterdesk/rosterdesk/lib/clock"
	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
	"github.com/rosterdesk/rosterdesk/lib/employeeform"
	"github.com/rosterdesk/rosterdesk/lib/panel"
	"github.com/rosterdesk/rosterdesk/lib/tui"
)

// DefaultNoticeDuration is how long a status-bar notice stays up.
const DefaultNoticeDuration = 4 * time.Second

// chromeHeight is the rows around the table body: title bar, search
// bar, column titles, two rules and the status bar.
const chromeHeight = 6

// Options configures New. Zero values pick defaults.
type Options struct {
	// Editor handles the edit key. Nil reports ErrNoEditor.
	Editor Editor

	Logger *slog.Logger

	// NoticeDuration defaults to DefaultNoticeDuration.
	NoticeDuration time.Duration

	// Clock times notice fades. Defaults to the real clock.
	Clock clock.Clock

	// Theme defaults to tui.DefaultTheme.
	Theme *tui.Theme
}

// Model is the bubbletea model for the roster view.
type Model struct {
	panel   *panel.Panel
	notices *noticeQueue
	editor  Editor
	theme   tui.Theme
	keys    KeyMap
	logger  *slog.Logger
	clock   clock.Clock

	noticeDuration time.Duration

	width  int
	height int
	ready  bool

	// rows is the current projection. selectedID keeps the selection
	// on the same employee across re-sorts and refreshes.
	rows         []employee.Employee
	cursor       int
	scrollOffset int
	selectedID   string

	// headerFocus indexes employee.SortableFields.
	headerFocus int

	search    textinput.Model
	searching bool

	form          *createForm        // Non-nil while the create modal is shown.
	pendingDelete *employee.Employee // Non-nil while asking for confirmation.

	fetching       bool
	notice         *statusNotice
	noticeSequence int
}

// New returns a roster view talking to api with credential. An empty
// credential shows the signed-out state and sends nothing.
func New(api panel.API, credential string, options Options) Model {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	noticeDuration := options.NoticeDuration
	if noticeDuration <= 0 {
		noticeDuration = DefaultNoticeDuration
	}
	timeSource := options.Clock
	if timeSource == nil {
		timeSource = clock.Real()
	}

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "type a name"
	search.CharLimit = 128

	queue := &noticeQueue{}
	model := Model{
		panel:          panel.New(api, credential, queue, logger),
		notices:        queue,
		editor:         options.Editor,
		theme:          theme,
		keys:           DefaultKeyMap,
		logger:         logger,
		clock:          timeSource,
		noticeDuration: noticeDuration,
		search:         search,
	}
	model.headerFocus = fieldIndex(model.panel.Roster().Sort().Field)
	return model
}

// Panel returns the panel the view drives.
func (model Model) Panel() *panel.Panel { return model.panel }

// Run starts the program on the alternate screen and connects
// logHandler, if given, so log records reach the status bar. Returns
// when the user quits or ctx is cancelled.
func Run(ctx context.Context, model Model, logHandler *TUILogHandler) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if logHandler != nil {
		logHandler.SetProgram(program)
	}
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func fieldIndex(field employee.Field) int {
	for index, candidate := range employee.SortableFields {
		if candidate == field {
			return index
		}
	}
	return 0
}

// Init implements tea.Model by requesting the first fetch.
func (model Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshRequestMsg{} }
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.ensureCursorVisible()

	case tea.KeyMsg:
		return model.handleKey(message)

	case refreshRequestMsg:
		return model, model.refresh()

	case rosterLoadedMsg:
		model.handleRosterLoaded(message)

	case createResultMsg:
		return model.handleCreateResult(message)

	case deleteResultMsg:
		return model.handleDeleteResult(message)

	case editorFinishedMsg:
		if message.err != nil {
			model.logger.Warn("employee editor failed", "employee_id", message.id, "error", message.err)
			return model, model.showNotice("Editor: "+message.err.Error(), model.theme.FailureForeground, false)
		}
		return model, model.refresh()

	case logRecordMsg:
		// Log records never hide a mutation notice.
		if model.notice != nil && !model.notice.fromLog {
			return model, nil
		}
		return model, model.showNotice(message.Summary, model.theme.LevelColor(message.Level), true)

	case noticeFadeMsg:
		if model.notice != nil && model.notice.sequence == message.sequence {
			model.notice = nil
		}
	}
	return model, nil
}

// handleKey routes a key press to whatever has focus: the create
// modal, the delete prompt, the search bar, or the table.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	switch {
	case model.form != nil:
		return model.handleFormKey(message)
	case model.pendingDelete != nil:
		return model.handleConfirmKey(message)
	case model.searching:
		return model.handleSearchKey(message)
	}

	if text := message.String(); len(text) == 1 && text[0] >= '1' && text[0] <= '8' {
		model.headerFocus = int(text[0] - '1')
		model.sortFocused()
		return model, nil
	}

	fieldCount := len(employee.SortableFields)
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.visibleHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.visibleHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(-len(model.rows))
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.rows))
	case key.Matches(message, model.keys.ColumnLeft):
		model.headerFocus = (model.headerFocus + fieldCount - 1) % fieldCount
	case key.Matches(message, model.keys.ColumnRight):
		model.headerFocus = (model.headerFocus + 1) % fieldCount
	case key.Matches(message, model.keys.SortFocused):
		model.sortFocused()
	case key.Matches(message, model.keys.SortReverse):
		roster := model.panel.Roster()
		roster.ToggleSort(roster.Sort().Field)
		model.reproject()
	case key.Matches(message, model.keys.Search):
		model.searching = true
		return model, model.search.Focus()
	case key.Matches(message, model.keys.ClearSearch):
		if model.search.Value() != "" {
			model.search.SetValue("")
			model.applySearch()
		}
	case key.Matches(message, model.keys.Create):
		return model, model.openForm()
	case key.Matches(message, model.keys.Delete):
		if selected, ok := model.selected(); ok {
			model.pendingDelete = &selected
		}
	case key.Matches(message, model.keys.Edit):
		selected, ok := model.selected()
		if !ok {
			return model, nil
		}
		if model.editor == nil {
			return model, model.showNotice(ErrNoEditor.Error(), model.theme.FailureForeground, false)
		}
		return model, model.editor.Edit(selected.ID)
	case key.Matches(message, model.keys.Refresh):
		return model, model.refresh()
	}
	return model, nil
}

func (model Model) handleSearchKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		// First Esc clears, second leaves the search bar.
		if model.search.Value() != "" {
			model.search.SetValue("")
			model.applySearch()
		} else {
			model.searching = false
			model.search.Blur()
		}
		return model, nil
	case tea.KeyEnter:
		model.searching = false
		model.search.Blur()
		return model, nil
	}
	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	model.applySearch()
	return model, cmd
}

func (model Model) handleConfirmKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Confirm):
		id := model.pendingDelete.ID
		model.pendingDelete = nil
		return model, model.deleteEmployee(id)
	case key.Matches(message, model.keys.Decline):
		model.pendingDelete = nil
	}
	return model, nil
}

func (model Model) handleFormKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	controller := model.panel.Form()
	form := model.form

	if form.dropdown != nil {
		switch {
		case key.Matches(message, model.keys.Up):
			form.dropdown.MoveUp()
		case key.Matches(message, model.keys.Down):
			form.dropdown.MoveDown()
		case message.Type == tea.KeyEnter || message.Type == tea.KeySpace:
			selected := form.dropdown.Selected()
			form.dropdown = nil
			return model, model.formError(controller.SetField(string(employee.FieldDesignation), selected.Value))
		case message.Type == tea.KeyEsc:
			form.dropdown = nil
		}
		return model, nil
	}

	// The draft is frozen while the create call is in flight.
	if controller.State() == employeeform.StateSubmitting {
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Submit):
		return model.submitForm()
	case message.Type == tea.KeyEsc:
		if err := controller.Cancel(); err != nil {
			return model, model.formError(err)
		}
		model.form = nil
		return model, nil
	case key.Matches(message, model.keys.NextField):
		return model, form.setFocus(form.focus + 1)
	case key.Matches(message, model.keys.PrevField):
		return model, form.setFocus(form.focus - 1)
	}

	draft := controller.Draft()
	switch form.focus {
	case fieldDesignation:
		switch message.Type {
		case tea.KeyEnter, tea.KeySpace:
			form.dropdown = tui.NewDropdown(string(employee.FieldDesignation), designationOptions(), string(draft.Designation))
		case tea.KeyLeft, tea.KeyRight:
			step := 1
			if message.Type == tea.KeyLeft {
				step = -1
			}
			next := cycle(employee.Designations, draft.Designation, step)
			return model, model.formError(controller.SetField(string(employee.FieldDesignation), string(next)))
		}

	case fieldGender:
		var gender employee.Gender
		switch message.Type {
		case tea.KeyLeft:
			gender = employee.Genders[0]
		case tea.KeyRight:
			gender = employee.Genders[len(employee.Genders)-1]
		case tea.KeySpace, tea.KeyEnter:
			gender = cycle(employee.Genders, draft.Gender, 1)
		default:
			return model, nil
		}
		return model, model.formError(controller.SetField(string(employee.FieldGender), string(gender)))

	case fieldCourses:
		courseCount := len(employee.AllCourses)
		switch {
		case message.Type == tea.KeyLeft:
			form.courseCursor = (form.courseCursor + courseCount - 1) % courseCount
		case message.Type == tea.KeyRight:
			form.courseCursor = (form.courseCursor + 1) % courseCount
		case message.Type == tea.KeySpace || message.Type == tea.KeyEnter || message.String() == "x":
			course := employee.AllCourses[form.courseCursor]
			return model, model.formError(controller.ToggleCourse(course, !draft.Courses.Has(course)))
		}

	default:
		var cmd tea.Cmd
		form.inputs[form.focus], cmd = form.inputs[form.focus].Update(message)
		if name := form.focus.wireName(); name != "" {
			if err := controller.SetField(name, form.inputs[form.focus].Value()); err != nil {
				return model, tea.Batch(cmd, model.formError(err))
			}
		}
		return model, cmd
	}
	return model, nil
}

// cycle returns the value step places from current in values,
// wrapping. An unknown current starts from the first value.
func cycle[T comparable](values []T, current T, step int) T {
	index := -1
	for candidate, value := range values {
		if value == current {
			index = candidate
			break
		}
	}
	if index < 0 {
		return values[0]
	}
	return values[(index+step+len(values))%len(values)]
}

func (model *Model) openForm() tea.Cmd {
	if !model.panel.SignedIn() {
		return model.showNotice(panel.ErrNoCredential.Error(), model.theme.FailureForeground, false)
	}
	controller := model.panel.Form()
	if err := controller.Open(); err != nil {
		return model.formError(err)
	}
	model.form = newCreateForm(controller.Draft())
	return textinput.Blink
}

func (model Model) submitForm() (tea.Model, tea.Cmd) {
	controller := model.panel.Form()
	if err := model.form.syncImage(controller); err != nil {
		return model, model.showNotice("Image: "+err.Error(), model.theme.FailureForeground, false)
	}
	payload, err := controller.BeginSubmit()
	if err != nil {
		return model, model.formError(err)
	}
	model.logger.Debug("submitting new employee", "email", payload.Email)
	activePanel := model.panel
	return model, func() tea.Msg {
		result, err := activePanel.Create(context.Background(), payload)
		return createResultMsg{result: result, err: err}
	}
}

func (model Model) handleCreateResult(message createResultMsg) (tea.Model, tea.Cmd) {
	outcome := model.panel.Form().CompleteSubmit(message.result, message.err)
	cmds := []tea.Cmd{model.drainNotices()}
	if outcome.Succeeded {
		model.form = nil
		cmds = append(cmds, model.refresh())
	}
	return model, tea.Batch(cmds...)
}

func (model *Model) deleteEmployee(id string) tea.Cmd {
	if !model.panel.SignedIn() {
		return model.showNotice(panel.ErrNoCredential.Error(), model.theme.FailureForeground, false)
	}
	activePanel := model.panel
	return func() tea.Msg {
		return deleteResultMsg{id: id, err: activePanel.Remove(context.Background(), id)}
	}
}

func (model Model) handleDeleteResult(message deleteResultMsg) (tea.Model, tea.Cmd) {
	outcome := model.panel.Form().CompleteDelete(message.id, message.err)
	cmds := []tea.Cmd{model.drainNotices()}
	if outcome.Succeeded {
		cmds = append(cmds, model.refresh())
	}
	return model, tea.Batch(cmds...)
}

// refresh starts a roster fetch under a new ticket.
func (model *Model) refresh() tea.Cmd {
	if !model.panel.SignedIn() {
		return model.showNotice(panel.ErrNoCredential.Error(), model.theme.FailureForeground, false)
	}
	ticket := model.panel.Roster().BeginRefresh()
	model.fetching = true
	activePanel := model.panel
	return func() tea.Msg {
		employees, err := activePanel.List(context.Background())
		return rosterLoadedMsg{ticket: ticket, employees: employees, err: err}
	}
}

func (model *Model) handleRosterLoaded(message rosterLoadedMsg) {
	if !model.panel.Roster().CompleteRefresh(message.ticket, message.employees, message.err) {
		model.logger.Debug("discarding stale roster response", "ticket", uint64(message.ticket))
		return
	}
	model.fetching = false
	if message.err != nil {
		model.logger.Warn("roster fetch failed", "error", message.err)
		return
	}
	model.reproject()
}

// showNotice puts text in the status bar and schedules its fade.
func (model *Model) showNotice(text string, color lipgloss.Color, fromLog bool) tea.Cmd {
	model.noticeSequence++
	sequence := model.noticeSequence
	model.notice = &statusNotice{text: text, color: color, sequence: sequence, fromLog: fromLog}
	expired := model.clock.After(model.noticeDuration)
	return func() tea.Msg {
		<-expired
		return noticeFadeMsg{sequence: sequence}
	}
}

// drainNotices shows the controller's notices; the last one wins.
func (model *Model) drainNotices() tea.Cmd {
	var cmd tea.Cmd
	for _, notice := range model.notices.drain() {
		color := model.theme.SuccessForeground
		if notice.Level == employeeform.LevelFailure {
			color = model.theme.FailureForeground
		}
		cmd = model.showNotice(notice.Message, color, false)
	}
	return cmd
}

func (model *Model) formError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return model.showNotice(err.Error(), model.theme.FailureForeground, false)
}

func (model *Model) sortFocused() {
	model.panel.Roster().ToggleSort(employee.SortableFields[model.headerFocus])
	model.reproject()
}

func (model *Model) applySearch() {
	model.panel.Roster().SetKeyword(model.search.Value())
	model.selectedID = ""
	model.cursor = 0
	model.scrollOffset = 0
	model.reproject()
}

// reproject re-reads the projection, keeping the selection on the
// same employee when it is still visible.
func (model *Model) reproject() {
	model.rows = model.panel.Projection()
	if len(model.rows) == 0 {
		model.cursor = 0
		model.selectedID = ""
		model.scrollOffset = 0
		return
	}
	for index, row := range model.rows {
		if row.ID == model.selectedID && model.selectedID != "" {
			model.cursor = index
			model.ensureCursorVisible()
			return
		}
	}
	model.cursor = min(max(model.cursor, 0), len(model.rows)-1)
	model.selectedID = model.rows[model.cursor].ID
	model.ensureCursorVisible()
}

func (model *Model) moveCursor(delta int) {
	if len(model.rows) == 0 {
		return
	}
	model.cursor = min(max(model.cursor+delta, 0), len(model.rows)-1)
	model.selectedID = model.rows[model.cursor].ID
	model.ensureCursorVisible()
}

func (model Model) selected() (employee.Employee, bool) {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return employee.Employee{}, false
	}
	return model.rows[model.cursor], true
}

func (model Model) visibleHeight() int {
	return max(1, model.height-chromeHeight)
}

func (model *Model) ensureCursorVisible() {
	height := model.visibleHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	model.scrollOffset = max(0, min(model.scrollOffset, len(model.rows)-height))
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	tableWidth := max(1, model.width-1)
	widths := columnWidths(tableWidth)
	rule := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(strings.Repeat("─", model.width))

	sections := []string{
		model.renderTitleBar(),
		model.renderSearchBar(),
		ansi.Truncate(renderTableHeader(model.theme, widths, model.panel.Roster().Sort(), employee.SortableFields[model.headerFocus]), model.width, ""),
		rule,
		model.renderBody(tableWidth, widths),
		rule,
		model.renderStatusBar(),
	}
	output := strings.Join(sections, "\n")

	if model.form != nil {
		controller := model.panel.Form()
		lines, dropdownX, dropdownY := model.form.render(controller.Draft(), controller.State(), model.theme)
		anchorX, anchorY := tui.Center(lines, model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
		if model.form.dropdown != nil {
			output = tui.SpliceOverlay(output, model.form.dropdown.Render(model.theme), anchorX+dropdownX, anchorY+dropdownY)
		}
	}
	return output
}

// renderTitleBar draws the title embedded in a rule with the total on
// the right:
//
//	─── Employee List ─── loading… ───────── Total Count: 12 ─
func (model Model) renderTitleBar() string {
	separator := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := separator.Render("───") + " " + title.Render("Employee List") + " "
	leftWidth := 3 + 1 + lipgloss.Width("Employee List") + 1
	status := ""
	switch {
	case !model.panel.SignedIn():
		status = "signed out"
	case model.fetching:
		status = "loading…"
	}
	if status != "" {
		left += separator.Render("───") + " " + faint.Render(status) + " "
		leftWidth += 3 + 1 + lipgloss.Width(status) + 1
	}

	total := fmt.Sprintf("Total Count: %d", len(model.rows))
	right := " " + title.Render(total) + " " + separator.Render("─")
	rightWidth := 1 + lipgloss.Width(total) + 2

	fill := max(1, model.width-leftWidth-rightWidth)
	return left + separator.Render(strings.Repeat("─", fill)) + right
}

func (model Model) renderSearchBar() string {
	label := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" Search: ")
	switch {
	case model.searching:
		return label + model.search.View()
	case model.search.Value() != "":
		return label + lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(model.search.Value())
	}
	return label + lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("press / to search by name")
}

func (model Model) renderBody(tableWidth int, widths []int) string {
	height := model.visibleHeight()

	if len(model.rows) == 0 {
		message := "No employees."
		roster := model.panel.Roster()
		switch {
		case !model.panel.SignedIn():
			message = "Not signed in. Run `rosterdesk login --token TOKEN`, then restart."
		case !roster.Loaded() && model.fetching:
			message = "Loading employees…"
		case !roster.Loaded() && roster.LastError() != nil:
			message = "Employees could not be loaded. Press r to retry."
		case roster.Keyword() != "":
			message = fmt.Sprintf("No employee name contains %q.", roster.Keyword())
		}
		return lipgloss.Place(model.width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(message))
	}

	lines := make([]string, 0, height)
	end := min(len(model.rows), model.scrollOffset+height)
	for index := model.scrollOffset; index < end; index++ {
		row := renderRow(model.theme, widths, model.rows[index], index == model.cursor)
		lines = append(lines, ansi.Truncate(row, tableWidth, ""))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	table := lipgloss.NewStyle().Width(tableWidth).Render(strings.Join(lines, "\n"))
	scrollbar := tui.RenderScrollbar(model.theme, height, len(model.rows), height, model.scrollOffset)
	return lipgloss.JoinHorizontal(lipgloss.Top, table, scrollbar)
}

// renderStatusBar shows, by priority: the delete prompt, a notice,
// the last fetch error, or key help.
func (model Model) renderStatusBar() string {
	switch {
	case model.pendingDelete != nil:
		prompt := fmt.Sprintf(" Delete employee %s (%s)? y/n", model.pendingDelete.ID, model.pendingDelete.Name)
		return lipgloss.NewStyle().Bold(true).Foreground(model.theme.WarningForeground).Render(prompt)

	case model.notice != nil:
		return lipgloss.NewStyle().Bold(true).Foreground(model.notice.color).
			Render(" " + ansi.Truncate(model.notice.text, max(1, model.width-1), "…"))

	case model.panel.Roster().LastError() != nil:
		text := fmt.Sprintf(" Could not load employees: %s. Press r to retry.", describeError(model.panel.Roster().LastError()))
		return lipgloss.NewStyle().Foreground(model.theme.FailureForeground).
			Render(ansi.Truncate(text, max(1, model.width), "…"))
	}

	help := " q quit  ↑↓ move  ←→ column  1-8/s sort  S reverse  / search  c create  d delete  e edit  r refresh"
	if len(model.rows) > 0 {
		help += fmt.Sprintf("  %d/%d", model.cursor+1, len(model.rows))
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(ansi.Truncate(help, max(1, model.width), "…"))
}

// describeError prefers the API's own message.
func describeError(err error) string {
	var apiError *employeeapi.Error
	if errors.As(err, &apiError) && apiError.Message != "" {
		return apiError.Message
	}
	return err.Error()
}
