package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmaster/internal/analytics"
	"github.com/tgienger/taskmaster/internal/models"
	"github.com/tgienger/taskmaster/internal/tasks"
	"github.com/tgienger/taskmaster/internal/ui/keys"
	"github.com/tgienger/taskmaster/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusSearchInput FocusArea = iota
	FocusTaskList
)

// edit form fields, in tab order
const (
	fieldTitle = iota
	fieldDesc
	fieldPriority
	fieldDue
	fieldTags
	fieldSave
	fieldCount
)

// priorityFilters is the cycle order of the priority filter
var priorityFilters = []string{
	analytics.PriorityAll,
	string(models.PriorityHigh),
	string(models.PriorityMedium),
	string(models.PriorityLow),
}

// TaskListView shows, edits and completes tasks
type TaskListView struct {
	store  *tasks.Store
	tasks  []models.Task
	styles *styles.Styles
	keys   keys.KeyMap
	now    func() time.Time

	width  int
	height int

	// UI state
	focus       FocusArea
	cursor      int
	scrollY     int
	searchInput textinput.Model
	status      analytics.StatusFilter
	priority    string
	sortKey     analytics.SortKey

	// Task creation/editing
	editing      bool
	editingID    string // empty for a new task
	editTitle    textinput.Model
	editDesc     textarea.Model
	editPriority models.Priority
	editDue      textinput.Model
	editTags     textinput.Model
	editFocusIdx int
	editErr      string

	// Task view mode (read-only detail view)
	viewingTask bool

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskListView creates a new task list view
func NewTaskListView(store *tasks.Store, sortKey analytics.SortKey, status analytics.StatusFilter) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	editTitle := textinput.New()
	editTitle.Placeholder = "What needs to be done?"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Add details about this task..."
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDue := textinput.New()
	editDue.Placeholder = "YYYY-MM-DD"
	editDue.CharLimit = 10

	editTags := textinput.New()
	editTags.Placeholder = "work, home"
	editTags.CharLimit = 200

	return &TaskListView{
		store:        store,
		styles:       styles.NewStyles(),
		keys:         keys.DefaultKeyMap(),
		now:          time.Now,
		focus:        FocusTaskList,
		searchInput:  search,
		status:       status,
		priority:     analytics.PriorityAll,
		sortKey:      sortKey,
		editTitle:    editTitle,
		editDesc:     editDesc,
		editPriority: models.PriorityMedium,
		editDue:      editDue,
		editTags:     editTags,
	}
}

// Restyle rebuilds styles after a theme change
func (v *TaskListView) Restyle() {
	v.styles = styles.NewStyles()
}

// Capturing reports whether the view is consuming raw key input, so the app
// should not treat keys as global shortcuts
func (v *TaskListView) Capturing() bool {
	return v.editing || v.confirmingDelete || v.viewingTask || v.showHelpPopup || v.focus == FocusSearchInput
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return v.loadTasks()
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

// loadTasks snapshots the store and applies the current filter and sort
func (v *TaskListView) loadTasks() tea.Cmd {
	filter := analytics.Filter{
		Status:   v.status,
		Priority: v.priority,
		Search:   strings.TrimSpace(v.searchInput.Value()),
	}
	sortKey := v.sortKey
	store := v.store
	now := v.now()

	return func() tea.Msg {
		visible := analytics.FilterTasks(store.Snapshot().Tasks, filter)
		return tasksLoadedMsg{tasks: analytics.SortTasksAt(visible, sortKey, now)}
	}
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.editDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		if v.viewingTask && len(v.tasks) == 0 {
			v.viewingTask = false
		}
		v.ensureVisible()
		return v, nil

	case StoreChanged:
		return v, v.loadTasks()

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		if v.viewingTask {
			return v.updateViewingTask(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle search input typing first - don't process hotkeys while typing
	if v.focus == FocusSearchInput {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, v.loadTasks()
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.cursor, v.scrollY = 0, 0
			return v, tea.Batch(cmd, v.loadTasks())
		}
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		if v.searchInput.Value() != "" {
			v.searchInput.Reset()
			return v, v.loadTasks()
		}
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if len(v.tasks) > 0 {
			v.viewingTask = true
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if len(v.tasks) > 0 {
			v.store.ToggleCompleted(v.tasks[v.cursor].ID)
			return v, changed()
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if len(v.tasks) > 0 {
			v.startEditTask(v.tasks[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if len(v.tasks) > 0 {
			v.askDelete(v.tasks[v.cursor])
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Status):
		v.status = nextStatus(v.status)
		v.cursor, v.scrollY = 0, 0
		return v, v.loadTasks()

	case key.Matches(msg, v.keys.ShowDone):
		if v.status == analytics.StatusCompleted {
			v.status = analytics.StatusAll
		} else {
			v.status = analytics.StatusCompleted
		}
		v.cursor, v.scrollY = 0, 0
		return v, v.loadTasks()

	case key.Matches(msg, v.keys.Filter):
		v.priority = nextOf(priorityFilters, v.priority)
		v.cursor, v.scrollY = 0, 0
		return v, v.loadTasks()

	case key.Matches(msg, v.keys.Sort):
		v.sortKey = nextOf(analytics.SortKeys, v.sortKey)
		return v, v.loadTasks()

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func nextStatus(s analytics.StatusFilter) analytics.StatusFilter {
	return nextOf(analytics.StatusFilters, s)
}

// nextOf returns the element after cur in list, wrapping around
func nextOf[T comparable](list []T, cur T) T {
	for i, x := range list {
		if x == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

func (v *TaskListView) askDelete(t models.Task) {
	v.confirmingDelete = true
	v.deleteTargetID = t.ID
	v.deleteTargetName = t.Title
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.DeleteTask(v.deleteTargetID)
		v.confirmingDelete = false
		v.viewingTask = false
		return v, changed()
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateViewingTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.viewingTask = false
		return v, nil
	case key.Matches(msg, v.keys.Edit):
		v.viewingTask = false
		v.startEditTask(v.tasks[v.cursor])
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Delete):
		v.askDelete(v.tasks[v.cursor])
		return v, nil
	case key.Matches(msg, v.keys.Toggle):
		v.store.ToggleCompleted(v.tasks[v.cursor].ID)
		return v, changed()
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % fieldCount
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + fieldCount - 1) % fieldCount
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.editFocusIdx {
		case fieldSave:
			return v, v.saveTask()
		case fieldDesc:
			// newlines go to the textarea
		default:
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		}
	}

	if v.editFocusIdx == fieldPriority {
		switch {
		case key.Matches(msg, v.keys.Left):
			v.editPriority = shiftPriority(v.editPriority, 1)
		case key.Matches(msg, v.keys.Right), msg.String() == " ":
			v.editPriority = shiftPriority(v.editPriority, -1)
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case fieldTitle:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case fieldDesc:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case fieldDue:
		v.editDue, cmd = v.editDue.Update(msg)
	case fieldTags:
		v.editTags, cmd = v.editTags.Update(msg)
	}
	return v, cmd
}

// shiftPriority steps through models.Priorities (highest first)
func shiftPriority(p models.Priority, step int) models.Priority {
	n := len(models.Priorities)
	for i, x := range models.Priorities {
		if x == p {
			return models.Priorities[(i+step+n)%n]
		}
	}
	return models.PriorityMedium
}

func (v *TaskListView) ensureVisible() {
	// Each task item is 2 lines + 1 margin
	visibleItems := v.visibleItems()

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *TaskListView) visibleItems() int {
	availableHeight := max(v.height-14, 3)
	return max(availableHeight/3, 1)
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingID = ""
	v.editErr = ""
	v.editFocusIdx = fieldTitle
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDue.Reset()
	v.editTags.Reset()
	v.editPriority = models.PriorityMedium
	v.updateEditFocus()
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingID = task.ID
	v.editErr = ""
	v.editFocusIdx = fieldTitle
	v.editTitle.SetValue(task.Title)
	v.editDesc.SetValue(task.Description)
	v.editDue.SetValue(models.FormatDueDate(task.DueDate))
	v.editTags.SetValue(strings.Join(task.Tags, ", "))
	v.editPriority = task.Priority
	v.updateEditFocus()
}

func (v *TaskListView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	v.editDue.Blur()
	v.editTags.Blur()

	switch v.editFocusIdx {
	case fieldTitle:
		v.editTitle.Focus()
	case fieldDesc:
		v.editDesc.Focus()
	case fieldDue:
		v.editDue.Focus()
	case fieldTags:
		v.editTags.Focus()
	}
}

// saveTask validates the form and writes it to the store. Invalid input
// keeps the form open with a message.
func (v *TaskListView) saveTask() tea.Cmd {
	title := strings.TrimSpace(v.editTitle.Value())
	if title == "" {
		v.editErr = "Title is required"
		v.editFocusIdx = fieldTitle
		v.updateEditFocus()
		return nil
	}
	due, err := models.ParseDueDate(v.editDue.Value())
	if err != nil {
		v.editErr = "Due date must be YYYY-MM-DD"
		v.editFocusIdx = fieldDue
		v.updateEditFocus()
		return nil
	}
	desc := strings.TrimSpace(v.editDesc.Value())
	tags := models.ParseTags(v.editTags.Value())

	if v.editingID == "" {
		v.store.AddTask(models.Draft{
			Title:       title,
			Description: desc,
			Priority:    v.editPriority,
			DueDate:     due,
			Tags:        tags,
		})
	} else if cur, ok := v.store.Task(v.editingID); ok {
		cur.Title = title
		cur.Description = desc
		cur.Priority = v.editPriority
		cur.DueDate = due
		cur.Tags = tags
		v.store.UpdateTask(cur)
	}

	v.editing = false
	v.editErr = ""
	return changed()
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderEditForm()
	}

	if v.viewingTask {
		return v.renderTaskView()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	isNarrow := contentWidth < 60

	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(contentWidth-8, 10, 30)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	var tabs []string
	for _, st := range analytics.StatusFilters {
		label := strings.ToUpper(string(st[:1])) + string(st[1:])
		if st == v.status {
			tabs = append(tabs, s.TabActive.Render(label))
		} else {
			tabs = append(tabs, s.Tab.Render(label))
		}
	}
	statusTabs := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	priorityLabel := "Any"
	if v.priority != analytics.PriorityAll {
		priorityLabel = v.priority
	}
	controls := s.FilterButton.Render(fmt.Sprintf("Sort: %s • Priority: %s", v.sortKey.Label(), priorityLabel))

	if isNarrow {
		return lipgloss.JoinVertical(lipgloss.Left, statusTabs, searchBox, controls)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, statusTabs, "  ", searchBox),
		controls,
	)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return v.renderEmpty()
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.tasks))
	lastGroup := ""

	for i := v.scrollY; i < endIdx; i++ {
		task := v.tasks[i]
		if v.sortKey == analytics.SortDueDate {
			if g := groupLabel(task); g != lastGroup {
				items = append(items, s.TitleMuted.Render(g))
				lastGroup = g
			}
		}
		items = append(items, v.renderTaskItem(task, i == v.cursor && v.focus == FocusTaskList))
	}

	if len(v.tasks) > endIdx || v.scrollY > 0 {
		items = append(items, s.TitleMuted.Render(fmt.Sprintf("%d-%d of %d", v.scrollY+1, endIdx, len(v.tasks))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func groupLabel(t models.Task) string {
	if t.DueDate == nil {
		return analytics.NoDueDate
	}
	return analytics.FormatDate(*t.DueDate)
}

func (v *TaskListView) renderEmpty() string {
	s := v.styles

	var hint string
	switch {
	case strings.TrimSpace(v.searchInput.Value()) != "":
		hint = "No tasks match your search criteria"
	case v.status == analytics.StatusCompleted:
		hint = "You haven't completed any tasks yet"
	case v.status == analytics.StatusActive:
		hint = "You don't have any active tasks"
	default:
		hint = "Start by adding a new task"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("No tasks found"),
		s.TitleMuted.Render(hint),
		"",
		s.TitleMuted.Render("Press 'n' to create one."),
	)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	check := "[ ]"
	title := task.Title
	if task.Completed {
		check = "[x]"
		title = s.TaskCompleted.Render(title)
	}
	badge := s.Priority(task.Priority).Render(string(task.Priority))
	titleLine := fmt.Sprintf("%s %s  %s", check, title, badge)

	var meta []string
	if task.DueDate != nil {
		due := "due " + analytics.FormatDate(*task.DueDate)
		if !task.Completed && task.DueDate.Before(startOfToday(v.now())) {
			meta = append(meta, s.TaskOverdue.Render(due))
		} else {
			meta = append(meta, s.TaskDue.Render(due))
		}
	}
	for _, tag := range task.Tags {
		meta = append(meta, s.Tag.Render("#"+tag))
	}
	metaLine := strings.Join(meta, " ")
	if metaLine == "" {
		metaLine = s.TitleMuted.Render("no due date")
	}

	var lineStyle lipgloss.Style
	if selected {
		lineStyle = s.ListSelected.Width(width)
	} else {
		lineStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lineStyle.Render(titleLine),
		lineStyle.Render("    "+metaLine),
	) + "\n"
}

func startOfToday(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func (v *TaskListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if v.editingID != "" {
		formTitle = "Edit Task"
	}

	fieldStyles := make([]lipgloss.Style, fieldCount)
	for i := range fieldStyles {
		fieldStyles[i] = s.Input
	}
	fieldStyles[v.editFocusIdx] = s.InputFocused
	btnStyle := s.Button
	if v.editFocusIdx == fieldSave {
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	var prios []string
	for _, p := range models.Priorities {
		label := string(p)
		if p == v.editPriority {
			prios = append(prios, s.Priority(p).Render("● "+label))
		} else {
			prios = append(prios, s.TitleMuted.Render("○ "+label))
		}
	}

	errLine := ""
	if v.editErr != "" {
		errLine = s.TaskOverdue.Render(v.editErr)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Task Title:",
		fieldStyles[fieldTitle].Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description (Optional):",
		fieldStyles[fieldDesc].Render(v.editDesc.View()),
		"",
		"Priority:",
		fieldStyles[fieldPriority].Width(inputWidth).Render(strings.Join(prios, "  ")),
		"",
		"Due Date (Optional):",
		fieldStyles[fieldDue].Width(inputWidth).Render(v.editDue.View()),
		"",
		"Tags (Optional):",
		fieldStyles[fieldTags].Width(inputWidth).Render(v.editTags.View()),
		"",
		btnStyle.Render(" Save "),
		errLine,
		s.TitleMuted.Render("Tab: next • ←→: priority • Ctrl+S: save • Esc: cancel"),
	)

	return lipgloss.Place(contentWidth, max(v.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		form,
	)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s done • %s view • %s edit • %s new • %s del • %s search • %s status • %s priority • %s sort • %s quit",
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("v"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("space") + "  toggle done",
		s.HelpKey.Render("↵") + "      view task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("v") + "      cycle status",
		s.HelpKey.Render("c") + "      show completed",
		s.HelpKey.Render("f") + "      cycle priority",
		s.HelpKey.Render("s") + "      cycle sort",
		s.HelpKey.Render("1-4") + "    switch tab",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	return lipgloss.Place(contentWidth, max(v.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	return lipgloss.Place(contentWidth, max(v.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

func (v *TaskListView) renderTaskView() string {
	if len(v.tasks) == 0 || v.cursor >= len(v.tasks) {
		return ""
	}

	s := v.styles
	task := v.tasks[v.cursor]
	textWidth := clamp(styles.ContentWidth(v.width)-10, 20, 70)

	status := "Active"
	if task.Completed {
		status = "Completed"
		if task.CompletedAt != nil {
			status += " " + task.CompletedAt.Format("Jan 2, 2006 3:04 PM")
		}
	}

	due := "None"
	if task.DueDate != nil {
		due = analytics.FormatDate(*task.DueDate)
	}

	tagsLine := "None"
	if len(task.Tags) > 0 {
		var tagStrs []string
		for _, tag := range task.Tags {
			tagStrs = append(tagStrs, s.Tag.Render("#"+tag))
		}
		tagsLine = strings.Join(tagStrs, " ")
	}

	descText := task.Description
	if descText == "" {
		descText = s.TitleMuted.Render("No description")
	}

	labelStyle := s.TitleMuted
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.MarginBottom(1).Render(task.Title),
		labelStyle.Render("Status"),
		status,
		"",
		labelStyle.Render("Priority"),
		s.Priority(task.Priority).Render(string(task.Priority)),
		"",
		labelStyle.Render("Due"),
		due,
		"",
		labelStyle.Render("Tags"),
		tagsLine,
		"",
		labelStyle.Render("Description"),
		lipgloss.NewStyle().Width(textWidth).Render(descText),
		"",
		labelStyle.Render("Created"),
		task.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		"",
		s.Help.Render(
			fmt.Sprintf("%s done • %s edit • %s delete • %s back",
				s.HelpKey.Render("space"),
				s.HelpKey.Render("e"),
				s.HelpKey.Render("d"),
				s.HelpKey.Render("esc"),
			),
		),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
