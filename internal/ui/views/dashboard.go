package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmaster/internal/analytics"
	"github.com/tgienger/taskmaster/internal/models"
	"github.com/tgienger/taskmaster/internal/streak"
	"github.com/tgienger/taskmaster/internal/tasks"
	"github.com/tgienger/taskmaster/internal/ui/styles"
)

const (
	weekDays      = 7
	upcomingCount = 3
	barWidth      = 20
)

// DashboardView summarizes progress. It renders straight from the store, so
// it needs no load step.
type DashboardView struct {
	store  *tasks.Store
	styles *styles.Styles
	now    func() time.Time
	width  int
	height int
}

func NewDashboardView(store *tasks.Store) *DashboardView {
	return &DashboardView{
		store:  store,
		styles: styles.NewStyles(),
		now:    time.Now,
	}
}

func (v *DashboardView) Restyle() { v.styles = styles.NewStyles() }

func (v *DashboardView) Init() tea.Cmd { return nil }

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

func (v *DashboardView) View() string {
	state := v.store.Snapshot()
	now := v.now()
	s := v.styles

	sections := []string{
		s.Title.Render("Dashboard"),
		s.TitleMuted.Render("Your productivity overview and task insights"),
		"",
		v.renderStreak(state.Streak, now),
		"",
		v.renderCards(analytics.ProductivityStatsAt(state.Tasks, now)),
		"",
		v.renderWeek(analytics.CompletionByDay(state.Tasks, now, weekDays)),
		"",
		v.renderPriorities(analytics.PriorityBreakdown(state.Tasks), len(state.Tasks)),
		"",
		v.renderUpcoming(analytics.UpcomingTasks(state.Tasks, upcomingCount)),
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (v *DashboardView) renderStreak(sd models.StreakData, now time.Time) string {
	s := v.styles
	current := streak.Current(sd, now)

	line := streak.Headline(current)

	status := streak.Status(sd, now)
	detail := fmt.Sprintf("Longest: %d • %s", sd.LongestStreak, status)
	if status == streak.AtRisk {
		detail += " • complete a task today to keep it going"
	}

	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Streak.Render(fmt.Sprintf("🔥 %d", current))+"  "+line,
		s.TitleMuted.Render(detail),
	))
}

func (v *DashboardView) renderCards(st analytics.ProductivityStats) string {
	card := func(title, value, caption string) string {
		return v.styles.Card.Width(16).Render(lipgloss.JoinVertical(lipgloss.Left,
			v.styles.TitleMuted.Render(title),
			v.styles.CardValue.Render(value),
			v.styles.TitleMuted.Render(caption),
		))
	}

	cards := []string{
		card("Total Tasks", fmt.Sprint(st.Total), "tasks created"),
		card("Completed", fmt.Sprint(st.Completed), "tasks done"),
		card("Completion Rate", fmt.Sprintf("%d%%", st.CompletionRate), "overall rate"),
		card("Today", fmt.Sprint(st.TasksCompletedToday), "completed today"),
	}
	if styles.ContentWidth(v.width) < 76 {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (v *DashboardView) renderWeek(days []analytics.DayStat) string {
	s := v.styles
	peak := 1
	for _, d := range days {
		peak = max(peak, d.Total)
	}

	lines := []string{s.Title.Render("Weekly Progress")}
	for _, d := range days {
		done := styles.Bar(float64(d.Completed)/float64(peak), barWidth, s.BarDone, s.BarEmpty)
		lines = append(lines, fmt.Sprintf("%s %s %d/%d", d.Label, done, d.Completed, d.Total))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *DashboardView) renderPriorities(counts []analytics.PriorityCount, total int) string {
	s := v.styles
	lines := []string{s.Title.Render("Tasks by Priority")}
	for _, c := range counts {
		frac := 0.0
		if total > 0 {
			frac = float64(c.Count) / float64(total)
		}
		label := s.Priority(c.Priority).Width(7).Render(string(c.Priority))
		lines = append(lines, fmt.Sprintf("%s %s %d", label, styles.Bar(frac, barWidth, s.Priority(c.Priority), s.BarEmpty), c.Count))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *DashboardView) renderUpcoming(upcoming []models.Task) string {
	s := v.styles
	lines := []string{s.Title.Render("Upcoming Tasks")}
	if len(upcoming) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.TitleMuted.Render("No upcoming tasks"))...)
	}
	for _, t := range upcoming {
		due := s.TitleMuted.Render(analytics.NoDueDate)
		if t.DueDate != nil {
			due = s.TaskDue.Render(analytics.FormatDate(*t.DueDate))
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", s.Priority(t.Priority).Render("●"), t.Title, due))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
