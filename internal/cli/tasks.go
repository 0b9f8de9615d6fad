package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskmaster/internal/analytics"
	"github.com/tgienger/taskmaster/internal/models"
)

// shortIDLen is how much of a task id the CLI prints
const shortIDLen = 8

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between open and completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("priority", "p", "medium", "Priority: low, medium, high")
	addCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringP("tags", "t", "", "Comma-separated tags")

	listCmd.Flags().StringP("status", "s", "", "Status: all, active, completed (default from config)")
	listCmd.Flags().StringP("priority", "p", "all", "Priority: all, low, medium, high")
	listCmd.Flags().String("sort", "", "Sort: priority, dueDate, createdAt (default from config)")
	listCmd.Flags().String("search", "", "Only titles containing this text")
	listCmd.Flags().BoolP("group", "g", false, "Group by due date")

	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().StringP("priority", "p", "", "New priority")
	editCmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().Bool("no-due", false, "Remove the due date")
	editCmd.Flags().StringP("tags", "t", "", "Replace tags (comma-separated)")
}

type addOptions struct {
	title       string
	description string
	priority    string
	due         string
	tags        string
}

func runAdd(cmd *cobra.Command, args []string) error {
	opts := addOptions{title: strings.Join(args, " ")}
	opts.description, _ = cmd.Flags().GetString("description")
	opts.priority, _ = cmd.Flags().GetString("priority")
	opts.due, _ = cmd.Flags().GetString("due")
	opts.tags, _ = cmd.Flags().GetString("tags")

	return withRuntime(cmd.OutOrStdout(), func(r *runtime) error {
		t, err := addTask(r, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s  %s\n", shortID(t.ID), t.Title)
		return nil
	})
}

func addTask(r *runtime, opts addOptions) (models.Task, error) {
	title := strings.TrimSpace(opts.title)
	if title == "" {
		return models.Task{}, errors.New("title is required")
	}
	priority, err := models.ParsePriority(opts.priority)
	if err != nil {
		return models.Task{}, err
	}
	due, err := models.ParseDueDate(opts.due)
	if err != nil {
		return models.Task{}, err
	}

	return r.store.AddTask(models.Draft{
		Title:       title,
		Description: strings.TrimSpace(opts.description),
		Priority:    priority,
		DueDate:     due,
		Tags:        models.ParseTags(opts.tags),
	}), nil
}

type listOptions struct {
	status   string
	priority string
	sort     string
	search   string
	group    bool
}

func runList(cmd *cobra.Command, args []string) error {
	var opts listOptions
	opts.status, _ = cmd.Flags().GetString("status")
	opts.priority, _ = cmd.Flags().GetString("priority")
	opts.sort, _ = cmd.Flags().GetString("sort")
	opts.search, _ = cmd.Flags().GetString("search")
	opts.group, _ = cmd.Flags().GetBool("group")

	return withRuntime(cmd.OutOrStdout(), func(r *runtime) error {
		return listTasks(r, opts)
	})
}

func listTasks(r *runtime, opts listOptions) error {
	status := r.cfg.Status()
	if opts.status != "" {
		s, err := analytics.ParseStatusFilter(opts.status)
		if err != nil {
			return err
		}
		status = s
	}
	sortKey := r.cfg.Sort()
	if opts.sort != "" {
		k, err := analytics.ParseSortKey(opts.sort)
		if err != nil {
			return err
		}
		sortKey = k
	}
	priority := strings.ToLower(strings.TrimSpace(opts.priority))
	if priority != "" && priority != analytics.PriorityAll {
		p, err := models.ParsePriority(priority)
		if err != nil {
			return err
		}
		priority = string(p)
	}

	filter := analytics.Filter{Status: status, Priority: priority, Search: opts.search}
	visible := analytics.SortTasks(analytics.FilterTasks(r.store.Snapshot().Tasks, filter), sortKey)
	if len(visible) == 0 {
		fmt.Fprintln(r.out, "No tasks found")
		return nil
	}

	if !opts.group {
		fmt.Fprintln(r.out, taskTable(visible))
		return nil
	}

	groups := analytics.GroupTasksByDate(visible)
	for _, label := range analytics.GroupKeys(groups) {
		fmt.Fprintln(r.out, lipgloss.NewStyle().Bold(true).Render(label))
		fmt.Fprintln(r.out, taskTable(groups[label]))
	}
	return nil
}

func taskTable(list []models.Task) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "", "TITLE", "PRIORITY", "DUE", "TAGS")
	for _, task := range list {
		check := " "
		if task.Completed {
			check = "x"
		}
		due := ""
		if task.DueDate != nil {
			due = analytics.FormatDate(*task.DueDate)
		}
		t.Row(shortID(task.ID), check, task.Title, string(task.Priority), due, strings.Join(task.Tags, ", "))
	}
	return t.Render()
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func runDone(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd.OutOrStdout(), func(r *runtime) error {
		return toggleTask(r, args[0])
	})
}

func toggleTask(r *runtime, ref string) error {
	t, err := r.store.Find(ref)
	if err != nil {
		return err
	}
	r.store.ToggleCompleted(t.ID)

	if t.Completed {
		fmt.Fprintf(r.out, "Reopened %s  %s\n", shortID(t.ID), t.Title)
	} else {
		fmt.Fprintf(r.out, "Completed %s  %s\n", shortID(t.ID), t.Title)
	}
	return nil
}

type editOptions struct {
	title       *string
	description *string
	priority    *string
	due         *string
	noDue       bool
	tags        *string
}

func runEdit(cmd *cobra.Command, args []string) error {
	var opts editOptions
	flags := cmd.Flags()
	changed := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	opts.title = changed("title")
	opts.description = changed("description")
	opts.priority = changed("priority")
	opts.due = changed("due")
	opts.tags = changed("tags")
	opts.noDue, _ = flags.GetBool("no-due")

	return withRuntime(cmd.OutOrStdout(), func(r *runtime) error {
		return editTask(r, args[0], opts)
	})
}

func editTask(r *runtime, ref string, opts editOptions) error {
	t, err := r.store.Find(ref)
	if err != nil {
		return err
	}

	if opts.title != nil {
		title := strings.TrimSpace(*opts.title)
		if title == "" {
			return errors.New("title cannot be empty")
		}
		t.Title = title
	}
	if opts.description != nil {
		t.Description = strings.TrimSpace(*opts.description)
	}
	if opts.priority != nil {
		p, err := models.ParsePriority(*opts.priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if opts.noDue {
		t.DueDate = nil
	} else if opts.due != nil {
		due, err := models.ParseDueDate(*opts.due)
		if err != nil {
			return err
		}
		t.DueDate = due
	}
	if opts.tags != nil {
		t.Tags = models.ParseTags(*opts.tags)
	}

	r.store.UpdateTask(t)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd.OutOrStdout(), func(r *runtime) error {
		return removeTask(r, args[0])
	})
}

func removeTask(r *runtime, ref string) error {
	t, err := r.store.Find(ref)
	if err != nil {
		return err
	}
	r.store.DeleteTask(t.ID)
	return nil
}
