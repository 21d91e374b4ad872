package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusflow/internal/store"
)

var durationChoices = []string{"15 min", "30 min", "45 min", "1 hour", "2 hours", "half a day"}

type tasksModel struct {
	store  store.Store
	width  int
	height int

	tasks  []store.Task
	cursor int

	formActive bool
	form       *huh.Form
	editing    bool

	// Form field pointers (survive value copies)
	formTitle       *string
	formDescription *string
	formDuration    *string

	editingID int64
}

func newTasksModel(s store.Store) tasksModel {
	title, desc, dur := "", "", durationChoices[1]
	return tasksModel{
		store:           s,
		formTitle:       &title,
		formDescription: &desc,
		formDuration:    &dur,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t tasksModel) refresh() tea.Cmd {
	s := t.store
	return func() tea.Msg {
		tasks, _ := s.ListTasks()
		return tasksDataMsg{tasks: tasks}
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		t.tasks = msg.tasks
		if t.cursor >= len(t.tasks) {
			t.cursor = max(0, len(t.tasks)-1)
		}
		return t, nil

	case tea.KeyMsg:
		return t.updateList(msg)
	}
	return t, nil
}

func (t tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		if t.cursor < len(t.tasks)-1 {
			t.cursor++
		}
	case key.Matches(msg, keys.New):
		return t.showForm(false)
	case key.Matches(msg, keys.Edit):
		if len(t.tasks) > 0 {
			return t.showForm(true)
		}
	case key.Matches(msg, keys.Delete):
		if len(t.tasks) > 0 {
			id := t.tasks[t.cursor].ID
			if err := t.store.DeleteTask(id); err != nil {
				return t, errStatus("Delete error: %v", err)
			}
			return t, t.refresh()
		}
	case key.Matches(msg, keys.Start), key.Matches(msg, keys.Enter):
		if len(t.tasks) > 0 {
			task := t.tasks[t.cursor]
			started, err := t.store.SetActiveTask(task.ID)
			if err != nil {
				return t, errStatus("Start error: %v", err)
			}
			if !started {
				return t, errStatus("Done tasks cannot be started")
			}
			return t, tea.Batch(t.refresh(), okStatus("▶ Now monitoring: %s", task.Title))
		}
	case key.Matches(msg, keys.Done):
		if len(t.tasks) > 0 {
			task := t.tasks[t.cursor]
			done := store.StatusDone
			if err := t.store.UpdateTask(task.ID, store.TaskUpdate{Status: &done}); err != nil {
				return t, errStatus("Update error: %v", err)
			}
			return t, tea.Batch(t.refresh(), okStatus("🎉 Done: %s", task.Title))
		}
	}
	return t, nil
}

func (t tasksModel) showForm(edit bool) (tasksModel, tea.Cmd) {
	if edit {
		task := t.tasks[t.cursor]
		*t.formTitle = task.Title
		*t.formDescription = task.Description
		*t.formDuration = task.EstimatedDuration
		t.editingID = task.ID
	} else {
		*t.formTitle = ""
		*t.formDescription = ""
		*t.formDuration = durationChoices[1]
	}
	t.editing = edit

	durOptions := make([]huh.Option[string], len(durationChoices))
	for i, d := range durationChoices {
		durOptions[i] = huh.NewOption(d, d)
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(t.formTitle),
			huh.NewText().Title("Description").Lines(3).Value(t.formDescription),
			huh.NewSelect[string]().Title("Estimated Duration").Options(durOptions...).Value(t.formDuration),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		if strings.TrimSpace(*t.formTitle) == "" {
			return t, tea.Batch(t.refresh(), errStatus("Title must not be empty"))
		}
		if t.editing {
			upd := store.TaskUpdate{
				Title:             t.formTitle,
				Description:       t.formDescription,
				EstimatedDuration: t.formDuration,
			}
			if err := t.store.UpdateTask(t.editingID, upd); err != nil {
				return t, tea.Batch(t.refresh(), errStatus("Update error: %v", err))
			}
		} else {
			if _, err := t.store.AddTask(*t.formTitle, *t.formDescription, *t.formDuration, store.StatusTodo); err != nil {
				return t, tea.Batch(t.refresh(), errStatus("Create error: %v", err))
			}
		}
		return t, t.refresh()
	}

	return t, cmd
}

func (t tasksModel) view() string {
	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		if t.editing {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(t.width - 4).Render(content)
	}
	return t.renderList()
}

func (t tasksModel) renderList() string {
	w := t.width - 4
	title := titleStyle.Render("Tasks")

	if len(t.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-32s %-13s %-12s", "", "Title", "Status", "Duration"))
	rows = append(rows, header)

	for i, task := range t.tasks {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if task.Status == store.StatusInProgress {
			style = style.Foreground(colorSuccess)
		}
		row := style.Render(fmt.Sprintf("%s%s %-32s %-13s %-12s",
			cursor, statusLabel(task.Status), truncateTitle(task.Title, 32), task.Status, task.EstimatedDuration))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  s/enter: start  x: done"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncateTitle(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func okStatus(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf(format, args...)}
	}
}

func errStatus(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf(format, args...), isError: true}
	}
}
