package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sadopc/focusflow/internal/monitor"
	"github.com/sadopc/focusflow/internal/store"
)

// Every handler answers with a short human-readable text result; failures
// become ❌ messages rather than protocol errors so the assistant can relay
// them verbatim.

func addTask(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		title, _ := args["title"].(string)
		description, _ := args["description"].(string)
		minutes := 30
		if d, ok := args["duration"].(float64); ok && d > 0 {
			minutes = int(d)
		}

		id, err := s.AddTask(title, description, fmt.Sprintf("%d min", minutes), store.StatusTodo)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error creating task: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"✅ Task created successfully! ID: %d, Title: '%s', Duration: %d min", id, title, minutes)), nil
	}
}

func getAllTasks(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(renderTaskList(s)), nil
	}
}

func getCurrentTask(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(renderActiveTask(s)), nil
	}
}

func startTask(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := taskID(req)
		if !ok {
			return mcp.NewToolResultText("❌ task_id is required"), nil
		}

		task, err := s.GetTask(id)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error starting task: %v", err)), nil
		}
		if task == nil {
			return mcp.NewToolResultText(fmt.Sprintf(
				"❌ Task %d not found. Use get_all_tasks to see available tasks.", id)), nil
		}

		started, err := s.SetActiveTask(id)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error starting task: %v", err)), nil
		}
		if !started {
			return mcp.NewToolResultText(fmt.Sprintf(
				"❌ Failed to start task %d. Task is already marked as Done.", id)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"✅ Task %d started: '%s'. FocusFlow is now monitoring your progress!", id, task.Title)), nil
	}
}

func markTaskDone(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := taskID(req)
		if !ok {
			return mcp.NewToolResultText("❌ task_id is required"), nil
		}

		task, err := s.GetTask(id)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error marking task done: %v", err)), nil
		}
		if task == nil {
			return mcp.NewToolResultText(fmt.Sprintf(
				"❌ Task %d not found. Use get_all_tasks to see available tasks.", id)), nil
		}

		done := store.StatusDone
		if err := s.UpdateTask(id, store.TaskUpdate{Status: &done}); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error marking task done: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"🎉 Task %d completed: '%s'! Great work!", id, task.Title)), nil
	}
}

func updateTask(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := taskID(req)
		if !ok {
			return mcp.NewToolResultText("❌ task_id is required"), nil
		}
		args := req.GetArguments()

		task, err := s.GetTask(id)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error updating task: %v", err)), nil
		}
		if task == nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Task %d not found.", id)), nil
		}

		var upd store.TaskUpdate
		changed := false
		if title, ok := args["title"].(string); ok {
			upd.Title = &title
			changed = true
		}
		if desc, ok := args["description"].(string); ok {
			upd.Description = &desc
			changed = true
		}
		if status, ok := args["status"].(string); ok {
			st := store.Status(status)
			upd.Status = &st
			changed = true
		}
		if d, ok := args["duration"].(float64); ok && d > 0 {
			dur := fmt.Sprintf("%d min", int(d))
			upd.EstimatedDuration = &dur
			changed = true
		}

		if !changed {
			return mcp.NewToolResultText("ℹ️ No changes provided."), nil
		}
		if err := s.UpdateTask(id, upd); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error updating task: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("✅ Task %d updated successfully!", id)), nil
	}
}

func deleteTask(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := taskID(req)
		if !ok {
			return mcp.NewToolResultText("❌ task_id is required"), nil
		}

		task, err := s.GetTask(id)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error deleting task: %v", err)), nil
		}
		if task == nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Task %d not found.", id)), nil
		}

		if err := s.DeleteTask(id); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error deleting task: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("🗑️ Task %d deleted: '%s'", id, task.Title)), nil
	}
}

func getProductivityStats(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(renderStats(s)), nil
	}
}

func runFocusCheck(m *monitor.Monitor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := m.RunCheck(ctx)
		text := strings.Join(result.Log, "\n")
		if result.Escalated {
			text += "\n\n🚨 You've been off track for several checks in a row. Time to refocus!"
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- Resources ---

func taskListResource(s store.Store) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return textResource(req.Params.URI, renderTaskList(s)), nil
	}
}

func activeTaskResource(s store.Store) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return textResource(req.Params.URI, renderActiveTask(s)), nil
	}
}

func statsResource(s store.Store) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return textResource(req.Params.URI, renderStats(s)), nil
	}
}

func textResource(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: text},
	}
}

// --- Shared rendering ---

func renderTaskList(s store.Store) string {
	tasks, err := s.ListTasks()
	if err != nil {
		return fmt.Sprintf("❌ Error getting tasks: %v", err)
	}
	if len(tasks) == 0 {
		return "📝 No tasks yet. Use add_task to create your first task!"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 All Tasks (%d total):\n\n", len(tasks))
	for _, t := range tasks {
		sb.WriteString(fmt.Sprintf("%s [%d] %s\n", statusEmoji(t.Status), t.ID, t.Title))
		if t.Description != "" {
			sb.WriteString(fmt.Sprintf("   Description: %s\n", t.Description))
		}
		sb.WriteString(fmt.Sprintf("   Status: %s | Duration: %s\n\n", t.Status, orNA(t.EstimatedDuration)))
	}
	return strings.TrimSpace(sb.String())
}

func renderActiveTask(s store.Store) string {
	task, err := s.ActiveTask()
	if err != nil {
		return fmt.Sprintf("❌ Error getting current task: %v", err)
	}
	if task == nil {
		return "ℹ️ No active task. Use start_task(task_id) to begin working on a task."
	}
	return fmt.Sprintf(`📋 Current Active Task:
- ID: %d
- Title: %s
- Description: %s
- Duration: %s
- Status: %s`,
		task.ID, task.Title, orDefault(task.Description, "No description"),
		orDefault(task.EstimatedDuration, "Not specified"), task.Status)
}

func renderStats(s store.Store) string {
	tasks, err := s.ListTasks()
	if err != nil {
		return fmt.Sprintf("❌ Error getting stats: %v", err)
	}
	if len(tasks) == 0 {
		return "📊 No tasks to analyze yet. Create some tasks to see your productivity stats!"
	}

	total := len(tasks)
	var completed, inProgress, todo int
	for _, t := range tasks {
		switch t.Status {
		case store.StatusDone:
			completed++
		case store.StatusInProgress:
			inProgress++
		default:
			todo++
		}
	}
	completionRate := float64(completed) / float64(total) * 100

	stats, err := s.TodayStats()
	if err != nil {
		return fmt.Sprintf("❌ Error getting stats: %v", err)
	}
	streak, err := s.CurrentStreak()
	if err != nil {
		return fmt.Sprintf("❌ Error getting stats: %v", err)
	}

	return fmt.Sprintf(`📊 Productivity Statistics:

📋 Task Progress:
✅ Completed: %d/%d tasks (%.1f%%)
🔄 In Progress: %d task(s)
⏳ To Do: %d tasks

🎯 Focus Metrics (Today):
⭐ Focus Score: %.1f/100
🔥 Current Streak: %d consecutive "On Track" checks
📊 Total Checks: %d
  • On Track: %d
  • Distracted: %d
  • Idle: %d

Keep up the good work! 🎯`,
		completed, total, completionRate, inProgress, todo,
		stats.FocusScore, streak, stats.TotalChecks,
		stats.OnTrack, stats.Distracted, stats.Idle)
}

func statusEmoji(s store.Status) string {
	switch s {
	case store.StatusDone:
		return "✅"
	case store.StatusInProgress:
		return "🔄"
	default:
		return "⏳"
	}
}

func taskID(req mcp.CallToolRequest) (int64, bool) {
	id, ok := req.GetArguments()["task_id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

func orNA(s string) string { return orDefault(s, "N/A") }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
