package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/focusflow/internal/store"
)

func makeReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	return result.Content[0].(mcp.TextContent).Text
}

// --- add_task ---

func TestAddTask_CreatesTask(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	handler := addTask(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"title":       "Write docs",
		"description": "API reference",
		"duration":    float64(45),
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "✅ Task created successfully!")
	assert.Contains(t, text, "45 min")

	tasks, _ := s.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write docs", tasks[0].Title)
	assert.Equal(t, "45 min", tasks[0].EstimatedDuration)
}

func TestAddTask_EmptyTitleFails(t *testing.T) {
	t.Parallel()
	handler := addTask(store.NewMemory())

	result, err := handler(context.Background(), makeReq(map[string]any{}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "❌ Error creating task")
}

// --- start_task ---

func TestStartTask_ActivatesTask(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("focus me", "", "", store.StatusTodo)
	handler := startTask(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(id),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "started: 'focus me'")

	active, _ := s.ActiveTask()
	require.NotNil(t, active)
	assert.Equal(t, id, active.ID)
}

func TestStartTask_NotFound(t *testing.T) {
	t.Parallel()
	handler := startTask(store.NewMemory())

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(99),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestStartTask_DoneTaskRejected(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("finished", "", "", store.StatusTodo)
	done := store.StatusDone
	require.NoError(t, s.UpdateTask(id, store.TaskUpdate{Status: &done}))
	handler := startTask(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(id),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "already marked as Done")
}

func TestStartTask_MissingID(t *testing.T) {
	t.Parallel()
	handler := startTask(store.NewMemory())

	result, err := handler(context.Background(), makeReq(map[string]any{}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "task_id is required")
}

// --- mark_task_done ---

func TestMarkTaskDone(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("almost there", "", "", store.StatusTodo)
	handler := markTaskDone(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(id),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "🎉")

	task, _ := s.GetTask(id)
	assert.Equal(t, store.StatusDone, task.Status)
}

// --- update_task ---

func TestUpdateTask_PartialFields(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("draft", "old", "", store.StatusTodo)
	handler := updateTask(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(id),
		"title":   "final",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "updated successfully")

	task, _ := s.GetTask(id)
	assert.Equal(t, "final", task.Title)
	assert.Equal(t, "old", task.Description)
}

func TestUpdateTask_NoChanges(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("x", "", "", store.StatusTodo)
	handler := updateTask(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(id),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No changes provided")
}

func TestUpdateTask_InvalidStatus(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("x", "", "", store.StatusTodo)
	handler := updateTask(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(id),
		"status":  "Blocked",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "❌ Error updating task")
}

// --- delete_task ---

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("doomed", "", "", store.StatusTodo)
	handler := deleteTask(s)

	result, err := handler(context.Background(), makeReq(map[string]any{
		"task_id": float64(id),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "🗑️ Task")

	task, _ := s.GetTask(id)
	assert.Nil(t, task)
}

// --- listing and stats ---

func TestGetAllTasks_Empty(t *testing.T) {
	t.Parallel()
	handler := getAllTasks(store.NewMemory())

	result, err := handler(context.Background(), makeReq(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No tasks yet")
}

func TestGetCurrentTask_NoActive(t *testing.T) {
	t.Parallel()
	handler := getCurrentTask(store.NewMemory())

	result, err := handler(context.Background(), makeReq(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No active task")
}

func TestGetProductivityStats(t *testing.T) {
	t.Parallel()
	s := store.NewMemory()
	id, _ := s.AddTask("a", "", "", store.StatusTodo)
	done := store.StatusDone
	s.UpdateTask(id, store.TaskUpdate{Status: &done})
	s.AddTask("b", "", "", store.StatusTodo)
	handler := getProductivityStats(s)

	result, err := handler(context.Background(), makeReq(nil))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "Completed: 1/2 tasks (50.0%)")
	assert.Contains(t, text, "Focus Score")
}
