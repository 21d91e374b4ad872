package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(s *server.MCPServer, deps *Deps) {
	// add_task: Create a new task
	s.AddTool(
		mcp.NewTool("add_task",
			mcp.WithDescription("Create a new task in FocusFlow."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Task title"),
			),
			mcp.WithString("description",
				mcp.Description("Detailed task description"),
			),
			mcp.WithNumber("duration",
				mcp.Description("Estimated duration in minutes (default: 30)"),
			),
		),
		addTask(deps.Store),
	)

	// get_all_tasks: List every task with status
	s.AddTool(
		mcp.NewTool("get_all_tasks",
			mcp.WithDescription("Get a list of all tasks with their current status."),
		),
		getAllTasks(deps.Store),
	)

	// get_current_task: The single In Progress task
	s.AddTool(
		mcp.NewTool("get_current_task",
			mcp.WithDescription("Get the currently active task (marked as 'In Progress')."),
		),
		getCurrentTask(deps.Store),
	)

	// start_task: Activate a task; demotes any other active task
	s.AddTool(
		mcp.NewTool("start_task",
			mcp.WithDescription("Mark a task as 'In Progress' and set it as the active task. Only one task can be active at a time."),
			mcp.WithNumber("task_id",
				mcp.Required(),
				mcp.Description("ID of the task to start"),
			),
		),
		startTask(deps.Store),
	)

	// mark_task_done: Complete a task
	s.AddTool(
		mcp.NewTool("mark_task_done",
			mcp.WithDescription("Mark a task as completed ('Done')."),
			mcp.WithNumber("task_id",
				mcp.Required(),
				mcp.Description("ID of the task to complete"),
			),
		),
		markTaskDone(deps.Store),
	)

	// update_task: Partial update
	s.AddTool(
		mcp.NewTool("update_task",
			mcp.WithDescription("Update an existing task. Only the provided fields change."),
			mcp.WithNumber("task_id",
				mcp.Required(),
				mcp.Description("ID of the task to update"),
			),
			mcp.WithString("title",
				mcp.Description("New title"),
			),
			mcp.WithString("description",
				mcp.Description("New description"),
			),
			mcp.WithString("status",
				mcp.Description("New status"),
				mcp.Enum("Todo", "In Progress", "Done"),
			),
			mcp.WithNumber("duration",
				mcp.Description("New estimated duration in minutes"),
			),
		),
		updateTask(deps.Store),
	)

	// delete_task: Permanent removal
	s.AddTool(
		mcp.NewTool("delete_task",
			mcp.WithDescription("Delete a task permanently."),
			mcp.WithNumber("task_id",
				mcp.Required(),
				mcp.Description("ID of the task to delete"),
			),
		),
		deleteTask(deps.Store),
	)

	// get_productivity_stats: Task progress + focus metrics
	s.AddTool(
		mcp.NewTool("get_productivity_stats",
			mcp.WithDescription("Get productivity statistics and insights including focus metrics."),
		),
		getProductivityStats(deps.Store),
	)

	// run_focus_check: Trigger one focus check now
	s.AddTool(
		mcp.NewTool("run_focus_check",
			mcp.WithDescription("Run a focus check against the active task right now and return the verdict log."),
		),
		runFocusCheck(deps.Monitor),
	)
}

func registerResources(s *server.MCPServer, deps *Deps) {
	s.AddResource(
		mcp.NewResource("focusflow://tasks/all", "All tasks",
			mcp.WithResourceDescription("Every task with its current status."),
			mcp.WithMIMEType("text/plain"),
		),
		taskListResource(deps.Store),
	)
	s.AddResource(
		mcp.NewResource("focusflow://tasks/active", "Active task",
			mcp.WithResourceDescription("The single task currently marked In Progress."),
			mcp.WithMIMEType("text/plain"),
		),
		activeTaskResource(deps.Store),
	)
	s.AddResource(
		mcp.NewResource("focusflow://stats", "Productivity statistics",
			mcp.WithResourceDescription("Task progress and today's focus metrics."),
			mcp.WithMIMEType("text/plain"),
		),
		statsResource(deps.Store),
	)
}
