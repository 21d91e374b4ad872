package verdict

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// TaskDraft is a planner-suggested micro-task.
type TaskDraft struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	EstimatedDuration string `json:"estimated_duration"`
}

// GenerateTasks breaks a project description into ordered micro-tasks.
// Returns nil on any failure; onboarding is best-effort.
func (a *Agent) GenerateTasks(ctx context.Context, projectDescription string) []TaskDraft {
	if a.apiKey == "" {
		return nil
	}

	prompt := fmt.Sprintf(`You are FocusFlow, an AI project planner.

The user wants to build: %q

Break this down into 5-8 concrete, actionable micro-tasks. Each task should be:
- Specific and achievable in 15-30 minutes
- Ordered logically (setup → core features → polish)
- Clearly described

Respond in JSON format:
{
  "tasks": [
    {"title": "Task 1 title", "description": "Detailed description", "estimated_duration": "15 min"},
    {"title": "Task 2 title", "description": "Detailed description", "estimated_duration": "20 min"}
  ]
}`, projectDescription)

	var raw string
	var err error
	switch a.provider {
	case "anthropic":
		raw, err = a.completeAnthropic(ctx, prompt, 800)
	default:
		raw, err = a.completeOpenAI(ctx, prompt, 800)
	}
	if err != nil {
		slog.Warn("task generation failed", "provider", a.provider, "error", err)
		return nil
	}

	var parsed struct {
		Tasks []TaskDraft `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(stripFences(strings.TrimSpace(raw))), &parsed); err != nil {
		slog.Warn("task generation returned unparseable output", "error", err)
		return nil
	}
	return parsed.Tasks
}
