package verdict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sadopc/focusflow/internal/feed"
)

const (
	openaiBaseURL    = "https://api.openai.com/v1"
	anthropicBaseURL = "https://api.anthropic.com/v1"

	defaultOpenAIModel    = "gpt-4o"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"

	maxMessageChars = 200
)

// Agent is an LLM-backed Provider. It builds an accountability prompt from
// the active task and recent activity, calls a hosted chat API over HTTP and
// parses the JSON reply. Every failure mode collapses into an On Track
// result with an explanatory message so a broken backend stays silent
// instead of nagging.
type Agent struct {
	provider string // "openai" or "anthropic"
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
}

// AgentOptions configures NewAgent. Zero values pick provider defaults.
type AgentOptions struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

func NewAgent(opts AgentOptions) (*Agent, error) {
	provider := strings.ToLower(opts.Provider)
	if provider == "" {
		provider = "openai"
	}

	a := &Agent{
		provider: provider,
		apiKey:   opts.APIKey,
		model:    opts.Model,
		baseURL:  opts.BaseURL,
	}

	switch provider {
	case "openai":
		if a.model == "" {
			a.model = defaultOpenAIModel
		}
		if a.baseURL == "" {
			a.baseURL = openaiBaseURL
		}
	case "anthropic":
		if a.model == "" {
			a.model = defaultAnthropicModel
		}
		if a.baseURL == "" {
			a.baseURL = anthropicBaseURL
		}
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	a.client = &http.Client{Timeout: timeout}

	return a, nil
}

// Classify implements Provider.
func (a *Agent) Classify(ctx context.Context, task *TaskInfo, recent []feed.Event) Result {
	if task == nil {
		return Result{
			Verdict:   Idle,
			Message:   "No active task selected. Pick a task to get started! 🎯",
			Reasoning: "no active task",
		}
	}

	if a.apiKey == "" {
		return Result{
			Verdict:   OnTrack,
			Message:   "API key not configured. Add your OpenAI or Anthropic API key to the config.",
			Reasoning: "no API key",
		}
	}

	prompt := buildPrompt(task, recent)

	raw, err := a.complete(ctx, prompt)
	if err != nil {
		slog.Warn("focus agent call failed", "provider", a.provider, "error", err)
		return Result{
			Verdict:   OnTrack,
			Message:   fmt.Sprintf("Error analyzing activity: %v", err),
			Reasoning: "provider unavailable",
		}
	}

	return parseResult(raw)
}

// buildPrompt renders the accountability prompt. The agent plays a
// Duolingo-style buddy: encouraging when on track, playfully sassy when
// distracted, gently nudging when idle.
func buildPrompt(task *TaskInfo, recent []feed.Event) string {
	var b strings.Builder
	b.WriteString("You are FocusFlow, a Duolingo-style accountability buddy for developers.\n\n")
	fmt.Fprintf(&b, "**Current Task:**\n- Title: %s\n- Description: %s\n\n", task.Title, orDefault(task.Description, "No description"))

	if len(recent) == 0 {
		b.WriteString("**Recent Activity:** No file changes detected in the last 60 seconds.\n\n")
		b.WriteString(`**Your Job:** Analyze the situation and respond with ONE of these verdicts:
1. "On Track" - If there's activity related to the task
2. "Distracted" - If files unrelated to the task are being edited
3. "Idle" - If there's no activity

`)
	} else {
		b.WriteString("**Recent File Activity (last 60 seconds):**\n")
		start := 0
		if len(recent) > 5 {
			start = len(recent) - 5
		}
		for _, ev := range recent[start:] {
			content := ev.Content
			if len(content) > 200 {
				content = content[:200]
			}
			fmt.Fprintf(&b, "- %s: %s\n  Content: %s\n", strings.ToUpper(string(ev.Kind)), ev.Source, orDefault(content, "N/A"))
		}
		b.WriteString("\n**Your Job:** Analyze if the file changes are related to the current task.\n\n")
		b.WriteString(`**Personality Guidelines:**
- "On Track": Be encouraging and specific
- "Distracted": Be playfully sassy
- "Idle": Be gently nudging

`)
	}

	b.WriteString(`Respond in JSON format:
{
  "verdict": "On Track" | "Distracted" | "Idle",
  "message": "Your message (1-2 sentences)",
  "reasoning": "Brief explanation"
}`)
	return b.String()
}

// parseResult decodes the model reply, tolerating markdown code fences.
// Anything unparseable becomes an On Track result carrying the raw text.
func parseResult(raw string) Result {
	content := stripFences(strings.TrimSpace(raw))

	var parsed struct {
		Verdict   string `json:"verdict"`
		Message   string `json:"message"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		v := Verdict(parsed.Verdict)
		if v.Valid() {
			return Result{Verdict: v, Message: parsed.Message, Reasoning: parsed.Reasoning}
		}
	}

	msg := raw
	if len(msg) > maxMessageChars {
		msg = msg[:maxMessageChars]
	}
	return Result{
		Verdict:   OnTrack,
		Message:   msg,
		Reasoning: "response parsing fallback",
	}
}

func stripFences(content string) string {
	if i := strings.Index(content, "```json"); i >= 0 {
		content = content[i+len("```json"):]
		if j := strings.Index(content, "```"); j >= 0 {
			content = content[:j]
		}
		return strings.TrimSpace(content)
	}
	if i := strings.Index(content, "```"); i >= 0 {
		content = content[i+len("```"):]
		if j := strings.Index(content, "```"); j >= 0 {
			content = content[:j]
		}
		return strings.TrimSpace(content)
	}
	return content
}

func (a *Agent) complete(ctx context.Context, prompt string) (string, error) {
	switch a.provider {
	case "anthropic":
		return a.completeAnthropic(ctx, prompt, 300)
	default:
		return a.completeOpenAI(ctx, prompt, 300)
	}
}

func (a *Agent) completeOpenAI(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body := map[string]any{
		"model":       a.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": 0.7,
		"max_tokens":  maxTokens,
	}

	data, err := a.post(ctx, a.baseURL+"/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + a.apiKey,
	})
	if err != nil {
		return "", err
	}

	var reply struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(reply.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return reply.Choices[0].Message.Content, nil
}

func (a *Agent) completeAnthropic(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body := map[string]any{
		"model":       a.model,
		"max_tokens":  maxTokens,
		"temperature": 0.7,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
	}

	data, err := a.post(ctx, a.baseURL+"/messages", body, map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	})
	if err != nil {
		return "", err
	}

	var reply struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(reply.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return reply.Content[0].Text, nil
}

func (a *Agent) post(ctx context.Context, url string, body any, headers map[string]string) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", resp.Status, truncate(string(data), 120))
	}
	return data, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
