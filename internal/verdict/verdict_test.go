package verdict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/focusflow/internal/feed"
)

// ============================================================
// Verdict type
// ============================================================

func TestVerdictValid(t *testing.T) {
	for _, v := range []Verdict{OnTrack, Distracted, Idle} {
		if !v.Valid() {
			t.Fatalf("%q should be valid", v)
		}
	}
	for _, v := range []Verdict{"", "on track", "ON TRACK", "Busy"} {
		if v.Valid() {
			t.Fatalf("%q should be invalid", v)
		}
	}
}

// ============================================================
// Result parsing
// ============================================================

func TestParseResultPlainJSON(t *testing.T) {
	raw := `{"verdict": "Distracted", "message": "Reddit again?", "reasoning": "unrelated files"}`
	res := parseResult(raw)
	if res.Verdict != Distracted {
		t.Fatalf("verdict = %q", res.Verdict)
	}
	if res.Message != "Reddit again?" {
		t.Fatalf("message = %q", res.Message)
	}
	if res.Reasoning != "unrelated files" {
		t.Fatalf("reasoning = %q", res.Reasoning)
	}
}

func TestParseResultFencedJSON(t *testing.T) {
	raw := "Here you go:\n```json\n{\"verdict\": \"On Track\", \"message\": \"Nice!\"}\n```\nanything after"
	res := parseResult(raw)
	if res.Verdict != OnTrack {
		t.Fatalf("verdict = %q", res.Verdict)
	}
	if res.Message != "Nice!" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestParseResultBareFence(t *testing.T) {
	raw := "```\n{\"verdict\": \"Idle\", \"message\": \"Hello?\"}\n```"
	res := parseResult(raw)
	if res.Verdict != Idle {
		t.Fatalf("verdict = %q", res.Verdict)
	}
}

func TestParseResultGarbageFallsBackToOnTrack(t *testing.T) {
	res := parseResult("I refuse to answer in JSON")
	if res.Verdict != OnTrack {
		t.Fatalf("fallback verdict = %q", res.Verdict)
	}
	if !strings.Contains(res.Message, "I refuse") {
		t.Fatalf("fallback message should carry raw text, got %q", res.Message)
	}
}

func TestParseResultUnknownVerdictFallsBack(t *testing.T) {
	res := parseResult(`{"verdict": "Procrastinating", "message": "hm"}`)
	if res.Verdict != OnTrack {
		t.Fatalf("verdict = %q", res.Verdict)
	}
}

func TestParseResultTruncatesLongFallback(t *testing.T) {
	res := parseResult(strings.Repeat("x", 1000))
	if len(res.Message) != maxMessageChars {
		t.Fatalf("fallback message length = %d", len(res.Message))
	}
}

// ============================================================
// Prompt building
// ============================================================

func TestBuildPromptIncludesTaskAndActivity(t *testing.T) {
	task := &TaskInfo{ID: 1, Title: "Write parser", Description: "recursive descent"}
	events := []feed.Event{
		{Kind: feed.KindModified, Source: "parser.go", Content: "func parse() {}", Time: time.Now()},
	}

	prompt := buildPrompt(task, events)
	if !strings.Contains(prompt, "Write parser") {
		t.Fatal("prompt missing task title")
	}
	if !strings.Contains(prompt, "parser.go") {
		t.Fatal("prompt missing event source")
	}
	if !strings.Contains(prompt, "MODIFIED") {
		t.Fatal("prompt missing event kind")
	}
}

func TestBuildPromptNoActivity(t *testing.T) {
	prompt := buildPrompt(&TaskInfo{Title: "Anything"}, nil)
	if !strings.Contains(prompt, "No file changes detected") {
		t.Fatal("prompt should state the idle condition")
	}
}

func TestBuildPromptCapsEventCount(t *testing.T) {
	var events []feed.Event
	for i := 0; i < 8; i++ {
		events = append(events, feed.Event{
			Kind:   feed.KindModified,
			Source: "file" + string(rune('0'+i)) + ".go",
		})
	}
	prompt := buildPrompt(&TaskInfo{Title: "T"}, events)
	if strings.Contains(prompt, "file0.go") || strings.Contains(prompt, "file2.go") {
		t.Fatal("prompt should only include the last five events")
	}
	if !strings.Contains(prompt, "file7.go") {
		t.Fatal("prompt missing the newest event")
	}
}

// ============================================================
// Agent
// ============================================================

func TestNewAgentDefaults(t *testing.T) {
	a, err := NewAgent(AgentOptions{APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if a.provider != "openai" {
		t.Fatalf("provider = %q", a.provider)
	}
	if a.model == "" || a.baseURL == "" {
		t.Fatal("defaults not applied")
	}
}

func TestNewAgentUnknownProvider(t *testing.T) {
	if _, err := NewAgent(AgentOptions{Provider: "cohere"}); err == nil {
		t.Fatal("unknown provider should be rejected")
	}
}

func TestClassifyNilTaskIsIdle(t *testing.T) {
	a, _ := NewAgent(AgentOptions{APIKey: "k"})
	res := a.Classify(context.Background(), nil, nil)
	if res.Verdict != Idle {
		t.Fatalf("verdict = %q", res.Verdict)
	}
}

func TestClassifyMissingKeyHints(t *testing.T) {
	a, _ := NewAgent(AgentOptions{})
	res := a.Classify(context.Background(), &TaskInfo{Title: "T"}, nil)
	if res.Verdict != OnTrack {
		t.Fatalf("verdict = %q", res.Verdict)
	}
	if !strings.Contains(res.Message, "API key") {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestClassifyAgainstOpenAIServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{
					"content": `{"verdict": "On Track", "message": "Crushing it!", "reasoning": "relevant edits"}`,
				}},
			},
		})
	}))
	defer srv.Close()

	a, err := NewAgent(AgentOptions{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	res := a.Classify(context.Background(), &TaskInfo{Title: "Ship it"}, nil)
	if res.Verdict != OnTrack {
		t.Fatalf("verdict = %q", res.Verdict)
	}
	if res.Message != "Crushing it!" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestClassifyAgainstAnthropicServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"text": `{"verdict": "Idle", "message": "Anyone home?"}`},
			},
		})
	}))
	defer srv.Close()

	a, err := NewAgent(AgentOptions{Provider: "anthropic", APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	res := a.Classify(context.Background(), &TaskInfo{Title: "Ship it"}, nil)
	if res.Verdict != Idle {
		t.Fatalf("verdict = %q", res.Verdict)
	}
}

func TestClassifyServerErrorDegradesToOnTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a, _ := NewAgent(AgentOptions{APIKey: "k", BaseURL: srv.URL})
	res := a.Classify(context.Background(), &TaskInfo{Title: "T"}, nil)
	if res.Verdict != OnTrack {
		t.Fatalf("verdict = %q", res.Verdict)
	}
	if !strings.Contains(res.Message, "Error analyzing activity") {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestGenerateTasksParsesBreakdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{
					"content": `{"tasks": [{"title": "Set up repo", "description": "init", "estimated_duration": "15 min"}]}`,
				}},
			},
		})
	}))
	defer srv.Close()

	a, _ := NewAgent(AgentOptions{APIKey: "k", BaseURL: srv.URL})
	drafts := a.GenerateTasks(context.Background(), "a todo app")
	if len(drafts) != 1 {
		t.Fatalf("drafts = %d", len(drafts))
	}
	if drafts[0].Title != "Set up repo" {
		t.Fatalf("title = %q", drafts[0].Title)
	}
}

func TestGenerateTasksNoKey(t *testing.T) {
	a, _ := NewAgent(AgentOptions{})
	if drafts := a.GenerateTasks(context.Background(), "anything"); drafts != nil {
		t.Fatalf("expected nil without a key, got %v", drafts)
	}
}
