package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/verdict"
)

func sampleEntries() []store.HistoryEntry {
	now := time.Now().UTC()
	return []store.HistoryEntry{
		{
			ID:        1,
			TaskID:    7,
			TaskTitle: "Write parser",
			Verdict:   verdict.OnTrack,
			Message:   "Nice, editing parser.go!",
			Timestamp: now.Add(-2 * time.Minute),
		},
		{
			ID:        2,
			TaskID:    7,
			TaskTitle: "Write parser",
			Verdict:   verdict.Distracted,
			Message:   "That's a lot of reddit tabs",
			Timestamp: now.Add(-1 * time.Minute),
		},
		{
			ID:        3,
			TaskID:    7,
			TaskTitle: "Write parser",
			Verdict:   verdict.Idle,
			Message:   "",
			Timestamp: now,
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := ToCSV(sampleEntries(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Verdict" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "Write parser" || rows[1][3] != "On Track" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[3][3] != "Idle" {
		t.Fatalf("unexpected last row: %v", rows[3])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(sampleEntries(), filepath.Join(t.TempDir(), "missing", "x.csv")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := ToJSON(sampleEntries(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Entries    []struct {
			Task    string `json:"task"`
			Verdict string `json:"verdict"`
			Message string `json:"message"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 3 || len(out.Entries) != 3 {
		t.Fatalf("expected 3 entries, got count=%d len=%d", out.Count, len(out.Entries))
	}
	if out.Entries[0].Verdict != "On Track" || out.Entries[0].Task != "Write parser" {
		t.Fatalf("unexpected entry: %+v", out.Entries[0])
	}
	if out.Entries[2].Message != "" {
		t.Fatal("empty message should be omitted or empty")
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
}
