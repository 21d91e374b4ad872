package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focusflow/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	Task      string `json:"task"`
	Verdict   string `json:"verdict"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

func ToJSON(entries []store.HistoryEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			ID:        e.ID,
			TaskID:    e.TaskID,
			Task:      e.TaskTitle,
			Verdict:   string(e.Verdict),
			Message:   e.Message,
			Timestamp: e.Timestamp.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
