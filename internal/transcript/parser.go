package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"time"
)

// rawLine mirrors the transcript JSONL envelope. Content is kept raw
// because user entries carry either a plain string or a block array.
type rawLine struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Message   *struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// rawBlock is one content block inside a message.
type rawBlock struct {
	Type      string          `json:"type"`
	ID        string          `json:"id"`
	ToolUseID string          `json:"tool_use_id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	IsError   bool            `json:"is_error"`
}

// Byte patterns for the cheap pre-filter: lines without either marker
// cannot produce an event and are skipped without a JSON parse.
var (
	patToolUse    = []byte(`"tool_use"`)
	patToolResult = []byte(`"tool_result"`)
)

// ParseFile decodes the tool call and result events from a transcript
// log. The log is treated as best-effort input: a missing or unreadable
// file yields an empty event list, and malformed lines are skipped, so a
// render never aborts over transcript problems.
func ParseFile(path string) []ToolEvent {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var events []ToolEvent

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if !bytes.Contains(line, patToolUse) && !bytes.Contains(line, patToolResult) {
			continue
		}

		var entry rawLine
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.Message == nil || len(entry.Message.Content) == 0 {
			continue
		}

		var blocks []rawBlock
		if err := json.Unmarshal(entry.Message.Content, &blocks); err != nil {
			continue // string content, no blocks
		}

		ts, _ := time.Parse(time.RFC3339Nano, entry.Timestamp)

		for _, b := range blocks {
			switch b.Type {
			case "tool_use":
				if b.ID == "" {
					continue
				}
				events = append(events, ToolEvent{
					Kind:      KindCall,
					ID:        b.ID,
					Name:      b.Name,
					Input:     b.Input,
					Timestamp: ts,
				})
			case "tool_result":
				if b.ToolUseID == "" {
					continue
				}
				events = append(events, ToolEvent{
					Kind:         KindResult,
					CorrelatesTo: b.ToolUseID,
					IsError:      b.IsError,
					Timestamp:    ts,
				})
			}
		}
	}

	// A scanner error mid-file still leaves the events decoded so far.
	return events
}
