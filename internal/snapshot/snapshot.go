// Package snapshot decodes the JSON document the host writes to stdin on
// every status bar redraw.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// FlexInt is an int64 that tolerates the field arriving as a number, a
// numeric string, null, or garbage. Anything non-numeric decodes to zero:
// a bad counter must never fail the render.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			*f = FlexInt(n)
		} else if v, err := strconv.ParseFloat(s, 64); err == nil {
			*f = FlexInt(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = FlexInt(v)
	}
	return nil
}

// Int64 returns the value clamped to non-negative.
func (f FlexInt) Int64() int64 {
	if f < 0 {
		return 0
	}
	return int64(f)
}

// FlexFloat is a float64 with the same tolerance as FlexInt.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*f = FlexFloat(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = FlexFloat(v)
	}
	return nil
}

// Input is the per-redraw snapshot from the host.
type Input struct {
	SessionID      string        `json:"session_id"`
	TranscriptPath string        `json:"transcript_path"`
	Cwd            string        `json:"cwd"`
	Version        string        `json:"version"`
	Model          ModelInfo     `json:"model"`
	Workspace      WorkspaceInfo `json:"workspace"`
	Cost           CostInfo      `json:"cost"`
	Context        ContextInfo   `json:"context_window"`
}

// ModelInfo names the active model.
type ModelInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// WorkspaceInfo carries the host's directory context.
type WorkspaceInfo struct {
	CurrentDir string `json:"current_dir"`
	ProjectDir string `json:"project_dir"`
}

// CostInfo carries the host's own accounting, when it supplies one.
type CostInfo struct {
	TotalCostUSD       FlexFloat `json:"total_cost_usd"`
	TotalDurationMs    FlexInt   `json:"total_duration_ms"`
	TotalAPIDurationMs FlexInt   `json:"total_api_duration_ms"`
	TotalLinesAdded    FlexInt   `json:"total_lines_added"`
	TotalLinesRemoved  FlexInt   `json:"total_lines_removed"`
}

// ContextInfo carries context window usage.
type ContextInfo struct {
	CurrentUsage   Usage     `json:"current_usage"`
	WindowSize     FlexInt   `json:"context_window_size"`
	UsedPercentage FlexFloat `json:"used_percentage"`
}

// Usage holds the per-category token counts.
type Usage struct {
	InputTokens         FlexInt `json:"input_tokens"`
	OutputTokens        FlexInt `json:"output_tokens"`
	CacheCreationTokens FlexInt `json:"cache_creation_input_tokens"`
	CacheReadTokens     FlexInt `json:"cache_read_input_tokens"`
}

// CumulativeTokens is the session's running input+output total, the
// monotone figure the message-count rule watches.
func (u Usage) CumulativeTokens() int64 {
	return u.InputTokens.Int64() + u.OutputTokens.Int64()
}

// Decode reads one snapshot document.
func Decode(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return in, nil
}
