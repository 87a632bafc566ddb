package snapshot

import (
	"strings"
	"testing"
)

func TestDecodeFullSnapshot(t *testing.T) {
	doc := `{
		"session_id": "abc-123",
		"transcript_path": "/tmp/t.jsonl",
		"model": {"id": "claude-sonnet-4-5", "display_name": "Sonnet 4.5"},
		"workspace": {"current_dir": "/src/app", "project_dir": "/src/app"},
		"cost": {
			"total_cost_usd": 0.42,
			"total_duration_ms": 95000,
			"total_lines_added": 120,
			"total_lines_removed": 30
		},
		"context_window": {
			"context_window_size": 200000,
			"current_usage": {
				"input_tokens": 1000,
				"output_tokens": 500,
				"cache_creation_input_tokens": 200,
				"cache_read_input_tokens": 800
			}
		}
	}`

	in, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.SessionID != "abc-123" || in.Model.ID != "claude-sonnet-4-5" {
		t.Fatalf("identity fields: %+v", in)
	}
	if float64(in.Cost.TotalCostUSD) != 0.42 {
		t.Fatalf("TotalCostUSD = %v", in.Cost.TotalCostUSD)
	}
	u := in.Context.CurrentUsage
	if u.InputTokens.Int64() != 1000 || u.CacheReadTokens.Int64() != 800 {
		t.Fatalf("usage: %+v", u)
	}
	if u.CumulativeTokens() != 1500 {
		t.Fatalf("CumulativeTokens = %d, want 1500", u.CumulativeTokens())
	}
}

func TestDecodeMalformedNumericsBecomeZero(t *testing.T) {
	doc := `{
		"context_window": {"current_usage": {
			"input_tokens": "not-a-number",
			"output_tokens": null,
			"cache_creation_input_tokens": "1234",
			"cache_read_input_tokens": {"nested": true}
		}},
		"cost": {"total_cost_usd": "0.25", "total_lines_added": "oops"}
	}`

	in, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u := in.Context.CurrentUsage
	if u.InputTokens != 0 || u.OutputTokens != 0 {
		t.Fatalf("garbage counts not zeroed: %+v", u)
	}
	if u.CacheCreationTokens.Int64() != 1234 {
		t.Fatalf("numeric string not decoded: %+v", u)
	}
	if float64(in.Cost.TotalCostUSD) != 0.25 {
		t.Fatalf("TotalCostUSD = %v, want 0.25", in.Cost.TotalCostUSD)
	}
	if in.Cost.TotalLinesAdded != 0 {
		t.Fatalf("TotalLinesAdded = %v, want 0", in.Cost.TotalLinesAdded)
	}
}

func TestFlexIntClampsNegative(t *testing.T) {
	var f FlexInt = -50
	if f.Int64() != 0 {
		t.Fatalf("Int64 = %d, want 0", f.Int64())
	}
}

func TestDecodeRejectsNonJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader("plainly not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
