// Package pricing estimates API costs from token usage.
//
// Rates are best-effort estimates per million tokens and do not track any
// provider's billing statement exactly.
package pricing

import (
	"math"
	"strings"
)

// Rate holds per-million-token prices for one model family.
type Rate struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// Usage holds the token counts priced by Cost. Counts are clamped to zero
// by the snapshot decoder; negative values here are treated as zero.
type Usage struct {
	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64
}

// rateRule matches model identifiers by substring. Rules are evaluated in
// order and the first match wins, so premium tiers must stay above their
// generic family patterns (opus-4-1 above opus, gpt-4o-mini above gpt-4o).
type rateRule struct {
	substr string
	rate   Rate
}

var rateRules = []rateRule{
	// Anthropic
	{"opus-4-1", Rate{15.00, 75.00, 18.75, 1.50}},
	{"opus-4-5", Rate{5.00, 25.00, 6.25, 0.50}},
	{"opus-4-6", Rate{5.00, 25.00, 6.25, 0.50}},
	{"opus", Rate{15.00, 75.00, 18.75, 1.50}},
	{"sonnet", Rate{3.00, 15.00, 3.75, 0.30}},
	{"haiku-3-5", Rate{0.80, 4.00, 1.00, 0.08}},
	{"haiku", Rate{1.00, 5.00, 1.25, 0.10}},

	// OpenAI
	{"gpt-4o-mini", Rate{0.15, 0.60, 0.30, 0.075}},
	{"gpt-4o", Rate{2.50, 10.00, 3.125, 1.25}},
	{"gpt-4.1-mini", Rate{0.40, 1.60, 0.50, 0.10}},
	{"gpt-4.1", Rate{2.00, 8.00, 2.50, 0.50}},
	{"gpt-5-mini", Rate{0.25, 2.00, 0.30, 0.025}},
	{"gpt-5", Rate{1.25, 10.00, 1.55, 0.125}},
	{"o1-mini", Rate{1.10, 4.40, 1.375, 0.55}},
	{"o1", Rate{15.00, 60.00, 18.75, 7.50}},
	{"o3-mini", Rate{1.10, 4.40, 1.375, 0.55}},
	{"o3", Rate{2.00, 8.00, 2.50, 0.50}},

	// Google
	{"gemini-2.5-pro", Rate{1.25, 10.00, 1.625, 0.31}},
	{"gemini-2.5-flash", Rate{0.30, 2.50, 0.383, 0.075}},
	{"gemini", Rate{0.50, 3.00, 0.625, 0.125}},

	// Others
	{"deepseek", Rate{0.27, 1.10, 0.35, 0.07}},
	{"mistral-large", Rate{2.00, 6.00, 2.50, 0.50}},
	{"mistral", Rate{0.40, 2.00, 0.50, 0.10}},
	{"grok", Rate{3.00, 15.00, 3.75, 0.75}},
	{"llama", Rate{0.30, 0.50, 0.40, 0.08}},
	{"qwen", Rate{0.30, 1.20, 0.40, 0.08}},
}

// defaultRate is used when no rule matches: approximate mid-tier pricing.
var defaultRate = Rate{3.00, 15.00, 3.75, 0.30}

// Lookup returns the rate entry for a model identifier. The second return
// reports whether a specific rule matched; the default entry is returned
// either way so a lookup never fails.
func Lookup(model string) (Rate, bool) {
	id := strings.ToLower(model)
	for _, r := range rateRules {
		if strings.Contains(id, r.substr) {
			return r.rate, true
		}
	}
	return defaultRate, false
}

// Cost computes the estimated USD cost for one usage snapshot. Cache reads
// and writes are carved out of the input count first: hosts report input
// as a cumulative figure that may already include the cache categories, so
// the regular-input term is the clamped remainder, never negative. The
// four terms are summed at full precision; rounding is a display concern.
func Cost(model string, u Usage) float64 {
	rate, _ := Lookup(model)

	input := clamp(u.InputTokens)
	output := clamp(u.OutputTokens)
	cacheWrite := clamp(u.CacheCreationTokens)
	cacheRead := clamp(u.CacheReadTokens)

	regular := input - cacheRead - cacheWrite
	if regular < 0 {
		regular = 0
	}

	cost := float64(regular) / 1_000_000 * rate.InputPerMTok
	cost += float64(output) / 1_000_000 * rate.OutputPerMTok
	cost += float64(cacheWrite) / 1_000_000 * rate.CacheWritePerMTok
	cost += float64(cacheRead) / 1_000_000 * rate.CacheReadPerMTok
	return cost
}

// RoundCents rounds a USD amount to two decimals for display.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
