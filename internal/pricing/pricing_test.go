package pricing

import (
	"math"
	"testing"
)

func TestCostBasic(t *testing.T) {
	// 1000 input @ $3/M + 500 output @ $15/M = 0.003 + 0.0075
	got := Cost("claude-sonnet-4-5", Usage{InputTokens: 1000, OutputTokens: 500})
	want := 0.0105
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Cost = %.6f, want %.6f", got, want)
	}
	if RoundCents(got) != 0.01 {
		t.Fatalf("RoundCents = %.2f, want 0.01", RoundCents(got))
	}
}

func TestCostRegularInputNeverNegative(t *testing.T) {
	// Cache categories exceed input: the regular-input term clamps to zero
	// instead of producing a negative credit.
	u := Usage{
		InputTokens:         100,
		CacheCreationTokens: 5_000,
		CacheReadTokens:     50_000,
	}
	got := Cost("claude-opus-4-1", u)
	want := 5_000.0/1e6*18.75 + 50_000.0/1e6*1.50
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Cost = %.6f, want %.6f", got, want)
	}
	if got < 0 {
		t.Fatal("cost went negative")
	}
}

func TestCostNegativeCountsTreatedAsZero(t *testing.T) {
	got := Cost("claude-sonnet-4", Usage{InputTokens: -10, OutputTokens: -5})
	if got != 0 {
		t.Fatalf("Cost = %.6f, want 0", got)
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	premium, ok := Lookup("claude-opus-4-1-20250805")
	if !ok {
		t.Fatal("expected rule match for opus-4-1")
	}
	if premium.InputPerMTok != 15.00 {
		t.Fatalf("opus-4-1 input rate = %.2f, want 15.00", premium.InputPerMTok)
	}

	discounted, ok := Lookup("claude-opus-4-5-20251101")
	if !ok {
		t.Fatal("expected rule match for opus-4-5")
	}
	if discounted.InputPerMTok != 5.00 {
		t.Fatalf("opus-4-5 input rate = %.2f, want 5.00", discounted.InputPerMTok)
	}

	mini, _ := Lookup("gpt-4o-mini-2024-07-18")
	full, _ := Lookup("gpt-4o")
	if mini.InputPerMTok >= full.InputPerMTok {
		t.Fatal("gpt-4o-mini rule lost to the gpt-4o family rule")
	}
}

func TestLookupDefaultEntry(t *testing.T) {
	rate, ok := Lookup("totally-unknown-model-x")
	if ok {
		t.Fatal("unknown model unexpectedly matched a rule")
	}
	if rate != defaultRate {
		t.Fatalf("rate = %+v, want default %+v", rate, defaultRate)
	}
}

func TestCostNonNegativeAcrossSnapshots(t *testing.T) {
	snapshots := []Usage{
		{},
		{InputTokens: 1},
		{OutputTokens: math.MaxInt32},
		{InputTokens: 10, CacheReadTokens: 10, CacheCreationTokens: 10},
	}
	for _, u := range snapshots {
		if c := Cost("claude-haiku-4-5", u); c < 0 {
			t.Fatalf("Cost(%+v) = %.6f, negative", u, c)
		}
	}
}
