package session

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestTouchCreatesOnFirstSighting(t *testing.T) {
	tr := NewTracker(NewMemStore(), fixedNow)

	st := tr.Touch("abc")
	if st.SessionID != "abc" {
		t.Fatalf("SessionID = %q, want abc", st.SessionID)
	}
	if !st.StartTime.Equal(fixedNow()) {
		t.Fatalf("StartTime = %v, want %v", st.StartTime, fixedNow())
	}
	if st.MessageCount != 0 || st.LastCumulativeTokens != 0 {
		t.Fatal("fresh state has non-zero counters")
	}
}

func TestUpdateMonotonicCounting(t *testing.T) {
	tr := NewTracker(NewMemStore(), fixedNow)

	// N strictly increasing ticks count exactly N messages.
	totals := []int64{100, 250, 251, 9000, 12000}
	var st State
	for _, c := range totals {
		st = tr.Update("abc", c, Counters{})
	}
	if st.MessageCount != int64(len(totals)) {
		t.Fatalf("MessageCount = %d, want %d", st.MessageCount, len(totals))
	}
	if st.LastCumulativeTokens != 12000 {
		t.Fatalf("LastCumulativeTokens = %d, want 12000", st.LastCumulativeTokens)
	}
}

func TestUpdateIdempotentUnderRepetition(t *testing.T) {
	tr := NewTracker(NewMemStore(), fixedNow)

	tr.Update("abc", 500, Counters{})
	st := tr.Update("abc", 500, Counters{})
	if st.MessageCount != 1 {
		t.Fatalf("MessageCount after duplicate tick = %d, want 1", st.MessageCount)
	}

	// An out-of-order (lower) total resets the watermark without counting.
	st = tr.Update("abc", 400, Counters{})
	if st.MessageCount != 1 {
		t.Fatalf("MessageCount after regressed tick = %d, want 1", st.MessageCount)
	}
	if st.LastCumulativeTokens != 400 {
		t.Fatalf("LastCumulativeTokens = %d, want 400", st.LastCumulativeTokens)
	}
}

func TestUpdatePrefersAuthoritativeCounters(t *testing.T) {
	tr := NewTracker(NewMemStore(), fixedNow)

	tools := int64(7)
	st := tr.Update("abc", 100, Counters{ToolCalls: &tools})
	if st.ToolCallCount != 7 {
		t.Fatalf("ToolCallCount = %d, want 7", st.ToolCallCount)
	}

	// Absent value keeps the stored counter, never sums.
	st = tr.Update("abc", 200, Counters{})
	if st.ToolCallCount != 7 {
		t.Fatalf("ToolCallCount after absent tick = %d, want 7", st.ToolCallCount)
	}

	// A fresh authoritative value replaces, again without summing.
	tools = 9
	st = tr.Update("abc", 300, Counters{ToolCalls: &tools})
	if st.ToolCallCount != 9 {
		t.Fatalf("ToolCallCount = %d, want 9", st.ToolCallCount)
	}

	// Negative values are invalid and ignored.
	bad := int64(-3)
	st = tr.Update("abc", 400, Counters{ToolCalls: &bad})
	if st.ToolCallCount != 9 {
		t.Fatalf("ToolCallCount after invalid tick = %d, want 9", st.ToolCallCount)
	}
}

type failingStore struct{}

func (failingStore) Get(string) (State, bool, error) {
	return State{}, false, errReadFailed
}
func (failingStore) Put(State) error { return errReadFailed }

var errReadFailed = &storeErr{}

type storeErr struct{}

func (*storeErr) Error() string { return "store unavailable" }

func TestUnreadableStoreDegradesToFreshSession(t *testing.T) {
	tr := NewTracker(failingStore{}, fixedNow)

	st := tr.Update("abc", 100, Counters{})
	if st.MessageCount != 1 {
		t.Fatalf("MessageCount = %d, want 1", st.MessageCount)
	}
	if !st.StartTime.Equal(fixedNow()) {
		t.Fatal("degraded state did not initialize start time")
	}
}
