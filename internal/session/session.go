// Package session tracks per-session lifetime counters across statusline
// invocations. The binary is re-executed on every redraw, so anything that
// must look continuous is reconstructed from one persisted record per
// session id plus the current snapshot.
package session

import "time"

// State is the persisted record for one session. Records are written whole
// (one Put per tick) so a concurrent writer can lose an update but never
// corrupt one.
type State struct {
	SessionID            string
	StartTime            time.Time
	LastCumulativeTokens int64
	MessageCount         int64
	ToolCallCount        int64
	FilesEditedCount     int64
	BashCommandCount     int64
}

// Store is the keyed persistence boundary. A missing key is not an error:
// Get returns ok=false and the caller initializes a fresh state.
type Store interface {
	Get(sessionID string) (State, bool, error)
	Put(state State) error
}

// Counters carries externally derived activity totals into Update. Nil
// fields mean "no authoritative value this tick"; negative values are
// ignored as invalid.
type Counters struct {
	ToolCalls    *int64
	FilesEdited  *int64
	BashCommands *int64
}

// Tracker applies the per-tick read-modify-write over a Store.
type Tracker struct {
	store Store
	now   func() time.Time
}

// NewTracker wraps a store. now may be nil; time.Now is used.
func NewTracker(store Store, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, now: now}
}

// Touch returns the state for a session, creating it on first sighting
// with start time = now and zero counters. Store read errors degrade to
// "session just started" rather than failing the render.
func (t *Tracker) Touch(sessionID string) State {
	st, ok, err := t.store.Get(sessionID)
	if err != nil || !ok {
		return State{SessionID: sessionID, StartTime: t.now().UTC()}
	}
	return st
}

// Update runs one tick: the message count increments by exactly one when
// the cumulative token total strictly increased since the stored value,
// and by zero otherwise, so duplicate or re-ordered ticks never
// over-count. The stored cumulative value is the source of truth, not a
// delta feed. Authoritative counters replace stored ones when supplied;
// the two sources are never summed (summing would double count once the
// authoritative source appears).
func (t *Tracker) Update(sessionID string, cumulativeTokens int64, c Counters) State {
	st := t.Touch(sessionID)

	if cumulativeTokens > st.LastCumulativeTokens {
		st.MessageCount++
	}
	st.LastCumulativeTokens = cumulativeTokens

	if v := valid(c.ToolCalls); v >= 0 {
		st.ToolCallCount = v
	}
	if v := valid(c.FilesEdited); v >= 0 {
		st.FilesEditedCount = v
	}
	if v := valid(c.BashCommands); v >= 0 {
		st.BashCommandCount = v
	}

	// Best-effort persistence: a write failure costs continuity on the
	// next tick, not this render.
	_ = t.store.Put(st)
	return st
}

func valid(p *int64) int64 {
	if p == nil || *p < 0 {
		return -1
	}
	return *p
}

// MemStore is an in-memory Store used in tests and as the fallback when
// the on-disk store cannot be opened.
type MemStore struct {
	states map[string]State
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{states: make(map[string]State)}
}

// Get implements Store.
func (m *MemStore) Get(sessionID string) (State, bool, error) {
	st, ok := m.states[sessionID]
	return st, ok, nil
}

// Put implements Store.
func (m *MemStore) Put(state State) error {
	m.states[state.SessionID] = state
	return nil
}
