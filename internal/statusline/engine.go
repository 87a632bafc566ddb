// Package statusline assembles the per-tick report and renders the line.
package statusline

import (
	"time"

	"github.com/theirongolddev/statline/internal/config"
	"github.com/theirongolddev/statline/internal/modelname"
	"github.com/theirongolddev/statline/internal/pricing"
	"github.com/theirongolddev/statline/internal/renewal"
	"github.com/theirongolddev/statline/internal/session"
	"github.com/theirongolddev/statline/internal/snapshot"
	"github.com/theirongolddev/statline/internal/transcript"
)

// Report is everything the renderer needs for one tick.
type Report struct {
	ModelLabel string

	EstimatedCost float64
	HostCost      float64
	// PreferredCost is whichever of the two the config selects.
	PreferredCost float64

	Duration     time.Duration
	MessageCount int64
	ToolCalls    int64
	FilesEdited  int64
	BashCommands int64

	LinesAdded   int64
	LinesRemoved int64

	ContextPercent float64

	Renewals []renewal.Countdown
	Activity transcript.Activity
}

// Engine wires the stateless passes around the one stateful store.
type Engine struct {
	Store session.Store
	Now   func() time.Time
}

// New returns an engine over the given store.
func New(store session.Store) *Engine {
	return &Engine{Store: store, Now: time.Now}
}

// Build runs one tick: classify, price, correlate, merge session state,
// schedule renewals. Every input problem degrades to an empty or default
// segment; Build itself cannot fail.
func (e *Engine) Build(in snapshot.Input, cfg config.Config) Report {
	now := e.Now()

	var r Report

	r.ModelLabel = modelname.Classify(in.Model.ID)
	if r.ModelLabel == "" {
		r.ModelLabel = in.Model.DisplayName
	}

	u := in.Context.CurrentUsage
	r.EstimatedCost = pricing.Cost(in.Model.ID, pricing.Usage{
		InputTokens:         u.InputTokens.Int64(),
		OutputTokens:        u.OutputTokens.Int64(),
		CacheCreationTokens: u.CacheCreationTokens.Int64(),
		CacheReadTokens:     u.CacheReadTokens.Int64(),
	})
	r.HostCost = float64(in.Cost.TotalCostUSD)
	r.PreferredCost = r.EstimatedCost
	if cfg.General.PreferHostCost && r.HostCost > 0 {
		r.PreferredCost = r.HostCost
	}

	events := transcript.ParseFile(in.TranscriptPath)
	r.Activity = transcript.Correlate(events)

	tracker := session.NewTracker(e.Store, e.Now)
	st := tracker.Update(in.SessionID, u.CumulativeTokens(), countersFrom(r.Activity, len(events) > 0))

	r.Duration = now.Sub(st.StartTime)
	if r.Duration < 0 {
		r.Duration = 0
	}
	r.MessageCount = st.MessageCount
	r.ToolCalls = st.ToolCallCount
	r.FilesEdited = st.FilesEditedCount
	r.BashCommands = st.BashCommandCount

	r.LinesAdded = in.Cost.TotalLinesAdded.Int64()
	r.LinesRemoved = in.Cost.TotalLinesRemoved.Int64()

	r.ContextPercent = float64(in.Context.UsedPercentage)
	if r.ContextPercent == 0 {
		if size := in.Context.WindowSize.Int64(); size > 0 {
			r.ContextPercent = float64(u.CumulativeTokens()+u.CacheReadTokens.Int64()) / float64(size) * 100
		}
	}

	for _, plan := range cfg.RenewalPlans() {
		if c, ok := renewal.Next(plan, now); ok {
			r.Renewals = append(r.Renewals, c)
		}
	}

	return r
}

// countersFrom derives the authoritative lifetime counters from the
// transcript correlation. The transcript is append-only, so completed-call
// tallies are lifetime totals and replace the stored counters outright.
// Without a readable transcript there is no authoritative source and the
// stored counters stand.
func countersFrom(act transcript.Activity, haveTranscript bool) session.Counters {
	if !haveTranscript {
		return session.Counters{}
	}

	var tools, files, bash int64
	for _, t := range act.Tallies {
		tools += int64(t.Count)
		switch t.Name {
		case "Edit", "MultiEdit", "Write", "NotebookEdit":
			files += int64(t.Count)
		case "Bash":
			bash += int64(t.Count)
		}
	}
	return session.Counters{ToolCalls: &tools, FilesEdited: &files, BashCommands: &bash}
}
