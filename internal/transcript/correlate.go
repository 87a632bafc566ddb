package transcript

import (
	"encoding/json"
	"sort"
)

// RunningCall is an in-flight tool call: a call event with no result yet.
type RunningCall struct {
	ID   string
	Name string
}

// RunningAgent is an in-flight sub-agent delegation.
type RunningAgent struct {
	ID          string
	AgentType   string
	Description string
}

// Tally counts completed calls for one tool name.
type Tally struct {
	Name  string
	Count int
}

// Activity is the correlation result over one event log.
type Activity struct {
	RunningCalls  []RunningCall
	RunningAgents []RunningAgent
	TaskList      TaskList
	Tallies       []Tally
}

// subagentInput is the payload shape of a Task delegation call.
type subagentInput struct {
	Description  string `json:"description"`
	SubagentType string `json:"subagent_type"`
}

// taskListInput is the payload shape of a TodoWrite bookkeeping call.
type taskListInput struct {
	Todos []TaskItem `json:"todos"`
}

// Correlate runs the two-pass mapping over an event log: collect the set
// of result-correlation ids first, then classify call events against it.
// A call is in flight iff no result references its id. Duplicate results
// for one id collapse in the set, so they cannot double-complete a call.
// The output depends only on the event sequence.
func Correlate(events []ToolEvent) Activity {
	resolved := make(map[string]bool)
	for _, ev := range events {
		if ev.Kind == KindResult {
			resolved[ev.CorrelatesTo] = true
		}
	}

	var act Activity
	counts := make(map[string]int)

	for _, ev := range events {
		if ev.Kind != KindCall {
			continue
		}

		switch ev.Name {
		case TaskListCall:
			// The bookkeeping call never shows as running work; only the
			// most recent payload is authoritative.
			var in taskListInput
			if err := json.Unmarshal(ev.Input, &in); err == nil {
				act.TaskList = in.Todos
			}
			continue

		case SubagentCall:
			if !resolved[ev.ID] {
				var in subagentInput
				_ = json.Unmarshal(ev.Input, &in)
				act.RunningAgents = append(act.RunningAgents, RunningAgent{
					ID:          ev.ID,
					AgentType:   in.SubagentType,
					Description: in.Description,
				})
				act.RunningCalls = append(act.RunningCalls, RunningCall{ID: ev.ID, Name: ev.Name})
			}
			continue
		}

		if resolved[ev.ID] {
			counts[ev.Name]++
		} else {
			act.RunningCalls = append(act.RunningCalls, RunningCall{ID: ev.ID, Name: ev.Name})
		}
	}

	act.Tallies = make([]Tally, 0, len(counts))
	for name, n := range counts {
		act.Tallies = append(act.Tallies, Tally{Name: name, Count: n})
	}
	sort.Slice(act.Tallies, func(i, j int) bool {
		if act.Tallies[i].Count != act.Tallies[j].Count {
			return act.Tallies[i].Count > act.Tallies[j].Count
		}
		return act.Tallies[i].Name < act.Tallies[j].Name
	})

	return act
}
