package transcript

import (
	"encoding/json"
	"reflect"
	"testing"
)

func call(id, name, input string) ToolEvent {
	return ToolEvent{Kind: KindCall, ID: id, Name: name, Input: json.RawMessage(input)}
}

func result(correlatesTo string) ToolEvent {
	return ToolEvent{Kind: KindResult, CorrelatesTo: correlatesTo}
}

func TestCorrelateInFlight(t *testing.T) {
	events := []ToolEvent{call("a", "Fetch", `{}`)}

	act := Correlate(events)
	want := []RunningCall{{ID: "a", Name: "Fetch"}}
	if !reflect.DeepEqual(act.RunningCalls, want) {
		t.Fatalf("RunningCalls = %+v, want %+v", act.RunningCalls, want)
	}
	if len(act.Tallies) != 0 {
		t.Fatalf("Tallies = %+v, want none", act.Tallies)
	}

	// Appending the result flips the call from running to completed.
	events = append(events, result("a"))
	act = Correlate(events)
	if len(act.RunningCalls) != 0 {
		t.Fatalf("RunningCalls = %+v, want none", act.RunningCalls)
	}
	wantTallies := []Tally{{Name: "Fetch", Count: 1}}
	if !reflect.DeepEqual(act.Tallies, wantTallies) {
		t.Fatalf("Tallies = %+v, want %+v", act.Tallies, wantTallies)
	}
}

func TestCorrelateDuplicateResultsDoNotDoubleCount(t *testing.T) {
	events := []ToolEvent{
		call("a", "Bash", `{}`),
		result("a"),
		result("a"),
	}
	act := Correlate(events)
	if got := act.Tallies[0].Count; got != 1 {
		t.Fatalf("Bash tally = %d, want 1", got)
	}
}

func TestCorrelateBookkeepingCallNeverRuns(t *testing.T) {
	events := []ToolEvent{
		call("t1", TaskListCall, `{"todos":[{"content":"first","status":"completed"}]}`),
		call("t2", TaskListCall, `{"todos":[{"content":"second","status":"in_progress","activeForm":"Doing second"},{"content":"third","status":"pending"}]}`),
	}
	act := Correlate(events)

	if len(act.RunningCalls) != 0 {
		t.Fatalf("RunningCalls = %+v, bookkeeping call leaked", act.RunningCalls)
	}

	// Last payload wins outright; the first is discarded, not merged.
	if len(act.TaskList) != 2 || act.TaskList[0].Content != "second" {
		t.Fatalf("TaskList = %+v, want second payload only", act.TaskList)
	}

	done, total := act.TaskList.Progress()
	if done != 0 || total != 2 {
		t.Fatalf("Progress = %d/%d, want 0/2", done, total)
	}
	active, ok := act.TaskList.Active()
	if !ok || active != "Doing second" {
		t.Fatalf("Active = %q/%v, want Doing second", active, ok)
	}
}

func TestCorrelateSubagents(t *testing.T) {
	events := []ToolEvent{
		call("s1", SubagentCall, `{"description":"review diff","subagent_type":"reviewer"}`),
		call("s2", SubagentCall, `{"description":"run tests","subagent_type":"tester"}`),
		result("s2"),
	}
	act := Correlate(events)

	if len(act.RunningAgents) != 1 {
		t.Fatalf("RunningAgents = %+v, want one", act.RunningAgents)
	}
	agent := act.RunningAgents[0]
	if agent.ID != "s1" || agent.AgentType != "reviewer" || agent.Description != "review diff" {
		t.Fatalf("RunningAgents[0] = %+v", agent)
	}

	// Delegations are excluded from the completed tallies.
	for _, tally := range act.Tallies {
		if tally.Name == SubagentCall {
			t.Fatalf("Task delegation counted in tallies: %+v", act.Tallies)
		}
	}
}

func TestCorrelateTalliesSortedDescThenName(t *testing.T) {
	events := []ToolEvent{
		call("1", "Read", `{}`), result("1"),
		call("2", "Read", `{}`), result("2"),
		call("3", "Bash", `{}`), result("3"),
		call("4", "Edit", `{}`), result("4"),
	}
	act := Correlate(events)
	want := []Tally{{"Read", 2}, {"Bash", 1}, {"Edit", 1}}
	if !reflect.DeepEqual(act.Tallies, want) {
		t.Fatalf("Tallies = %+v, want %+v", act.Tallies, want)
	}
}

func TestCorrelateDeterministic(t *testing.T) {
	events := []ToolEvent{
		call("a", "Bash", `{}`),
		call("b", "Read", `{}`),
		result("a"),
		call("t", TaskListCall, `{"todos":[]}`),
	}
	first := Correlate(events)
	for i := 0; i < 5; i++ {
		if got := Correlate(events); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}
