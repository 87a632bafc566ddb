package statusline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/statline/internal/cli"
	"github.com/theirongolddev/statline/internal/config"
	"github.com/theirongolddev/statline/internal/renewal"
)

var (
	styleModel    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	styleCost     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleActivity = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleAdded    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleRemoved  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	bandStyles = map[renewal.Band]lipgloss.Style{
		renewal.BandOverdue: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		renewal.BandToday:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		renewal.BandUrgent:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		renewal.BandWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		renewal.BandNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// Render lays the report out as a single statusline string. Plain mode
// skips all styling for hosts that strip ANSI codes.
func Render(r Report, cfg config.Config) string {
	plain := cfg.Appearance.Plain
	seg := func(style lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return style.Render(text)
	}

	var parts []string

	if r.ModelLabel != "" {
		parts = append(parts, seg(styleModel, r.ModelLabel))
	}

	parts = append(parts, seg(styleCost, cli.FormatCost(r.PreferredCost)))
	parts = append(parts, seg(styleMuted, cli.FormatDuration(int64(r.Duration.Seconds()))))
	parts = append(parts, seg(styleMuted, fmt.Sprintf("%d msg", r.MessageCount)))

	if r.ToolCalls > 0 || r.FilesEdited > 0 || r.BashCommands > 0 {
		parts = append(parts, seg(styleMuted,
			fmt.Sprintf("%d tool %d file %d sh", r.ToolCalls, r.FilesEdited, r.BashCommands)))
	}

	if r.LinesAdded > 0 || r.LinesRemoved > 0 {
		lines := seg(styleAdded, fmt.Sprintf("+%d", r.LinesAdded)) +
			" " + seg(styleRemoved, fmt.Sprintf("-%d", r.LinesRemoved))
		parts = append(parts, lines)
	}

	if r.ContextPercent > 0 {
		parts = append(parts, seg(styleMuted, fmt.Sprintf("ctx %.0f%%", r.ContextPercent)))
	}

	if s := activitySegment(r); s != "" {
		parts = append(parts, seg(styleActivity, s))
	}

	if done, total := r.Activity.TaskList.Progress(); total > 0 {
		parts = append(parts, seg(styleMuted, fmt.Sprintf("tasks %d/%d", done, total)))
	}

	if cfg.General.ShowTallies && len(r.Activity.Tallies) > 0 {
		top := r.Activity.Tallies
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, len(top))
		for i, t := range top {
			names[i] = fmt.Sprintf("%s:%d", t.Name, t.Count)
		}
		parts = append(parts, seg(styleMuted, strings.Join(names, " ")))
	}

	for _, c := range r.Renewals {
		text := fmt.Sprintf("%s %s", c.Plan, cli.FormatDays(c.DaysRemaining))
		style, ok := bandStyles[c.Band]
		if !ok {
			style = styleMuted
		}
		parts = append(parts, seg(style, text))
	}

	return strings.Join(parts, cfg.Appearance.Separator)
}

// activitySegment summarizes in-flight work: sub-agent delegations first
// (they subsume their own tool calls), then the most recent ordinary call,
// then the active task list item.
func activitySegment(r Report) string {
	if n := len(r.Activity.RunningAgents); n > 0 {
		a := r.Activity.RunningAgents[n-1]
		label := a.AgentType
		if label == "" {
			label = "agent"
		}
		if a.Description != "" {
			return fmt.Sprintf("%s: %s", label, a.Description)
		}
		return label
	}

	for i := len(r.Activity.RunningCalls) - 1; i >= 0; i-- {
		call := r.Activity.RunningCalls[i]
		if call.Name != "" {
			return call.Name + "…"
		}
	}

	if active, ok := r.Activity.TaskList.Active(); ok {
		return active
	}
	return ""
}
