// Package tui implements the live statusline preview.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/statline/internal/config"
	"github.com/theirongolddev/statline/internal/session"
	"github.com/theirongolddev/statline/internal/snapshot"
	"github.com/theirongolddev/statline/internal/statusline"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tickMsg time.Time

// Preview simulates redraw ticks against an in-memory session store so a
// user can see the line evolve without wiring the binary into the host.
type Preview struct {
	input   textinput.Model
	spin    spinner.Model
	eng     *statusline.Engine
	cfg     config.Config
	line    string
	tokens  int64
	lines   int64
	ticks   int
	width   int
	focused bool
}

// NewPreview builds the preview model.
func NewPreview(cfg config.Config) Preview {
	ti := textinput.New()
	ti.Placeholder = "model identifier"
	ti.SetValue("claude-sonnet-4-5-20250929")
	ti.CharLimit = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Preview{
		input:   ti,
		spin:    sp,
		eng:     statusline.New(session.NewMemStore()),
		cfg:     cfg,
		focused: true,
	}
}

// Init implements tea.Model.
func (p Preview) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, p.spin.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (p Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return p, tea.Quit
		case "enter":
			p.focused = !p.focused
			if p.focused {
				p.input.Focus()
			} else {
				p.input.Blur()
			}
			return p, nil
		}

	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case tickMsg:
		// Simulate a conversation: tokens grow most ticks, occasionally
		// repeat to exercise the duplicate-tick path.
		p.ticks++
		if p.ticks%4 != 0 {
			p.tokens += 1500 + int64(p.ticks)*120
			p.lines += 3
		}
		p.line = p.render()
		return p, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Preview) render() string {
	in := snapshot.Input{SessionID: "preview"}
	in.Model.ID = p.input.Value()
	in.Context.CurrentUsage.InputTokens = snapshot.FlexInt(p.tokens)
	in.Context.CurrentUsage.OutputTokens = snapshot.FlexInt(p.tokens / 4)
	in.Cost.TotalLinesAdded = snapshot.FlexInt(p.lines)
	in.Cost.TotalLinesRemoved = snapshot.FlexInt(p.lines / 5)

	return statusline.Render(p.eng.Build(in, p.cfg), p.cfg)
}

// View implements tea.Model.
func (p Preview) View() string {
	line := p.line
	if line == "" {
		line = p.spin.View() + " waiting for first tick"
	}
	if p.width > 4 && lipgloss.Width(line) > p.width-4 {
		line = lipgloss.NewStyle().MaxWidth(p.width - 4).Render(line)
	}

	return "\n" +
		titleStyle.Render("  statline preview") + "\n\n" +
		"  " + p.input.View() + "\n\n" +
		frameStyle.Render(line) + "\n\n" +
		helpStyle.Render("  enter: toggle editing • esc: quit") + "\n"
}
