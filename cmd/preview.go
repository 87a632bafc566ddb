package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/statline/internal/config"
	"github.com/theirongolddev/statline/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the statusline with simulated ticks",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	if flagPlain {
		cfg.Appearance.Plain = true
	}

	// Force TrueColor so the preview shows the same styling the host sees.
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewPreview(cfg))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview error: %w", err)
	}
	return nil
}
