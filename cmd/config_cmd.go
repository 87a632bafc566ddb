package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/statline/internal/config"
	"github.com/theirongolddev/statline/internal/renewal"
	"github.com/theirongolddev/statline/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config file:  %s\n", config.Path())
	fmt.Fprintf(out, "state db:     %s\n", config.StatePath(cfg, store.DefaultPath()))
	fmt.Fprintf(out, "prefer host cost: %v\n", cfg.General.PreferHostCost)
	fmt.Fprintf(out, "show tallies:     %v\n", cfg.General.ShowTallies)
	fmt.Fprintf(out, "plain output:     %v\n", cfg.Appearance.Plain)

	plans := cfg.RenewalPlans()
	if len(plans) == 0 {
		fmt.Fprintln(out, "plans:        none configured")
		return nil
	}
	fmt.Fprintln(out, "plans:")
	for _, p := range plans {
		day := p.Day
		if day == 0 {
			day = p.Anchor.Day()
		}
		kind := "monthly"
		if p.Kind == renewal.Yearly {
			kind = "yearly"
		}
		fmt.Fprintf(out, "  %-12s %s from %s (day %d)\n",
			p.Name, kind, p.Anchor.Format("2006-01-02"), day)
	}
	return nil
}
