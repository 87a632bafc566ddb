package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/statline/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-time setup",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	var (
		addPlan  = true
		planName = "max"
		planKind = "monthly"
		anchor   = time.Now().Format("2006-01-02")
		dayStr   = ""
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Prefer the host's cost figure over the internal estimate?").
				Value(&cfg.General.PreferHostCost),
			huh.NewConfirm().
				Title("Show per-tool completed counts in the line?").
				Value(&cfg.General.ShowTallies),
			huh.NewConfirm().
				Title("Track a subscription renewal countdown?").
				Value(&addPlan),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Plan name").
				Value(&planName),
			huh.NewSelect[string]().
				Title("Billing cycle").
				Options(
					huh.NewOption("Monthly", "monthly"),
					huh.NewOption("Yearly", "yearly"),
				).
				Value(&planKind),
			huh.NewInput().
				Title("First billing date (YYYY-MM-DD)").
				Value(&anchor).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", s)
					return err
				}),
			huh.NewInput().
				Title("Fixed renewal day of month (blank = anchor's day)").
				Value(&dayStr).
				Validate(validateDay),
		).WithHideFunc(func() bool { return !addPlan }),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}

	if addPlan && planName != "" {
		if cfg.Plans == nil {
			cfg.Plans = make(map[string]config.PlanConfig)
		}
		day := 0
		if dayStr != "" {
			day, _ = strconv.Atoi(dayStr)
		}
		cfg.Plans[planName] = config.PlanConfig{
			Kind:       planKind,
			Anchor:     anchor,
			RenewalDay: day,
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", config.Path())
	fmt.Println(`Point Claude Code at the binary: "statusLine": {"type": "command", "command": "statline"}`)
	return nil
}

func validateDay(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 31 {
		return fmt.Errorf("day must be 1-31")
	}
	return nil
}
