// Package cmd implements the statline CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/statline/internal/config"
	"github.com/theirongolddev/statline/internal/session"
	"github.com/theirongolddev/statline/internal/snapshot"
	"github.com/theirongolddev/statline/internal/statusline"
	"github.com/theirongolddev/statline/internal/store"
)

var (
	flagPlain   bool
	flagStateDB string
)

var rootCmd = &cobra.Command{
	Use:   "statline",
	Short: "Statusline renderer for Claude Code",
	Long: "Reads the status snapshot JSON from stdin and prints one formatted line.\n" +
		"Wire it up as the statusLine command in Claude Code settings.",
	RunE:         runRender,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Disable ANSI styling")
	rootCmd.PersistentFlags().StringVar(&flagStateDB, "state-db", "", "Session state database path")
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		// A broken config file should not blank the statusline.
		fmt.Fprintf(os.Stderr, "statline: %v (using defaults)\n", err)
	}
	if flagPlain {
		cfg.Appearance.Plain = true
	}

	in, err := snapshot.Decode(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading snapshot from stdin: %w", err)
	}

	st, closeStore := openStore(cfg)
	defer closeStore()

	eng := statusline.New(st)
	line := statusline.Render(eng.Build(in, cfg), cfg)
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

// openStore opens the SQLite state store, degrading to an in-memory store
// when the database is unavailable: the line still renders, continuity
// resumes on the next healthy tick.
func openStore(cfg config.Config) (session.Store, func()) {
	path := flagStateDB
	if path == "" {
		path = config.StatePath(cfg, store.DefaultPath())
	}

	db, err := store.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "statline: state store unavailable: %v\n", err)
		return session.NewMemStore(), func() {}
	}
	return db, func() { _ = db.Close() }
}
