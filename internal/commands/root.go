package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiscasync/fiscaudit/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fiscaudit",
		Short:   "SYSCOHADA trial-balance audit engine",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAuditCommand())
	rootCmd.AddCommand(newRatiosCommand())
	rootCmd.AddCommand(newRulesCommand())

	return rootCmd
}
