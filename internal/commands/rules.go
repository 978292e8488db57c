package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fiscasync/fiscaudit/internal/checks"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

func newRulesCommand() *cobra.Command {
	var engagementDir string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the control-point catalogue with engagement overrides applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(engagementDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runRules(cmd, absDir)
		},
	}

	cmd.Flags().StringVar(&engagementDir, "dir", ".", "engagement directory")

	return cmd
}

func runRules(cmd *cobra.Command, dir string) error {
	reg := rules.NewRegistry()
	if err := checks.RegisterDefaults(reg); err != nil {
		return err
	}

	rulesPath := filepath.Join(dir, "rules", "rules.yaml")
	if _, err := os.Stat(rulesPath); err == nil {
		cfg, err := rules.LoadConfiguration(rulesPath)
		if err != nil {
			return err
		}
		if err := cfg.Apply(reg); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range reg.All() {
		state := "disabled"
		if r.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(out, "%-10s %-8s %-12s %-10s %-8s %s\n",
			r.Code, state, r.Category, string(r.Scope), string(r.Severity), r.Name)
	}
	return nil
}
