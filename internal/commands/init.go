package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fiscasync/fiscaudit/internal/chart"
	"github.com/fiscasync/fiscaudit/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string
	var sector string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new audit engagement",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, sector)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "audited entity name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&sector, "sector", "", "activity sector (COMMERCE, INDUSTRIE, SERVICES)")

	return cmd
}

func runInit(dir, name, sector string) error {
	// Create directory structure.
	dirs := []string{
		"chart",
		"balances",
		"rules",
		"reports",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write fiscaudit.yaml.
	cfg := config.Default(name, sector)
	if err := config.Save(filepath.Join(dir, "fiscaudit.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the SYSCOHADA chart of accounts.
	svc := chart.NewService(chart.DefaultChart())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Write empty rule overrides.
	rulesContent := "rules: []\n"
	if err := os.WriteFile(filepath.Join(dir, "rules", "rules.yaml"), []byte(rulesContent), 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	// Write balances/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "balances", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Printf("Initialized audit engagement for %s at %s\n", name, dir)
	return nil
}
