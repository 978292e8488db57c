package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fiscasync/fiscaudit/internal/balance"
	"github.com/fiscasync/fiscaudit/internal/ratio"
)

func newRatiosCommand() *cobra.Command {
	var exercise string
	var version int
	var engagementDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ratios <balance.csv>",
		Short: "Compute the financial ratio analysis for a trial balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(engagementDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runRatios(cmd, absDir, args[0], exercise, version, asJSON)
		},
	}

	cmd.Flags().StringVar(&exercise, "exercise", "", "fiscal exercise, e.g. 2024 (required)")
	_ = cmd.MarkFlagRequired("exercise")
	cmd.Flags().IntVar(&version, "version", 1, "balance version within the exercise")
	cmd.Flags().StringVar(&engagementDir, "dir", ".", "engagement directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")

	return cmd
}

func runRatios(cmd *cobra.Command, dir, balancePath, exercise string, version int, asJSON bool) error {
	f, err := os.Open(balancePath)
	if err != nil {
		return fmt.Errorf("opening balance: %w", err)
	}
	records, err := balance.ReadRecords(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading balance: %w", err)
	}

	snapshot, err := balance.Import(exercise, version, records)
	if err != nil {
		return err
	}

	engine := ratio.NewEngine(ratio.DefaultDefinitions())
	thresholdsPath := filepath.Join(dir, "rules", "ratios.yaml")
	if _, err := os.Stat(thresholdsPath); err == nil {
		overrides, err := ratio.LoadThresholds(thresholdsPath)
		if err != nil {
			return err
		}
		if err := engine.ApplyThresholds(overrides); err != nil {
			return err
		}
	}

	analysis := ratio.Analyze(engine.Compute(snapshot))

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding analysis: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Financial health: %s (%.1f)\n\n", analysis.PerformanceLevel, analysis.GlobalScore)
	for _, r := range analysis.Ratios {
		fmt.Fprintf(out, "  %-24s %10.2f %-6s [%s]\n", r.Name, r.Value, r.Unit, r.Status)
	}
	for _, alert := range analysis.Alerts {
		fmt.Fprintf(out, "\nalert: %s", alert)
	}
	if len(analysis.Alerts) > 0 {
		fmt.Fprintln(out)
	}
	for _, rec := range analysis.Recommendations {
		fmt.Fprintf(out, "recommendation: %s\n", rec)
	}
	return nil
}
