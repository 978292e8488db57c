package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fiscasync/fiscaudit/internal/auditlog"
	"github.com/fiscasync/fiscaudit/internal/balance"
	"github.com/fiscasync/fiscaudit/internal/chart"
	"github.com/fiscasync/fiscaudit/internal/checks"
	"github.com/fiscasync/fiscaudit/internal/config"
	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/ratio"
	"github.com/fiscasync/fiscaudit/internal/report"
	"github.com/fiscasync/fiscaudit/internal/rules"
	"github.com/fiscasync/fiscaudit/internal/scoring"
)

func newAuditCommand() *cobra.Command {
	var exercise string
	var version int
	var engagementDir string
	var asJSON bool
	var withStatements bool

	cmd := &cobra.Command{
		Use:   "audit <balance.csv>",
		Short: "Audit a trial balance and print the certified report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(engagementDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			scope := model.ScopeBalance
			if withStatements {
				scope = model.ScopeBoth
			}
			return runAudit(cmd, absDir, args[0], exercise, version, scope, asJSON)
		},
	}

	cmd.Flags().StringVar(&exercise, "exercise", "", "fiscal exercise, e.g. 2024 (required)")
	_ = cmd.MarkFlagRequired("exercise")
	cmd.Flags().IntVar(&version, "version", 1, "balance version within the exercise")
	cmd.Flags().StringVar(&engagementDir, "dir", ".", "engagement directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&withStatements, "statements", false, "also run statement-scope controls")

	return cmd
}

func runAudit(cmd *cobra.Command, dir, balancePath, exercise string, version int, scope model.Scope, asJSON bool) error {
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

	gen, err := buildGenerator(dir)
	if err != nil {
		return err
	}

	result, err := gen.Generate(snapshot, scope)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		printReport(cmd, result)
	}

	logEntry := auditlog.Entry{
		Timestamp:     time.Now().UTC(),
		RunID:         uuid.NewString(),
		SnapshotID:    snapshot.ID(),
		Score:         result.Report.Score,
		Certification: result.Report.Certification,
		Findings:      len(result.Report.Findings),
	}
	if err := auditlog.Append(dir, []auditlog.Entry{logEntry}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write audit log: %v\n", err)
	}

	return nil
}

// buildGenerator assembles the audit pipeline from the engagement directory:
// its chart of accounts, its rule overrides, its ratio thresholds, and its
// scoring weights. Every piece falls back to the built-in defaults when the
// engagement does not customize it.
func buildGenerator(dir string) (*report.Generator, error) {
	chartSvc, err := chart.Load(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		chartSvc = chart.NewService(chart.DefaultChart())
	}

	weights := scoring.DefaultWeights()
	var tolerances config.TolerancesConfig
	configPath := filepath.Join(dir, "fiscaudit.yaml")
	if _, err := os.Stat(configPath); err == nil {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		tolerances = cfg.Tolerances
		if len(cfg.Scoring.Weights) > 0 {
			weights = scoring.Weights(cfg.Scoring.Weights)
			if err := weights.Validate(); err != nil {
				return nil, fmt.Errorf("scoring weights in %s: %w", configPath, err)
			}
		}
	}

	reg := rules.NewRegistry()
	if err := checks.RegisterDefaults(reg); err != nil {
		return nil, err
	}
	if err := applyTolerances(reg, tolerances); err != nil {
		return nil, err
	}
	rulesPath := filepath.Join(dir, "rules", "rules.yaml")
	if _, err := os.Stat(rulesPath); err == nil {
		cfg, err := rules.LoadConfiguration(rulesPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(reg); err != nil {
			return nil, err
		}
	}

	ratioEngine := ratio.NewEngine(ratio.DefaultDefinitions())
	thresholdsPath := filepath.Join(dir, "rules", "ratios.yaml")
	if _, err := os.Stat(thresholdsPath); err == nil {
		overrides, err := ratio.LoadThresholds(thresholdsPath)
		if err != nil {
			return nil, err
		}
		if err := ratioEngine.ApplyThresholds(overrides); err != nil {
			return nil, err
		}
	}

	evaluator := rules.NewEvaluator(reg, chartSvc, checks.Funcs())
	return report.NewGenerator(evaluator, ratioEngine, weights), nil
}

// applyTolerances pushes the engagement-wide tolerances from fiscaudit.yaml
// into the seeded equilibrium and mapping control points. Per-rule parameter
// overrides in rules.yaml are applied afterwards and take precedence.
func applyTolerances(reg *rules.Registry, tol config.TolerancesConfig) error {
	for _, rule := range reg.All() {
		var tolerance float64
		switch {
		case rule.Algorithm == model.AlgoEquilibrium && tol.Equilibrium > 0:
			tolerance = tol.Equilibrium
		case rule.Algorithm == model.AlgoMapping && tol.Mapping > 0:
			tolerance = tol.Mapping
		default:
			continue
		}
		if err := reg.MergeParameters(rule.Code, map[string]any{"tolerance": tolerance}); err != nil {
			return err
		}
	}
	return nil
}

func printReport(cmd *cobra.Command, result *report.Result) {
	out := cmd.OutOrStdout()
	r := result.Report

	fmt.Fprintf(out, "Snapshot %s\n", r.SnapshotID)
	fmt.Fprintf(out, "Score: %.2f / 100 (%s)\n\n", r.Score, r.Certification)

	categories := make([]string, 0, len(r.Subscores))
	for c := range r.Subscores {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		count := r.CheckCounts[c]
		fmt.Fprintf(out, "  %-12s %6.2f  (%d/%d passing, %d skipped)\n",
			c, r.Subscores[c], count.Passing, count.Total, count.Skipped)
	}

	if len(r.Findings) > 0 {
		fmt.Fprintf(out, "\nFindings (%d):\n", len(r.Findings))
		for _, f := range r.Findings {
			marker := " "
			if f.Blocking {
				marker = "!"
			}
			fmt.Fprintf(out, "  %s [%s] %s: %s\n", marker, f.Severity, f.RuleCode, f.Message)
		}
	}

	if result.Analysis.PerformanceLevel != "" {
		fmt.Fprintf(out, "\nFinancial health: %s (%.1f)\n", result.Analysis.PerformanceLevel, result.Analysis.GlobalScore)
		for _, alert := range result.Analysis.Alerts {
			fmt.Fprintf(out, "  alert: %s\n", alert)
		}
	}
}
