package checks

import (
	"fmt"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

// Funcs returns the native implementation of every algorithm family.
func Funcs() map[model.Algorithm]rules.CheckFunc {
	return map[model.Algorithm]rules.CheckFunc{
		model.AlgoEquilibrium:     Equilibrium,
		model.AlgoDoubleSolde:     DoubleSolde,
		model.AlgoSignConsistency: SignConsistency,
		model.AlgoMapping:         MappingReconciliation,
		model.AlgoCascade:         CascadeConsistency,
		model.AlgoBenford:         Benford,
		model.AlgoDuplicates:      Duplicates,
		model.AlgoOutliers:        Outliers,
		model.AlgoAntedating:      Antedating,
	}
}

// RegisterDefaults seeds a registry with the SYSCOHADA control-point
// catalogue. Balance-scope points are enabled out of the box.
// Statement-scope points (bilan/note mappings and the SIG cascades) register
// disabled: they need the engagement's declared line values, supplied later
// through rule configuration.
func RegisterDefaults(reg *rules.Registry) error {
	defaults := []model.Rule{
		{
			Code: "I.1.1", Name: "Équilibre global balance",
			Category: model.CategoryEquilibrium, Scope: model.ScopeBalance,
			Severity: model.SeverityCritical, Algorithm: model.AlgoEquilibrium,
			Parameters: map[string]any{"mode": "global", "tolerance": defaultTolerance},
			Enabled:    true,
		},
		{
			Code: "I.1.2", Name: "Équilibre par journal",
			Category: model.CategoryEquilibrium, Scope: model.ScopeBalance,
			Severity: model.SeverityMajor, Algorithm: model.AlgoEquilibrium,
			Parameters: map[string]any{"mode": "journals", "tolerance": defaultTolerance},
			Enabled:    true,
		},
		{
			Code: "I.1.3", Name: "Soldes multiples",
			Category: model.CategoryEquilibrium, Scope: model.ScopeBalance,
			Severity: model.SeverityCritical, Algorithm: model.AlgoDoubleSolde,
			Parameters: map[string]any{"exceptions": []string{"47"}},
			Enabled:    true,
		},
		{
			Code: "I.2.1.1", Name: "Sens classe 1 - capitaux",
			Category: model.CategoryCoherence, Scope: model.ScopeBalance,
			Severity: model.SeverityMajor, Algorithm: model.AlgoSignConsistency,
			// Report à nouveau and résultat legitimately sit debit in a
			// loss year.
			Parameters: map[string]any{"classe": 1, "exceptions": []string{"11", "12", "13"}},
			Enabled:    true,
		},
		{
			Code: "I.2.1.2", Name: "Sens classe 2 - immobilisations",
			Category: model.CategoryCoherence, Scope: model.ScopeBalance,
			Severity: model.SeverityMajor, Algorithm: model.AlgoSignConsistency,
			Parameters: map[string]any{"classe": 2},
			Enabled:    true,
		},
		{
			Code: "I.2.1.3", Name: "Sens classe 3 - stocks",
			Category: model.CategoryCoherence, Scope: model.ScopeBalance,
			Severity: model.SeverityMajor, Algorithm: model.AlgoSignConsistency,
			Parameters: map[string]any{"classe": 3},
			Enabled:    true,
		},
		{
			Code: "I.2.1.4", Name: "Sens classe 4 - tiers",
			Category: model.CategoryCoherence, Scope: model.ScopeBalance,
			Severity: model.SeverityMinor, Algorithm: model.AlgoSignConsistency,
			Parameters: map[string]any{"classe": 4},
			Enabled:    true,
		},
		{
			Code: "I.2.1.5", Name: "Sens classe 5 - trésorerie",
			Category: model.CategoryCoherence, Scope: model.ScopeBalance,
			Severity: model.SeverityCritical, Algorithm: model.AlgoSignConsistency,
			Parameters: map[string]any{"classe": 5},
			Enabled:    true,
		},
		{
			Code: "I.5.1.1", Name: "Doublons probables",
			Category: model.CategoryFiscal, Scope: model.ScopeBalance,
			Severity: model.SeverityMajor, Algorithm: model.AlgoDuplicates,
			Parameters: map[string]any{"similarity_threshold": defaultSimilarity, "day_window": defaultDayWindow},
			Enabled:    true,
		},
		{
			Code: "I.5.2.1", Name: "Loi de Benford",
			Category: model.CategoryFiscal, Scope: model.ScopeBalance,
			Severity: model.SeverityMajor, Algorithm: model.AlgoBenford,
			Parameters: map[string]any{"min_sample": benfordMinSample, "chi2_critical": benfordChi2Critical},
			Enabled:    true,
		},
		{
			Code: "I.5.3.1", Name: "Transactions atypiques",
			Category: model.CategoryFiscal, Scope: model.ScopeBalance,
			Severity: model.SeverityMinor, Algorithm: model.AlgoOutliers,
			Parameters: map[string]any{"score_threshold": defaultScoreThreshold},
			Enabled:    true,
		},
		{
			Code: "I.5.4.2", Name: "Écritures antidatées",
			Category: model.CategoryFiscal, Scope: model.ScopeBalance,
			Severity: model.SeverityMajor, Algorithm: model.AlgoAntedating,
			Parameters: map[string]any{"max_delay_days": defaultMaxDelayDays},
			Enabled:    true,
		},

		// Statement-scope controls, parameterized per engagement.
		{
			Code: "II.1.1.1", Name: "Mapping bilan - immobilisations incorporelles",
			Category: model.CategoryAnnexes, Scope: model.ScopeStatements,
			Severity: model.SeverityCritical, Algorithm: model.AlgoMapping,
			Parameters: map[string]any{"source_prefixes": []string{"21"}, "tolerance": 1000.0, "line": "Bilan AA - immobilisations incorporelles"},
		},
		{
			Code: "II.1.1.2", Name: "Mapping bilan - terrains",
			Category: model.CategoryAnnexes, Scope: model.ScopeStatements,
			Severity: model.SeverityCritical, Algorithm: model.AlgoMapping,
			Parameters: map[string]any{"source_prefixes": []string{"22"}, "tolerance": 1000.0, "line": "Bilan AB - terrains"},
		},
		{
			Code: "II.1.2.1", Name: "Mapping compte de résultat - chiffre d'affaires",
			Category: model.CategoryAnnexes, Scope: model.ScopeStatements,
			Severity: model.SeverityCritical, Algorithm: model.AlgoMapping,
			Parameters: map[string]any{"source_prefixes": []string{"70"}, "side": "CREDIT", "tolerance": 1000.0, "line": "Chiffre d'affaires"},
		},
		{
			Code: "II.2.2.1", Name: "Cascade marge commerciale",
			Category: model.CategoryCoherence, Scope: model.ScopeStatements,
			Severity: model.SeverityCritical, Algorithm: model.AlgoCascade,
			Parameters: map[string]any{"tolerance": 1000.0, "line": "Marge commerciale"},
		},
		{
			Code: "II.2.2.2", Name: "Cascade valeur ajoutée",
			Category: model.CategoryCoherence, Scope: model.ScopeStatements,
			Severity: model.SeverityCritical, Algorithm: model.AlgoCascade,
			Parameters: map[string]any{"tolerance": 1000.0, "line": "Valeur ajoutée"},
		},
		{
			Code: "II.2.2.3", Name: "Cascade excédent brut d'exploitation",
			Category: model.CategoryCoherence, Scope: model.ScopeStatements,
			Severity: model.SeverityCritical, Algorithm: model.AlgoCascade,
			Parameters: map[string]any{"tolerance": 1000.0, "line": "Excédent brut d'exploitation"},
		},
	}

	for _, rule := range defaults {
		if err := reg.Register(rule); err != nil {
			return fmt.Errorf("seeding control-point catalogue: %w", err)
		}
	}
	return nil
}
