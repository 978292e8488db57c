package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fiscasync/fiscaudit/internal/model"
)

// ErrAccountNotFound means no registered prefix of the requested number
// matched. This should not occur for valid SYSCOHADA numbers (classes 1-9).
var ErrAccountNotFound = errors.New("account not found in chart")

// Service provides read-only lookup over the chart-of-accounts reference
// table. The table is loaded once and never mutated, so a Service is safe for
// concurrent use.
type Service struct {
	accounts []model.ChartAccount
	byNumero map[string]model.ChartAccount
}

// NewService creates a Service from a slice of chart accounts.
func NewService(accounts []model.ChartAccount) *Service {
	byNumero := make(map[string]model.ChartAccount, len(accounts))
	for _, a := range accounts {
		byNumero[a.Numero] = a
	}
	return &Service{accounts: accounts, byNumero: byNumero}
}

// Load reads chart-of-accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	path := filepath.Join(repoRoot, "chart", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all registered accounts.
func (s *Service) All() []model.ChartAccount {
	return s.accounts
}

// Get returns an account by exact number.
func (s *Service) Get(numero string) (model.ChartAccount, bool) {
	a, ok := s.byNumero[numero]
	return a, ok
}

// Classify resolves an account number to its reference entry. It tries an
// exact match first, then progressively shortens the number from the right
// until a registered prefix matches, so sub-accounts not listed explicitly
// inherit their parent's classification.
func (s *Service) Classify(numero string) (model.ChartAccount, error) {
	for n := numero; n != ""; n = n[:len(n)-1] {
		if a, ok := s.byNumero[n]; ok {
			return a, nil
		}
	}
	return model.ChartAccount{}, fmt.Errorf("%w: %q", ErrAccountNotFound, numero)
}

// ByClasse returns all accounts of the given class.
func (s *Service) ByClasse(classe int) []model.ChartAccount {
	var result []model.ChartAccount
	for _, a := range s.accounts {
		if a.Classe == classe {
			result = append(result, a)
		}
	}
	return result
}

// FilterBySector returns accounts usable in the given sector: every account
// with no sector restriction plus those whose restriction lists the sector.
func (s *Service) FilterBySector(sector string) []model.ChartAccount {
	var result []model.ChartAccount
	for _, a := range s.accounts {
		if a.AllowsSector(sector) {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart to <repoRoot>/chart/chart-of-accounts.csv, ordered by
// account number.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, "chart")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating chart dir: %w", err)
	}

	sorted := make([]model.ChartAccount, len(s.accounts))
	copy(sorted, s.accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Numero < sorted[j].Numero })

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, sorted); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}
