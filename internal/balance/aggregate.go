package balance

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/model"
)

// Aggregator computes debit/credit/net sums over a snapshot for arbitrary
// sets of account-number prefixes. It is nature-agnostic: it only sums, sign
// interpretation belongs to the caller. Snapshots are immutable, so results
// are memoized by sorted prefix set and the Aggregator is safe for concurrent
// use.
type Aggregator struct {
	snapshot *model.TrialBalanceSnapshot

	mu    sync.Mutex
	cache map[string]sums
}

type sums struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// NewAggregator creates an Aggregator over a snapshot.
func NewAggregator(snapshot *model.TrialBalanceSnapshot) *Aggregator {
	return &Aggregator{snapshot: snapshot, cache: make(map[string]sums)}
}

// Snapshot returns the underlying snapshot.
func (a *Aggregator) Snapshot() *model.TrialBalanceSnapshot {
	return a.snapshot
}

// SumDebit returns the debit-side total of entries matching any prefix.
func (a *Aggregator) SumDebit(prefixes ...string) decimal.Decimal {
	return a.sums(prefixes).debit
}

// SumCredit returns the credit-side total of entries matching any prefix.
func (a *Aggregator) SumCredit(prefixes ...string) decimal.Decimal {
	return a.sums(prefixes).credit
}

// Net returns debit minus credit for entries matching any prefix
// (debit-positive convention).
func (a *Aggregator) Net(prefixes ...string) decimal.Decimal {
	s := a.sums(prefixes)
	return s.debit.Sub(s.credit)
}

func (a *Aggregator) sums(prefixes []string) sums {
	key := cacheKey(prefixes)

	a.mu.Lock()
	if s, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return s
	}
	a.mu.Unlock()

	s := sums{debit: decimal.Zero, credit: decimal.Zero}
	for i := 0; i < a.snapshot.Len(); i++ {
		e := a.snapshot.Entry(i)
		// An entry matching several prefixes is still counted once.
		if !matchesAny(e.Account, prefixes) {
			continue
		}
		d, c := entryValues(e)
		s.debit = s.debit.Add(d)
		s.credit = s.credit.Add(c)
	}

	a.mu.Lock()
	a.cache[key] = s
	a.mu.Unlock()
	return s
}

// entryValues resolves the debit/credit value of one entry: pre-supplied
// closing balances win over raw movements when the source provides either.
func entryValues(e model.LedgerEntry) (debit, credit decimal.Decimal) {
	if !e.SoldeDebit.IsZero() || !e.SoldeCredit.IsZero() {
		return e.SoldeDebit, e.SoldeCredit
	}
	return e.Debit, e.Credit
}

func matchesAny(account string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(account, p) {
			return true
		}
	}
	return false
}

func cacheKey(prefixes []string) string {
	sorted := make([]string, len(prefixes))
	copy(sorted, prefixes)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
