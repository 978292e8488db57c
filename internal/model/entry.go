package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one normalized line of a trial balance: the period movements
// and, when the source supplies them, the pre-computed closing balances of one
// account in one journal. Entries belong to exactly one snapshot.
type LedgerEntry struct {
	Account     string
	Journal     string
	Date        time.Time // booking date
	PieceDate   time.Time // date of the supporting document
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	SoldeDebit  decimal.Decimal
	SoldeCredit decimal.Decimal
	Label       string
}

// Balance returns the signed balance of the entry, debit-positive. Pre-supplied
// closing balances win over raw movements when the source provides either.
func (e LedgerEntry) Balance() decimal.Decimal {
	if !e.SoldeDebit.IsZero() || !e.SoldeCredit.IsZero() {
		return e.SoldeDebit.Sub(e.SoldeCredit)
	}
	return e.Debit.Sub(e.Credit)
}

// Amount returns the movement magnitude of the entry (whichever of debit or
// credit is non-zero), used by the statistical detectors.
func (e LedgerEntry) Amount() decimal.Decimal {
	if !e.Debit.IsZero() {
		return e.Debit
	}
	return e.Credit
}

// AccountRoot returns the first three digits of the account number, or the
// whole number when shorter.
func (e LedgerEntry) AccountRoot() string {
	if len(e.Account) <= 3 {
		return e.Account
	}
	return e.Account[:3]
}
