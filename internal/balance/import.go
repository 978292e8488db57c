package balance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/id"
	"github.com/fiscasync/fiscaudit/internal/model"
)

// defaultJournal is assigned to records that arrive without a journal code
// (operations diverses).
const defaultJournal = "OD"

// RowError describes one rejected record during import.
type RowError struct {
	Row int // 1-based position in the record list
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Row, e.Err)
}

// Import normalizes raw records and builds an immutable snapshot for the
// exercise/version. Loosely-shaped records are coerced or rejected here, at
// the boundary, so rule algorithms only ever see canonical entries. Any
// rejected record fails the whole import; the returned error joins one
// RowError per bad record.
func Import(exercise string, version int, records []Record) (*model.TrialBalanceSnapshot, error) {
	if version < 1 {
		return nil, fmt.Errorf("import version must be >= 1, got %d", version)
	}

	var errs []error
	entries := make([]model.LedgerEntry, 0, len(records))
	for i, rec := range records {
		entry, err := normalize(rec)
		if err != nil {
			errs = append(errs, RowError{Row: i + 1, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("importing balance: %w", errors.Join(errs...))
	}

	return model.NewSnapshot(id.FormatSnapshotID(exercise, version), exercise, version, entries), nil
}

// normalize coerces one raw record into a canonical LedgerEntry.
// Coercions: trimmed fields, journal defaulted to OD, missing piece date
// defaulted to the booking date, negative amounts folded to the other side.
// Rejections: missing or non-numeric account, missing date.
func normalize(rec Record) (model.LedgerEntry, error) {
	account := strings.TrimSpace(rec.Account)
	if account == "" {
		return model.LedgerEntry{}, errors.New("missing account number")
	}
	for _, r := range account {
		if r < '0' || r > '9' {
			return model.LedgerEntry{}, fmt.Errorf("account %q is not numeric", account)
		}
	}
	if account[0] == '0' {
		return model.LedgerEntry{}, fmt.Errorf("account %q outside classes 1-9", account)
	}

	if rec.Date.IsZero() {
		return model.LedgerEntry{}, errors.New("missing booking date")
	}

	journal := strings.ToUpper(strings.TrimSpace(rec.Journal))
	if journal == "" {
		journal = defaultJournal
	}

	pieceDate := rec.PieceDate
	if pieceDate.IsZero() {
		pieceDate = rec.Date
	}

	entry := model.LedgerEntry{
		Account:     account,
		Journal:     journal,
		Date:        rec.Date,
		PieceDate:   pieceDate,
		Debit:       rec.Debit,
		Credit:      rec.Credit,
		SoldeDebit:  rec.SoldeDebit,
		SoldeCredit: rec.SoldeCredit,
		Label:       strings.TrimSpace(rec.Label),
	}

	// A negative amount on one side is the same fact as a positive amount on
	// the other; fold it so downstream sums never see negatives.
	if entry.Debit.IsNegative() {
		entry.Credit = entry.Credit.Add(entry.Debit.Neg())
		entry.Debit = decimal.Zero
	}
	if entry.Credit.IsNegative() {
		entry.Debit = entry.Debit.Add(entry.Credit.Neg())
		entry.Credit = decimal.Zero
	}
	if entry.SoldeDebit.IsNegative() {
		entry.SoldeCredit = entry.SoldeCredit.Add(entry.SoldeDebit.Neg())
		entry.SoldeDebit = decimal.Zero
	}
	if entry.SoldeCredit.IsNegative() {
		entry.SoldeDebit = entry.SoldeDebit.Add(entry.SoldeCredit.Neg())
		entry.SoldeCredit = decimal.Zero
	}

	return entry, nil
}
