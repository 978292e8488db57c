package balance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Header is the CSV header for a trial balance file.
const Header = "account,journal,date,piece_date,debit,credit,solde_debit,solde_credit,label"

const (
	numFields      = 9
	dateFormat     = "2006-01-02"
	colAccount     = 0
	colJournal     = 1
	colDate        = 2
	colPieceDate   = 3
	colDebit       = 4
	colCredit      = 5
	colSoldeDebit  = 6
	colSoldeCredit = 7
	colLabel       = 8
)

// Record is one raw trial-balance line as it arrives from an import source,
// before normalization.
type Record struct {
	Account     string
	Journal     string
	Date        time.Time
	PieceDate   time.Time
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	SoldeDebit  decimal.Decimal
	SoldeCredit decimal.Decimal
	Label       string
}

// ReadRecords reads all raw records from a balance CSV reader.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading balance CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records to a balance CSV writer (including header).
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(rec Record) []string {
	row := make([]string, numFields)
	row[colAccount] = rec.Account
	row[colJournal] = rec.Journal
	row[colDate] = rec.Date.Format(dateFormat)
	if !rec.PieceDate.IsZero() {
		row[colPieceDate] = rec.PieceDate.Format(dateFormat)
	}
	row[colDebit] = moneyString(rec.Debit)
	row[colCredit] = moneyString(rec.Credit)
	row[colSoldeDebit] = moneyString(rec.SoldeDebit)
	row[colSoldeCredit] = moneyString(rec.SoldeCredit)
	row[colLabel] = rec.Label
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (Record, error) {
	if len(row) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	date, err := time.Parse(dateFormat, row[colDate])
	if err != nil {
		return Record{}, fmt.Errorf("parsing date %q: %w", row[colDate], err)
	}

	var pieceDate time.Time
	if row[colPieceDate] != "" {
		pieceDate, err = time.Parse(dateFormat, row[colPieceDate])
		if err != nil {
			return Record{}, fmt.Errorf("parsing piece_date %q: %w", row[colPieceDate], err)
		}
	}

	rec := Record{
		Account:   row[colAccount],
		Journal:   row[colJournal],
		Date:      date,
		PieceDate: pieceDate,
		Label:     row[colLabel],
	}

	for _, f := range []struct {
		col  int
		name string
		dst  *decimal.Decimal
	}{
		{colDebit, "debit", &rec.Debit},
		{colCredit, "credit", &rec.Credit},
		{colSoldeDebit, "solde_debit", &rec.SoldeDebit},
		{colSoldeCredit, "solde_credit", &rec.SoldeCredit},
	} {
		*f.dst, err = parseMoney(row[f.col])
		if err != nil {
			return Record{}, fmt.Errorf("parsing %s %q: %w", f.name, row[f.col], err)
		}
	}

	return rec, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func moneyString(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}
