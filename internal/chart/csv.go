package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fiscasync/fiscaudit/internal/model"
)

const (
	numFields  = 7
	colNumero  = 0
	colLibelle = 1
	colClasse  = 2
	colNature  = 3
	colSide    = 4
	colUsage   = 5
	colSectors = 6
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.ChartAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.ChartAccount
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.ChartAccount) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"numero", "libelle", "classe", "nature", "normal_side", "usage", "sectors"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts a ChartAccount to a CSV row.
func MarshalAccount(acct model.ChartAccount) []string {
	row := make([]string, numFields)
	row[colNumero] = acct.Numero
	row[colLibelle] = acct.Libelle
	row[colClasse] = strconv.Itoa(acct.Classe)
	row[colNature] = string(acct.Nature)
	row[colSide] = string(acct.NormalSide)
	row[colUsage] = string(acct.Usage)
	row[colSectors] = strings.Join(acct.Sectors, ";")
	return row
}

// UnmarshalAccount converts a CSV row to a ChartAccount.
func UnmarshalAccount(record []string) (model.ChartAccount, error) {
	if len(record) != numFields {
		return model.ChartAccount{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colNumero] == "" {
		return model.ChartAccount{}, fmt.Errorf("empty account numero")
	}

	classe, err := strconv.Atoi(record[colClasse])
	if err != nil {
		return model.ChartAccount{}, fmt.Errorf("parsing classe %q: %w", record[colClasse], err)
	}
	if classe < 1 || classe > 9 {
		return model.ChartAccount{}, fmt.Errorf("classe %d out of range 1..9", classe)
	}

	var sectors []string
	if record[colSectors] != "" {
		sectors = strings.Split(record[colSectors], ";")
	}

	return model.ChartAccount{
		Numero:     record[colNumero],
		Libelle:    record[colLibelle],
		Classe:     classe,
		Nature:     model.Nature(record[colNature]),
		NormalSide: model.Side(record[colSide]),
		Usage:      model.Usage(record[colUsage]),
		Sectors:    sectors,
	}, nil
}
