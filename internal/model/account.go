package model

// Nature classifies an account by its role in the financial statements,
// following the SYSCOHADA révisé reference plan.
type Nature string

const (
	NatureActif   Nature = "ACTIF"
	NaturePassif  Nature = "PASSIF"
	NatureCharge  Nature = "CHARGE"
	NatureProduit Nature = "PRODUIT"
	NatureSpecial Nature = "SPECIAL"
)

// Side is a balance side.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// Usage states whether an account may be used under the reference plan.
type Usage string

const (
	UsageMandatory Usage = "MANDATORY"
	UsageOptional  Usage = "OPTIONAL"
	UsageForbidden Usage = "FORBIDDEN"
)

// ChartAccount is one entry of the chart-of-accounts reference table.
// The table is loaded once at startup and never mutated.
type ChartAccount struct {
	Numero     string
	Libelle    string
	Classe     int // 1..9
	Nature     Nature
	NormalSide Side
	Usage      Usage
	Sectors    []string // empty = no sector restriction
}

// Restricted reports whether the account is limited to specific sectors.
func (a ChartAccount) Restricted() bool {
	return len(a.Sectors) > 0
}

// AllowsSector reports whether the account may be used in the given sector.
func (a ChartAccount) AllowsSector(sector string) bool {
	if !a.Restricted() {
		return true
	}
	for _, s := range a.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}
