// Package validate enforces the business rules on classified records and
// the double-entry invariants on the accounting export. Every violation is
// fatal: the surrounding run produces no output.
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lolaverein/lola-accounting/pkg/classify"
	"github.com/lolaverein/lola-accounting/pkg/pos"
	"github.com/lolaverein/lola-accounting/pkg/posting"
)

// Kind tags the violation family.
type Kind string

const (
	KindDomain         Kind = "domain"
	KindCrossField     Kind = "cross-field"
	KindBalance        Kind = "balance"
	KindReconciliation Kind = "reconciliation"
)

// Violation is a failed check. It carries the offending rows so callers can
// render or inspect them instead of parsing a formatted string.
type Violation struct {
	Kind    Kind
	Message string
	Rows    []classify.ClassifiedRecord
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return v.Message
}

// violation builds a Violation for the first offending row.
func violation(kind Kind, row classify.ClassifiedRecord, message string) *Violation {
	return &Violation{
		Kind:    kind,
		Message: message,
		Rows:    []classify.ClassifiedRecord{row},
	}
}

// Enumerated domains. Owner additionally allows the empty string.
var (
	validMethods = map[pos.PaymentMethod]bool{
		pos.MethodCash: true,
		pos.MethodCard: true,
	}
	validTopics = map[classify.Topic]bool{
		classify.TopicMiTi:       true,
		classify.TopicLoLa:       true,
		classify.TopicVermietung: true,
		classify.TopicDeposit:    true,
		classify.TopicCulture:    true,
		classify.TopicPaidOut:    true,
	}
	validPurposes = map[classify.Purpose]bool{
		classify.PurposeConsumption: true,
		classify.PurposeTip:         true,
	}
	validOwners = map[string]bool{
		"":                true,
		classify.OwnerMiTi: true,
		classify.OwnerLoLa: true,
	}
)

// Records runs the domain and cross-field checks over classified records,
// reporting the first offending row with its 1-based input row number.
func Records(records []classify.ClassifiedRecord) error {
	for _, r := range records {
		if !validMethods[r.PaymentMethod] {
			return violation(KindDomain, r,
				fmt.Sprintf("Row %d: invalid Payment Method '%s'", r.Row, r.PaymentMethod))
		}
		if !validTopics[r.Topic] {
			return violation(KindDomain, r,
				fmt.Sprintf("Row %d: invalid Topic '%s'", r.Row, r.Topic))
		}
		if !validPurposes[r.Purpose] {
			return violation(KindDomain, r,
				fmt.Sprintf("Row %d: invalid Purpose '%s'", r.Row, r.Purpose))
		}
		if !validOwners[r.Owner] {
			return violation(KindDomain, r,
				fmt.Sprintf("Row %d: invalid Owner '%s'", r.Row, r.Owner))
		}
	}

	for _, r := range records {
		if r.Topic == classify.TopicMiTi && r.Owner == "" {
			return violation(KindCrossField, r,
				fmt.Sprintf("Row with topic 'MiTi' must have an Owner! (row %d)", r.Row))
		}
		if r.Topic != classify.TopicMiTi && r.Owner != "" {
			return violation(KindCrossField, r,
				fmt.Sprintf("Row with topic '%s' must not have an Owner! (row %d)", r.Topic, r.Row))
		}
	}

	return nil
}

// transitoryAccounts are the clearing accounts expected to net to zero on
// every date of the accounting export.
var transitoryAccounts = []string{"10920", "20051"}

// balanceTolerance absorbs the divergence introduced by rounding each
// derived column independently.
var balanceTolerance = decimal.NewFromFloat(0.05)

// Balances checks that each transitory account nets to zero, within
// tolerance, on every date: the sum of columns debiting the account minus
// the sum of columns crediting it. The tolerance boundary is inclusive on
// both sides.
func Balances(acc *posting.Accounting, catalog *posting.Catalog) error {
	for _, row := range acc.Rows {
		for _, account := range transitoryAccounts {
			net := decimal.Zero
			for _, p := range catalog.Entries() {
				if p.DebitCode() == account {
					net = net.Add(row.Amount(p.Alias))
				}
				if p.CreditCode() == account {
					net = net.Sub(row.Amount(p.Alias))
				}
			}
			net = net.Round(2)

			if net.Abs().Cmp(balanceTolerance) > 0 {
				return &Violation{
					Kind: KindBalance,
					Message: fmt.Sprintf(
						"Constraint violation for accounting export on %s: net value of account %s is %s instead of 0.0",
						row.Date.Format(pos.DateLayout), account, net),
				}
			}
		}
	}
	return nil
}
