package budget

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lolaverein/lola-accounting/pkg/export"
	"github.com/lolaverein/lola-accounting/pkg/validate"
)

// eligibleAccount matches the account codes covered by the budget: one
// leading digit 3-9 followed by 3-4 more digits.
var eligibleAccount = regexp.MustCompile(`^[3-9]\d{3,4}$`)

// closingCarveOut is a known non-substantive ledger line: the annual
// closing account is skipped entirely when it carries no turnover. All
// other zero-balance accounts are retained.
const closingCarveOut = "8900"

// ReportRow is one post of the reconciliation report.
type ReportRow struct {
	Group     string
	Order     int
	Budget    decimal.Decimal
	Net       decimal.Decimal
	Remaining decimal.Decimal
}

// Reconcile matches trial-balance accounts to budget posts and computes the
// remaining budget per post for the given fiscal year. Every eligible
// account must match a post; an unmatched account aborts the run.
func Reconcile(rows []BalanceRow, def *Definition, year string) ([]ReportRow, error) {
	type group struct {
		post Post
		sum  decimal.Decimal
	}
	groups := make(map[string]*group)

	for _, row := range rows {
		if !eligibleAccount.MatchString(row.Account) {
			continue
		}
		if row.Account == closingCarveOut && row.Debit.IsZero() && row.Credit.IsZero() {
			continue
		}

		post, ok := def.LookupPost(row.Account)
		if !ok {
			return nil, &validate.Violation{
				Kind:    validate.KindReconciliation,
				Message: fmt.Sprintf("account %s (%s) matches no budget post", row.Account, row.Description),
			}
		}

		g, ok := groups[post.Key]
		if !ok {
			g = &group{post: post}
			groups[post.Key] = g
		}
		g.sum = g.sum.Add(row.Balance)
	}

	factorOf := func(post Post) decimal.Decimal {
		return decimal.NewFromInt(int64(post.Factor))
	}

	report := make([]ReportRow, 0, len(groups))
	for _, g := range groups {
		budget := def.Amount(year, g.post.Key)
		net := g.sum.Mul(factorOf(g.post)).Round(2)
		remaining := budget.Sub(net).Mul(factorOf(g.post)).Round(2)

		report = append(report, ReportRow{
			Group:     g.post.Name,
			Order:     g.post.Order,
			Budget:    budget,
			Net:       net,
			Remaining: remaining,
		})
	}

	sort.Slice(report, func(i, j int) bool { return report[i].Order < report[j].Order })
	return report, nil
}

// ReportTable renders the reconciliation report.
func ReportTable(rows []ReportRow) *export.Table {
	table := export.NewTable([]string{"Group", "Budget", "Net", "Remaining"})
	for _, r := range rows {
		table.Append([]string{r.Group, r.Budget.StringFixed(2), r.Net.StringFixed(2), r.Remaining.StringFixed(2)})
	}
	return table
}
