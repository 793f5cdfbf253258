package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lolaverein/lola-accounting/pkg/export"
	"github.com/lolaverein/lola-accounting/pkg/pos"
	"github.com/lolaverein/lola-accounting/pkg/report"
)

// AccountingRow is one date of the wide accounting export: an amount per
// catalog alias.
type AccountingRow struct {
	Date    time.Time
	amounts map[string]decimal.Decimal
}

// Amount returns the row's amount for an alias, zero if absent.
func (r AccountingRow) Amount(alias string) decimal.Decimal {
	return r.amounts[alias]
}

// Accounting is the wide per-date accounting export: one row per summary
// date, one column per catalog alias.
type Accounting struct {
	catalog *Catalog
	Rows    []AccountingRow
}

// columnValue computes an alias amount from a summary row. Aliases missing
// here exist in the chart but are not fed by the POS pipeline; they stay
// zero and are suppressed in the journal.
func columnValue(alias string, r report.SummaryRow) decimal.Decimal {
	commissionOwned := r.GrossMiTiMiTiCard.Sub(r.NetMiTiMiTiCard)

	switch alias {
	case "10000/30200":
		return r.LoLaCash
	case "10000/30700":
		return r.VermietungCash
	case "10000/23050":
		return r.DepositCash
	case "10000/30810":
		return r.CultureCash
	case "10000/20051":
		return r.MiTiCash
	case "10000/31000":
		return r.TipsCash
	case "10910/10000":
		return r.PaidOutCash
	case "10920/30200":
		return r.LoLaCard
	case "10920/30700":
		return r.VermietungCard
	case "10920/23050":
		return r.DepositCard
	case "10920/30810":
		return r.CultureCard
	case "10920/20051":
		return r.MiTiCard
	case "10920/31000":
		return r.TipsCard
	case "10910/10920":
		return r.PaidOutCard
	case "68450/10920":
		return r.TotalCommission
	case "10100/10920":
		return r.NetCardTotal
	case "31000/30200":
		return r.TipsTotal
	case "30200/20051":
		// The 20% share of venue-owned MiTi sales handed to MiTi,
		// reconstructed from the settlement so both sides round alike.
		return r.PaymentMiTi.Sub(r.GrossMiTiMiTi).Add(commissionOwned)
	case "20051/30200":
		return r.GrossMiTiLoLa
	case "20051/68450":
		return commissionOwned
	case SettlementAlias:
		return r.PaymentMiTi
	default:
		return decimal.Zero
	}
}

// BuildAccounting maps the summary onto the posting catalog.
func BuildAccounting(catalog *Catalog, summary *report.Summary) *Accounting {
	acc := &Accounting{catalog: catalog}
	for _, row := range summary.Rows {
		amounts := make(map[string]decimal.Decimal, len(catalog.entries))
		for _, alias := range catalog.Aliases() {
			amounts[alias] = columnValue(alias, row)
		}
		acc.Rows = append(acc.Rows, AccountingRow{Date: row.Date, amounts: amounts})
	}
	return acc
}

// Table renders the wide accounting export.
func (a *Accounting) Table() *export.Table {
	columns := append([]string{"Date"}, a.catalog.Aliases()...)
	table := export.NewTable(columns)
	for _, row := range a.Rows {
		cells := make([]string, 0, len(columns))
		cells = append(cells, row.Date.Format(pos.DateLayout))
		for _, alias := range a.catalog.Aliases() {
			cells = append(cells, row.Amount(alias).StringFixed(2))
		}
		table.Append(cells)
	}
	return table
}

// JournalEntry is one row of the long-format "banana" export.
type JournalEntry struct {
	Date        string // dd.mm.yyyy, empty for the settlement entry
	Description string
	Debit       string
	Credit      string
	Amount      decimal.Decimal
}

// ToJournal transposes the wide accounting table into journal entries: one
// entry per catalog alias, its amount the alias column summed over the
// month. Entries are dated on the last calendar day of the export month
// (the MiTi settlement carries no date), zero amounts are suppressed, and
// amounts use banker's rounding to avoid systematic bias across many small
// postings.
func (a *Accounting) ToJournal(yearMonth string) ([]JournalEntry, error) {
	lastDay, err := LastDayOfMonth(yearMonth)
	if err != nil {
		return nil, err
	}

	var entries []JournalEntry
	for _, p := range a.catalog.entries {
		total := decimal.Zero
		for _, row := range a.Rows {
			total = total.Add(row.Amount(p.Alias))
		}
		amount := total.RoundBank(2)
		if amount.IsZero() {
			continue
		}

		date := lastDay
		if p.Alias == SettlementAlias {
			date = ""
		}

		entries = append(entries, JournalEntry{
			Date:        date,
			Description: p.Description,
			Debit:       p.DebitCode(),
			Credit:      p.CreditCode(),
			Amount:      amount,
		})
	}
	return entries, nil
}

// JournalTable renders journal entries as an export table.
func JournalTable(entries []JournalEntry) *export.Table {
	table := export.NewTable([]string{"Date", "Description", "Debit", "Credit", "Amount"})
	for _, e := range entries {
		table.Append([]string{e.Date, e.Description, e.Debit, e.Credit, e.Amount.StringFixed(2)})
	}
	return table
}

// LastDayOfMonth converts a YYYYMM month key to its last calendar day in
// the export date layout. "202411" yields "30.11.2024".
func LastDayOfMonth(yearMonth string) (string, error) {
	t, err := time.Parse("200601", yearMonth)
	if err != nil {
		return "", fmt.Errorf("invalid year-month %q: expected YYYYMM", yearMonth)
	}
	lastDay := t.AddDate(0, 1, -1)
	return lastDay.Format(pos.DateLayout), nil
}
