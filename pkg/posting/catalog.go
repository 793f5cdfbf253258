// Package posting provides the fixed chart-of-accounts catalog and the
// double-entry accounting exports derived from the daily summary.
package posting

import "fmt"

// codeWidth is the width of one account code inside an alias. An alias is
// two codes joined by "/": the debit code first, the credit code second.
const codeWidth = 5

// Posting is one immutable catalog entry mapping a report column to a
// debit/credit account-code pair.
type Posting struct {
	Alias       string
	Description string
}

// DebitCode returns the debited account code of the alias.
func (p Posting) DebitCode() string {
	return p.Alias[:codeWidth]
}

// CreditCode returns the credited account code of the alias.
func (p Posting) CreditCode() string {
	return p.Alias[codeWidth+1:]
}

// catalogEntries is the hand-curated chart used by the venue's bookkeeping.
// 10000 cash register, 10100 bank, 10910 paid-out transit, 10920 card
// transit, 20051 MiTi payable, 23050 deposits, 30200 café revenue, 30700
// rental revenue, 30810 culture revenue, 31000 tips transit, 68450 card
// commission expense.
var catalogEntries = []Posting{
	{Alias: "10000/30200", Description: "Cash sales café"},
	{Alias: "10000/30700", Description: "Cash sales rental"},
	{Alias: "10000/23050", Description: "Cash deposits received"},
	{Alias: "10000/30810", Description: "Cash sales culture"},
	{Alias: "10000/20051", Description: "Cash sales MiTi"},
	{Alias: "10000/31000", Description: "Cash tips"},
	{Alias: "10910/10000", Description: "Cash paid out"},
	{Alias: "10920/30200", Description: "Card sales café"},
	{Alias: "10920/30700", Description: "Card sales rental"},
	{Alias: "10920/23050", Description: "Card deposits received"},
	{Alias: "10920/30810", Description: "Card sales culture"},
	{Alias: "10920/20051", Description: "Card sales MiTi"},
	{Alias: "10920/31000", Description: "Card tips"},
	{Alias: "10910/10920", Description: "Card paid out"},
	{Alias: "68450/10920", Description: "Card commission"},
	{Alias: "10100/10920", Description: "SumUp payout to bank"},
	{Alias: "31000/30200", Description: "Tips cleared to café revenue"},
	{Alias: "30200/20051", Description: "Contribution share to MiTi"},
	{Alias: "20051/30200", Description: "MiTi sales retained by venue"},
	{Alias: "20051/68450", Description: "Commission charged through to MiTi"},
	{Alias: "10100/10000", Description: "Cash deposited at bank"},
	{Alias: "23050/10000", Description: "Deposits repaid in cash"},
	{Alias: "20051/10100", Description: "Payment to MiTi"},
}

// SettlementAlias is the MiTi inter-organization settlement entry. Its
// journal row carries no date.
const SettlementAlias = "20051/10100"

// Catalog is the load-once posting registry. It is read-only and passed
// into the components needing alias lookups.
type Catalog struct {
	entries []Posting
	byAlias map[string]Posting
}

// NewCatalog creates the fixed catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		entries: catalogEntries,
		byAlias: make(map[string]Posting, len(catalogEntries)),
	}
	for _, p := range c.entries {
		c.byAlias[p.Alias] = p
	}
	return c
}

// Entries returns all postings in catalog order.
func (c *Catalog) Entries() []Posting {
	out := make([]Posting, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the posting for an alias.
func (c *Catalog) Lookup(alias string) (Posting, error) {
	p, ok := c.byAlias[alias]
	if !ok {
		return Posting{}, fmt.Errorf("no posting with alias %q", alias)
	}
	return p, nil
}

// Aliases returns all aliases in catalog order.
func (c *Catalog) Aliases() []string {
	out := make([]string, len(c.entries))
	for i, p := range c.entries {
		out[i] = p.Alias
	}
	return out
}
