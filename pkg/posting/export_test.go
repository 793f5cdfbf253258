package posting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolaverein/lola-accounting/pkg/report"
)

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		yearMonth string
		want      string
		wantErr   bool
	}{
		{"202411", "30.11.2024", false},
		{"202502", "28.02.2025", false},
		{"202412", "31.12.2024", false},
		{"202402", "29.02.2024", false},
		{"2024-11", "", true},
		{"202413", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.yearMonth, func(t *testing.T) {
			got, err := LastDayOfMonth(tt.yearMonth)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LastDayOfMonth(%q) error = %v, wantErr %v", tt.yearMonth, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LastDayOfMonth(%q) = %q, want %q", tt.yearMonth, got, tt.want)
			}
		})
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func summaryOf(rows ...report.SummaryRow) *report.Summary {
	return &report.Summary{Rows: rows}
}

func TestToJournal(t *testing.T) {
	catalog := NewCatalog()
	summary := summaryOf(report.SummaryRow{
		Date:        time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC),
		LoLaCash:    d("100.00"),
		MiTiCash:    d("50.00"),
		PaymentMiTi: d("20.00"),
	})

	accounting := BuildAccounting(catalog, summary)
	entries, err := accounting.ToJournal("202411")
	require.NoError(t, err)

	byAlias := make(map[string]JournalEntry)
	for _, e := range entries {
		byAlias[e.Debit+"/"+e.Credit] = e
	}

	cafe, ok := byAlias["10000/30200"]
	require.True(t, ok, "cash café sales entry missing")
	assert.Equal(t, "30.11.2024", cafe.Date)
	assert.Equal(t, "Cash sales café", cafe.Description)
	assert.Equal(t, "100.00", cafe.Amount.StringFixed(2))

	// The settlement entry carries no date.
	settlement, ok := byAlias[SettlementAlias]
	require.True(t, ok, "settlement entry missing")
	assert.Equal(t, "", settlement.Date)
	assert.Equal(t, "20.00", settlement.Amount.StringFixed(2))

	// Zero amounts are suppressed.
	_, ok = byAlias["10920/30700"]
	assert.False(t, ok, "zero card rental entry should be suppressed")
}

func TestToJournalSumsTheMonth(t *testing.T) {
	catalog := NewCatalog()
	summary := summaryOf(
		report.SummaryRow{Date: time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), LoLaCash: d("10.00")},
		report.SummaryRow{Date: time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC), LoLaCash: d("15.50")},
	)

	entries, err := BuildAccounting(catalog, summary).ToJournal("202411")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "25.50", entries[0].Amount.StringFixed(2))
}

func TestToJournalUsesBankersRounding(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		amount string
		want   string
	}{
		{"0.125", "0.12"},
		{"0.135", "0.14"},
		{"2.005", "2.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			summary := summaryOf(report.SummaryRow{
				Date:     time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
				TipsCash: d(tt.amount),
			})

			entries, err := BuildAccounting(catalog, summary).ToJournal("202411")
			require.NoError(t, err)

			var found bool
			for _, e := range entries {
				if e.Debit == "10000" && e.Credit == "31000" {
					assert.Equal(t, tt.want, e.Amount.StringFixed(2))
					found = true
				}
			}
			require.True(t, found, "cash tips entry missing")
		})
	}
}

func TestAccountingTableShape(t *testing.T) {
	catalog := NewCatalog()
	summary := summaryOf(report.SummaryRow{
		Date:     time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC),
		LoLaCash: d("42.00"),
	})

	table := BuildAccounting(catalog, summary).Table()
	require.Len(t, table.Columns, 24) // Date plus one column per posting
	assert.Equal(t, "Date", table.Columns[0])
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "12.11.2024", table.Rows[0][0])

	col, err := table.Column("10000/30200")
	require.NoError(t, err)
	assert.Equal(t, "42.00", table.Rows[0][col])
}
