package budget

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolaverein/lola-accounting/pkg/validate"
)

func balanceRow(account, balance string) BalanceRow {
	b := decimal.RequireFromString(balance)
	row := BalanceRow{Account: account, Balance: b}
	if b.IsNegative() {
		row.Credit = b.Neg()
	} else {
		row.Debit = b
	}
	return row
}

func testDefinition(t *testing.T) *Definition {
	t.Helper()
	def, err := ParseDefinition([]byte(sampleDefinition))
	require.NoError(t, err)
	return def
}

func TestReconcile(t *testing.T) {
	def := testDefinition(t)

	rows := []BalanceRow{
		balanceRow("30100", "-54012.35"),
		balanceRow("30200", "-1000.00"),
		balanceRow("40000", "10233.80"),
		balanceRow("10000", "532.00"), // asset account, not eligible
		balanceRow("1020", "99.00"),   // leading digit outside 3-9
	}

	report, err := Reconcile(rows, def, "2024")
	require.NoError(t, err)
	require.Len(t, report, 2)

	// Sorted by post order: income post first.
	income := report[0]
	assert.Equal(t, "Ertrag Restauration", income.Group)
	assert.Equal(t, "55012.35", income.Net.StringFixed(2))
	assert.Equal(t, "-19987.65", income.Remaining.StringFixed(2))

	expense := report[1]
	assert.Equal(t, "Materialaufwand", expense.Group)
	assert.Equal(t, "10233.80", expense.Net.StringFixed(2))
	assert.Equal(t, "1766.20", expense.Remaining.StringFixed(2))
}

func TestReconcileUnmatchedAccountFails(t *testing.T) {
	def := testDefinition(t)

	rows := []BalanceRow{
		{Account: "35000", Description: "Ertrag Anlässe", Balance: decimal.RequireFromString("-500")},
	}

	_, err := Reconcile(rows, def, "2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account 35000")
	assert.Contains(t, err.Error(), "matches no budget post")

	var violation *validate.Violation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, validate.KindReconciliation, violation.Kind)
}

func TestReconcileClosingCarveOut(t *testing.T) {
	def := testDefinition(t)

	t.Run("zero closing account is skipped", func(t *testing.T) {
		rows := []BalanceRow{{Account: "8900"}}
		report, err := Reconcile(rows, def, "2024")
		require.NoError(t, err)
		assert.Empty(t, report)
	})

	t.Run("closing account with turnover must match", func(t *testing.T) {
		rows := []BalanceRow{{
			Account: "8900",
			Debit:   decimal.RequireFromString("10.00"),
			Balance: decimal.RequireFromString("10.00"),
		}}
		_, err := Reconcile(rows, def, "2024")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "8900"))
	})

	t.Run("other zero-balance accounts are retained", func(t *testing.T) {
		rows := []BalanceRow{{Account: "40000"}}
		report, err := Reconcile(rows, def, "2024")
		require.NoError(t, err)
		require.Len(t, report, 1)
		assert.Equal(t, "0.00", report[0].Net.StringFixed(2))
		assert.Equal(t, "12000.00", report[0].Budget.StringFixed(2))
	})
}

func TestReconcileMissingYearYieldsZeroBudget(t *testing.T) {
	def := testDefinition(t)

	rows := []BalanceRow{balanceRow("40000", "100.00")}
	report, err := Reconcile(rows, def, "2030")
	require.NoError(t, err)
	require.Len(t, report, 1)

	assert.Equal(t, "0.00", report[0].Budget.StringFixed(2))
	assert.Equal(t, "-100.00", report[0].Remaining.StringFixed(2))
}
