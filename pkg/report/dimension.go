// Package report builds the dense per-date summary table from classified
// POS records.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lolaverein/lola-accounting/pkg/classify"
	"github.com/lolaverein/lola-accounting/pkg/pos"
)

// Predicate selects the records contributing to one dimension.
type Predicate func(classify.ClassifiedRecord) bool

// Value extracts the summed value from a record.
type Value func(classify.ClassifiedRecord) decimal.Decimal

// DimensionSeries is a per-date sum for one dimension combination. Dates
// without matching records are simply absent; the join onto the date axis
// fills them with zero.
type DimensionSeries struct {
	Alias  string
	values map[string]decimal.Decimal // keyed by formatted date
}

// AggregateDimension filters the records with the predicate, groups them by
// date and sums the extracted value, rounded to 2 decimals per date.
func AggregateDimension(records []classify.ClassifiedRecord, predicate Predicate, value Value, alias string) DimensionSeries {
	sums := make(map[string]decimal.Decimal)
	for _, record := range records {
		if !predicate(record) {
			continue
		}
		key := record.DateKey()
		sums[key] = sums[key].Add(value(record))
	}

	for key, sum := range sums {
		sums[key] = sum.Round(2)
	}

	return DimensionSeries{Alias: alias, values: sums}
}

// At returns the series value for a date, zero when the date has no
// matching records.
func (s DimensionSeries) At(date time.Time) decimal.Decimal {
	return s.values[date.Format(pos.DateLayout)]
}

// dateAxis returns the distinct record dates sorted ascending. It is the
// join backbone of the summary: every input date appears exactly once.
func dateAxis(records []classify.ClassifiedRecord) []time.Time {
	seen := make(map[string]time.Time)
	for _, record := range records {
		seen[record.DateKey()] = record.Date
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Shared value extractors.

func grossPrice(r classify.ClassifiedRecord) decimal.Decimal { return r.PriceGross }

func commission(r classify.ClassifiedRecord) decimal.Decimal { return r.Commission() }
