package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lolaverein/lola-accounting/pkg/classify"
	"github.com/lolaverein/lola-accounting/pkg/export"
	"github.com/lolaverein/lola-accounting/pkg/pos"
)

// SummaryRow is the dense daily aggregate: one row per distinct input date,
// every column present, absent dimensions contributing zero. Derived columns
// are rounded to 2 decimals independently at definition, so composite totals
// may diverge from raw-value sums by up to half a cent; the balance checks
// tolerate that.
type SummaryRow struct {
	Date time.Time

	MiTiCash, MiTiCard, MiTiTotal                   decimal.Decimal
	LoLaCash, LoLaCard, LoLaTotal                   decimal.Decimal
	VermietungCash, VermietungCard, VermietungTotal decimal.Decimal
	DepositCash, DepositCard, DepositTotal          decimal.Decimal
	CultureCash, CultureCard, CultureTotal          decimal.Decimal
	PaidOutCash, PaidOutCard, PaidOutTotal          decimal.Decimal

	GrossCash, TipsCash, SumUpCash    decimal.Decimal
	GrossCard, TipsCard, SumUpCard    decimal.Decimal
	GrossTotal, TipsTotal, SumUpTotal decimal.Decimal

	GrossCardMiTi, MiTiCommission, NetCardMiTi      decimal.Decimal
	GrossCardLoLa, LoLaCommission, NetCardLoLa      decimal.Decimal
	GrossCardTotal, TotalCommission, NetCardTotal   decimal.Decimal

	GrossMiTiMiTi, GrossMiTiLoLa     decimal.Decimal
	GrossMiTiMiTiCard                decimal.Decimal
	NetMiTiMiTiCard                  decimal.Decimal
	ContributionLoLa                 decimal.Decimal
	PaymentMiTi                      decimal.Decimal
}

// Summary is the per-date report table.
type Summary struct {
	Rows []SummaryRow
}

var (
	ratioLoLaShare = decimal.NewFromFloat(0.8)
	ratioMiTiShare = decimal.NewFromFloat(0.2)
)

// Aggregate builds the summary table from classified records. The per
// dimension aggregations are independent of one another; only the (fixed)
// column order of the result depends on the sequence below.
func Aggregate(records []classify.ClassifiedRecord) *Summary {
	dates := dateAxis(records)

	topics := []classify.Topic{
		classify.TopicMiTi,
		classify.TopicLoLa,
		classify.TopicVermietung,
		classify.TopicDeposit,
		classify.TopicCulture,
		classify.TopicPaidOut,
	}

	// Per (topic, payment method) consumption gross.
	byTopic := make(map[classify.Topic]map[pos.PaymentMethod]DimensionSeries, len(topics))
	for _, topic := range topics {
		byTopic[topic] = map[pos.PaymentMethod]DimensionSeries{
			pos.MethodCash: AggregateDimension(records, consumption(topic, pos.MethodCash), grossPrice, string(topic)+"_Cash"),
			pos.MethodCard: AggregateDimension(records, consumption(topic, pos.MethodCard), grossPrice, string(topic)+"_Card"),
		}
	}

	tipsCash := AggregateDimension(records, tips(pos.MethodCash), grossPrice, "Tips_Cash")
	tipsCard := AggregateDimension(records, tips(pos.MethodCard), grossPrice, "Tips_Card")

	commMiTi := AggregateDimension(records, consumption(classify.TopicMiTi, pos.MethodCard), commission, "MiTi_Commission")
	commLoLa := AggregateDimension(records, consumption(classify.TopicLoLa, pos.MethodCard), commission, "LoLa_Commission")
	commTotal := AggregateDimension(records, anyCard, commission, "Total Commission")

	grossMiTiOwned := AggregateDimension(records, mitiOwned(classify.OwnerMiTi, nil), grossPrice, "Gross MiTi (MiTi)")
	grossMiTiVenue := AggregateDimension(records, mitiOwned(classify.OwnerLoLa, nil), grossPrice, "Gross MiTi (LoLa)")
	cardOnly := pos.MethodCard
	grossMiTiOwnedCard := AggregateDimension(records, mitiOwned(classify.OwnerMiTi, &cardOnly), grossPrice, "Gross MiTi (MiTi) Card")
	commMiTiOwned := AggregateDimension(records, mitiOwned(classify.OwnerMiTi, &cardOnly), commission, "MiTi_Commission (MiTi)")

	summary := &Summary{Rows: make([]SummaryRow, 0, len(dates))}
	for _, date := range dates {
		row := SummaryRow{Date: date}

		row.MiTiCash = byTopic[classify.TopicMiTi][pos.MethodCash].At(date)
		row.MiTiCard = byTopic[classify.TopicMiTi][pos.MethodCard].At(date)
		row.LoLaCash = byTopic[classify.TopicLoLa][pos.MethodCash].At(date)
		row.LoLaCard = byTopic[classify.TopicLoLa][pos.MethodCard].At(date)
		row.VermietungCash = byTopic[classify.TopicVermietung][pos.MethodCash].At(date)
		row.VermietungCard = byTopic[classify.TopicVermietung][pos.MethodCard].At(date)
		row.DepositCash = byTopic[classify.TopicDeposit][pos.MethodCash].At(date)
		row.DepositCard = byTopic[classify.TopicDeposit][pos.MethodCard].At(date)
		row.CultureCash = byTopic[classify.TopicCulture][pos.MethodCash].At(date)
		row.CultureCard = byTopic[classify.TopicCulture][pos.MethodCard].At(date)
		row.PaidOutCash = byTopic[classify.TopicPaidOut][pos.MethodCash].At(date)
		row.PaidOutCard = byTopic[classify.TopicPaidOut][pos.MethodCard].At(date)

		row.MiTiTotal = row.MiTiCash.Add(row.MiTiCard).Round(2)
		row.LoLaTotal = row.LoLaCash.Add(row.LoLaCard).Round(2)
		row.VermietungTotal = row.VermietungCash.Add(row.VermietungCard).Round(2)
		row.DepositTotal = row.DepositCash.Add(row.DepositCard).Round(2)
		row.CultureTotal = row.CultureCash.Add(row.CultureCard).Round(2)
		row.PaidOutTotal = row.PaidOutCash.Add(row.PaidOutCard).Round(2)

		row.TipsCash = tipsCash.At(date)
		row.TipsCard = tipsCard.At(date)
		row.TipsTotal = row.TipsCash.Add(row.TipsCard).Round(2)

		// Gross per method spans the revenue topics; paid-out lines are
		// cash movements, not revenue.
		row.GrossCash = sum(row.MiTiCash, row.LoLaCash, row.VermietungCash, row.DepositCash, row.CultureCash)
		row.GrossCard = sum(row.MiTiCard, row.LoLaCard, row.VermietungCard, row.DepositCard, row.CultureCard)
		row.GrossTotal = row.GrossCash.Add(row.GrossCard).Round(2)
		row.SumUpCash = row.GrossCash.Add(row.TipsCash).Round(2)
		row.SumUpCard = row.GrossCard.Add(row.TipsCard).Round(2)
		row.SumUpTotal = row.SumUpCash.Add(row.SumUpCard).Round(2)

		row.MiTiCommission = commMiTi.At(date)
		row.LoLaCommission = commLoLa.At(date)
		row.TotalCommission = commTotal.At(date)
		row.GrossCardMiTi = row.MiTiCard
		row.GrossCardLoLa = row.LoLaCard
		row.GrossCardTotal = row.SumUpCard
		row.NetCardMiTi = row.GrossCardMiTi.Sub(row.MiTiCommission).Round(2)
		row.NetCardLoLa = row.GrossCardLoLa.Sub(row.LoLaCommission).Round(2)
		row.NetCardTotal = row.GrossCardTotal.Sub(row.TotalCommission).Sub(row.PaidOutCard).Round(2)

		row.GrossMiTiMiTi = grossMiTiOwned.At(date)
		row.GrossMiTiLoLa = grossMiTiVenue.At(date)
		row.GrossMiTiMiTiCard = grossMiTiOwnedCard.At(date)
		row.NetMiTiMiTiCard = row.GrossMiTiMiTiCard.Sub(commMiTiOwned.At(date)).Round(2)
		row.ContributionLoLa = ratioLoLaShare.Mul(row.GrossMiTiLoLa).Round(2)
		row.PaymentMiTi = row.GrossMiTiMiTi.
			Sub(commMiTiOwned.At(date)).
			Add(ratioMiTiShare.Mul(row.GrossMiTiLoLa).Round(2)).
			Round(2)

		summary.Rows = append(summary.Rows, row)
	}

	return summary
}

func consumption(topic classify.Topic, method pos.PaymentMethod) Predicate {
	return func(r classify.ClassifiedRecord) bool {
		return r.Topic == topic && r.PaymentMethod == method && r.Purpose == classify.PurposeConsumption
	}
}

func tips(method pos.PaymentMethod) Predicate {
	return func(r classify.ClassifiedRecord) bool {
		return r.PaymentMethod == method && r.Purpose == classify.PurposeTip
	}
}

func anyCard(r classify.ClassifiedRecord) bool {
	return r.PaymentMethod == pos.MethodCard
}

// mitiOwned selects MiTi consumption rows of one owner, optionally limited
// to a payment method.
func mitiOwned(owner string, method *pos.PaymentMethod) Predicate {
	return func(r classify.ClassifiedRecord) bool {
		if r.Topic != classify.TopicMiTi || r.Purpose != classify.PurposeConsumption || r.Owner != owner {
			return false
		}
		return method == nil || r.PaymentMethod == *method
	}
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total.Round(2)
}

// summaryColumns is the fixed CSV column order of the summary export.
var summaryColumns = []string{
	"Date",
	"MiTi_Cash", "MiTi_Card", "MiTi Total",
	"LoLa_Cash", "LoLa_Card", "LoLa Total",
	"Vermietung_Cash", "Vermietung_Card", "Vermietung Total",
	"Deposit_Cash", "Deposit_Card", "Deposit Total",
	"Culture_Cash", "Culture_Card", "Culture Total",
	"PaidOut_Cash", "PaidOut_Card", "PaidOut Total",
	"Gross Cash", "Tips_Cash", "SumUp Cash",
	"Gross Card", "Tips_Card", "SumUp Card",
	"Gross Total", "Tips Total", "SumUp Total",
	"Gross Card MiTi", "MiTi_Commission", "Net Card MiTi",
	"Gross Card LoLa", "LoLa_Commission", "Net Card LoLa",
	"Gross Card Total", "Total Commission", "Net Card Total",
	"Gross MiTi (MiTi)", "Gross MiTi (LoLa)", "Gross MiTi (MiTi) Card",
	"Net MiTi (MiTi) Card", "Contribution LoLa", "Payment MiTi",
}

// Table renders the summary as an export table.
func (s *Summary) Table() *export.Table {
	table := export.NewTable(summaryColumns)
	for _, r := range s.Rows {
		table.Append(append([]string{r.Date.Format(pos.DateLayout)}, amounts(
			r.MiTiCash, r.MiTiCard, r.MiTiTotal,
			r.LoLaCash, r.LoLaCard, r.LoLaTotal,
			r.VermietungCash, r.VermietungCard, r.VermietungTotal,
			r.DepositCash, r.DepositCard, r.DepositTotal,
			r.CultureCash, r.CultureCard, r.CultureTotal,
			r.PaidOutCash, r.PaidOutCard, r.PaidOutTotal,
			r.GrossCash, r.TipsCash, r.SumUpCash,
			r.GrossCard, r.TipsCard, r.SumUpCard,
			r.GrossTotal, r.TipsTotal, r.SumUpTotal,
			r.GrossCardMiTi, r.MiTiCommission, r.NetCardMiTi,
			r.GrossCardLoLa, r.LoLaCommission, r.NetCardLoLa,
			r.GrossCardTotal, r.TotalCommission, r.NetCardTotal,
			r.GrossMiTiMiTi, r.GrossMiTiLoLa, r.GrossMiTiMiTiCard,
			r.NetMiTiMiTiCard, r.ContributionLoLa, r.PaymentMiTi,
		)...))
	}
	return table
}

var mitiColumns = []string{
	"Date",
	"Gross MiTi (MiTi)", "Gross MiTi (LoLa)", "Gross MiTi (MiTi) Card",
	"Net MiTi (MiTi) Card", "Contribution LoLa", "Payment MiTi",
}

// MiTiTable renders the settlement view handed to the MiTi organization.
func (s *Summary) MiTiTable() *export.Table {
	table := export.NewTable(mitiColumns)
	for _, r := range s.Rows {
		table.Append(append([]string{r.Date.Format(pos.DateLayout)}, amounts(
			r.GrossMiTiMiTi, r.GrossMiTiLoLa, r.GrossMiTiMiTiCard,
			r.NetMiTiMiTiCard, r.ContributionLoLa, r.PaymentMiTi,
		)...))
	}
	return table
}

func amounts(values ...decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.StringFixed(2)
	}
	return out
}
