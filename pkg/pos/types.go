// Package pos provides the point-of-sale export record model and reader.
package pos

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the date format used by the POS export (day.month.year).
const DateLayout = "02.01.2006"

// RecordType distinguishes sales from refunds.
type RecordType string

const (
	TypeSale   RecordType = "Sale"
	TypeRefund RecordType = "Refund"
)

// PaymentMethod is how a transaction was paid.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash"
	MethodCard PaymentMethod = "Card"
)

// ClockTime is a time of day with minute (and optional second) precision.
// The POS export writes times as HH:MM or HH:MM:SS.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClockTime parses HH:MM or HH:MM:SS.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("invalid time value: %q", s)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return ClockTime{}, fmt.Errorf("invalid time value: %q", s)
		}
		values[i] = v
	}

	ct := ClockTime{Hour: values[0], Minute: values[1]}
	if len(values) == 3 {
		ct.Second = values[2]
	}

	if ct.Hour < 0 || ct.Hour > 23 || ct.Minute < 0 || ct.Minute > 59 || ct.Second < 0 || ct.Second > 59 {
		return ClockTime{}, fmt.Errorf("invalid time value: %q", s)
	}

	return ct, nil
}

// seconds returns the time of day as seconds since midnight.
func (c ClockTime) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// Before reports whether c is strictly before other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.seconds() < other.seconds()
}

// After reports whether c is strictly after other.
func (c ClockTime) After(other ClockTime) bool {
	return c.seconds() > other.seconds()
}

// String formats the time as HH:MM:SS.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// TransactionRecord is one sale or refund line of the POS export.
// Records are immutable once read.
type TransactionRecord struct {
	Row           int // 1-based data row number in the input file
	Account       string
	Date          time.Time
	Time          ClockTime
	Type          RecordType
	TransactionID string
	ReceiptNumber string
	PaymentMethod PaymentMethod
	Quantity      int
	Description   string // trimmed of surrounding whitespace
	Currency      string
	PriceGross    decimal.Decimal
	PriceNet      decimal.Decimal // gross minus the processor's commission
	Tax           decimal.Decimal
	TaxRate       string
	RefundedID    string // transaction id this record refunds, empty if none
}

// Commission returns the processor's fee for this record. Card payments are
// settled net of commission, so the fee is the gross/net difference. Cash
// records carry no commission.
func (r TransactionRecord) Commission() decimal.Decimal {
	if r.PaymentMethod != MethodCard {
		return decimal.Zero
	}
	return r.PriceGross.Sub(r.PriceNet)
}

// DateKey returns the record date formatted in the export date layout.
func (r TransactionRecord) DateKey() string {
	return r.Date.Format(DateLayout)
}
