package pos

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column headers required in the POS export.
var requiredColumns = []string{
	"Account",
	"Date",
	"Time",
	"Type",
	"Transaction ID",
	"Receipt Number",
	"Payment Method",
	"Quantity",
	"Description",
	"Currency",
	"Price (Gross)",
	"Price (Net)",
	"Tax",
	"Tax rate",
	"Transaction refunded",
}

// ReadFile reads a POS export from a delimited-text file.
func ReadFile(path string) ([]TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales export: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}

// Read reads a POS export. The first row must be a header; columns are
// resolved by header name so their physical order does not matter. Any
// malformed date, time or numeric field aborts the read.
func Read(r io.Reader) ([]TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []TransactionRecord
	row := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row+1, err)
		}
		row++

		record, err := parseRecord(fields, index, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRecord(fields []string, index map[string]int, row int) (TransactionRecord, error) {
	get := func(name string) string {
		return strings.TrimSpace(fields[index[name]])
	}

	date, err := time.Parse(DateLayout, get("Date"))
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("invalid date value: %q", get("Date"))
	}

	clock, err := ParseClockTime(get("Time"))
	if err != nil {
		return TransactionRecord{}, err
	}

	quantity, err := strconv.Atoi(get("Quantity"))
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("invalid quantity value: %q", get("Quantity"))
	}

	gross, err := parseAmount("Price (Gross)", get("Price (Gross)"))
	if err != nil {
		return TransactionRecord{}, err
	}
	net, err := parseAmount("Price (Net)", get("Price (Net)"))
	if err != nil {
		return TransactionRecord{}, err
	}
	tax, err := parseAmount("Tax", get("Tax"))
	if err != nil {
		return TransactionRecord{}, err
	}

	return TransactionRecord{
		Row:           row,
		Account:       get("Account"),
		Date:          date,
		Time:          clock,
		Type:          RecordType(get("Type")),
		TransactionID: get("Transaction ID"),
		ReceiptNumber: get("Receipt Number"),
		PaymentMethod: PaymentMethod(get("Payment Method")),
		Quantity:      quantity,
		Description:   get("Description"),
		Currency:      get("Currency"),
		PriceGross:    gross,
		PriceNet:      net,
		Tax:           tax,
		TaxRate:       get("Tax rate"),
		RefundedID:    get("Transaction refunded"),
	}, nil
}

// parseAmount parses a monetary field. An empty value counts as zero, which
// the export uses for tax-free lines.
func parseAmount(column, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s value: %q", column, value)
	}
	return d, nil
}
