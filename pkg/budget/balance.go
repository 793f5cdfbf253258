package budget

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceRow is one account line of the year-end trial balance.
type BalanceRow struct {
	Account     string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// accountsWorksheet is the only worksheet read from the trial balance.
const accountsWorksheet = "Accounts"

// Logical columns of the Accounts worksheet, one-based.
const (
	colAccount     = 1
	colDescription = 2
	colDebit       = 3
	colCredit      = 4
	colBalance     = 5
)

// SpreadsheetML document structure. Element and attribute names match by
// local name, so the ss: namespace prefixes of the source file are
// irrelevant.
type xmlWorkbook struct {
	Worksheets []xmlWorksheet `xml:"Worksheet"`
}

type xmlWorksheet struct {
	Name string   `xml:"Name,attr"`
	Rows []xmlRow `xml:"Table>Row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"Cell"`
}

type xmlCell struct {
	// Index is the explicit one-based column position; zero means "next
	// column after the previous cell".
	Index int    `xml:"Index,attr"`
	Data  string `xml:"Data"`
}

// ReadBalanceFile reads a trial balance from a spreadsheet-XML file.
func ReadBalanceFile(path string) ([]BalanceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trial balance: %w", err)
	}
	defer f.Close()

	rows, err := ReadBalance(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// ReadBalance reads the "Accounts" worksheet of a SpreadsheetML trial
// balance. The first row is the header; empty amount cells count as zero.
func ReadBalance(r io.Reader) ([]BalanceRow, error) {
	var workbook xmlWorkbook
	if err := xml.NewDecoder(r).Decode(&workbook); err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet XML: %w", err)
	}

	var sheet *xmlWorksheet
	for i := range workbook.Worksheets {
		if workbook.Worksheets[i].Name == accountsWorksheet {
			sheet = &workbook.Worksheets[i]
			break
		}
	}
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet named %q", accountsWorksheet)
	}
	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("worksheet %q is empty", accountsWorksheet)
	}

	var rows []BalanceRow
	for _, row := range sheet.Rows[1:] {
		cells := positionCells(row.Cells)
		if strings.TrimSpace(cells[colAccount]) == "" {
			continue
		}

		debit, err := parseCellAmount("debit", cells[colDebit])
		if err != nil {
			return nil, err
		}
		credit, err := parseCellAmount("credit", cells[colCredit])
		if err != nil {
			return nil, err
		}
		balance, err := parseCellAmount("balance", cells[colBalance])
		if err != nil {
			return nil, err
		}

		rows = append(rows, BalanceRow{
			Account:     strings.TrimSpace(cells[colAccount]),
			Description: strings.TrimSpace(cells[colDescription]),
			Debit:       debit,
			Credit:      credit,
			Balance:     balance,
		})
	}

	return rows, nil
}

// positionCells maps a row's cells to their one-based column positions,
// honoring explicit ss:Index attributes.
func positionCells(cells []xmlCell) map[int]string {
	positioned := make(map[int]string, len(cells))
	next := 1
	for _, cell := range cells {
		if cell.Index > 0 {
			next = cell.Index
		}
		positioned[next] = cell.Data
		next++
	}
	return positioned
}

func parseCellAmount(column, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s value: %q", column, value)
	}
	return d, nil
}
