package budget

import (
	"strings"
	"testing"
)

const sampleBalance = `<?xml version="1.0"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
          xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet ss:Name="Journal">
  <Table>
   <Row><Cell><Data>should not be read</Data></Cell></Row>
  </Table>
 </Worksheet>
 <Worksheet ss:Name="Accounts">
  <Table>
   <Row>
    <Cell><Data>Account</Data></Cell>
    <Cell><Data>Description</Data></Cell>
    <Cell><Data>Debit</Data></Cell>
    <Cell><Data>Credit</Data></Cell>
    <Cell><Data>Balance</Data></Cell>
   </Row>
   <Row>
    <Cell><Data>30100</Data></Cell>
    <Cell><Data>Ertrag Restauration</Data></Cell>
    <Cell><Data>0</Data></Cell>
    <Cell><Data>54012.35</Data></Cell>
    <Cell><Data>-54012.35</Data></Cell>
   </Row>
   <Row>
    <Cell><Data>40000</Data></Cell>
    <Cell><Data>Materialaufwand</Data></Cell>
    <Cell ss:Index="5"><Data>10233.80</Data></Cell>
   </Row>
   <Row>
    <Cell ss:Index="2"><Data>row without account is skipped</Data></Cell>
   </Row>
  </Table>
 </Worksheet>
</Workbook>
`

func TestReadBalance(t *testing.T) {
	rows, err := ReadBalance(strings.NewReader(sampleBalance))
	if err != nil {
		t.Fatalf("ReadBalance() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ReadBalance() returned %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Account != "30100" {
		t.Errorf("account = %q, want 30100", first.Account)
	}
	if first.Description != "Ertrag Restauration" {
		t.Errorf("description = %q", first.Description)
	}
	if first.Credit.String() != "54012.35" {
		t.Errorf("credit = %s, want 54012.35", first.Credit)
	}
	if first.Balance.String() != "-54012.35" {
		t.Errorf("balance = %s, want -54012.35", first.Balance)
	}

	// Explicit ss:Index placed the balance in column 5; the skipped
	// columns count as zero.
	second := rows[1]
	if second.Balance.String() != "10233.8" {
		t.Errorf("balance = %s, want 10233.8", second.Balance)
	}
	if !second.Debit.IsZero() || !second.Credit.IsZero() {
		t.Errorf("debit/credit = %s/%s, want 0/0", second.Debit, second.Credit)
	}
}

func TestReadBalanceRequiresAccountsWorksheet(t *testing.T) {
	input := `<?xml version="1.0"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
          xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet ss:Name="Journal"><Table></Table></Worksheet>
</Workbook>`

	_, err := ReadBalance(strings.NewReader(input))
	if err == nil {
		t.Fatal("ReadBalance() expected error, got nil")
	}
	if !strings.Contains(err.Error(), `"Accounts"`) {
		t.Errorf("error = %q, want it to name the Accounts worksheet", err)
	}
}

func TestReadBalanceRejectsMalformedAmount(t *testing.T) {
	input := `<?xml version="1.0"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
          xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet ss:Name="Accounts">
  <Table>
   <Row><Cell><Data>Account</Data></Cell></Row>
   <Row>
    <Cell><Data>30100</Data></Cell>
    <Cell><Data>x</Data></Cell>
    <Cell><Data>abc</Data></Cell>
   </Row>
  </Table>
 </Worksheet>
</Workbook>`

	_, err := ReadBalance(strings.NewReader(input))
	if err == nil {
		t.Fatal("ReadBalance() expected error, got nil")
	}
	if !strings.Contains(err.Error(), `invalid debit value: "abc"`) {
		t.Errorf("error = %q", err)
	}
}
