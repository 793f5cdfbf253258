package classify

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lolaverein/lola-accounting/pkg/pos"
)

func testRecord(id, refunded string, clock pos.ClockTime, description string) pos.TransactionRecord {
	return pos.TransactionRecord{
		Date:          time.Date(2023, 4, 17, 0, 0, 0, 0, time.UTC),
		Time:          clock,
		Type:          pos.TypeSale,
		TransactionID: id,
		PaymentMethod: pos.MethodCash,
		Quantity:      1,
		Description:   description,
		Currency:      "CHF",
		PriceGross:    decimal.NewFromInt(10),
		PriceNet:      decimal.NewFromInt(10),
		RefundedID:    refunded,
	}
}

func TestTopicOf(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		name string
		time pos.ClockTime
		want Topic
	}{
		{"early morning", pos.ClockTime{Hour: 8}, TopicMiTi},
		{"just before lower threshold", pos.ClockTime{Hour: 14, Minute: 59, Second: 59}, TopicMiTi},
		{"lower threshold belongs to cafe", pos.ClockTime{Hour: 15}, TopicLoLa},
		{"mid afternoon", pos.ClockTime{Hour: 16, Minute: 30}, TopicLoLa},
		{"upper threshold belongs to cafe", pos.ClockTime{Hour: 18}, TopicLoLa},
		{"just after upper threshold", pos.ClockTime{Hour: 18, Minute: 0, Second: 1}, TopicVermietung},
		{"late evening", pos.ClockTime{Hour: 23, Minute: 59}, TopicVermietung},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.TopicOf(tt.time); got != tt.want {
				t.Errorf("TopicOf(%s) = %s, want %s", tt.time, got, tt.want)
			}
		})
	}
}

func TestPurposeOf(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		description string
		want        Purpose
	}{
		{"Trinkgeld", PurposeTip},
		{"  Trinkgeld  ", PurposeTip},
		{"Trinkgeld Kasse", PurposeConsumption},
		{"Kaffee", PurposeConsumption},
		{"", PurposeConsumption},
	}

	for _, tt := range tests {
		if got := c.PurposeOf(tt.description); got != tt.want {
			t.Errorf("PurposeOf(%q) = %s, want %s", tt.description, got, tt.want)
		}
	}
}

func TestOwnerOf(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		name        string
		topic       Topic
		description string
		want        string
	}{
		{"miti menu line", TopicMiTi, "Menü classic", OwnerMiTi},
		{"miti other line", TopicMiTi, "Mineralwasser", OwnerLoLa},
		{"cafe line", TopicLoLa, "Menü classic", ""},
		{"rental line", TopicVermietung, "Saalmiete", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.OwnerOf(tt.topic, tt.description); got != tt.want {
				t.Errorf("OwnerOf(%s, %q) = %q, want %q", tt.topic, tt.description, got, tt.want)
			}
		})
	}
}

func TestSuppressRefunds(t *testing.T) {
	noon := pos.ClockTime{Hour: 12}

	t.Run("confirmed pair is dropped on both legs", func(t *testing.T) {
		records := []pos.TransactionRecord{
			testRecord("T1", "", noon, "Kaffee"),
			testRecord("T2", "", noon, "Kuchen"),
			testRecord("T3", "T1", noon, "Kaffee"),
		}

		kept := SuppressRefunds(records)
		if len(kept) != 1 {
			t.Fatalf("kept %d records, want 1", len(kept))
		}
		if kept[0].TransactionID != "T2" {
			t.Errorf("kept %s, want T2", kept[0].TransactionID)
		}
	})

	t.Run("dangling reference suppresses nothing", func(t *testing.T) {
		records := []pos.TransactionRecord{
			testRecord("T1", "", noon, "Kaffee"),
			testRecord("T3", "T9", noon, "Kaffee"),
		}

		kept := SuppressRefunds(records)
		if len(kept) != 2 {
			t.Fatalf("kept %d records, want 2", len(kept))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		records := []pos.TransactionRecord{
			testRecord("T1", "", noon, "Kaffee"),
			testRecord("T2", "T1", noon, "Kaffee"),
			testRecord("T3", "", noon, "Kuchen"),
		}

		once := SuppressRefunds(records)
		twice := SuppressRefunds(once)
		if len(once) != len(twice) {
			t.Fatalf("suppression not idempotent: %d then %d", len(once), len(twice))
		}
		for i := range once {
			if once[i].TransactionID != twice[i].TransactionID {
				t.Errorf("record %d changed: %s vs %s", i, once[i].TransactionID, twice[i].TransactionID)
			}
		}
	})
}

func TestClassify(t *testing.T) {
	c := New(DefaultConfig())

	record := testRecord("T1", "", pos.ClockTime{Hour: 12, Minute: 15}, "Menü classic")
	classified := c.Classify(record)

	if classified.Topic != TopicMiTi {
		t.Errorf("topic = %s, want MiTi", classified.Topic)
	}
	if classified.Purpose != PurposeConsumption {
		t.Errorf("purpose = %s, want Consumption", classified.Purpose)
	}
	if classified.Owner != OwnerMiTi {
		t.Errorf("owner = %q, want MiTi", classified.Owner)
	}
}
