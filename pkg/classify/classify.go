// Package classify derives business dimensions (topic, purpose, owner) for
// raw POS transaction records and suppresses refund pairs.
package classify

import (
	"strings"

	"github.com/lolaverein/lola-accounting/pkg/pos"
)

// Topic is the business activity a transaction belongs to.
type Topic string

const (
	TopicMiTi       Topic = "MiTi"       // midday-meal service, before the café opens
	TopicLoLa       Topic = "LoLa"       // café/bar
	TopicVermietung Topic = "Vermietung" // rental of the venue
	TopicDeposit    Topic = "Deposit"
	TopicCulture    Topic = "Culture"
	TopicPaidOut    Topic = "PaidOut"
)

// Purpose distinguishes ordinary sales from tips.
type Purpose string

const (
	PurposeConsumption Purpose = "Consumption"
	PurposeTip         Purpose = "Tip"
)

// Owner names the organization entitled to a MiTi transaction's revenue.
// The empty string means the venue itself (the LoLa default for non-MiTi
// topics).
const (
	OwnerMiTi = "MiTi"
	OwnerLoLa = "LoLa"
)

// ClassifiedRecord is a transaction record with derived dimensions attached.
type ClassifiedRecord struct {
	pos.TransactionRecord

	Topic   Topic
	Purpose Purpose
	Owner   string
	Comment string
}

// Config carries the classification rules.
type Config struct {
	// ThresholdMiTi is the end of the midday-meal span; times strictly
	// before it are MiTi.
	ThresholdMiTi pos.ClockTime
	// ThresholdRental is the end of the café span; times strictly after it
	// are Vermietung. The thresholds themselves belong to the café span.
	ThresholdRental pos.ClockTime
	// TipMarker is the description that marks a tip line.
	TipMarker string
	// MenuMarker marks MiTi lines owned by the MiTi organization.
	MenuMarker string
	// DefaultOwner is assigned to MiTi lines without the menu marker.
	DefaultOwner string
}

// DefaultConfig returns the venue's standard classification rules.
func DefaultConfig() Config {
	return Config{
		ThresholdMiTi:   pos.ClockTime{Hour: 15},
		ThresholdRental: pos.ClockTime{Hour: 18},
		TipMarker:       "Trinkgeld",
		MenuMarker:      "Menü",
		DefaultOwner:    OwnerLoLa,
	}
}

// Classifier derives dimensions for transaction records.
type Classifier struct {
	cfg Config
}

// New creates a Classifier with the given rules.
func New(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// TopicOf infers the topic from the time of day alone.
func (c *Classifier) TopicOf(t pos.ClockTime) Topic {
	switch {
	case t.Before(c.cfg.ThresholdMiTi):
		return TopicMiTi
	case t.After(c.cfg.ThresholdRental):
		return TopicVermietung
	default:
		return TopicLoLa
	}
}

// PurposeOf infers the purpose from the trimmed description.
func (c *Classifier) PurposeOf(description string) Purpose {
	if strings.TrimSpace(description) == c.cfg.TipMarker {
		return PurposeTip
	}
	return PurposeConsumption
}

// OwnerOf infers the owner. Only MiTi transactions carry an owner: lines
// with the menu marker belong to the MiTi organization, the rest to the
// venue. Every other topic takes the empty owner.
func (c *Classifier) OwnerOf(topic Topic, description string) string {
	if topic != TopicMiTi {
		return ""
	}
	if strings.Contains(description, c.cfg.MenuMarker) {
		return OwnerMiTi
	}
	return c.cfg.DefaultOwner
}

// Classify derives the dimensions for a single record.
func (c *Classifier) Classify(record pos.TransactionRecord) ClassifiedRecord {
	topic := c.TopicOf(record.Time)
	return ClassifiedRecord{
		TransactionRecord: record,
		Topic:             topic,
		Purpose:           c.PurposeOf(record.Description),
		Owner:             c.OwnerOf(topic, record.Description),
	}
}

// ClassifyAll suppresses confirmed refund pairs and classifies the remaining
// records. Suppression is idempotent: once both legs of a pair are gone,
// nothing references anything anymore.
func (c *Classifier) ClassifyAll(records []pos.TransactionRecord) []ClassifiedRecord {
	kept := SuppressRefunds(records)

	classified := make([]ClassifiedRecord, 0, len(kept))
	for _, record := range kept {
		classified = append(classified, c.Classify(record))
	}
	return classified
}

// SuppressRefunds drops both legs of every confirmed refund pair. A record
// is dropped if another record in the set refers to it as refunded, or if
// its own refunded reference names a transaction present in the set. A
// dangling reference to an absent transaction suppresses nothing.
func SuppressRefunds(records []pos.TransactionRecord) []pos.TransactionRecord {
	byID := make(map[string]bool, len(records))
	for _, record := range records {
		byID[record.TransactionID] = true
	}

	refunded := make(map[string]bool)
	for _, record := range records {
		if record.RefundedID != "" && byID[record.RefundedID] {
			refunded[record.RefundedID] = true
			refunded[record.TransactionID] = true
		}
	}

	kept := make([]pos.TransactionRecord, 0, len(records))
	for _, record := range records {
		if refunded[record.TransactionID] {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}
