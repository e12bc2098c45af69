// Package record defines the transfer record handed between consumers.
package record

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// IDPrefix marks identifiers produced by NewID.
const IDPrefix = "TX-"

// Record captures one transfer between two accounts. Its fields are fixed at
// construction and only readable through accessors; the sole way to obtain a
// second copy is Clone.
//
//txflow:move
type Record struct {
	id          string
	amount      decimal.Decimal
	timestamp   time.Time
	source      string
	destination string
}

// New builds a record from its five fields without further validation.
func New(id string, amount decimal.Decimal, timestamp time.Time, source, destination string) Record {
	return Record{
		id:          id,
		amount:      amount,
		timestamp:   timestamp,
		source:      source,
		destination: destination,
	}
}

// Generate builds a record with a fresh identifier stamped with the current UTC time.
func Generate(amount decimal.Decimal, source, destination string) Record {
	return New(NewID(), amount, time.Now().UTC(), source, destination)
}

// NewID returns a unique transaction identifier.
func NewID() string {
	return IDPrefix + strings.ToUpper(uuid.NewString())
}

// ParseAmount parses a decimal amount such as "1000.50".
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return amount, nil
}

func (r Record) ID() string              { return r.id }
func (r Record) Amount() decimal.Decimal { return r.amount }
func (r Record) Timestamp() time.Time    { return r.timestamp }
func (r Record) Source() string          { return r.source }
func (r Record) Destination() string     { return r.destination }

// Clone returns an independent duplicate carrying the same field values.
func (r Record) Clone() Record {
	return Record{
		id:          r.id,
		amount:      r.amount,
		timestamp:   r.timestamp,
		source:      r.source,
		destination: r.destination,
	}
}

// FormatAmount renders amount with its own scale and at least two decimals,
// so 1000.5 prints as 1000.50 and 1000.505 keeps its third digit.
func FormatAmount(amount decimal.Decimal) string {
	places := int32(2)
	if exp := -amount.Exponent(); exp > places {
		places = exp
	}
	return amount.StringFixed(places)
}

// String renders every field for debug output.
func (r Record) String() string {
	return fmt.Sprintf("Record{id: %q, amount: %s, timestamp: %s, source_account: %q, destination_account: %q}",
		r.id, FormatAmount(r.amount), r.timestamp.Format(time.RFC3339Nano), r.source, r.destination)
}

// MarshalZerologObject embeds the record fields into a log event.
func (r Record) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", r.id).
		Str("amount", FormatAmount(r.amount)).
		Time("timestamp", r.timestamp).
		Str("source_account", r.source).
		Str("destination_account", r.destination)
}

type wireRecord struct {
	ID                 string          `json:"id"`
	Amount             decimal.Decimal `json:"amount"`
	Timestamp          time.Time       `json:"timestamp"`
	SourceAccount      string          `json:"source_account"`
	DestinationAccount string          `json:"destination_account"`
}

// MarshalJSON encodes the record using snake_case field names.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		ID:                 r.id,
		Amount:             r.amount,
		Timestamp:          r.timestamp,
		SourceAccount:      r.source,
		DestinationAccount: r.destination,
	})
}

// UnmarshalJSON decodes a record produced by MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var wire wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = New(wire.ID, wire.Amount, wire.Timestamp, wire.SourceAccount, wire.DestinationAccount)
	return nil
}
