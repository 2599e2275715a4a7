package ledger

import (
	"encoding/json"
	"fmt"
)

// Serialize encodes the ledger's records as a JSON array. Decimal fields are
// encoded as strings, so currency values round-trip exactly.
func (l *Ledger) Serialize() ([]byte, error) {
	records := l.All()
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("serialize ledger: %w", err)
	}
	return data, nil
}

// Load decodes a serialized ledger. A corrupt payload returns an error; the
// caller is expected to log it and fall back to an empty or last-known-good
// ledger rather than crash.
func Load(data []byte, opts ...Option) (*Ledger, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return FromRecords(records, opts...), nil
}
