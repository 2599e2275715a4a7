package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haulstone/tierline/internal/engine"
)

// Record is one committed order. Once appended it is never edited or
// removed; the lines are a frozen copy of the order summary at commit time.
type Record struct {
	ID          string          `json:"id"`
	CommittedAt int64           `json:"committed_at"` // epoch milliseconds
	Tier        engine.Tier     `json:"tier"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Lines       []engine.Line   `json:"lines"`
}

// Ledger is the append-only sequence of committed orders.
//
// Append is the only mutating operation and is guarded by a single-writer
// mutex so concurrent commits cannot interleave. Display order is the
// caller's concern; analytics never depend on record order.
type Ledger struct {
	mu      sync.Mutex
	records []Record
	idGen   IDGenerator
	now     func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithGenerator overrides the record ID generator (for testing).
func WithGenerator(g IDGenerator) Option {
	return func(l *Ledger) { l.idGen = g }
}

// WithClock overrides the commit timestamp source (for testing).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		idGen: UUIDv7Generator{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromRecords builds a ledger seeded with previously persisted records.
// The slice is copied; the caller's slice stays independent.
func FromRecords(records []Record, opts ...Option) *Ledger {
	l := New(opts...)
	l.records = make([]Record, len(records))
	copy(l.records, records)
	return l
}

// Append commits an order summary as a new immutable record.
//
// The authorization gate is re-checked here, at the boundary, rather than
// trusting a check the caller made earlier - a stale summary must not slip
// through. A summary that is unauthorized or has no lines yields a
// *GateError and leaves the ledger untouched.
func (l *Ledger) Append(s engine.Summary) (Record, error) {
	if err := gate(s); err != nil {
		return Record{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lines := make([]engine.Line, len(s.Lines))
	copy(lines, s.Lines)

	rec := Record{
		ID:          l.idGen.Generate(),
		CommittedAt: l.now().UnixMilli(),
		Tier:        s.Tier,
		TotalValue:  s.TotalValue,
		Lines:       lines,
	}
	l.records = append(l.records, rec)
	return rec, nil
}

// gate enforces the commit precondition: at least one line, zero failures.
func gate(s engine.Summary) error {
	if s.Authorized && len(s.Lines) > 0 {
		return nil
	}
	ge := &GateError{FailureCount: s.FailureCount}
	for _, line := range s.Lines {
		if !line.Compliant {
			ge.Failures = append(ge.Failures, Failure{Code: line.Code, Status: line.Status})
		}
	}
	return ge
}

// All returns a copy of every record. Sorting and pagination are the
// caller's responsibility.
func (l *Ledger) All() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of committed records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// PurchasedCodes returns the distinct SKU codes that appear in any record's
// lines. This is the eligibility set for demand projection.
func (l *Ledger) PurchasedCodes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]bool)
	var codes []string
	for _, rec := range l.records {
		for _, line := range rec.Lines {
			if !seen[line.Code] {
				seen[line.Code] = true
				codes = append(codes, line.Code)
			}
		}
	}
	return codes
}
