package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/haulstone/tierline/internal/engine"
	"github.com/haulstone/tierline/internal/ledger"
)

// AppendRecord writes a committed order and its frozen lines in a single
// transaction. Uses ON CONFLICT(id) DO NOTHING for idempotency - replaying
// an already persisted record is a no-op, so a retry after a crash between
// commit and acknowledgment cannot duplicate an order.
func (s *Store) AppendRecord(ctx context.Context, rec ledger.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, committed_at, tier, total_value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.CommittedAt,
		string(rec.Tier),
		rec.TotalValue.String(),
	)
	if err != nil {
		return fmt.Errorf("append record: insert order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("append record: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Record already persisted - lines were written with it.
		return tx.Commit()
	}

	for _, line := range rec.Lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines
			(order_id, code, name, quantity_boxes, rate_per_meter, line_value, pieces, packs, compliant, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			rec.ID,
			line.Code,
			line.Name,
			line.QuantityBoxes,
			line.RatePerMeter.String(),
			line.LineValue.String(),
			line.Pieces.String(),
			line.Packs,
			boolToInt(line.Compliant),
			line.Status,
		)
		if err != nil {
			return fmt.Errorf("append record: insert line %s: %w", line.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append record: commit: %w", err)
	}

	return nil
}

// ReadLedger returns all committed orders with their lines, newest first
// (committed_at DESC, id ASC for stable ordering of same-millisecond
// commits).
//
// Returns an empty slice (not nil) if no orders exist. A row that fails to
// parse yields a *CorruptError so the caller can fall back to an empty
// ledger instead of crashing.
func (s *Store) ReadLedger(ctx context.Context) ([]ledger.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, committed_at, tier, total_value
		FROM orders
		ORDER BY committed_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		var rec ledger.Record
		var tier, totalValue string
		if err := rows.Scan(&rec.ID, &rec.CommittedAt, &tier, &totalValue); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		rec.Tier = engine.Tier(tier)
		rec.TotalValue, err = decimal.NewFromString(totalValue)
		if err != nil {
			return nil, &CorruptError{What: "ledger", Err: fmt.Errorf("order %s total_value: %w", rec.ID, err)}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range records {
		lines, err := s.readOrderLines(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Lines = lines
	}

	if records == nil {
		records = []ledger.Record{}
	}

	return records, nil
}

// CountOrders returns the number of persisted orders.
func (s *Store) CountOrders(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// readOrderLines returns the frozen lines of one order in insertion order.
func (s *Store) readOrderLines(ctx context.Context, orderID string) ([]engine.Line, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, quantity_boxes, rate_per_meter, line_value, pieces, packs, compliant, status
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	var lines []engine.Line
	for rows.Next() {
		var line engine.Line
		var rate, value, pieces string
		var compliant int
		if err := rows.Scan(
			&line.Code, &line.Name, &line.QuantityBoxes,
			&rate, &value, &pieces,
			&line.Packs, &compliant, &line.Status,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		line.Compliant = compliant != 0

		if line.RatePerMeter, err = decimal.NewFromString(rate); err != nil {
			return nil, &CorruptError{What: "ledger", Err: fmt.Errorf("order %s line %s rate: %w", orderID, line.Code, err)}
		}
		if line.LineValue, err = decimal.NewFromString(value); err != nil {
			return nil, &CorruptError{What: "ledger", Err: fmt.Errorf("order %s line %s value: %w", orderID, line.Code, err)}
		}
		if line.Pieces, err = decimal.NewFromString(pieces); err != nil {
			return nil, &CorruptError{What: "ledger", Err: fmt.Errorf("order %s line %s pieces: %w", orderID, line.Code, err)}
		}

		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	if lines == nil {
		lines = []engine.Line{}
	}

	return lines, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
