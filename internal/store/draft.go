package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/haulstone/tierline/internal/engine"
)

// SaveDraft overwrites the persisted draft wholesale. There are no merge
// semantics: the payload on disk is always the last full draft.
func (s *Store) SaveDraft(ctx context.Context, d engine.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("save draft: marshal: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO draft (id, payload)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload
	`, string(payload))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	return nil
}

// LoadDraft returns the persisted draft. An absent draft is not an error -
// it decodes to the empty draft with no tier selected. A corrupt payload
// yields a *CorruptError; callers log it and continue with the empty draft.
func (s *Store) LoadDraft(ctx context.Context) (engine.Draft, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM draft WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.NewDraft(), nil
	}
	if err != nil {
		return engine.NewDraft(), fmt.Errorf("load draft: %w", err)
	}

	var d engine.Draft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return engine.NewDraft(), &CorruptError{What: "draft", Err: err}
	}
	if _, err := engine.ParseTier(string(d.Tier)); err != nil {
		return engine.NewDraft(), &CorruptError{What: "draft", Err: err}
	}

	d.Normalize()
	return d, nil
}

// ClearDraft removes the persisted draft. Called after a successful commit.
func (s *Store) ClearDraft(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM draft WHERE id = 1`); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
