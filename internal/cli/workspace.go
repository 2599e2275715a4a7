package cli

import (
	"context"
	"log/slog"

	"github.com/haulstone/tierline/internal/catalog"
	"github.com/haulstone/tierline/internal/engine"
	"github.com/haulstone/tierline/internal/ledger"
	"github.com/haulstone/tierline/internal/store"
)

// workspace bundles the opened store and loaded catalog a command works
// against. Commands that don't price anything (history, movers) may leave
// the catalog nil.
type workspace struct {
	store   *store.Store
	catalog *catalog.Catalog
}

// openWorkspace opens the database and, when withCatalog is set, loads and
// validates the catalog file.
func openWorkspace(opts *RootOptions, withCatalog bool) (*workspace, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	ws := &workspace{store: st}
	if withCatalog {
		cat, err := catalog.Load(opts.Catalog)
		if err != nil {
			st.Close()
			return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
		}
		ws.catalog = cat
	}

	return ws, nil
}

func (ws *workspace) close() {
	if err := ws.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// loadDraft reads the persisted draft. Corruption degrades to the empty
// draft: the failure is logged, never propagated.
func (ws *workspace) loadDraft(ctx context.Context) (engine.Draft, error) {
	d, err := ws.store.LoadDraft(ctx)
	if err != nil {
		if store.IsCorrupt(err) {
			slog.Warn("draft payload corrupt, starting from empty draft", "error", err)
			return engine.NewDraft(), nil
		}
		return engine.NewDraft(), WrapExitError(ExitCommandError, "failed to load draft", err)
	}
	return d, nil
}

// loadRecords reads the persisted ledger. Corruption degrades to an empty
// ledger: the failure is logged, never propagated.
func (ws *workspace) loadRecords(ctx context.Context) ([]ledger.Record, error) {
	records, err := ws.store.ReadLedger(ctx)
	if err != nil {
		if store.IsCorrupt(err) {
			slog.Warn("ledger payload corrupt, continuing with empty ledger", "error", err)
			return []ledger.Record{}, nil
		}
		return nil, WrapExitError(ExitCommandError, "failed to read ledger", err)
	}
	return records, nil
}

// summarize recomputes the order summary for a draft. Always a full
// recompute: a tier change can never partially apply.
func (ws *workspace) summarize(d engine.Draft) engine.Summary {
	return engine.ComputeSummary(d.Tier, d.Quantities, ws.catalog)
}
