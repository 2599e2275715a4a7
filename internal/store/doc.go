// Package store provides durable storage for the order ledger and the
// buyer's draft. Uses SQLite with WAL mode; writes are transactional so a
// crash mid-commit can never leave a partially written order behind.
package store
