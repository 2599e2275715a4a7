// Package ledger is the append-only record of committed orders.
//
// Records are immutable once appended: the package exposes no update or
// delete operation, and all analytics are order-independent aggregations
// recomputed from the records on demand.
package ledger
