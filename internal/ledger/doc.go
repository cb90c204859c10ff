// Package ledger records canonicalization runs in SQLite.
//
// The ledger is append-only. Each run gets a UUIDv7 id and a logical seq
// assigned inside the inserting transaction; listings are ordered by seq,
// never by wall-clock time, so two ledgers fed the same runs list them
// identically apart from ids.
package ledger
