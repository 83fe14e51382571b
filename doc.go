// Package khata provides the core types and operations for a personal
// ledger application: users, their credit/debit transactions, and free-text
// notes, persisted as per-user JSON documents. It is designed to be
// local-first and auditable, keeping every user's data in plain files the
// user fully owns.
//
// The core functionalities include:
//   - Ledger Management: Recording and removing credit/debit transactions
//     against a per-user append-style transaction list, newest first.
//   - Balance Derivation: The displayed balance is always recomputed from
//     the opening balance plus the full transaction list, so it can never
//     drift from the stored records.
//   - Grouping: Per-counterparty ("belongs to") summaries with credit/debit
//     totals, net amount and last activity, derived in a single pass.
//   - Notes: Timestamped free-text notes, independent of the ledger.
//
// This package serves as the foundational logic for the `kta` command-line
// tool and the HTTP server, ensuring that all surfaces derive the same
// numbers from a single source of truth.
package khata
