// Package equitax reconciles equity-compensation transactions for tax
// reporting.
//
// Purchase and sale records coming from independent sources are assembled
// into a single chronological ledger. A sequential processor then walks the
// ledger, converts euro amounts into reais using historical BCB PTAX
// quotes, maintains a moving-average cost basis of the current holdings,
// and derives the realized profit and the tax owed on each sale.
//
// The package is organized around three small components:
//
//   - [Assemble] merges raw purchase and sale records into a [Ledger].
//   - [RateResolver] answers "what was the EUR/BRL rate on that day",
//     falling back to the previous business day when markets were closed.
//   - [Processor] performs the single forward pass that fills the computed
//     fields of every [Entry].
//
// Ledgers are persisted as JSONL files, one entry per line, and round-trip
// without loss: see [EncodeLedger] and [DecodeLedger].
//
// This package is the foundational logic for the `eqt` command-line tool.
package equitax
