// Package domain contains the core business entities for scanhound.
// These types have no dependencies on infrastructure - they represent
// the vocabulary of the renaming pipeline: extraction results, learned
// patterns, corrections, ledger entries, and document segments.
package domain
