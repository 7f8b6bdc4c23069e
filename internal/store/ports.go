package store

import (
	"context"

	"txdash/internal/core"
)

// Ports for the record store backends.
type (
	// Reader provides read access to the stored record set.
	Reader interface {
		// TransactionsByMonth returns records whose sale month equals
		// month across all years, in insertion order. core.MonthAny
		// returns every record; any other out-of-range month matches
		// nothing.
		TransactionsByMonth(ctx context.Context, month int) ([]core.Transaction, error)

		// Count returns the number of stored records.
		Count(ctx context.Context) (int, error)
	}

	// Replacer swaps the entire record set in one atomic step. Readers
	// observe either the old set or the new one, never a mixture.
	Replacer interface {
		ReplaceAll(ctx context.Context, records []core.Transaction) error
	}

	// Store combines both sides of the record store contract.
	Store interface {
		Reader
		Replacer
	}
)
