package core

import "time"

// Month sentinels used by Filter.Month and the month-scoped views.
const (
	// MonthAny selects every record regardless of sale month.
	MonthAny = 0
	// MonthNone is the month an unparsable query parameter degrades to.
	// No record can match it, so such requests return empty results
	// instead of an error.
	MonthNone = -1
)

type (
	// Transaction is a single sale record. Records are immutable once
	// loaded; the only write operation is a full replace of the set.
	Transaction struct {
		ID          int64     `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Price       float64   `json:"price"`
		Category    string    `json:"category"`
		Image       string    `json:"image"`
		Sold        bool      `json:"sold"`
		DateOfSale  time.Time `json:"dateOfSale"`
	}

	// Filter describes one listing request. Month matches the calendar
	// month of DateOfSale across all years; the year is never part of
	// the comparison.
	Filter struct {
		Month      int
		SearchText string
		Page       int
		PerPage    int
	}
)

// MatchesMonth reports whether the record's sale month equals month.
func (t Transaction) MatchesMonth(month int) bool {
	if month == MonthAny {
		return true
	}
	return int(t.DateOfSale.Month()) == month
}
