package core

import (
	"strconv"
	"strings"
)

// Page is one page of a filtered listing, together with the counts the
// pagination widget needs.
type Page struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PerPage      int           `json:"perPage"`
	TotalPages   int           `json:"totalPages"`
}

// Statistics summarizes a single month of sales.
type Statistics struct {
	TotalSaleAmount   float64 `json:"totalSaleAmount"`
	TotalSoldItems    int     `json:"totalSoldItems"`
	TotalNotSoldItems int     `json:"totalNotSoldItems"`
}

// PriceBucket is one bar of the fixed ten-bucket price histogram.
type PriceBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// CategoryCount is the per-category record count for the pie chart.
// The key name mirrors the wire format the dashboard consumes.
type CategoryCount struct {
	Category string `json:"_id"`
	Count    int    `json:"count"`
}

// CombinedView bundles the four monthly views into one payload.
// Transactions holds the full month-matching set, unpaginated and
// unsearched.
type CombinedView struct {
	Transactions []Transaction   `json:"transactions"`
	Statistics   Statistics      `json:"statistics"`
	BarChart     []PriceBucket   `json:"barChart"`
	PieChart     []CategoryCount `json:"pieChart"`
}

// bucketLabels are the fixed histogram labels, in output order.
var bucketLabels = [10]string{
	"0-100", "101-200", "201-300", "301-400", "401-500",
	"501-600", "601-700", "701-800", "801-900", "901-above",
}

// bucketUppers are the exclusive upper bounds of the first nine buckets.
var bucketUppers = [9]float64{101, 201, 301, 401, 501, 601, 701, 801, 901}

// bucketIndex maps a price to its histogram bucket. Bounds are half-open,
// so a price of exactly 101 lands in "101-200"; anything at or above 901
// falls in the catch-all.
func bucketIndex(price float64) int {
	for i, upper := range bucketUppers {
		if price < upper {
			return i
		}
	}
	return 9
}

// searchPrice converts search text to the price it should match.
// Non-numeric text falls back to 0, so a garbage search still matches a
// record priced exactly 0. Inherited behavior; keep until product says
// otherwise.
func searchPrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// matchesSearch reports whether the record satisfies the search text:
// case-insensitive substring on title or description, or exact price
// equality against the numeric parse of the text.
func (t Transaction) matchesSearch(search string) bool {
	if search == "" {
		return true
	}
	lower := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Title), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), lower) {
		return true
	}
	return t.Price == searchPrice(search)
}

// FilterByMonth returns the records whose sale month equals month,
// preserving input order.
func FilterByMonth(records []Transaction, month int) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, t := range records {
		if t.MatchesMonth(month) {
			out = append(out, t)
		}
	}
	return out
}

// ListPage applies the filter predicate to records and slices out the
// requested page. Total and TotalPages always reflect the full match
// count; a page past the end yields an empty slice, not an error.
func ListPage(records []Transaction, f Filter) Page {
	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 {
		perPage = 1
	}

	matched := make([]Transaction, 0, len(records))
	for _, t := range records {
		if t.MatchesMonth(f.Month) && t.matchesSearch(f.SearchText) {
			matched = append(matched, t)
		}
	}

	total := len(matched)
	totalPages := (total + perPage - 1) / perPage

	skip := (page - 1) * perPage
	slice := []Transaction{}
	if skip < total {
		end := skip + perPage
		if end > total {
			end = total
		}
		slice = matched[skip:end]
	}

	return Page{
		Transactions: slice,
		Total:        total,
		Page:         page,
		PerPage:      perPage,
		TotalPages:   totalPages,
	}
}

// BuildStatistics computes the month's sale statistics. Search text is
// never part of this view. An empty month yields the zero value rather
// than an error.
func BuildStatistics(records []Transaction, month int) Statistics {
	var stats Statistics
	for _, t := range records {
		if !t.MatchesMonth(month) {
			continue
		}
		if t.Sold {
			stats.TotalSaleAmount += t.Price
			stats.TotalSoldItems++
		} else {
			stats.TotalNotSoldItems++
		}
	}
	return stats
}

// BuildBarChart counts month-matching records into the ten fixed price
// buckets. All ten buckets are always present, in order, even at zero.
func BuildBarChart(records []Transaction, month int) []PriceBucket {
	var counts [10]int
	for _, t := range records {
		if t.MatchesMonth(month) {
			counts[bucketIndex(t.Price)]++
		}
	}

	buckets := make([]PriceBucket, len(bucketLabels))
	for i, label := range bucketLabels {
		buckets[i] = PriceBucket{Range: label, Count: counts[i]}
	}
	return buckets
}

// BuildCategoryBreakdown groups month-matching records by exact category
// string. Categories appear in first-seen order; absent categories are
// omitted entirely, unlike the zero-filled histogram.
func BuildCategoryBreakdown(records []Transaction, month int) []CategoryCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, t := range records {
		if !t.MatchesMonth(month) {
			continue
		}
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		out = append(out, CategoryCount{Category: category, Count: counts[category]})
	}
	return out
}
