package core

import (
	"testing"
	"time"
)

func record(id int64, price float64, sold bool, year, month int, title, desc, category string) Transaction {
	return Transaction{
		ID:          id,
		Title:       title,
		Description: desc,
		Price:       price,
		Category:    category,
		Sold:        sold,
		DateOfSale:  time.Date(year, time.Month(month), 15, 12, 0, 0, 0, time.UTC),
	}
}

func sampleRecords() []Transaction {
	return []Transaction{
		record(1, 50, true, 2021, 3, "Laptop sleeve", "Padded sleeve", "electronics"),
		record(2, 150, false, 2022, 3, "Desk lamp", "Adjustable lamp", "home"),
		record(3, 950, true, 2021, 4, "Monitor", "27 inch monitor", "electronics"),
	}
}

func TestListPageMonthFilterIgnoresYear(t *testing.T) {
	// Records 1 and 2 share month 3 but come from different years.
	page := ListPage(sampleRecords(), Filter{Month: 3, Page: 1, PerPage: 10})
	if page.Total != 2 {
		t.Fatalf("total = %d, want 2", page.Total)
	}
	if len(page.Transactions) != 2 {
		t.Fatalf("len = %d, want 2", len(page.Transactions))
	}
	if page.Transactions[0].ID != 1 || page.Transactions[1].ID != 2 {
		t.Fatalf("unexpected order: %d, %d", page.Transactions[0].ID, page.Transactions[1].ID)
	}
}

func TestListPagePagination(t *testing.T) {
	records := make([]Transaction, 0, 12)
	for i := int64(1); i <= 12; i++ {
		records = append(records, record(i, float64(i), true, 2022, 5, "item", "desc", "misc"))
	}

	cases := []struct {
		name       string
		page       int
		perPage    int
		wantLen    int
		wantTotal  int
		wantPages  int
		wantFirst  int64
	}{
		{"first page", 1, 10, 10, 12, 2, 1},
		{"last partial page", 2, 10, 2, 12, 2, 11},
		{"page beyond range", 5, 10, 0, 12, 2, 0},
		{"small pages", 3, 4, 4, 12, 3, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ListPage(records, Filter{Month: 5, Page: tc.page, PerPage: tc.perPage})
			if len(p.Transactions) != tc.wantLen {
				t.Fatalf("len = %d, want %d", len(p.Transactions), tc.wantLen)
			}
			if p.Total != tc.wantTotal {
				t.Fatalf("total = %d, want %d", p.Total, tc.wantTotal)
			}
			if p.TotalPages != tc.wantPages {
				t.Fatalf("totalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if tc.wantLen > 0 && p.Transactions[0].ID != tc.wantFirst {
				t.Fatalf("first id = %d, want %d", p.Transactions[0].ID, tc.wantFirst)
			}
			if p.Transactions == nil {
				t.Fatal("transactions slice must be non-nil")
			}
		})
	}
}

func TestListPageTotalIndependentOfPagination(t *testing.T) {
	records := sampleRecords()
	for page := 1; page <= 4; page++ {
		p := ListPage(records, Filter{Month: 3, Page: page, PerPage: 1})
		if p.Total != 2 {
			t.Fatalf("page %d: total = %d, want 2", page, p.Total)
		}
	}
}

func TestSearchMatchesTitleDescriptionOrPrice(t *testing.T) {
	records := sampleRecords()

	cases := []struct {
		name    string
		search  string
		wantIDs []int64
	}{
		{"title substring case-insensitive", "LAMP", []int64{2}},
		{"description substring", "monitor", []int64{3}},
		{"numeric price equality", "150", []int64{2}},
		{"numeric without text match", "950", []int64{3}},
		{"no match", "zzz", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ListPage(records, Filter{Month: MonthAny, SearchText: tc.search, Page: 1, PerPage: 10})
			if len(p.Transactions) != len(tc.wantIDs) {
				t.Fatalf("len = %d, want %d", len(p.Transactions), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if p.Transactions[i].ID != id {
					t.Fatalf("result[%d].ID = %d, want %d", i, p.Transactions[i].ID, id)
				}
			}
		})
	}
}

func TestSearchNonNumericFallsBackToZeroPrice(t *testing.T) {
	records := []Transaction{
		record(1, 0, false, 2022, 1, "alpha", "first", "misc"),
		record(2, 10, false, 2022, 1, "beta", "second", "misc"),
	}
	// "xyz" parses to price 0, which matches only the zero-priced record.
	p := ListPage(records, Filter{Month: MonthAny, SearchText: "xyz", Page: 1, PerPage: 10})
	if p.Total != 1 || p.Transactions[0].ID != 1 {
		t.Fatalf("expected only the zero-priced record, got total=%d", p.Total)
	}
}

func TestBuildStatistics(t *testing.T) {
	stats := BuildStatistics(sampleRecords(), 3)
	want := Statistics{TotalSaleAmount: 50, TotalSoldItems: 1, TotalNotSoldItems: 1}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
}

func TestBuildStatisticsEmptyMonthIsZero(t *testing.T) {
	stats := BuildStatistics(sampleRecords(), 12)
	if stats != (Statistics{}) {
		t.Fatalf("expected zero statistics, got %+v", stats)
	}
}

func TestStatisticsCountsCoverMonth(t *testing.T) {
	records := sampleRecords()
	for month := 1; month <= 12; month++ {
		stats := BuildStatistics(records, month)
		matching := len(FilterByMonth(records, month))
		if stats.TotalSoldItems+stats.TotalNotSoldItems != matching {
			t.Fatalf("month %d: sold+unsold = %d, want %d", month,
				stats.TotalSoldItems+stats.TotalNotSoldItems, matching)
		}
	}
}

func TestBuildBarChartShapeAndCounts(t *testing.T) {
	buckets := BuildBarChart(sampleRecords(), 3)
	if len(buckets) != 10 {
		t.Fatalf("len = %d, want 10", len(buckets))
	}
	wantLabels := []string{"0-100", "101-200", "201-300", "301-400", "401-500",
		"501-600", "601-700", "701-800", "801-900", "901-above"}
	for i, b := range buckets {
		if b.Range != wantLabels[i] {
			t.Fatalf("bucket %d label = %q, want %q", i, b.Range, wantLabels[i])
		}
	}
	if buckets[0].Count != 1 || buckets[1].Count != 1 {
		t.Fatalf("expected counts 1,1 in first two buckets, got %d,%d", buckets[0].Count, buckets[1].Count)
	}
	for i := 2; i < 10; i++ {
		if buckets[i].Count != 0 {
			t.Fatalf("bucket %d count = %d, want 0", i, buckets[i].Count)
		}
	}
}

func TestBarChartBucketBoundaries(t *testing.T) {
	cases := []struct {
		price float64
		label string
	}{
		{0, "0-100"},
		{100.99, "0-100"},
		{101, "101-200"},
		{200.5, "101-200"},
		{201, "201-300"},
		{900.99, "801-900"},
		{901, "901-above"},
		{5000, "901-above"},
	}
	for _, tc := range cases {
		records := []Transaction{record(1, tc.price, true, 2022, 6, "x", "y", "z")}
		buckets := BuildBarChart(records, 6)
		for _, b := range buckets {
			want := 0
			if b.Range == tc.label {
				want = 1
			}
			if b.Count != want {
				t.Fatalf("price %v: bucket %q count = %d, want %d", tc.price, b.Range, b.Count, want)
			}
		}
	}
}

func TestBarChartCountsSumToMonthTotal(t *testing.T) {
	records := sampleRecords()
	for month := 1; month <= 12; month++ {
		sum := 0
		for _, b := range BuildBarChart(records, month) {
			sum += b.Count
		}
		if want := len(FilterByMonth(records, month)); sum != want {
			t.Fatalf("month %d: bucket sum = %d, want %d", month, sum, want)
		}
	}
}

func TestBuildCategoryBreakdown(t *testing.T) {
	got := BuildCategoryBreakdown(sampleRecords(), 3)
	want := []CategoryCount{{Category: "electronics", Count: 1}, {Category: "home", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCategoryBreakdownIsCaseSensitiveAndOmitsAbsent(t *testing.T) {
	records := []Transaction{
		record(1, 10, true, 2022, 2, "a", "a", "Shoes"),
		record(2, 20, true, 2022, 2, "b", "b", "shoes"),
		record(3, 30, true, 2022, 3, "c", "c", "hats"),
	}
	got := BuildCategoryBreakdown(records, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 distinct case-sensitive categories", len(got))
	}
	sum := 0
	for _, c := range got {
		if c.Category == "hats" {
			t.Fatal("category from another month must be omitted")
		}
		sum += c.Count
	}
	if sum != 2 {
		t.Fatalf("counts sum = %d, want 2", sum)
	}
}

func TestMonthNoneMatchesNothing(t *testing.T) {
	records := sampleRecords()
	if p := ListPage(records, Filter{Month: MonthNone, Page: 1, PerPage: 10}); p.Total != 0 {
		t.Fatalf("listing total = %d, want 0", p.Total)
	}
	if stats := BuildStatistics(records, MonthNone); stats != (Statistics{}) {
		t.Fatalf("stats = %+v, want zero", stats)
	}
	if buckets := BuildBarChart(records, MonthNone); len(buckets) != 10 {
		t.Fatal("histogram must keep its fixed shape even with no matches")
	}
	if cats := BuildCategoryBreakdown(records, MonthNone); len(cats) != 0 {
		t.Fatalf("categories = %d, want 0", len(cats))
	}
}
