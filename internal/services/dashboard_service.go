package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"txdash/internal/core"
	"txdash/internal/store"
)

// DashboardService turns store queries into the API's derived views.
// All aggregation happens in core over an immutable month snapshot; the
// service only fetches snapshots and invokes the builders.
type DashboardService struct {
	store store.Reader
}

func NewDashboardService(s store.Reader) *DashboardService {
	return &DashboardService{store: s}
}

// Transactions returns one page of the filtered listing.
func (s *DashboardService) Transactions(ctx context.Context, f core.Filter) (core.Page, error) {
	records, err := s.store.TransactionsByMonth(ctx, f.Month)
	if err != nil {
		return core.Page{}, fmt.Errorf("list transactions: %w", err)
	}
	return core.ListPage(records, f), nil
}

// Statistics returns the month's sale summary.
func (s *DashboardService) Statistics(ctx context.Context, month int) (core.Statistics, error) {
	records, err := s.store.TransactionsByMonth(ctx, month)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("load statistics snapshot: %w", err)
	}
	return core.BuildStatistics(records, month), nil
}

// BarChart returns the month's fixed ten-bucket price histogram.
func (s *DashboardService) BarChart(ctx context.Context, month int) ([]core.PriceBucket, error) {
	records, err := s.store.TransactionsByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("load bar chart snapshot: %w", err)
	}
	return core.BuildBarChart(records, month), nil
}

// PieChart returns the month's per-category counts.
func (s *DashboardService) PieChart(ctx context.Context, month int) ([]core.CategoryCount, error) {
	records, err := s.store.TransactionsByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("load pie chart snapshot: %w", err)
	}
	return core.BuildCategoryBreakdown(records, month), nil
}

// RecordCount reports how many records the store currently holds.
// Used by the readiness probe to verify the backend answers queries.
func (s *DashboardService) RecordCount(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// Combined assembles the four monthly views in parallel. Any failing
// store query fails the whole view; there are no partial results.
func (s *DashboardService) Combined(ctx context.Context, month int) (core.CombinedView, error) {
	var view core.CombinedView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.store.TransactionsByMonth(gctx, month)
		if err != nil {
			return fmt.Errorf("combined transactions: %w", err)
		}
		view.Transactions = records
		if view.Transactions == nil {
			view.Transactions = []core.Transaction{}
		}
		return nil
	})
	g.Go(func() error {
		stats, err := s.Statistics(gctx, month)
		if err != nil {
			return err
		}
		view.Statistics = stats
		return nil
	})
	g.Go(func() error {
		buckets, err := s.BarChart(gctx, month)
		if err != nil {
			return err
		}
		view.BarChart = buckets
		return nil
	})
	g.Go(func() error {
		categories, err := s.PieChart(gctx, month)
		if err != nil {
			return err
		}
		view.PieChart = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.CombinedView{}, err
	}
	if view.PieChart == nil {
		view.PieChart = []core.CategoryCount{}
	}
	return view, nil
}
