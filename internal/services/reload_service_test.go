package services

import (
	"context"
	"errors"
	"testing"

	"txdash/internal/core"
)

type fakeFetcher struct {
	records []core.Transaction
	err     error
}

func (f fakeFetcher) Fetch(context.Context) ([]core.Transaction, error) {
	return f.records, f.err
}

func (f fakeFetcher) URL() string { return "http://seed.test/data.json" }

type fakeReplacer struct {
	replaced []core.Transaction
	calls    int
	err      error
}

func (f *fakeReplacer) ReplaceAll(_ context.Context, records []core.Transaction) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.replaced = records
	return nil
}

func TestReloadReplacesRecords(t *testing.T) {
	records := marchRecords()
	replacer := &fakeReplacer{}
	svc := NewReloadService(fakeFetcher{records: records}, replacer, nil)

	count, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if count != len(records) {
		t.Fatalf("count = %d, want %d", count, len(records))
	}
	if replacer.calls != 1 || len(replacer.replaced) != len(records) {
		t.Fatalf("replacer calls=%d len=%d", replacer.calls, len(replacer.replaced))
	}
}

func TestReloadFetchFailureSkipsReplace(t *testing.T) {
	fetchErr := errors.New("upstream down")
	replacer := &fakeReplacer{}
	svc := NewReloadService(fakeFetcher{err: fetchErr}, replacer, nil)

	if _, err := svc.Reload(context.Background()); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if replacer.calls != 0 {
		t.Fatal("store must not be touched when the fetch fails")
	}
}

func TestReloadReplaceFailure(t *testing.T) {
	replaceErr := errors.New("disk full")
	replacer := &fakeReplacer{err: replaceErr}
	svc := NewReloadService(fakeFetcher{records: marchRecords()}, replacer, nil)

	if _, err := svc.Reload(context.Background()); !errors.Is(err, replaceErr) {
		t.Fatalf("expected replace error, got %v", err)
	}
}
