package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleBody = `[
  {"id":1,"title":"Sleeve","price":329.85,"description":"Padded sleeve","category":"men's clothing","image":"http://example.com/1.jpg","sold":false,"dateOfSale":"2021-11-27T20:29:54+05:30"},
  {"id":2,"title":"Lamp","price":44.6,"description":"Desk lamp","category":"home","image":"http://example.com/2.jpg","sold":true,"dateOfSale":"2022-07-05T09:10:00Z"}
]`

func TestFetchDecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// S3 serves the real file as text/plain.
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	records, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != 1 || records[0].Price != 329.85 || records[0].Sold {
		t.Fatalf("record 0 = %+v", records[0])
	}
	if got := records[0].DateOfSale.Month(); int(got) != 11 {
		t.Fatalf("month = %d, want 11", got)
	}
	if !records[1].Sold || records[1].Category != "home" {
		t.Fatalf("record 1 = %+v", records[1])
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	if c.URL() != DefaultURL {
		t.Fatalf("url = %q, want default", c.URL())
	}
}
