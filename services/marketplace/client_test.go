package marketplace_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"calorease/services/marketplace"
)

func TestSearchAppendsFoodKeywordsAndPages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "bayam fresh produce edible grocery" {
			t.Errorf("unexpected query %q", q.Get("q"))
		}
		if q.Get("tbm") != "shop" || q.Get("hl") != "id" || q.Get("gl") != "id" {
			t.Errorf("unexpected shopping params: %v", q)
		}
		if q.Get("num") != "2" || q.Get("start") != "2" {
			t.Errorf("unexpected paging: num=%s start=%s", q.Get("num"), q.Get("start"))
		}
		_, _ = w.Write([]byte(`{
  "shopping_results": [
    {"position": 1, "title": "Fresh Spinach", "price": "Rp10.000"},
    {"position": 2, "title": "Spinach Seasoning Mix", "price": "Rp8.000"}
  ],
  "search_metadata": {"total_results": 40}
}`))
	}))
	defer ts.Close()

	c := marketplace.NewClient("demo")
	c.SetBaseURL(ts.URL)

	result, err := c.Search(context.Background(), "bayam", 2, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.ShoppingResults) != 1 || result.ShoppingResults[0].Title != "Fresh Spinach" {
		t.Fatalf("unexpected filtered listings: %+v", result.ShoppingResults)
	}
	if result.Pagination.Current != 2 || result.Pagination.Total != 40 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
	// The seasoning item was filtered out, so the delivered page is not
	// full and paging stops even though upstream has more.
	if result.Pagination.Next {
		t.Fatalf("filtered-down page should not report a next page")
	}
}

func TestSearchNextTrueOnFullFilteredPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
  "shopping_results": [
    {"title": "Fresh Spinach", "price": "Rp10.000"},
    {"title": "Raw Peanuts", "price": "Rp12.000"}
  ],
  "search_metadata": {"total_results": 40}
}`))
	}))
	defer ts.Close()

	c := marketplace.NewClient("demo")
	c.SetBaseURL(ts.URL)

	result, err := c.Search(context.Background(), "bayam", 1, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.ShoppingResults) != 2 {
		t.Fatalf("unexpected filtered listings: %+v", result.ShoppingResults)
	}
	if !result.Pagination.Next {
		t.Fatalf("full filtered page with more upstream results should page on")
	}
}

func TestSearchNextFalseOnShortPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
  "shopping_results": [{"title": "Fresh Mango"}],
  "search_metadata": {"total_results": 100}
}`))
	}))
	defer ts.Close()

	c := marketplace.NewClient("demo")
	c.SetBaseURL(ts.URL)

	result, err := c.Search(context.Background(), "mangga", 1, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Pagination.Next {
		t.Fatalf("short page should not report a next page")
	}
}

func TestSearchWithoutKeyFails(t *testing.T) {
	c := marketplace.NewClient("")
	if _, err := c.Search(context.Background(), "telur", 1, 10); err != marketplace.ErrNoAPIKey {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestSearchSurfacesUpstreamStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := marketplace.NewClient("demo")
	c.SetBaseURL(ts.URL)

	if _, err := c.Search(context.Background(), "telur", 1, 10); err == nil {
		t.Fatalf("expected error for upstream failure")
	}
}
