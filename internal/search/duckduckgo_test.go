package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const liteFixture = `
<html><body><table>
<tr><td><a rel="nofollow" class='result-link' href='https://example.com/meetup'>Melbourne Tech Meetup &amp; Drinks</a></td></tr>
<tr><td class='result-snippet'>Weekly meetup for developers in the CBD.</td></tr>
<tr><td><a rel="nofollow" class='result-link' href='https://example.org/afl'>AFL Round 21 Preview</a></td></tr>
<tr><td class='result-snippet'>Everything on this weekend&#39;s games.</td></tr>
</table></body></html>`

func TestParseLiteResults(t *testing.T) {
	results := parseLiteResults(liteFixture, 5)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Melbourne Tech Meetup & Drinks" {
		t.Errorf("Unexpected title '%s'", results[0].Title)
	}
	if results[0].URL != "https://example.com/meetup" {
		t.Errorf("Unexpected URL '%s'", results[0].URL)
	}
	if results[0].Snippet != "Weekly meetup for developers in the CBD." {
		t.Errorf("Unexpected snippet '%s'", results[0].Snippet)
	}
	if results[1].URL != "https://example.org/afl" {
		t.Errorf("Unexpected second URL '%s'", results[1].URL)
	}
}

func TestParseLiteResults_Limit(t *testing.T) {
	results := parseLiteResults(liteFixture, 1)

	if len(results) != 1 {
		t.Errorf("Expected limit of 1 result, got %d", len(results))
	}
}

func TestParseLiteResults_Fallback(t *testing.T) {
	html := `<a href='https://external.example.com/page'>A perfectly fine external page</a>
<a href='/internal'>Internal navigation</a>
<a href='https://duckduckgo.com/about'>About</a>`

	results := parseLiteResults(html, 5)

	if len(results) != 1 {
		t.Fatalf("Expected 1 fallback result, got %d", len(results))
	}
	if results[0].URL != "https://external.example.com/page" {
		t.Errorf("Unexpected fallback URL '%s'", results[0].URL)
	}
}

func TestHTMLText(t *testing.T) {
	got := htmlText("  <b>Free</b> entry &amp; more&nbsp;fun  ")
	if got != "Free entry & more fun" {
		t.Errorf("Unexpected cleaned text '%s'", got)
	}
}

func TestSearch_AgainstLocalServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		w.Write([]byte(liteFixture))
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithClient(srv.Client(), srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := d.Search(ctx, "tech meetups", 5)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	d := NewDuckDuckGo(time.Second)
	if _, err := d.Search(context.Background(), "   ", 5); err == nil {
		t.Error("Expected error for empty query")
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithClient(srv.Client(), srv.URL)
	if _, err := d.Search(context.Background(), "anything", 5); err == nil {
		t.Error("Expected error on HTTP 500")
	}
}
