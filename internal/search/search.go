// Package search wraps an external web-search capability behind a small
// Provider interface so the tool layer can be exercised against fakes.
package search

import "context"

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Provider issues a single query and returns up to limit results. A failed
// underlying call returns an error; callers fold it into tool result text
// rather than aborting a run.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}
