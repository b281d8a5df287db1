package model

// Query is one user request for local event and news discovery. Immutable
// once constructed; consumed by a single orchestration run.
type Query struct {
	Text      string
	MaxBudget string // optional AUD ceiling, empty means "any"
}

// DiscoveryResponse is the structured output contract the renderer model is
// expected to produce. Every field is required; an absent field makes the
// whole response unparseable.
type DiscoveryResponse struct {
	Query                  string   `json:"query"`
	City                   string   `json:"city"`
	EventsFound            []string `json:"events_found"`
	NewsHighlights         []string `json:"news_highlights"`
	Recommendations        []string `json:"recommendations"`
	BudgetFriendlyOptions  []string `json:"budget_friendly_options"`
	FriendGroupSuggestions []string `json:"friend_group_suggestions"`
	Sources                []string `json:"sources"`
	ToolsUsed              []string `json:"tools_used"`
}

// RunResult is what one orchestration run hands back to the caller.
// Structured is nil when the renderer output could not be parsed; RawText is
// always preserved so the caller still has something to show.
type RunResult struct {
	Structured   *DiscoveryResponse
	RawText      string
	ParseError   string
	ToolsInvoked []string
}

// IsStructured reports whether the run produced a parseable DiscoveryResponse.
func (r *RunResult) IsStructured() bool {
	return r.Structured != nil
}
