// Package prompts renders the two prompts of an orchestration run: the
// tool-selection system prompt and the final single-shot rendering prompt.
package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/melbourne-discovery/agent/internal/agent/model"
	"github.com/melbourne-discovery/agent/internal/agent/tools"
)

//go:embed template/system_prompt.txt
var systemPromptTemplate string

//go:embed template/final_prompt.txt
var finalPromptTemplate string

// formatInstructions tells the model the exact JSON shape of a
// DiscoveryResponse. Field names and types must stay in lockstep with
// model.DiscoveryResponse; the parser rejects responses missing any field.
const formatInstructions = `Respond with a single JSON object and nothing else (no surrounding prose, no markdown code fence), with exactly these fields:
{
  "query": "the original user query",
  "city": "the city the results cover",
  "events_found": ["one event per entry"],
  "news_highlights": ["one news item per entry"],
  "recommendations": ["top picks, most relevant first"],
  "budget_friendly_options": ["free or cheap options"],
  "friend_group_suggestions": ["who to invite and why"],
  "sources": ["[Title](URL) entries; every URL must appear verbatim in the tool results, never invent one"],
  "tools_used": ["names of the tools whose results you drew on"]
}
All fields are required. Use an empty list for any field with nothing to report.`

// FormatInstructions returns the output-contract instructions included in
// both prompts.
func FormatInstructions() string {
	return formatInstructions
}

// RenderSystem renders the tool-selection system prompt for the planner
// model and triggers prompt callbacks.
func RenderSystem(ctx context.Context, cfg model.PromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(systemPromptTemplate),
	)
	vars := map[string]any{
		"City":               cfg.City,
		"Region":             cfg.Region,
		"Country":            cfg.Country,
		"EventsTool":         tools.ToolSearchEvents,
		"NewsTool":           tools.ToolSearchNews,
		"BudgetTool":         tools.ToolAnalyzeBudget,
		"SaveTool":           tools.ToolSaveEvents,
		"FormatInstructions": formatInstructions,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// RenderFinal renders the second-phase prompt carrying the combined tool
// results and the original query. Tool calling is not enabled on this turn.
func RenderFinal(ctx context.Context, cfg model.PromptConfig, combinedResults, query string) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(finalPromptTemplate),
	)
	vars := map[string]any{
		"City":               cfg.City,
		"CombinedResults":    combinedResults,
		"Query":              query,
		"FormatInstructions": formatInstructions,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("final prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("final prompt render: empty result")
	}
	return msgs[0].Content, nil
}
