package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	logx "github.com/melbourne-discovery/agent/pkg/logger"
)

const variantDelimiter = "\n\n============================================================\n\n"

// searchTool runs several hand-built query variants of one user interest
// sequentially against the search provider and folds every outcome, success
// or failure, into one delimited text block. Implemented directly against
// tool.InvokableTool because its natural output is plain text, not JSON.
type searchTool struct {
	info     *schema.ToolInfo
	deps     Deps
	variants func(deps Deps, subject string) []string
	argKey   string
}

type searchArgs struct {
	Query string `json:"query"`
	Topic string `json:"topic"`
}

func (t *searchTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return t.info, nil
}

func (t *searchTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var args searchArgs
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	subject := strings.TrimSpace(args.Query)
	if t.argKey == "topic" {
		subject = strings.TrimSpace(args.Topic)
	}
	if subject == "" {
		return "", fmt.Errorf("%s is required", t.argKey)
	}

	var entries []string
	for i, variant := range t.variants(t.deps, subject) {
		if i > 0 && t.deps.VariantDelay > 0 {
			if err := sleepCtx(ctx, t.deps.VariantDelay); err != nil {
				return "", err
			}
		}

		results, err := t.deps.Search.Search(ctx, variant, t.deps.MaxResults)
		if err != nil {
			logx.Warn().Str("tool", t.info.Name).Str("variant", variant).Err(err).Msg("search variant failed")
			entries = append(entries, fmt.Sprintf("Search failed for '%s': %v", variant, err))
			continue
		}

		var lines []string
		for _, r := range results {
			line := fmt.Sprintf("- %s\n  %s", r.Title, r.URL)
			if r.Snippet != "" {
				line += "\n  " + r.Snippet
			}
			lines = append(lines, line)
		}
		body := "No results."
		if len(lines) > 0 {
			body = strings.Join(lines, "\n")
		}
		entries = append(entries, fmt.Sprintf("Search Query: %s\n\nResults:\n%s", variant, body))
	}

	return strings.Join(entries, variantDelimiter), nil
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newSearchEventsTool(deps Deps) tool.InvokableTool {
	return &searchTool{
		argKey: "query",
		deps:   deps,
		info: &schema.ToolInfo{
			Name: ToolSearchEvents,
			Desc: "Search for local events and news in " + deps.City + " using web search. Use this for any event interest such as tech meetups, concerts, food festivals, AFL games, art shows or comedy shows.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Type of event or news, e.g. 'tech meetups', 'concerts', 'local news'.",
					Required: true,
				},
			}),
		},
		variants: func(d Deps, subject string) []string {
			month := d.Now().Format("January 2006")
			return []string{
				fmt.Sprintf("%s events in %s %s this week", subject, d.City, d.Country),
				fmt.Sprintf("%s in %s %s upcoming events", subject, d.City, d.Region),
				fmt.Sprintf("things to do %s %s this weekend", d.City, subject),
				fmt.Sprintf("%s %s %s", d.City, subject, month),
				fmt.Sprintf("%s %s %s news today", d.City, d.Country, subject),
			}
		},
	}
}

func newSearchNewsTool(deps Deps) tool.InvokableTool {
	return &searchTool{
		argKey: "topic",
		deps:   deps,
		info: &schema.ToolInfo{
			Name: ToolSearchNews,
			Desc: "Search for local " + deps.City + " news on a specific topic such as local news, weather, traffic, politics or community events.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"topic": {
					Type:     "string",
					Desc:     "News topic, e.g. 'local news', 'weather', 'traffic', 'politics'.",
					Required: true,
				},
			}),
		},
		variants: func(d Deps, subject string) []string {
			return []string{
				fmt.Sprintf("%s %s %s news today", d.City, d.Country, subject),
				fmt.Sprintf("%s %s latest updates", d.City, subject),
				fmt.Sprintf("%s %s %s news", d.Region, d.Country, subject),
			}
		},
	}
}
