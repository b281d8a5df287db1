package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/melbourne-discovery/agent/internal/budget"
)

type AnalyzeBudgetInput struct {
	EventInfo string `json:"event_info"`
	MaxBudget string `json:"max_budget,omitempty"`
}

func newAnalyzeBudgetTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAnalyzeBudget,
			Desc: "Analyze event information text and identify free and budget-friendly options. Returns counts and sample lines for free and paid events.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"event_info": {
					Type:     "string",
					Desc:     "Event information text to analyze, typically pasted from search results.",
					Required: true,
				},
				"max_budget": {
					Type: "string",
					Desc: "Maximum budget in AUD (default 100).",
				},
			}),
		},
		func(ctx context.Context, in *AnalyzeBudgetInput) (*budget.Report, error) {
			if in.EventInfo == "" {
				return nil, fmt.Errorf("event_info is required")
			}
			if in.MaxBudget == "" {
				in.MaxBudget = "100"
			}
			report := budget.Analyze(in.EventInfo, in.MaxBudget)
			return &report, nil
		},
	)
}
