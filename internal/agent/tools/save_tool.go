package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/melbourne-discovery/agent/internal/export"
	logx "github.com/melbourne-discovery/agent/pkg/logger"
)

type SaveEventsInput struct {
	EventData string `json:"event_data"`
}

type SaveEventsOutput struct {
	Status   string `json:"status"`
	Filename string `json:"filename,omitempty"`
}

func newSaveEventsTool(w *export.Writer) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSaveEvents,
			Desc: "Save event and news information to a formatted text file for later reading.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"event_data": {
					Type:     "string",
					Desc:     "The event/news information to save.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SaveEventsInput) (*SaveEventsOutput, error) {
			if in.EventData == "" {
				return nil, fmt.Errorf("event_data is required")
			}
			filename, err := w.Save(in.EventData)
			if err != nil {
				// IO failures are reported as a message, not raised, so the
				// run keeps its other tool results.
				logx.Warn().Err(err).Msg("export failed")
				return &SaveEventsOutput{Status: fmt.Sprintf("Error saving file: %v", err)}, nil
			}
			return &SaveEventsOutput{
				Status:   "Events and news successfully saved",
				Filename: filename,
			}, nil
		},
	)
}
