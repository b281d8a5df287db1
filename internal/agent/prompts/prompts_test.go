package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/melbourne-discovery/agent/internal/agent/model"
	"github.com/melbourne-discovery/agent/internal/agent/tools"
)

func cfg() model.PromptConfig {
	return model.PromptConfig{City: "Melbourne", Region: "Victoria", Country: "Australia"}
}

func TestRenderSystem(t *testing.T) {
	out, err := RenderSystem(context.Background(), cfg())
	if err != nil {
		t.Fatalf("RenderSystem failed: %v", err)
	}

	for _, fragment := range []string{
		"Melbourne, Australia",
		tools.ToolSearchEvents,
		tools.ToolSearchNews,
		tools.ToolAnalyzeBudget,
		tools.ToolSaveEvents,
		"friend groups",
		`"events_found"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("System prompt missing fragment '%s'", fragment)
		}
	}
}

func TestRenderFinal(t *testing.T) {
	out, err := RenderFinal(context.Background(), cfg(), "Tool: search_local_events\nResult: hits", "Find concerts")
	if err != nil {
		t.Fatalf("RenderFinal failed: %v", err)
	}

	for _, fragment := range []string{
		"Tool: search_local_events",
		"Original Query: Find concerts",
		`"tools_used"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("Final prompt missing fragment '%s'", fragment)
		}
	}
}

func TestFormatInstructions_NamesEveryField(t *testing.T) {
	fi := FormatInstructions()
	for _, field := range []string{
		"query", "city", "events_found", "news_highlights", "recommendations",
		"budget_friendly_options", "friend_group_suggestions", "sources", "tools_used",
	} {
		if !strings.Contains(fi, `"`+field+`"`) {
			t.Errorf("Format instructions missing field '%s'", field)
		}
	}
}
