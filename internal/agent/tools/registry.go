// Package tools defines the fixed four-tool set the planner model may call
// and the registry the orchestrator dispatches through.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/melbourne-discovery/agent/internal/export"
	"github.com/melbourne-discovery/agent/internal/search"
)

// Tool names advertised to the model. These are wire identifiers; renaming
// one breaks any prompt that mentions it.
const (
	ToolSearchEvents  = "search_local_events"
	ToolSearchNews    = "search_melbourne_news"
	ToolAnalyzeBudget = "analyze_event_budget"
	ToolSaveEvents    = "save_events"
)

// Deps carries everything the tools need. Search and Exporter are required;
// the rest default sensibly.
type Deps struct {
	Search   search.Provider
	Exporter *export.Writer

	City    string
	Region  string
	Country string

	// MaxResults caps results per query variant. Defaults to 5.
	MaxResults int
	// VariantDelay spaces out sequential query variants to respect external
	// rate limits. Zero disables the delay.
	VariantDelay time.Duration
	// Now supplies the clock for time-qualified query variants. Defaults to
	// time.Now.
	Now func() time.Time
}

// Registry is the static, ordered tool set. Built once at start-up; holds no
// mutable state afterwards and may be shared across runs.
type Registry struct {
	order  []string
	byName map[string]tool.InvokableTool
	infos  []*schema.ToolInfo
}

// NewRegistry constructs the four discovery tools and indexes them by name.
// Order is stable and matches the order advertised to the model.
func NewRegistry(ctx context.Context, deps Deps) (*Registry, error) {
	if deps.Search == nil {
		return nil, fmt.Errorf("search provider is nil")
	}
	if deps.Exporter == nil {
		return nil, fmt.Errorf("exporter is nil")
	}
	if deps.MaxResults <= 0 {
		deps.MaxResults = 5
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	list := []tool.InvokableTool{
		newSearchEventsTool(deps),
		newSearchNewsTool(deps),
		newAnalyzeBudgetTool(),
		newSaveEventsTool(deps.Exporter),
	}

	r := &Registry{byName: make(map[string]tool.InvokableTool, len(list))}
	for _, t := range list {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		r.order = append(r.order, info.Name)
		r.infos = append(r.infos, info)
		r.byName[info.Name] = t
	}
	return r, nil
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (tool.InvokableTool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Infos returns the stable-ordered descriptors used to advertise the tools
// to the planner model.
func (r *Registry) Infos() []*schema.ToolInfo {
	return r.infos
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return r.order
}
