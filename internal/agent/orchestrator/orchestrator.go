// Package orchestrator runs the two-phase discovery loop: one model call to
// pick tools, sequential tool execution inside failure boundaries, and one
// tool-free model call to render the structured answer.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/melbourne-discovery/agent/internal/agent/model"
	"github.com/melbourne-discovery/agent/internal/agent/parsers"
	"github.com/melbourne-discovery/agent/internal/agent/prompts"
	"github.com/melbourne-discovery/agent/internal/agent/tools"
	errx "github.com/melbourne-discovery/agent/internal/core/error"
	logx "github.com/melbourne-discovery/agent/pkg/logger"
)

// noToolsPlaceholder stands in for the combined-results block when the
// planner proposed nothing executable. The renderer still runs.
const noToolsPlaceholder = "No tools were executed."

// Orchestrator holds the shared, read-only handles of the discovery loop.
// Each Run invocation is independent; no state survives between runs, so one
// Orchestrator may serve concurrent callers.
type Orchestrator struct {
	planner      einomodel.BaseChatModel
	renderer     einomodel.BaseChatModel
	plannerName  string
	rendererName string
	registry     *tools.Registry
	promptCfg    model.PromptConfig
}

// Option tweaks orchestrator construction.
type Option func(*Orchestrator)

// WithModelNames attaches model names for usage-cost logging.
func WithModelNames(planner, renderer string) Option {
	return func(o *Orchestrator) {
		o.plannerName = planner
		o.rendererName = renderer
	}
}

// New builds an Orchestrator. The planner must already have the registry's
// tools bound; the renderer must not.
func New(planner, renderer einomodel.BaseChatModel, registry *tools.Registry, promptCfg model.PromptConfig, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		planner:   planner,
		renderer:  renderer,
		registry:  registry,
		promptCfg: promptCfg,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one discovery query end to end. Only model-call failures
// return an error; every other failure is folded into the result. When the
// renderer's output cannot be parsed, the returned RunResult carries the raw
// text and the parse error instead of a structured response.
func (o *Orchestrator) Run(ctx context.Context, q model.Query) (*model.RunResult, error) {
	runID := uuid.NewString()
	logx.Info().Str("run_id", runID).Str("query", q.Text).Msg("Starting discovery run")

	// Planning: one tool-selection round.
	systemPrompt, err := prompts.RenderSystem(ctx, o.promptCfg)
	if err != nil {
		return nil, err
	}
	plan, err := o.planner.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(q.Text),
	})
	if err != nil {
		return nil, errx.WrapModel(err)
	}
	o.logUsage(runID, "planner", o.plannerName, plan)

	// Executing: dispatch proposals in order, tolerating per-tool failure.
	combined, invoked := o.executeToolCalls(ctx, runID, plan.ToolCalls)

	// Rendering: single-shot prompt, no tool calling.
	finalPrompt, err := prompts.RenderFinal(ctx, o.promptCfg, combined, q.Text)
	if err != nil {
		return nil, err
	}
	rendered, err := o.renderer.Generate(ctx, []*schema.Message{
		schema.UserMessage(finalPrompt),
	})
	if err != nil {
		return nil, errx.WrapModel(err)
	}
	o.logUsage(runID, "renderer", o.rendererName, rendered)

	// Parsing: soft failure keeps the raw text.
	result := &model.RunResult{
		RawText:      rendered.Content,
		ToolsInvoked: invoked,
	}
	structured, perr := parsers.ParseDiscoveryResponse(rendered.Content)
	if perr != nil {
		logx.Warn().Str("run_id", runID).Err(perr).Msg("Falling back to raw text")
		result.ParseError = perr.Error()
		return result, nil
	}

	// tools_used is a model-reported field; clamp it to the tools this run
	// actually dispatched so it can never name something we did not call.
	structured.ToolsUsed = intersectOrdered(structured.ToolsUsed, invoked)
	result.Structured = structured

	logx.Info().
		Str("run_id", runID).
		Int("events", len(structured.EventsFound)).
		Int("news", len(structured.NewsHighlights)).
		Strs("tools_used", structured.ToolsUsed).
		Msg("Discovery run complete")
	return result, nil
}

// executeToolCalls runs the proposed invocations sequentially. Unknown names
// are skipped without a result entry; execution errors become labeled
// failure entries so siblings still run.
func (o *Orchestrator) executeToolCalls(ctx context.Context, runID string, calls []schema.ToolCall) (string, []string) {
	var entries []string
	var invoked []string

	for _, tc := range calls {
		name := tc.Function.Name
		impl, ok := o.registry.Lookup(name)
		if !ok {
			logx.Warn().Str("run_id", runID).Str("tool", name).Msg("Unknown tool proposed; skipping")
			continue
		}
		invoked = append(invoked, name)

		logx.Debug().Str("run_id", runID).Str("tool", name).Msg("Calling tool")
		out, err := safeInvoke(ctx, impl, tc.Function.Arguments)
		if err != nil {
			logx.Warn().Str("run_id", runID).Str("tool", name).Err(err).Msg("Tool failed")
			entries = append(entries, fmt.Sprintf("Error with %s: %v", name, err))
			continue
		}
		entries = append(entries, fmt.Sprintf("Tool: %s\nResult: %s", name, out))
	}

	if len(entries) == 0 {
		return noToolsPlaceholder, invoked
	}
	return strings.Join(entries, "\n\n"), invoked
}

// safeInvoke confines a tool invocation, converting panics into errors so a
// misbehaving tool cannot abort the batch.
func safeInvoke(ctx context.Context, impl einotool.InvokableTool, arguments string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("tool panic: %v", r)
		}
	}()
	return impl.InvokableRun(ctx, arguments)
}

// logUsage records token usage and estimated cost for one model exchange.
func (o *Orchestrator) logUsage(runID, stage, modelName string, msg *schema.Message) {
	if !model.CostEnabled() || msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	pricing := model.ResolvePricing(modelName)
	inC, outC, totalC := model.ComputeCost(msg.ResponseMeta.Usage, pricing)
	logx.Debug().
		Str("run_id", runID).
		Str("stage", stage).
		Str("model", modelName).
		Int("prompt_tokens", msg.ResponseMeta.Usage.PromptTokens).
		Int("completion_tokens", msg.ResponseMeta.Usage.CompletionTokens).
		Int("total_tokens", msg.ResponseMeta.Usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

// intersectOrdered keeps entries of reported that appear in allowed,
// preserving reported order and dropping duplicates.
func intersectOrdered(reported, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = true
	}
	out := []string{}
	seen := make(map[string]bool, len(reported))
	for _, name := range reported {
		if allowedSet[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
