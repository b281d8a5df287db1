package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/melbourne-discovery/agent/internal/agent/model"
	logx "github.com/melbourne-discovery/agent/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	APIKey   string
	BaseURL  string
	Planner  *model.PlannerModelConfig
	Renderer *model.RendererModelConfig
}

// ChatModels holds the planner (tool selection) and renderer (structured
// answer) chat models. One genai client is shared between them; the pair is
// constructed once at process start and reused across runs.
type ChatModels struct {
	Planner           *gemini.ChatModel
	Renderer          *gemini.ChatModel
	PlannerModelName  string
	RendererModelName string
}

// NewChatModels creates both chat models with the given configuration.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	planner, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Planner.Model,
		Temperature: &config.Planner.Temperature,
		MaxTokens:   &config.Planner.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating planner model")
		return nil, fmt.Errorf("error creating planner model: %w", err)
	}

	renderer, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Renderer.Model,
		Temperature: &config.Renderer.Temperature,
		MaxTokens:   &config.Renderer.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating renderer model")
		return nil, fmt.Errorf("error creating renderer model: %w", err)
	}

	return &ChatModels{
		Planner:           planner,
		Renderer:          renderer,
		PlannerModelName:  config.Planner.Model,
		RendererModelName: config.Renderer.Model,
	}, nil
}

// BindToolsToPlanner advertises the registry's tools to the planner model.
// The renderer model stays tool-free; the second call of a run must return
// text, not more tool proposals.
func (cm *ChatModels) BindToolsToPlanner(ctx context.Context, tools []*schema.ToolInfo) error {
	if err := cm.Planner.BindTools(tools); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}
	logx.Debug().Int("tools", len(tools)).Msg("Bound tools to planner model")
	return nil
}
