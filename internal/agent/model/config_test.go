package model

import (
	"testing"

	"github.com/kelseyhightower/envconfig"
)

func TestConfigDefaults(t *testing.T) {
	var cfg struct {
		Planner  PlannerModelConfig
		Renderer RendererModelConfig
		Search   SearchConfig
		Export   ExportConfig
		Prompt   PromptConfig
	}
	if err := envconfig.Process("", &cfg); err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if cfg.Planner.Model != "gemini-2.5-flash" {
		t.Errorf("Expected default planner model 'gemini-2.5-flash', got '%s'", cfg.Planner.Model)
	}
	if cfg.Planner.Temperature != 0.1 {
		t.Errorf("Expected default planner temperature 0.1, got %v", cfg.Planner.Temperature)
	}
	if cfg.Renderer.MaxTokens != 3000 {
		t.Errorf("Expected default renderer max tokens 3000, got %d", cfg.Renderer.MaxTokens)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("Expected default max results 5, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.VariantDelay != "1s" {
		t.Errorf("Expected default variant delay '1s', got '%s'", cfg.Search.VariantDelay)
	}
	if cfg.Export.Dir != "." {
		t.Errorf("Expected default export dir '.', got '%s'", cfg.Export.Dir)
	}
	if cfg.Prompt.City != "Melbourne" {
		t.Errorf("Expected default city 'Melbourne', got '%s'", cfg.Prompt.City)
	}
}
