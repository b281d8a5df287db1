package model

// ================ Config ================

type PlannerModelConfig struct {
	Model       string  `envconfig:"PLANNER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"PLANNER_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"PLANNER_TEMPERATURE" default:"0.1"`
}

type RendererModelConfig struct {
	Model       string  `envconfig:"RENDERER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RENDERER_MAX_TOKENS" default:"3000"`
	Temperature float32 `envconfig:"RENDERER_TEMPERATURE" default:"0.4"`
}

type SearchConfig struct {
	MaxResults     int    `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
	VariantDelay   string `envconfig:"SEARCH_VARIANT_DELAY" default:"1s"`
	TimeoutSeconds int    `envconfig:"SEARCH_TIMEOUT_SECONDS" default:"15"`
}

type ExportConfig struct {
	Dir string `envconfig:"EXPORT_DIR" default:"."`
}

type PromptConfig struct {
	City    string `envconfig:"PROMPT_CITY" default:"Melbourne"`
	Region  string `envconfig:"PROMPT_REGION" default:"Victoria"`
	Country string `envconfig:"PROMPT_COUNTRY" default:"Australia"`
}
