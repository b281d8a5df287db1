package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/melbourne-discovery/agent/internal/agent/model"
	"github.com/melbourne-discovery/agent/internal/agent/orchestrator"
	"github.com/melbourne-discovery/agent/internal/agent/tools"
	"github.com/melbourne-discovery/agent/internal/core"
	"github.com/melbourne-discovery/agent/internal/export"
	"github.com/melbourne-discovery/agent/internal/search"
	logx "github.com/melbourne-discovery/agent/pkg/logger"
)

const banner = "======================================================================"

// AppConfig defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Planner  model.PlannerModelConfig
	Renderer model.RendererModelConfig
	Search   model.SearchConfig
	Export   model.ExportConfig
	Prompt   model.PromptConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}
	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	variantDelay, err := time.ParseDuration(cfg.Search.VariantDelay)
	if err != nil {
		log.Fatalf("Invalid SEARCH_VARIANT_DELAY '%s': %v", cfg.Search.VariantDelay, err)
	}

	provider := search.NewDuckDuckGo(time.Duration(cfg.Search.TimeoutSeconds) * time.Second)
	writer := export.NewWriter(cfg.Export.Dir, nil)

	registry, err := tools.NewRegistry(ctx, tools.Deps{
		Search:       provider,
		Exporter:     writer,
		City:         cfg.Prompt.City,
		Region:       cfg.Prompt.Region,
		Country:      cfg.Prompt.Country,
		MaxResults:   cfg.Search.MaxResults,
		VariantDelay: variantDelay,
	})
	if err != nil {
		log.Fatalf("Failed to build tool registry: %v", err)
	}

	models, err := orchestrator.NewChatModels(ctx, orchestrator.ChatModelConfig{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Planner:  &cfg.Planner,
		Renderer: &cfg.Renderer,
	})
	if err != nil {
		log.Fatalf("Failed to initialise chat models: %v", err)
	}
	if err := models.BindToolsToPlanner(ctx, registry.Infos()); err != nil {
		log.Fatalf("Failed to bind tools: %v", err)
	}

	orch := orchestrator.New(
		models.Planner,
		models.Renderer,
		registry,
		cfg.Prompt,
		orchestrator.WithModelNames(models.PlannerModelName, models.RendererModelName),
	)

	fmt.Println(banner)
	fmt.Println("        MELBOURNE LOCAL EVENT AND NEWS DISCOVERY AGENT")
	fmt.Println(banner)

	query := promptForQuery(bufio.NewReader(os.Stdin), cfg.Prompt)

	fmt.Printf("\nSearching for: %s\n", query.Text)
	fmt.Println(banner)

	result, err := orch.Run(ctx, query)
	if err != nil {
		fmt.Printf("\nError occurred: %v\n", err)
		fmt.Println("\nTroubleshooting tips:")
		fmt.Println("1. Check your internet connection")
		fmt.Println("2. Verify your GEMINI_API_KEY in .env file")
		fmt.Println("3. Ensure all dependencies are available: go mod download")
		os.Exit(1)
	}

	if !result.IsStructured() {
		fmt.Println("\nCould not parse structured response. Showing raw output:")
		fmt.Println(banner)
		fmt.Println(result.RawText)
		fmt.Println(banner)
		fmt.Printf("\nParse Error Details: %s\n", result.ParseError)
		return
	}

	printStructured(result.Structured)
}

// promptForQuery mirrors the interactive flow: events, news, or both, with
// an optional budget ceiling folded into the query text.
func promptForQuery(in *bufio.Reader, cfg model.PromptConfig) model.Query {
	searchType := ask(in, "\nWhat would you like to search for?\n1. Events\n2. News\n3. Both\nEnter choice (1/2/3): ")

	cityCountry := cfg.City + " " + cfg.Country

	switch searchType {
	case "1":
		eventType := ask(in, "\nWhat type of events are you interested in?\n(e.g., tech meetups, concerts, food festivals, AFL games, art shows, comedy shows)\n> ")
		budget := ask(in, "\nWhat is your budget in AUD? (press Enter for 'any')\n> ")
		if budget != "" {
			return model.Query{
				Text:      fmt.Sprintf("Find %s events in %s with budget under $%s AUD", eventType, cityCountry, budget),
				MaxBudget: budget,
			}
		}
		return model.Query{Text: fmt.Sprintf("Find %s events in %s", eventType, cityCountry)}

	case "2":
		topic := ask(in, "\nWhat news topic are you interested in?\n(e.g., local news, weather, traffic, politics, community events)\n> ")
		return model.Query{Text: fmt.Sprintf("Find latest news about %s in %s", topic, cityCountry)}

	default:
		eventType := ask(in, "\nWhat type of events are you interested in?\n(e.g., tech meetups, concerts, food festivals)\n> ")
		topic := ask(in, "\nWhat news topic are you interested in?\n(e.g., local news, weather, traffic)\n> ")
		budget := ask(in, "\nWhat is your budget in AUD? (press Enter for 'any')\n> ")
		if budget != "" {
			return model.Query{
				Text:      fmt.Sprintf("Find %s events in %s with budget under $%s AUD and also provide latest %s news in %s", eventType, cityCountry, budget, topic, cfg.City),
				MaxBudget: budget,
			}
		}
		return model.Query{Text: fmt.Sprintf("Find %s events and latest %s news in %s", eventType, topic, cityCountry)}
	}
}

func ask(in *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func printStructured(resp *model.DiscoveryResponse) {
	fmt.Println("\n" + banner)
	fmt.Println("                    DISCOVERY COMPLETE")
	fmt.Println(banner)
	fmt.Printf("\nCity: %s\n", resp.City)
	fmt.Printf("\nQuery: %s\n", resp.Query)

	fmt.Printf("\nEVENTS FOUND (%d):\n", len(resp.EventsFound))
	printNumbered(resp.EventsFound)

	if len(resp.NewsHighlights) > 0 {
		fmt.Printf("\nNEWS HIGHLIGHTS (%d):\n", len(resp.NewsHighlights))
		printNumbered(resp.NewsHighlights)
	}

	fmt.Println("\nTOP RECOMMENDATIONS:")
	printNumbered(resp.Recommendations)

	if len(resp.BudgetFriendlyOptions) > 0 {
		fmt.Println("\nBUDGET-FRIENDLY OPTIONS:")
		printNumbered(resp.BudgetFriendlyOptions)
	}

	fmt.Println("\nFRIEND GROUP SUGGESTIONS:")
	printNumbered(resp.FriendGroupSuggestions)

	if len(resp.Sources) > 0 {
		fmt.Println("\nSOURCES:")
		printNumbered(resp.Sources)
	}

	fmt.Printf("\nTools Used: %s\n", strings.Join(resp.ToolsUsed, ", "))
	fmt.Println(banner)
}

func printNumbered(items []string) {
	for i, item := range items {
		fmt.Printf("  %d. %s\n", i+1, item)
	}
}
