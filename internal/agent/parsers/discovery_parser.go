// Package parsers decodes the renderer model's raw text into the structured
// DiscoveryResponse contract.
package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/melbourne-discovery/agent/internal/agent/model"
	logx "github.com/melbourne-discovery/agent/pkg/logger"
)

// maxContentLen bounds pathological model output.
const maxContentLen = 128 * 1024 // 128KB

// requiredFields must all be present in the model's JSON object; a missing
// field fails the parse and the caller falls back to raw text.
var requiredFields = []string{
	"query",
	"city",
	"events_found",
	"news_highlights",
	"recommendations",
	"budget_friendly_options",
	"friend_group_suggestions",
	"sources",
	"tools_used",
}

// ParseDiscoveryResponse decodes the model's final response. It tolerates a
// markdown code fence and prose around the JSON object, but every required
// field must be present once decoded.
func ParseDiscoveryResponse(content string) (resp *model.DiscoveryResponse, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "discovery_parser").Msgf("panic recovered: %v", r)
			resp = nil
			err = fmt.Errorf("discovery parser panic")
		}
	}()

	if len(content) > maxContentLen {
		return nil, fmt.Errorf("response too large: %d bytes", len(content))
	}

	raw := extractJSONObject(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("missing required field %q", name)
		}
	}

	var out model.DiscoveryResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// extractJSONObject strips markdown fences and surrounding prose, returning
// the outermost {...} span, or "" when none exists.
func extractJSONObject(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
