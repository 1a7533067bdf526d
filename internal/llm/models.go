package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/oussamaachahboune/gencommit/internal/config"
	"github.com/oussamaachahboune/gencommit/internal/log"
)

// modelFamilies in preference order when picking a model automatically.
var modelFamilies = []string{"sonnet", "opus", "haiku"}

type modelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type modelsResponse struct {
	Data   []modelInfo `json:"data"`
	Models []modelInfo `json:"models"`
}

// pickModel chooses a model for this key by listing the available models and
// preferring sonnet over opus over haiku. The listing is advisory: any
// failure falls back to the default model rather than aborting the run.
func (g *AnthropicGenerator) pickModel(ctx context.Context) string {
	ids, err := g.listModels(ctx)
	if err != nil {
		log.Debug("failed to list models: %v", err)
		return config.DefaultModel
	}

	if id := preferredModel(ids); id != "" {
		return id
	}
	return config.DefaultModel
}

// listModels fetches the model ids available to this API key.
func (g *AnthropicGenerator) listModels(ctx context.Context) ([]string, error) {
	respBody, err := g.doRequest(ctx, http.MethodGet, g.baseURL+"/v1/models", nil)
	if err != nil {
		return nil, err
	}

	var result modelsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &APIError{Message: "failed to parse model list", Err: err}
	}

	models := result.Data
	if len(models) == 0 {
		models = result.Models
	}

	ids := make([]string, 0, len(models))
	for _, m := range models {
		id := m.ID
		if id == "" {
			id = m.Name
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// preferredModel picks the first claude model matching the family preference
// order, falling back to any claude model. Returns "" when none match.
func preferredModel(ids []string) string {
	for _, family := range modelFamilies {
		for _, id := range ids {
			lower := strings.ToLower(id)
			if strings.Contains(lower, family) && strings.Contains(lower, "claude") {
				return id
			}
		}
	}
	for _, id := range ids {
		if strings.Contains(strings.ToLower(id), "claude") {
			return id
		}
	}
	return ""
}
