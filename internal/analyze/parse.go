// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// analysisResponse is the JSON object expected from the model.
type analysisResponse struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
}

// parseAnalysisResponse parses the model's JSON response. It handles the case
// where the model wraps the JSON in markdown code fences despite being asked
// not to.
func parseAnalysisResponse(content string) (*analysisResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("empty model response")
	}

	// Strip markdown code fences if present.
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		var jsonLines []string
		inBlock := false
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "```") {
				inBlock = !inBlock
				continue
			}
			if inBlock {
				jsonLines = append(jsonLines, line)
			}
		}
		content = strings.Join(jsonLines, "\n")
	}

	content = strings.TrimSpace(content)

	var parsed analysisResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %w", err)
	}

	if parsed.Summary == "" {
		return nil, errors.New("model response missing summary")
	}

	return &parsed, nil
}
