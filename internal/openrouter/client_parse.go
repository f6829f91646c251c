package openrouter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeFenceOpen  = regexp.MustCompile("```(?:json)?\\s*")
	codeFenceClose = regexp.MustCompile("\\s*```")
)

// parseCompletion returns the JSON object contained in the first choice of
// a chat completion response
func parseCompletion(respBody []byte) ([]byte, error) {
	type Choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}

	type Response struct {
		Choices []Choice `json:"choices"`
	}

	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, &OpenRouterError{
			Op:  "parse_response_json",
			Err: fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	if len(response.Choices) == 0 {
		return nil, &OpenRouterError{
			Op:  "check_response_choices",
			Err: fmt.Errorf("no choices in response"),
		}
	}

	content, err := extractJSONObject(response.Choices[0].Message.Content)
	if err != nil {
		return nil, &OpenRouterError{Op: "extract_json", Err: err}
	}
	return content, nil
}

// extractJSONObject strips markdown code fences and any prose around the
// outermost JSON object
func extractJSONObject(content string) ([]byte, error) {
	content = codeFenceOpen.ReplaceAllString(content, "")
	content = codeFenceClose.ReplaceAllString(content, "")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in model response")
	}

	candidate := []byte(content[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("model response is not valid JSON")
	}
	return candidate, nil
}
