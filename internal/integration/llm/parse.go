package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dailysync/standup-backend/internal/entity"
)

// ParseJSON recovers a JSON object from an LLM response that may wrap it in a
// markdown code fence or surrounding prose. It tries, in order: the first
// fenced ```json block, the whole text, and the substring between the first
// '{' and the last '}'. Failures wrap entity.ErrLLMParse so callers can treat
// them like any other LLM-path failure.
func ParseJSON(text string) (map[string]any, error) {
	if block, ok := fencedJSONBlock(text); ok {
		var out map[string]any
		if err := json.Unmarshal([]byte(block), &out); err != nil {
			return nil, fmt.Errorf("%w: fenced block: %v", entity.ErrLLMParse, err)
		}
		return out, nil
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil {
			return out, nil
		}
	}

	return nil, entity.ErrLLMParse
}

// fencedJSONBlock extracts the body of the first ``` or ```json fence that
// contains a braced object.
func fencedJSONBlock(text string) (string, bool) {
	rest := text
	for {
		open := strings.Index(rest, "```")
		if open == -1 {
			return "", false
		}
		rest = rest[open+3:]
		rest = strings.TrimPrefix(rest, "json")

		closing := strings.Index(rest, "```")
		if closing == -1 {
			return "", false
		}

		body := strings.TrimSpace(rest[:closing])
		if strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") {
			return body, true
		}
		rest = rest[closing+3:]
	}
}
