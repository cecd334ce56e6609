package memory

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers a JSON object from model output that may carry
// surrounding prose, markdown fences, or both. The upstream service is not
// guaranteed to honor "JSON only" instructions, so recovery is attempted in
// three tiers, first success wins:
//
//  1. direct parse of the full text
//  2. the substring from the first '{' to the last '}'
//  3. each ```-fenced segment whose trimmed form looks like an object
//
// Returns (nil, false) when nothing parses. Never panics.
func ExtractJSON(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	if obj, ok := tryParseObject(text); ok {
		return obj, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		if obj, ok := tryParseObject(text[start : end+1]); ok {
			return obj, true
		}
	}

	if strings.Contains(text, "```") {
		for _, segment := range strings.Split(text, "```") {
			segment = strings.TrimSpace(segment)
			if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
				if obj, ok := tryParseObject(segment); ok {
					return obj, true
				}
			}
		}
	}

	return nil, false
}

func tryParseObject(candidate string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}
