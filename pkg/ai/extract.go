package ai

// The upstream service has shipped several response layouts for generated
// text. Each known layout is a pure strategy over the first candidate's
// content object; strategies run in order and the first match wins.

type textStrategy func(content map[string]any) (string, bool)

var textStrategies = []textStrategy{
	partsText,
	outputText,
	predictionText,
	directText,
}

// CandidateText extracts the generated text of the first candidate from a
// decoded response payload. Returns false when no known shape matches.
func CandidateText(payload map[string]any) (string, bool) {
	candidates, ok := payload["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return "", false
	}
	candidate, ok := candidates[0].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := candidate["content"].(map[string]any)
	if !ok {
		return "", false
	}

	for _, strategy := range textStrategies {
		if text, ok := strategy(content); ok {
			return text, true
		}
	}
	return "", false
}

// Standard layout: content.parts[0].text.
func partsText(content map[string]any) (string, bool) {
	parts, ok := content["parts"].([]any)
	if !ok || len(parts) == 0 {
		return "", false
	}
	part, ok := parts[0].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := part["text"].(string)
	return text, ok
}

// Newer layout: content.outputText.text.
func outputText(content map[string]any) (string, bool) {
	return nestedText(content, "outputText")
}

// Prediction layout: content.prediction.text.
func predictionText(content map[string]any) (string, bool) {
	return nestedText(content, "prediction")
}

// Flat layout: content.text.
func directText(content map[string]any) (string, bool) {
	text, ok := content["text"].(string)
	return text, ok
}

func nestedText(content map[string]any, key string) (string, bool) {
	nested, ok := content[key].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := nested["text"].(string)
	return text, ok
}
