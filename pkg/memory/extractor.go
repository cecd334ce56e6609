package memory

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/mnemoslabs/mnemos/pkg/ai"
	"github.com/mnemoslabs/mnemos/pkg/helpers"
	"github.com/mnemoslabs/mnemos/pkg/prompts"
)

const (
	// maxWindowMessages bounds the conversation window after sanitization.
	maxWindowMessages = 30

	extractionMaxTokens   = 800
	extractionTemperature = 0.0
)

// Extractor turns a conversation window into a normalized ExtractionResult.
// Generation and parsing failures degrade to an empty result with the
// failure reported on the result itself; no error crosses this boundary.
type Extractor struct {
	gen    ai.Generator
	logger *log.Logger
}

func NewExtractor(gen ai.Generator, logger *log.Logger) *Extractor {
	return &Extractor{gen: gen, logger: logger}
}

// SanitizeWindow drops non-string and blank entries, trims the rest, and
// bounds the window to the first maxWindowMessages, preserving order.
func SanitizeWindow(messages []any) []string {
	sanitized := lo.FilterMap(messages, func(item any, _ int) (string, bool) {
		s, ok := item.(string)
		if !ok {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	return helpers.SafeFirstN(sanitized, maxWindowMessages)
}

func (e *Extractor) Extract(ctx context.Context, messages []any) ExtractionResult {
	window := SanitizeWindow(messages)

	windowJSON, err := json.Marshal(window)
	if err != nil {
		result := emptyResult()
		result.Error = err.Error()
		return result
	}

	prompt, err := prompts.BuildMemoryExtractionPrompt(string(windowJSON))
	if err != nil {
		result := emptyResult()
		result.Error = err.Error()
		return result
	}

	raw, err := e.gen.Generate(ctx, prompt, extractionMaxTokens, extractionTemperature)
	if err != nil {
		e.logger.Error("Generation failed during extraction", "error", err)
		result := emptyResult()
		result.Error = err.Error()
		return result
	}

	parsed, ok := ExtractJSON(raw)
	if !ok {
		e.logger.Warn("Could not parse JSON from model output", "raw_length", len(raw))
		result := emptyResult()
		result.RawExtraction = raw
		result.ParsingError = "could not parse JSON from model output"
		return result
	}

	return ExtractionResult{
		Preferences:       toStringList(parsed["preferences"]),
		EmotionalPatterns: toStringList(parsed["emotional_patterns"]),
		Facts:             toStringList(parsed["facts"]),
		RawExtraction:     raw,
	}
}

// toStringList coerces a parsed JSON value into a list of trimmed,
// non-blank strings. Scalars are stringified; nulls, blanks, and non-scalar
// entries are dropped. Anything that is not a list yields an empty list.
func toStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	return lo.FilterMap(items, func(item any, _ int) (string, bool) {
		switch t := item.(type) {
		case string:
			s := strings.TrimSpace(t)
			return s, s != ""
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(t), true
		default:
			return "", false
		}
	})
}
