package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestCandidateText(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantText string
		wantOK   bool
	}{
		{
			name:     "standard parts array",
			payload:  `{"candidates":[{"content":{"parts":[{"text":"hello from parts"}]}}]}`,
			wantText: "hello from parts",
			wantOK:   true,
		},
		{
			name:     "outputText field",
			payload:  `{"candidates":[{"content":{"outputText":{"text":"hello from outputText"}}}]}`,
			wantText: "hello from outputText",
			wantOK:   true,
		},
		{
			name:     "prediction field",
			payload:  `{"candidates":[{"content":{"prediction":{"text":"hello from prediction"}}}]}`,
			wantText: "hello from prediction",
			wantOK:   true,
		},
		{
			name:     "direct text field",
			payload:  `{"candidates":[{"content":{"text":"hello direct"}}]}`,
			wantText: "hello direct",
			wantOK:   true,
		},
		{
			name:    "no candidates",
			payload: `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantOK:  false,
		},
		{
			name:    "empty candidates list",
			payload: `{"candidates":[]}`,
			wantOK:  false,
		},
		{
			name:    "unknown content shape",
			payload: `{"candidates":[{"content":{"something":"else"}}]}`,
			wantOK:  false,
		},
		{
			name:    "parts without text",
			payload: `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := CandidateText(decodePayload(t, tt.payload))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantText, text)
			}
		})
	}
}

func TestCandidateTextPrefersEarlierStrategies(t *testing.T) {
	payload := decodePayload(t, `{"candidates":[{"content":{
		"parts":[{"text":"from parts"}],
		"text":"from direct"
	}}]}`)

	text, ok := CandidateText(payload)
	require.True(t, ok)
	assert.Equal(t, "from parts", text)
}
