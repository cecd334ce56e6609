package prompts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/mnemoslabs/mnemos/pkg/helpers"
)

//go:embed templates/memory_extraction_prompt.tmpl
var memoryExtractionPromptTemplate string

// extractionShape describes the output contract the model must honor. The
// JSON schema rendered from it is embedded into the prompt.
type extractionShape struct {
	Preferences       []string `json:"preferences"`
	EmotionalPatterns []string `json:"emotional_patterns"`
	Facts             []string `json:"facts"`
}

type memoryExtractionPrompt struct {
	Schema   string
	Messages string
}

// BuildMemoryExtractionPrompt renders the extraction instruction around the
// sanitized conversation window, already serialized as a JSON array.
func BuildMemoryExtractionPrompt(messagesJSON string) (string, error) {
	schema, err := helpers.ConvertToInputSchema(extractionShape{})
	if err != nil {
		return "", err
	}
	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	tmpl := template.Must(template.New("memory_extraction_prompt").Parse(memoryExtractionPromptTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, memoryExtractionPrompt{
		Schema:   string(schemaBytes),
		Messages: messagesJSON,
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
