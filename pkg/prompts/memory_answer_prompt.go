package prompts

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed templates/memory_answer_prompt.tmpl
var memoryAnswerPromptTemplate string

type MemoryAnswerPrompt struct {
	Question string
	Memories []string
	Facts    []string
}

// BuildMemoryAnswerPrompt renders the question together with retrieved
// memory context. Empty context blocks are omitted entirely.
func BuildMemoryAnswerPrompt(data MemoryAnswerPrompt) (string, error) {
	tmpl := template.Must(template.New("memory_answer_prompt").Parse(memoryAnswerPromptTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
