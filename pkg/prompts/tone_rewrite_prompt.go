package prompts

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed templates/tone_rewrite_prompt.tmpl
var toneRewritePromptTemplate string

type ToneRewritePrompt struct {
	Instruction string
	Text        string
}

func BuildToneRewritePrompt(data ToneRewritePrompt) (string, error) {
	tmpl := template.Must(template.New("tone_rewrite_prompt").Parse(toneRewritePromptTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
