// Package personality rewrites raw model answers into a chosen tone and
// builds memory-grounded answers for the transform flow.
package personality

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mnemoslabs/mnemos/pkg/ai"
	"github.com/mnemoslabs/mnemos/pkg/prompts"
)

// DefaultTone is used whenever the requested tone is unknown or missing.
// Tone is cosmetic, so the lookup is deliberately lenient: no error, no
// rejection, just the default instruction.
const DefaultTone = "Calm Mentor"

// ToneInstructions maps tone identifiers to rewrite instructions. Static
// and read-only after initialization.
var ToneInstructions = map[string]string{
	"Calm Mentor": "Rewrite the following reply in a calm, steady, and encouraging tone. " +
		"Keep it concise, warm, and reassuring.",

	"Witty Friend": "Rewrite the reply in a playful, casually witty tone, like a friendly companion. " +
		"Add one light, non-cringe joke if appropriate. Keep it friendly and modern.",

	"Therapist-Style": "Rewrite the reply in a gentle, reflective, therapist-like tone. " +
		"Validate feelings, soften the language, avoid prescriptive advice.",

	"Strict Analyst": "Rewrite the reply in a highly structured, analytical, impartial tone. " +
		"Prioritize logic, clarity, and concise breakdown. No emotional language. " +
		"Sound like a senior data analyst reviewing evidence.",

	"Professional Corporate Tone": "Rewrite the reply in polished, formal corporate communication style. " +
		"Use clear business language, maintain professionalism, avoid casual phrasing. " +
		"Sound like a well-written internal memo or executive response.",
}

const (
	rewriteMaxTokens   = 400
	rewriteTemperature = 0.35

	answerMaxTokens   = 180
	answerTemperature = 0.2
)

type Engine struct {
	gen    ai.Generator
	logger *log.Logger
}

func NewEngine(gen ai.Generator, logger *log.Logger) *Engine {
	return &Engine{gen: gen, logger: logger}
}

// lookupInstruction resolves a tone with silent default fallback. The
// second return reports whether the fallback was used.
func lookupInstruction(tone string) (string, bool) {
	if instruction, ok := ToneInstructions[tone]; ok {
		return instruction, false
	}
	return ToneInstructions[DefaultTone], true
}

// Rewrite restyles text into the requested tone. It never fails: a
// generation error degrades to a clearly marked placeholder so tone
// rewriting can never block delivery of the underlying answer.
func (e *Engine) Rewrite(ctx context.Context, text, tone string) string {
	instruction, fellBack := lookupInstruction(tone)
	if fellBack {
		e.logger.Debug("Unknown tone, using default", "tone", tone, "default", DefaultTone)
	}

	prompt, err := prompts.BuildToneRewritePrompt(prompts.ToneRewritePrompt{
		Instruction: instruction,
		Text:        text,
	})
	if err != nil {
		return fmt.Sprintf("[transform failed: %s]", err)
	}

	rewritten, err := e.gen.Generate(ctx, prompt, rewriteMaxTokens, rewriteTemperature)
	if err != nil {
		e.logger.Error("Tone rewrite failed", "tone", tone, "error", err)
		return fmt.Sprintf("[transform failed: %s]", err)
	}
	return rewritten
}

// Answer generates the raw reply to a question, grounded on retrieved
// memories and facts when present.
func (e *Engine) Answer(ctx context.Context, question string, memories, facts []string) (string, error) {
	prompt, err := prompts.BuildMemoryAnswerPrompt(prompts.MemoryAnswerPrompt{
		Question: question,
		Memories: memories,
		Facts:    facts,
	})
	if err != nil {
		return "", err
	}
	return e.gen.Generate(ctx, prompt, answerMaxTokens, answerTemperature)
}
