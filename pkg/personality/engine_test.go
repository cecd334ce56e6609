package personality

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestRewriteKnownTone(t *testing.T) {
	gen := &stubGenerator{response: "rewritten reply"}
	engine := NewEngine(gen, testLogger())

	out := engine.Rewrite(context.Background(), "original reply", "Witty Friend")

	assert.Equal(t, "rewritten reply", out)
	assert.Contains(t, gen.lastPrompt, ToneInstructions["Witty Friend"])
	assert.Contains(t, gen.lastPrompt, "original reply")
	assert.Contains(t, gen.lastPrompt, "6 lines or fewer")
}

func TestRewriteUnknownToneFallsBack(t *testing.T) {
	gen := &stubGenerator{response: "rewritten reply"}
	engine := NewEngine(gen, testLogger())

	out := engine.Rewrite(context.Background(), "original reply", "Nonexistent Tone")

	assert.Equal(t, "rewritten reply", out)
	assert.Contains(t, gen.lastPrompt, ToneInstructions[DefaultTone])
}

func TestRewriteEmptyToneFallsBack(t *testing.T) {
	gen := &stubGenerator{response: "rewritten reply"}
	engine := NewEngine(gen, testLogger())

	out := engine.Rewrite(context.Background(), "original reply", "")

	assert.Equal(t, "rewritten reply", out)
	assert.Contains(t, gen.lastPrompt, ToneInstructions[DefaultTone])
}

func TestRewriteGenerationFailureReturnsPlaceholder(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("boom")}
	engine := NewEngine(gen, testLogger())

	out := engine.Rewrite(context.Background(), "original reply", "Calm Mentor")

	assert.Equal(t, "[transform failed: boom]", out)
}

func TestAnswerIncludesMemoryContext(t *testing.T) {
	gen := &stubGenerator{response: "the answer"}
	engine := NewEngine(gen, testLogger())

	out, err := engine.Answer(context.Background(), "what do I like?",
		[]string{"loves hiking"}, []string{"lives in Lisbon"})
	require.NoError(t, err)

	assert.Equal(t, "the answer", out)
	assert.Contains(t, gen.lastPrompt, "what do I like?")
	assert.Contains(t, gen.lastPrompt, "Relevant Memories:")
	assert.Contains(t, gen.lastPrompt, "- loves hiking")
	assert.Contains(t, gen.lastPrompt, "Known Facts:")
	assert.Contains(t, gen.lastPrompt, "- lives in Lisbon")
}

func TestAnswerOmitsEmptyContextBlocks(t *testing.T) {
	gen := &stubGenerator{response: "the answer"}
	engine := NewEngine(gen, testLogger())

	_, err := engine.Answer(context.Background(), "what do I like?", nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, gen.lastPrompt, "Relevant Memories:")
	assert.NotContains(t, gen.lastPrompt, "Known Facts:")
}

func TestAnswerPropagatesGenerationError(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("boom")}
	engine := NewEngine(gen, testLogger())

	_, err := engine.Answer(context.Background(), "question", nil, nil)
	assert.Error(t, err)
}
