package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestService(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewGeminiService(testLogger(), "test-key", "models/test", ts.URL, 5*time.Second)
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"generated text"}]}}]}`))
	})

	text, err := svc.Generate(context.Background(), "hello", 100, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)
	assert.Equal(t, "/models/test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"permission denied"}`))
	})

	_, err := svc.Generate(context.Background(), "hello", 100, 0)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusForbidden, transportErr.Status)
	assert.Contains(t, transportErr.Error(), "403")
	assert.Contains(t, transportErr.Error(), "permission denied")
}

func TestGenerateNotConfigured(t *testing.T) {
	svc := NewGeminiService(testLogger(), "", "models/test", "http://localhost:1", time.Second)

	_, err := svc.Generate(context.Background(), "hello", 100, 0)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateValidatesArguments(t *testing.T) {
	svc := NewGeminiService(testLogger(), "test-key", "models/test", "http://localhost:1", time.Second)

	tests := []struct {
		name        string
		prompt      string
		maxTokens   int
		temperature float64
	}{
		{"empty prompt", "   ", 100, 0},
		{"zero tokens", "hello", 0, 0},
		{"negative tokens", "hello", -1, 0},
		{"temperature below range", "hello", 100, -0.1},
		{"temperature above range", "hello", 100, 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.prompt, tt.maxTokens, tt.temperature)
			assert.Error(t, err)
		})
	}
}

func TestGenerateUnknownShapeReturnsSerializedBody(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"mystery":"shape"}}]}`))
	})

	text, err := svc.Generate(context.Background(), "hello", 100, 0)
	require.NoError(t, err)
	// Degraded path: serialized body instead of a failure.
	assert.Contains(t, text, "candidates")
	assert.Contains(t, text, "mystery")
}

func TestGenerateTransportFailure(t *testing.T) {
	// Closed port: the request cannot complete.
	svc := NewGeminiService(testLogger(), "test-key", "models/test", "http://127.0.0.1:1", time.Second)

	_, err := svc.Generate(context.Background(), "hello", 100, 0)
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestListModels(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"models/test"}]}`))
	})

	body, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Contains(t, body, "models/test")
}

func TestListModelsNotConfigured(t *testing.T) {
	svc := NewGeminiService(testLogger(), "", "models/test", "http://localhost:1", time.Second)

	_, err := svc.ListModels(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}
