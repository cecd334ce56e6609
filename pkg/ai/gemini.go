package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

var _ Generator = (*GeminiService)(nil)

// GeminiService talks to the generateContent REST surface. It is the only
// outbound text-generation path; everything above it is shielded from the
// upstream response-shape churn by the candidate extraction strategies.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

func NewGeminiService(logger *log.Logger, apiKey, model, baseURL string, timeout time.Duration) *GeminiService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

// Generate sends prompt to the remote model and returns the first
// candidate's text. When no known response shape matches, the serialized
// response body is returned instead of an error; callers treat that path as
// degraded but non-fatal.
func (s *GeminiService) Generate(ctx context.Context, prompt string, maxOutputTokens int, temperature float64) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}
	if maxOutputTokens <= 0 {
		return "", errors.Errorf("maxOutputTokens must be positive, got %d", maxOutputTokens)
	}
	if temperature < 0 || temperature > 1 {
		return "", errors.Errorf("temperature must be in [0, 1], got %f", temperature)
	}
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			MaxOutputTokens: maxOutputTokens,
			Temperature:     temperature,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var data map[string]any
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", &TransportError{Status: resp.StatusCode, Err: errors.Wrap(err, "failed to decode response body")}
	}

	if text, ok := CandidateText(data); ok {
		return text, nil
	}

	s.logger.Warn("No known candidate shape in response, returning serialized body")
	if pretty, err := json.MarshalIndent(data, "", "  "); err == nil {
		return string(pretty), nil
	}
	return string(respBody), nil
}

// ListModels returns the raw JSON listing of models available to the
// configured credential. Used by the debug /models route.
func (s *GeminiService) ListModels(ctx context.Context) (string, error) {
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	url := fmt.Sprintf("%s/models?key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return string(respBody), nil
}
