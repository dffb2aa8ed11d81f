// Package gemini talks to the Google Generative Language REST API and turns
// free-form model output into the structured reports the application expects.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/analysis"
	pkgerrors "ideaforge-backend/pkg/errors"

	"go.uber.org/zap"
)

const (
	defaultModel    = "gemini-1.5-flash"
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultTimeout  = 60 * time.Second
)

// Client implements ports.Analyzer against the Gemini REST API.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithEndpoint overrides the API endpoint, mainly for tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Gemini client.
func NewClient(apiKey string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Analyzer = (*Client)(nil)

// AnalyzeIdea produces a structured report for a startup idea.
func (c *Client) AnalyzeIdea(ctx context.Context, title, body string) (*analysis.Report, error) {
	var report analysis.Report
	if err := c.generate(ctx, analysisPrompt(title, body), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// EvaluateHackathon scores a project the way a hackathon jury would.
func (c *Client) EvaluateHackathon(ctx context.Context, title, body string) (*analysis.HackathonReport, error) {
	var report analysis.HackathonReport
	if err := c.generate(ctx, hackathonPrompt(title, body), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CombineConcepts mashes two unrelated ingredients into a product concept.
func (c *Client) CombineConcepts(ctx context.Context, first, second string) (*analysis.FrankensteinConcept, error) {
	var concept analysis.FrankensteinConcept
	if err := c.generate(ctx, frankensteinPrompt(first, second), &concept); err != nil {
		return nil, err
	}
	if concept.Ingredients[0] == "" {
		concept.Ingredients = [2]string{first, second}
	}
	return &concept, nil
}

// generate sends a prompt and decodes the model's JSON answer into out.
func (c *Client) generate(ctx context.Context, prompt string, out interface{}) error {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.NewExternalError("gemini", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("gemini returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		if resp.StatusCode == http.StatusTooManyRequests {
			return pkgerrors.NewExternalError("gemini", fmt.Errorf("rate limited"))
		}
		return pkgerrors.NewExternalError("gemini", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return pkgerrors.NewExternalError("gemini", fmt.Errorf("decode response: %w", err))
	}

	text, err := extractText(&genResp)
	if err != nil {
		return pkgerrors.NewExternalError("gemini", err)
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		c.logger.Warn("gemini returned unparseable JSON",
			zap.String("text", truncate(text, 500)),
			zap.Error(err))
		return pkgerrors.NewExternalError("gemini", fmt.Errorf("parse model output: %w", err))
	}

	return nil
}

func extractText(resp *generateResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no parts in candidate")
	}
	return stripCodeFence(candidate.Content.Parts[0].Text), nil
}

// Models sometimes wrap their JSON in a markdown code fence despite the
// response MIME type hint.
var codeFenceRegex = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.+?)\\s*```\\s*$")

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if matches := codeFenceRegex.FindStringSubmatch(s); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Gemini API wire types

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}
