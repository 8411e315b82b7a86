package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"

	receiptPrompt = `You are an expert at analyzing restaurant receipts.

Please carefully examine this receipt image and extract:
1. All individual menu items with their exact names, quantities, unit prices, and total prices
2. The total amount of the bill

Format your response as a clean JSON object with this exact structure:
{
"items": [
  {"name": "Item Name 1", "quantity": 2, "unitPrice": 10.99, "totalPrice": 21.98},
  {"name": "Item Name 2", "quantity": 1, "unitPrice": 5.99, "totalPrice": 5.99}
],
"total": 27.97
}

Be precise with item names, quantities, and prices. If you can't read something clearly, make your best guess.
For quantities, if not explicitly stated, assume 1.
For unit prices, divide the total price by the quantity.
For total prices, multiply the unit price by the quantity.

IMPORTANT: Your response must ONLY contain this JSON object and nothing else.`
)

var (
	ErrNoAPIKey  = errors.New("gemini api key not configured")
	ErrNoImage   = errors.New("no image data provided")
	ErrBadOutput = errors.New("could not extract valid JSON from model response")
)

// Ensure GeminiClient implements Extractor
var _ Extractor = (*GeminiClient)(nil)

// GeminiClient calls the Gemini generateContent API to read receipts.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// Option customizes a GeminiClient.
type Option func(*GeminiClient)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *GeminiClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a different endpoint. Tests use this with
// httptest servers.
func WithBaseURL(url string) Option {
	return func(c *GeminiClient) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *GeminiClient) {
		if client != nil {
			c.client = client
		}
	}
}

// NewGeminiClient creates a client with a 60 second request timeout.
func NewGeminiClient(apiKey string, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generation_config"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"max_output_tokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractReceipt sends the image plus the extraction prompt to Gemini and
// decodes the JSON object out of the model's reply. Models occasionally wrap
// the JSON in prose despite the prompt, so a brace-matching fallback digs
// the object out before giving up.
func (c *GeminiClient) ExtractReceipt(ctx context.Context, imageBase64 string) (*Extraction, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if imageBase64 == "" {
		return nil, ErrNoImage
	}

	// Accept data URLs as-is and strip the prefix.
	if idx := strings.Index(imageBase64, "base64,"); idx != -1 {
		imageBase64 = imageBase64[idx+len("base64,"):]
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: receiptPrompt},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
			},
		}},
		GenerationConfig: generationConfig{Temperature: 0.2, MaxOutputTokens: 4000},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api error (status %d): %s", resp.StatusCode, apiErrorMessage(body))
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("invalid gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response contained no candidates")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	slog.Debug("Gemini extraction response", "chars", len(text))

	parsed, err := decodeModelJSON(text)
	if err != nil {
		return nil, err
	}

	return &Extraction{Items: parsed.Items, Total: parsed.Total}, nil
}

type modelPayload struct {
	Items []any `json:"items"`
	Total any   `json:"total"`
}

// decodeModelJSON parses the model's reply as JSON, falling back to the
// first balanced {...} block when the reply isn't pure JSON.
func decodeModelJSON(text string) (*modelPayload, error) {
	var payload modelPayload
	if err := json.Unmarshal([]byte(text), &payload); err == nil {
		return &payload, nil
	}

	block, ok := firstJSONObject(text)
	if !ok {
		return nil, ErrBadOutput
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOutput, err)
	}
	return &payload, nil
}

// firstJSONObject scans for the first balanced top-level {...} block,
// ignoring braces inside JSON strings.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// apiErrorMessage pulls the human-readable message out of a Gemini error
// body, truncating the raw body if it isn't the documented shape.
func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
