// Package api implements the HTTP client for the Shipi18n translation
// service. The service accepts a serialized JSON document plus a target
// language list and returns one translated document per language, possibly
// with metadata (warnings, skipped keys) alongside.
//
// The client performs exactly one request per Translate call. Failures are
// surfaced as *Error with the HTTP status and the service's machine-readable
// code; nothing is retried here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Shipi18n/shipi18n-cli/locale"
)

// DefaultBaseURL is the production Shipi18n endpoint.
const DefaultBaseURL = "https://shipi18n.com"

// translatePath is the translation endpoint path.
const translatePath = "/api/translate"

// reserved response keys that carry metadata rather than a language
// document. They must never be iterated as languages.
var reservedKeys = map[string]bool{
	"warnings":        true,
	"skipped":         true,
	"contextEnhanced": true,
	"namespaceInfo":   true,
	"fallbackInfo":    true,
}

// Client talks to the Shipi18n API.
type Client struct {
	// BaseURL is the API root (default DefaultBaseURL).
	BaseURL string
	// APIKey is the opaque bearer credential.
	APIKey string
	// HTTPClient performs the requests. When nil, a default client with
	// environment proxy support and a 120s timeout is used.
	HTTPClient *http.Client
}

// NewClient returns a Client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
	}
}

// MakeHTTPClient builds an *http.Client honoring an explicit proxy URL or,
// when empty, the HTTP_PROXY/HTTPS_PROXY environment variables.
func MakeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// Request is a single translation request.
type Request struct {
	// Text is the serialized source JSON document.
	Text string `json:"text"`
	// SourceLanguage is the source language code.
	SourceLanguage string `json:"sourceLanguage"`
	// TargetLanguages lists every language to translate into, including
	// any base languages synthesized for regional fallback.
	TargetLanguages []string `json:"targetLanguages"`
	// PreservePlaceholders keeps {{var}}-style placeholders intact.
	PreservePlaceholders bool `json:"preservePlaceholders,omitempty"`
	// HTMLHandling selects how embedded HTML is treated.
	HTMLHandling string `json:"htmlHandling,omitempty"`
	// SkipKeys are exact dot-paths the service must not translate.
	SkipKeys []string `json:"skipKeys,omitempty"`
	// SkipPatterns are wildcard patterns the service matches server-side.
	SkipPatterns []string `json:"skipPatterns,omitempty"`
	// Context is a free-form hint about the document's domain.
	Context string `json:"context,omitempty"`
}

// Response separates per-language documents from service metadata.
type Response struct {
	// Translations maps each language code to its translated document.
	Translations map[string]locale.Document
	// Warnings are human-readable service notices.
	Warnings []string
	// Skipped lists keys the service skipped per the skip rules.
	Skipped []string
	// ContextEnhanced is true when the service used the context hint.
	ContextEnhanced bool
	// NamespaceInfo carries opaque namespace metadata, if any.
	NamespaceInfo map[string]any
}

// Error is a non-success response from the service.
type Error struct {
	// Status is the HTTP status code.
	Status int
	// Code is the service's machine-readable error code, if provided.
	Code string
	// Message is the human-readable description.
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("shipi18n API error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("shipi18n API error %d: %s", e.Status, e.Message)
}

// Translate sends one translation request and parses the result. The
// context governs cancellation; there is no retry.
func (c *Client) Translate(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	endpoint := base + translatePath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = MakeHTTPClient("", 120*time.Second)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp.StatusCode, respBody)
	}

	return parseResponse(respBody)
}

// parseErrorResponse extracts a typed *Error from a non-200 body.
// The service wraps errors as {"error": {"message": ..., "code": ...}}
// but bare {"message": ...} bodies show up too.
func parseErrorResponse(status int, body []byte) *Error {
	var wrapped struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	apiErr := &Error{Status: status}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		apiErr.Message = wrapped.Error.Message
		apiErr.Code = wrapped.Error.Code
		if apiErr.Message == "" {
			apiErr.Message = wrapped.Message
			apiErr.Code = wrapped.Code
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = truncate(string(body), 200)
	}
	return apiErr
}

// parseResponse decodes the translation payload. Each language value may
// arrive either as a JSON-encoded string or as an already-structured
// object; reserved metadata keys are routed into the Response fields and
// excluded from Translations.
func parseResponse(body []byte) (*Response, error) {
	var raw struct {
		Translations map[string]json.RawMessage `json:"translations"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	if raw.Translations == nil {
		return nil, fmt.Errorf("response has no translations field: %s", truncate(string(body), 200))
	}

	out := &Response{Translations: make(map[string]locale.Document)}

	for key, value := range raw.Translations {
		if reservedKeys[key] {
			if err := decodeMetadata(out, key, value); err != nil {
				return nil, fmt.Errorf("decoding %s metadata: %w", key, err)
			}
			continue
		}
		doc, err := decodeLanguageDocument(value)
		if err != nil {
			return nil, fmt.Errorf("decoding %s translation: %w", key, err)
		}
		out.Translations[key] = doc
	}

	return out, nil
}

func decodeMetadata(out *Response, key string, value json.RawMessage) error {
	switch key {
	case "warnings":
		return json.Unmarshal(value, &out.Warnings)
	case "skipped":
		return json.Unmarshal(value, &out.Skipped)
	case "contextEnhanced":
		return json.Unmarshal(value, &out.ContextEnhanced)
	case "namespaceInfo":
		return json.Unmarshal(value, &out.NamespaceInfo)
	}
	// Unknown reserved keys are dropped.
	return nil
}

func decodeLanguageDocument(value json.RawMessage) (locale.Document, error) {
	if string(value) == "null" {
		return locale.Document{}, nil
	}
	// JSON-encoded string form first: "{\"a\": \"...\"}".
	var encoded string
	if err := json.Unmarshal(value, &encoded); err == nil {
		if encoded == "" {
			return locale.Document{}, nil
		}
		return locale.Parse([]byte(encoded))
	}
	return locale.Parse(value)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
