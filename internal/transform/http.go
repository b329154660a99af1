package transform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// transformPath is the backend endpoint for transformations.
const transformPath = "/api/transform"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// ErrMalformedResponse is returned when the backend reply cannot be used.
var ErrMalformedResponse = errors.New("malformed transformation response")

// StatusError is returned for a non-2xx backend reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Body)
}

// HTTPProvider calls the humanizer backend over HTTP.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider creates a provider for the backend at cfg.BaseURL.
func NewHTTPProvider(cfg Config) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// endpoint joins the base URL and path with exactly one slash.
func (p *HTTPProvider) endpoint(path string) string {
	return p.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Transform implements Provider.
func (p *HTTPProvider) Transform(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := encodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := p.endpoint(transformPath)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	log.Debugf("POST %s (%d bytes)", url, len(body))
	start := time.Now()

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(data))
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		log.Warningf("transform failed with status %d", resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode, Body: text}
	}

	out, err := decodeResponse(req, data)
	if err != nil {
		return nil, err
	}
	log.Infof("transformed %d bytes in %s", len(req.Text), time.Since(start).Round(time.Millisecond))
	return out, nil
}

// encodeRequest builds the JSON body the backend expects.
func encodeRequest(req Request) ([]byte, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"originalText", req.Text},
		{"mode", string(req.Mode)},
		{"formality", req.Formality},
		{"targetAudience", string(req.Audience)},
		{"verbosity", string(req.Verbosity)},
		{"deepHumanization", req.DeepHumanization},
	}

	body := []byte(`{}`)
	for _, f := range fields {
		var err error
		if body, err = sjson.SetBytes(body, f.path, f.value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", f.path, err)
		}
	}
	return body, nil
}

// decodeResponse reads either a bare transformation object or one wrapped in
// a {"success": ..., "data": {...}} envelope.
func decodeResponse(req Request, data []byte) (*Response, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not JSON", ErrMalformedResponse)
	}

	root := gjson.ParseBytes(data)
	if ok := root.Get("success"); ok.Exists() && !ok.Bool() {
		msg := root.Get("error").String()
		if msg == "" {
			msg = root.Get("message").String()
		}
		if msg == "" {
			msg = "backend reported failure"
		}
		return nil, fmt.Errorf("transformation failed: %s", msg)
	}
	if inner := root.Get("data"); inner.IsObject() {
		root = inner
	}

	humanized := root.Get("humanizedText")
	if humanized.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing humanizedText", ErrMalformedResponse)
	}

	out := &Response{
		ID:            root.Get("id").String(),
		OriginalText:  req.Text,
		HumanizedText: humanized.String(),
		Settings:      req.Settings,
		Timestamp:     time.Now(),
	}
	if out.ID == "" {
		out.ID = ksuid.New().String()
	}
	if v := root.Get("originalText"); v.Type == gjson.String {
		out.OriginalText = v.String()
	}
	if v := root.Get("timestamp"); v.Type == gjson.Number {
		out.Timestamp = time.UnixMilli(v.Int())
	}
	if v := root.Get("mode"); v.Type == gjson.String {
		out.Mode = Mode(v.String())
	}
	if v := root.Get("formality"); v.Type == gjson.Number {
		out.Formality = int(v.Int())
	}
	if v := root.Get("targetAudience"); v.Type == gjson.String {
		out.Audience = Audience(v.String())
	}
	if v := root.Get("verbosity"); v.Type == gjson.String {
		out.Verbosity = Verbosity(v.String())
	}
	if v := root.Get("deepHumanization"); v.IsBool() {
		out.DeepHumanization = v.Bool()
	}
	return out, nil
}
