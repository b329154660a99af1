package transform

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testRequest() Request {
	return Request{Text: "The quick fox", Settings: DefaultSettings()}
}

func TestHTTPProvider_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transform", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "The quick fox", gjson.GetBytes(body, "originalText").String())
		assert.Equal(t, "paraphrase", gjson.GetBytes(body, "mode").String())
		assert.Equal(t, int64(50), gjson.GetBytes(body, "formality").Int())
		assert.Equal(t, "general", gjson.GetBytes(body, "targetAudience").String())
		assert.True(t, gjson.GetBytes(body, "deepHumanization").Bool())

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":{
			"id":"abc","originalText":"The quick fox","humanizedText":"The quick brown fox",
			"mode":"tone","formality":70,"timestamp":1700000000000}}`)
	}))
	defer srv.Close()

	// Trailing slash on the base URL must not double up.
	p := NewHTTPProvider(Config{BaseURL: srv.URL + "/", APIKey: "secret"})
	resp, err := p.Transform(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "abc", resp.ID)
	assert.Equal(t, "The quick brown fox", resp.HumanizedText)
	assert.Equal(t, Tone, resp.Mode)
	assert.Equal(t, 70, resp.Formality)
	assert.Equal(t, General, resp.Audience)
	assert.Equal(t, time.UnixMilli(1700000000000), resp.Timestamp)
}

func TestHTTPProvider_BareObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"humanizedText":"A fox"}`)
	}))
	defer srv.Close()

	resp, err := NewHTTPProvider(Config{BaseURL: srv.URL}).Transform(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "A fox", resp.HumanizedText)
	assert.Equal(t, "The quick fox", resp.OriginalText)
	assert.NotEmpty(t, resp.ID)
}

func TestHTTPProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"status with body", http.StatusTooManyRequests, "quota exceeded\n", "429: quota exceeded"},
		{"status without body", http.StatusBadGateway, "", "502: Bad Gateway"},
		{"envelope failure", http.StatusOK, `{"success":false,"error":"model overloaded"}`, "model overloaded"},
		{"not json", http.StatusOK, `<html>`, "not JSON"},
		{"missing text", http.StatusOK, `{"success":true,"data":{"id":"x"}}`, "missing humanizedText"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewHTTPProvider(Config{BaseURL: srv.URL}).Transform(context.Background(), testRequest())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPProvider_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewHTTPProvider(Config{BaseURL: srv.URL}).Transform(context.Background(), testRequest())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
}

func TestHTTPProvider_ValidatesBeforeCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewHTTPProvider(Config{BaseURL: srv.URL}).Transform(context.Background(), Request{Settings: DefaultSettings()})
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.False(t, called)
}

func TestHTTPProvider_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPProvider(Config{BaseURL: srv.URL}).Transform(ctx, testRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeRequest(t *testing.T) {
	body, err := encodeRequest(Request{Text: `say "hi"`, Settings: DefaultSettings()})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"originalText": "say \"hi\"",
		"mode": "paraphrase",
		"formality": 50,
		"targetAudience": "general",
		"verbosity": "balanced",
		"deepHumanization": true
	}`, string(body))
}
