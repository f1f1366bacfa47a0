package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	cfg.TimeoutMs = 2000
	return cfg
}

// newTestClient returns a client whose retry sleeps are recorded instead of
// executed, so tests can count delays without waiting.
func newTestClient(cfg Config) (*geminiClient, *[]time.Duration) {
	delays := &[]time.Duration{}
	c := NewGeminiClient(cfg, NoopObserver{}).(*geminiClient)
	c.sleep = func(d time.Duration) { *delays = append(*delays, d) }
	return c, delays
}

func candidateBody(text string) []byte {
	resp := generateContentResponse{
		Candidates: []candidate{{Content: content{Role: "model", Parts: []part{{Text: text}}}}},
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "analyze this timesheet", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write(candidateBody("generated summary"))
	}))
	defer srv.Close()

	c, delays := newTestClient(testConfig(srv.URL))
	text, err := c.Generate(context.Background(), "analyze this timesheet")

	require.NoError(t, err)
	assert.Equal(t, "generated summary", text)
	assert.Empty(t, *delays)
}

func TestGeminiClient_Generate_RetriesServerErrorThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("overloaded"))
			return
		}
		w.Write(candidateBody("ok"))
	}))
	defer srv.Close()

	c, delays := newTestClient(testConfig(srv.URL))
	text, err := c.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, attempts)
	require.Len(t, *delays, 2)
	assert.Equal(t, 5*time.Second, (*delays)[0])
}

func TestGeminiClient_Generate_ClientErrorIsTerminal(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("model not found"))
	}))
	defer srv.Close()

	c, delays := newTestClient(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrAPIStatus)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *delays)
}

func TestGeminiClient_Generate_ExhaustsRetriesOnPersistentServerError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, delays := newTestClient(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 3, attempts)
	assert.Len(t, *delays, 2)
}

func TestGeminiClient_Generate_ExhaustsRetriesOnTimeout(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		time.Sleep(300 * time.Millisecond)
		w.Write(candidateBody("too late"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	c, delays := newTestClient(cfg)
	_, err := c.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 3, attempts)
	assert.Len(t, *delays, 2)
}

func TestGeminiClient_Generate_ConnectionFailureIsRetryable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening

	c, delays := newTestClient(cfg)
	_, err := c.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Len(t, *delays, 2)
}

func TestGeminiClient_Generate_UnsupportedSchemeIsTerminal(t *testing.T) {
	cfg := testConfig("ftp://example.invalid")

	c, delays := newTestClient(cfg)
	_, err := c.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "unsupported protocol scheme")
	assert.Empty(t, *delays)
}

func TestClassifyTransportError(t *testing.T) {
	refused := &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}
	assert.ErrorIs(t, classifyTransportError(refused), ErrUnavailable)

	noHost := &url.Error{Op: "Post", URL: "http://x", Err: &net.DNSError{Err: "no such host", Name: "x"}}
	assert.ErrorIs(t, classifyTransportError(noHost), ErrUnavailable)

	scheme := &url.Error{Op: "Post", URL: "ftp://x", Err: errors.New(`unsupported protocol scheme "ftp"`)}
	classified := classifyTransportError(scheme)
	assert.NotErrorIs(t, classified, ErrUnavailable)
	assert.NotErrorIs(t, classified, ErrTimeout)

	redirects := &url.Error{Op: "Get", URL: "http://x", Err: errors.New("stopped after 10 redirects")}
	assert.False(t, retryable(classifyTransportError(redirects)))
}

func TestGeminiClient_Generate_MissingCandidateIsTerminal(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c, delays := newTestClient(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *delays)
}

func TestGeminiClient_Generate_UndecodableBodyIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c, delays := newTestClient(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Empty(t, *delays)
}

func TestGeminiClient_ObserverRecordsAttempts(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(candidateBody("ok"))
	}))
	defer srv.Close()

	var captured CallEvent
	c := NewGeminiClient(testConfig(srv.URL), &captureObserver{fn: func(e CallEvent) { captured = e }}).(*geminiClient)
	c.sleep = func(time.Duration) {}

	_, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	assert.True(t, captured.Success)
	assert.Equal(t, 2, captured.Attempts)
	assert.Equal(t, "gemini-2.0-flash", captured.Model)
}

// The legacy dashboard contract detected failure by sniffing for "error" or
// "fail" in the returned text. FailureMessage must keep satisfying it.
func TestFailureMessage_KeepsSubstringContract(t *testing.T) {
	errs := []error{
		ErrRetryExhausted,
		ErrInvalidResponse,
		ErrAPIStatus,
		ErrTimeout,
		ErrUnavailable,
	}
	for _, e := range errs {
		msg := strings.ToLower(FailureMessage(e))
		sniffed := strings.Contains(msg, "error") || strings.Contains(msg, "fail")
		assert.True(t, sniffed, "message %q must contain an error indicator", msg)
	}
	assert.Empty(t, FailureMessage(nil))
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) OnCallComplete(e CallEvent) { o.fn(e) }
