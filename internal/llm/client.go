package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client provides access to a generative language model for text generation.
type Client interface {
	// Generate sends a prompt and returns the raw generated text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// geminiClient implements Client against the Gemini generateContent REST API.
type geminiClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
	sleep    func(time.Duration) // between retryable attempts; swapped in tests
}

// NewGeminiClient creates a Client that talks to the Gemini API.
func NewGeminiClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		sleep:    time.Sleep,
	}
}

// generateContentRequest is the JSON body sent to :generateContent.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateContentResponse is the subset of the response body we consume.
type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Generate posts the prompt and returns the generated text. Server errors
// (5xx), connection failures and per-attempt timeouts are retried up to
// cfg.MaxAttempts total attempts with a fixed delay between attempts; any
// other failure is terminal on first occurrence.
func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	body := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	attempts := c.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := time.Duration(c.cfg.RetryDelayMs) * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := c.doRequest(ctx, body)
		if err == nil {
			c.observe(start, attempt, true, "")
			return text, nil
		}
		lastErr = err

		if !retryable(err) {
			c.observe(start, attempt, false, errorCode(err))
			return "", err
		}

		// The caller gave up; don't sleep into a dead context.
		if ctx.Err() != nil {
			break
		}
		if attempt < attempts {
			c.sleep(delay)
		}
	}

	err := fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, attempts, lastErr)
	c.observe(start, attempts, false, errorCode(lastErr))
	return "", err
}

func (c *geminiClient) doRequest(ctx context.Context, body generateContentRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}

	if httpResp.StatusCode >= 500 {
		return "", &statusError{code: httpResp.StatusCode, body: truncate(respBody)}
	}
	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrAPIStatus, httpResp.StatusCode, truncate(respBody))
	}

	var resp generateContentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: decoding body: %v", ErrInvalidResponse, err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidate text in %s", ErrInvalidResponse, truncate(respBody))
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (c *geminiClient) observe(start time.Time, attempts int, success bool, code string) {
	c.observer.OnCallComplete(CallEvent{
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   success,
		ErrorCode: code,
	})
}

// classifyTransportError maps request errors onto the retry taxonomy:
// timeouts and connection failures are transient, everything else terminal.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	// http.Client wraps everything in *url.Error; only genuine connection
	// failures underneath it (dial refused, DNS, reset) are transient.
	// Malformed requests, unsupported schemes and the like stay terminal.
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func retryable(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		return true
	}
	var se *statusError
	return errors.As(err, &se) && se.retryable()
}

func errorCode(err error) string {
	var se *statusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrAPIStatus):
		return "API_STATUS"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.As(err, &se):
		return "SERVER_ERROR"
	default:
		return "UNKNOWN"
	}
}

func truncate(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
