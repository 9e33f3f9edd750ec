package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "math/rand"
  "net"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/yungbote/coherence-backend/internal/logger"
)

// ModelTier selects which Anthropic model handles a call. Fast covers the
// cheap structured calls (gate phrasing, domain and loop extraction); deep
// covers guidance, extraction and embodiment.
type ModelTier string

const (
  TierFast ModelTier = "fast"
  TierDeep ModelTier = "deep"
)

type AIClient interface {
  Complete(ctx context.Context, tier ModelTier, system string, user string, maxTokens int) (string, error)
}

type anthropicClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  fastModel  string
  deepModel  string
  httpClient *http.Client

  maxRetries int
}

func NewAIClient(log *logger.Logger) (AIClient, error) {
  apiKey := os.Getenv("ANTHROPIC_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing ANTHROPIC_API_KEY")
  }

  baseURL := os.Getenv("ANTHROPIC_BASE_URL")
  if baseURL == "" {
    baseURL = "https://api.anthropic.com"
  }

  fastModel := os.Getenv("ANTHROPIC_FAST_MODEL")
  if fastModel == "" {
    fastModel = "claude-3-5-haiku-latest"
  }

  deepModel := os.Getenv("ANTHROPIC_DEEP_MODEL")
  if deepModel == "" {
    deepModel = "claude-sonnet-4-5"
  }

  timeoutSec := 60
  if v := os.Getenv("ANTHROPIC_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  maxRetries := 4
  if v := os.Getenv("ANTHROPIC_MAX_RETRIES"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
      maxRetries = parsed
    }
  }

  return &anthropicClient{
    log:        log.With("service", "AIClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    fastModel:  fastModel,
    deepModel:  deepModel,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    maxRetries: maxRetries,
  }, nil
}

type anthropicHTTPError struct {
  StatusCode int
  Body       string
}

func (e *anthropicHTTPError) Error() string {
  return fmt.Sprintf("anthropic http %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(code int) bool {
  if code == 408 || code == 429 {
    return true
  }
  if code >= 500 && code <= 599 {
    return true
  }
  return false
}

func isRetryableErr(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
    // caller cancellation is checked in the call loop before retrying
    return true
  }
  var netErr net.Error
  if errors.As(err, &netErr) {
    if netErr.Timeout() || netErr.Temporary() {
      return true
    }
  }
  var httpErr *anthropicHTTPError
  if errors.As(err, &httpErr) {
    return isRetryableHTTP(httpErr.StatusCode)
  }
  return false
}

func jitterSleep(base time.Duration) time.Duration {
  // +/- 20%
  if base <= 0 {
    return 0
  }
  j := 0.2
  delta := base.Seconds() * j
  low := base.Seconds() - delta
  high := base.Seconds() + delta
  if low < 0 {
    low = 0
  }
  v := low + rand.Float64()*(high-low)
  return time.Duration(v * float64(time.Second))
}

type anthropicMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type anthropicRequest struct {
  Model     string             `json:"model"`
  MaxTokens int                `json:"max_tokens"`
  System    string             `json:"system,omitempty"`
  Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
  Content []struct {
    Type string `json:"type"`
    Text string `json:"text"`
  } `json:"content"`
  StopReason string `json:"stop_reason"`
}

func (c *anthropicClient) doOnce(ctx context.Context, body any) (*http.Response, []byte, error) {
  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return nil, nil, err
  }

  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", &buf)
  if err != nil {
    return nil, nil, err
  }
  req.Header.Set("x-api-key", c.apiKey)
  req.Header.Set("anthropic-version", "2023-06-01")
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return nil, nil, err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return resp, nil, readErr
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return resp, raw, &anthropicHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  return resp, raw, nil
}

func (c *anthropicClient) do(ctx context.Context, body any, out any) error {
  // exponential backoff: 1s, 2s, 4s, 8s (cap ~10s)
  backoff := 1 * time.Second

  for attempt := 0; attempt <= c.maxRetries; attempt++ {
    if ctx.Err() != nil {
      return ctx.Err()
    }

    resp, raw, err := c.doOnce(ctx, body)
    if err == nil {
      if out == nil {
        return nil
      }
      if uErr := json.Unmarshal(raw, out); uErr != nil {
        return fmt.Errorf("anthropic decode error: %w; raw=%s", uErr, string(raw))
      }
      return nil
    }

    if !isRetryableErr(err) {
      return err
    }

    if attempt == c.maxRetries {
      return err
    }

    sleepFor := backoff
    if resp != nil {
      ra := strings.TrimSpace(resp.Header.Get("Retry-After"))
      if ra != "" {
        if secs, parseErr := strconv.Atoi(ra); parseErr == nil && secs > 0 {
          sleepFor = time.Duration(secs) * time.Second
        }
      }
    }

    if sleepFor > 10*time.Second {
      sleepFor = 10 * time.Second
    }
    sleepFor = jitterSleep(sleepFor)

    c.log.Warn("Anthropic request retrying",
      "attempt", attempt+1,
      "max_retries", c.maxRetries,
      "sleep", sleepFor.String(),
      "error", err.Error(),
    )

    time.Sleep(sleepFor)
    backoff *= 2
  }

  return fmt.Errorf("unreachable retry loop")
}

func (c *anthropicClient) modelFor(tier ModelTier) string {
  if tier == TierDeep {
    return c.deepModel
  }
  return c.fastModel
}

func (c *anthropicClient) Complete(ctx context.Context, tier ModelTier, system string, user string, maxTokens int) (string, error) {
  if maxTokens <= 0 {
    maxTokens = 1024
  }
  req := anthropicRequest{
    Model:     c.modelFor(tier),
    MaxTokens: maxTokens,
    System:    system,
    Messages: []anthropicMessage{
      {Role: "user", Content: user},
    },
  }
  var resp anthropicResponse
  if err := c.do(ctx, req, &resp); err != nil {
    return "", err
  }
  var sb strings.Builder
  for _, block := range resp.Content {
    if block.Type == "text" {
      sb.WriteString(block.Text)
    }
  }
  text := sb.String()
  if strings.TrimSpace(text) == "" {
    return "", fmt.Errorf("anthropic returned empty completion")
  }
  return text, nil
}

// StripCodeFences removes a wrapping markdown code fence so model output
// can be decoded as JSON.
func StripCodeFences(raw string) string {
  trimmed := strings.TrimSpace(raw)
  if !strings.HasPrefix(trimmed, "```") {
    return trimmed
  }
  trimmed = strings.TrimPrefix(trimmed, "```json")
  trimmed = strings.TrimPrefix(trimmed, "```")
  trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
  return strings.TrimSpace(trimmed)
}

// DecodeModelJSON parses a model completion into out, tolerating code
// fences around the payload.
func DecodeModelJSON(raw string, out any) error {
  cleaned := StripCodeFences(raw)
  if err := json.Unmarshal([]byte(cleaned), out); err != nil {
    return fmt.Errorf("model json decode error: %w", err)
  }
  return nil
}
