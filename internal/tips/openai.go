package tips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"calmcast/internal/config"
	"calmcast/internal/logger"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Client calls an OpenAI-compatible /completions endpoint. Large
// candidate counts are fanned out across capped per-call chunks;
// retries cover 429/5xx only and default to none.
type Client struct {
	BaseURL      string
	APIKey       string
	Model        string
	Timeout      time.Duration
	MaxRetries   int
	MaxPerCall   int
	ExtraHeaders map[string]string

	limiter *rate.Limiter
	httpc   *http.Client
	once    sync.Once
}

// NewClient builds the production generator from config.
func NewClient(cfg config.GeneratorConfig) *Client {
	c := &Client{
		BaseURL:      cfg.APIURL,
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		Timeout:      time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxRetries:   cfg.MaxRetries,
		MaxPerCall:   cfg.MaxPerCall,
		ExtraHeaders: cfg.Headers,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

func (c *Client) init() {
	c.once.Do(func() {
		if c.Timeout <= 0 {
			c.Timeout = 60 * time.Second
		}
		if c.MaxPerCall <= 0 {
			c.MaxPerCall = 10
		}
		if c.MaxRetries < 0 {
			c.MaxRetries = 0
		}
		c.httpc = &http.Client{Timeout: c.Timeout}
	})
}

// Generate requests opts.N candidate completions for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) ([]string, error) {
	c.init()
	n := opts.N
	if n <= 0 {
		n = 1
	}

	// Chunk sizes are fixed up front so fan-out stays deterministic.
	var chunks []int
	for remaining := n; remaining > 0; remaining -= c.MaxPerCall {
		size := remaining
		if size > c.MaxPerCall {
			size = c.MaxPerCall
		}
		chunks = append(chunks, size)
	}

	results := make([][]string, len(chunks))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for i, size := range chunks {
		i, size := i, size
		group.Go(func() error {
			texts, err := c.call(gctx, prompt, opts, size)
			if err != nil {
				return err
			}
			results[i] = texts
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	var out []string
	for _, texts := range results {
		out = append(out, texts...)
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, prompt string, opts Options, n int) ([]string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	url := completionsURL(c.BaseURL)
	body := map[string]any{
		"model":  c.Model,
		"prompt": prompt,
		"n":      n,
	}
	if opts.Temperature > 0 {
		body["temperature"] = opts.Temperature
	}
	if opts.TopP > 0 {
		body["top_p"] = opts.TopP
	}
	if opts.RepetitionPenalty > 0 {
		body["repetition_penalty"] = opts.RepetitionPenalty
	}
	if opts.MaxTokens > 0 {
		body["max_tokens"] = opts.MaxTokens
	}
	payload, _ := json.Marshal(body)
	logger.Debugf("generation request: POST %s model=%s n=%d auth=%s", url, c.Model, n, maskKey(c.APIKey))
	logger.LogGenRequest("openai", "tips", prompt, string(payload))

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.APIKey)
		}
		for k, v := range c.ExtraHeaders {
			req.Header.Set(k, v)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		if resp.StatusCode/100 == 2 {
			logger.LogGenResponse("openai", "tips", string(raw))
			texts := extractCompletions(raw)
			if len(texts) == 0 {
				return nil, fmt.Errorf("generation backend returned no completions")
			}
			return texts, nil
		}
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = resp.Status
		}
		lastErr = fmt.Errorf("generation backend status=%d: %s", resp.StatusCode, msg)
		if !retryableStatus(resp.StatusCode) || attempt == c.MaxRetries {
			break
		}
		wait := retryDelay(resp.Header.Get("Retry-After"), attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

// extractCompletions tolerates the common response shapes: OpenAI
// completions (choices[].text), chat completions
// (choices[].message.content) and TGI ([].generated_text).
func extractCompletions(raw []byte) []string {
	var out []string
	doc := gjson.ParseBytes(raw)
	if choices := doc.Get("choices"); choices.IsArray() {
		for _, choice := range choices.Array() {
			text := choice.Get("text").String()
			if text == "" {
				text = choice.Get("message.content").String()
			}
			if text != "" {
				out = append(out, text)
			}
		}
		return out
	}
	if doc.IsArray() {
		for _, item := range doc.Array() {
			if text := item.Get("generated_text").String(); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

func completionsURL(base string) string {
	url := strings.TrimRight(strings.TrimSpace(base), "/")
	if url == "" {
		url = "https://api.openai.com/v1"
	}
	if strings.HasSuffix(url, "/completions") {
		return url
	}
	return url + "/completions"
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func retryDelay(retryAfter string, attempt int) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	wait := 800 * time.Millisecond << attempt
	if wait > 8*time.Second {
		wait = 8 * time.Second
	}
	return wait
}

func maskKey(key string) string {
	if key == "" {
		return "-"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
