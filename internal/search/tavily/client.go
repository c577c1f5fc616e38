package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/websearch/internal/search"
)

const (
	DefaultBaseURL = "https://api.tavily.com"
	DefaultTimeout = 30 * time.Second

	maxErrorBody  = 64 << 10
	maxLoggedBody = 512
)

// статусы для метрик
const (
	StatusOK              = "ok"
	StatusTransportError  = "transport_error"
	StatusProviderError   = "provider_error"
	StatusInvalidResponse = "invalid_response"
	StatusMalformedResult = "malformed_result"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Recorder получает наблюдения по каждому вызову Search.
type Recorder interface {
	RecordSearch(status string, duration time.Duration)
	RecordResults(returned, filtered int)
}

type nopRecorder struct{}

func (nopRecorder) RecordSearch(string, time.Duration) {
}

func (nopRecorder) RecordResults(int, int) {
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

type Client struct {
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
	recorder Recorder
}

var _ search.Searcher = (*Client)(nil)

func New(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tavilyRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Query        string         `json:"query"`
	Results      []tavilyResult `json:"results"`
	ResponseTime float64        `json:"response_time"`
}

// указатели, чтобы отличать отсутствующее поле от пустого
type tavilyResult struct {
	URL     *string `json:"url"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Search выполняет ровно один POST к /search. Ретраев нет: любая ошибка
// сразу возвращается вызывающему.
func (c *Client) Search(ctx context.Context, params search.SearchParameters, apiKey string) ([]search.SearchResult, error) {
	start := time.Now()

	results, status, err := c.search(ctx, params, apiKey)
	c.recorder.RecordSearch(status, time.Since(start))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("tavily search completed",
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return results, nil
}

func (c *Client) search(ctx context.Context, params search.SearchParameters, apiKey string) ([]search.SearchResult, string, error) {
	body, err := json.Marshal(tavilyRequest{
		Query:      params.Query,
		MaxResults: max(params.Count, 0),
	})
	if err != nil {
		return nil, StatusInvalidResponse, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, StatusTransportError, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	c.logger.Debug("tavily search",
		zap.Int("query_len", len(params.Query)),
		zap.Int("max_results", params.Count),
		zap.Int("allowed_domains", len(params.FilterList)),
	)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Debug("tavily request failed", zap.Error(err))
		return nil, StatusTransportError, &search.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("tavily returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(errBody, maxLoggedBody)),
		)
		return nil, StatusProviderError, &search.ProviderError{StatusCode: resp.StatusCode, Body: errBody}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, StatusTransportError, &search.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	var tavilyResp tavilyResponse
	if err := json.Unmarshal(respBody, &tavilyResp); err != nil {
		return nil, StatusInvalidResponse, fmt.Errorf("%w: %v", search.ErrInvalidResponse, err)
	}

	raw := tavilyResp.Results
	if len(params.FilterList) > 0 {
		raw = search.FilterByAllowedDomains(raw, params.FilterList, func(r tavilyResult) (string, bool) {
			if r.URL == nil {
				return "", false
			}
			return *r.URL, true
		})
	}

	results, err := toSearchResults(raw)
	if err != nil {
		return nil, StatusMalformedResult, err
	}

	c.recorder.RecordResults(len(results), len(tavilyResp.Results)-len(results))
	return results, StatusOK, nil
}

func toSearchResults(raw []tavilyResult) ([]search.SearchResult, error) {
	results := make([]search.SearchResult, len(raw))
	for i, r := range raw {
		if r.URL == nil {
			return nil, &search.MalformedResultError{Index: i, Field: "url"}
		}
		res := search.SearchResult{Link: *r.URL}
		if r.Title != nil {
			res.Title = *r.Title
		}
		if r.Content != nil {
			content := *r.Content
			res.Snippet = &content
		}
		results[i] = res
	}
	return results, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// IsRetryable подсказывает вызывающему, стоит ли повторить запрос самому.
// Сам клиент никогда не ретраит.
func IsRetryable(err error) bool {
	if errors.Is(err, search.ErrRateLimit) {
		return true
	}
	var pe *search.ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode >= http.StatusInternalServerError
	}
	return errors.Is(err, search.ErrTransport) && !errors.Is(err, context.Canceled)
}
