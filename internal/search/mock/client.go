package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/websearch/internal/search"
)

type Client struct {
	Results []search.SearchResult
	Error   error
	Delay   time.Duration

	CallCount  int
	LastParams search.SearchParameters
	LastAPIKey string
	AllParams  []search.SearchParameters

	mu sync.Mutex
}

var _ search.Searcher = (*Client)(nil)

func New() *Client {
	return &Client{}
}

func (c *Client) WithResults(results []search.SearchResult) *Client {
	c.Results = results
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Search(ctx context.Context, params search.SearchParameters, apiKey string) ([]search.SearchResult, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastParams = params
	c.LastAPIKey = apiKey
	c.AllParams = append(c.AllParams, params)
	delay := c.Delay
	err := c.Error
	results := c.Results
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &search.TransportError{Err: ctx.Err()}
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	// как и настоящий клиент: фильтр, потом копия
	results = search.FilterResults(results, params.FilterList)
	out := make([]search.SearchResult, len(results))
	copy(out, results)
	return out, nil
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastParams = search.SearchParameters{}
	c.LastAPIKey = ""
	c.AllParams = nil
}
