package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTransport       = errors.New("search transport failed")
	ErrProvider        = errors.New("search provider returned an error")
	ErrMalformedResult = errors.New("malformed search result")
	ErrInvalidResponse = errors.New("invalid search response")

	ErrUnauthorized   = errors.New("invalid API key")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrInvalidRequest = errors.New("invalid request parameters")
)

// Searcher - то, что вызывает retrieval pipeline
type Searcher interface {
	Search(ctx context.Context, params SearchParameters, apiKey string) ([]SearchResult, error)
}

// SearchParameters - входные параметры одного поиска.
// Count == 0 значит "не передавать max_results".
type SearchParameters struct {
	Query      string
	Count      int
	FilterList []string
}

// SearchResult - нормализованный результат.
// Snippet == nil если провайдер не прислал content.
type SearchResult struct {
	Link    string
	Title   string
	Snippet *string
}

// TransportError - сетевая ошибка (DNS, connect, timeout)
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// ProviderError - провайдер ответил не 2xx
type ProviderError struct {
	StatusCode int
	Body       []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%v: status %d", ErrProvider, e.StatusCode)
}

func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrProvider:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimit:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// MalformedResultError - в raw результате нет обязательного url
type MalformedResultError struct {
	Index int
	Field string
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("%v: result %d has no %s", ErrMalformedResult, e.Index, e.Field)
}

func (e *MalformedResultError) Unwrap() error {
	return ErrMalformedResult
}
