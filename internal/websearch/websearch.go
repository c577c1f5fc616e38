package websearch

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kitbuilder587/websearch/internal/config"
	"github.com/kitbuilder587/websearch/internal/metrics"
	"github.com/kitbuilder587/websearch/internal/search"
	"github.com/kitbuilder587/websearch/internal/search/tavily"
)

// New собирает tavily клиент из конфига. Метрики регистрируются в reg
// (nil - DefaultRegisterer), поэтому вызывать один раз на процесс.
func New(cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) *tavily.Client {
	rec := metrics.New(reg, cfg.Metrics.Namespace)
	return tavily.New(cfg.TavilyConfig(), logger, tavily.WithRecorder(rec))
}

// Search вызывает s с параметрами по умолчанию и ключом из конфига
func Search(ctx context.Context, s search.Searcher, cfg *config.Config, query string) ([]search.SearchResult, error) {
	return s.Search(ctx, cfg.SearchParameters(query), cfg.Tavily.APIKey)
}
