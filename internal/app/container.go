package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/api"
	"github.com/navinbhat12/api-about-nothing/internal/config"
	"github.com/navinbhat12/api-about-nothing/internal/constants"
	"github.com/navinbhat12/api-about-nothing/internal/domain"
	"github.com/navinbhat12/api-about-nothing/internal/metrics"
	"github.com/navinbhat12/api-about-nothing/internal/service/cache"
)

// Container bundles assembled services for constructing the HTTP server.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Dataset *domain.Dataset

	handler http.Handler
	closers []func()
}

// NewServer returns an http.Server serving the assembled router.
func (c *Container) NewServer() (*http.Server, error) {
	if c == nil || c.handler == nil {
		return nil, fmt.Errorf("router not initialized")
	}
	return &http.Server{
		Addr:              c.Config.Server.Addr(),
		Handler:           c.handler,
		ReadHeaderTimeout: constants.ServerConfig.ReadHeaderTimeout,
		ReadTimeout:       constants.ServerConfig.ReadTimeout,
		WriteTimeout:      constants.ServerConfig.WriteTimeout,
		IdleTimeout:       constants.ServerConfig.IdleTimeout,
	}, nil
}

// Close releases optional infrastructure in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build loads the dataset snapshot and wires the router. The optional Redis
// response cache degrades to disabled when it cannot connect.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	dataset, err := domain.LoadDataset(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	source := cfg.Data.Dir
	if source == "" {
		source = "embedded"
	}
	logger.Info("Dataset loaded",
		zap.String("source", source),
		zap.Int("characters", len(dataset.Characters)),
		zap.Int("episodes", len(dataset.Episodes)),
		zap.Int("quotes", len(dataset.Quotes)),
	)
	metrics.SetDatasetSize(len(dataset.Characters), len(dataset.Episodes), len(dataset.Quotes))

	container := &Container{
		Config:  cfg,
		Logger:  logger,
		Dataset: dataset,
	}

	routerCfg := api.RouterConfig{
		ForceHTTPS:         cfg.Server.Production(),
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableMetrics:      cfg.Metrics.Enabled,
		CacheTTL:           cfg.Cache.TTL,
	}

	if cfg.Redis.Enabled {
		cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Response cache disabled", zap.Error(err))
		} else {
			routerCfg.Cache = cacheSvc
			container.closers = append(container.closers, func() {
				_ = cacheSvc.Close()
			})
		}
	}

	handler := api.NewHandler(dataset, routerCfg.ForceHTTPS, logger)
	container.handler = api.NewRouter(handler, routerCfg, logger)

	return container, nil
}
