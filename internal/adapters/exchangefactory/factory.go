package exchangefactory

import (
	"strings"
	"sync"

	"hermes/internal/adapters/config"
	"hermes/internal/adapters/exchanges"
	"hermes/internal/adapters/exchanges/delta"
	"hermes/internal/adapters/exchanges/retry"
	"hermes/internal/adapters/exchanges/transport"
	"hermes/pkg/errors"
)

// Factory builds and pools exchange adapters. Adapters are stateful (they own
// a market catalog and rate limiters), so one instance per exchange is shared
// by every caller.
type Factory struct {
	mu      sync.RWMutex
	cfg     *config.Config
	cache   transport.Cache
	clients map[string]exchanges.Exchange
}

// New creates a factory. The cache is optional; when present it backs the
// public catalog endpoints of every adapter the factory builds.
func New(cfg *config.Config, cache transport.Cache) *Factory {
	return &Factory{
		cfg:     cfg,
		cache:   cache,
		clients: make(map[string]exchanges.Exchange),
	}
}

// Create returns the shared adapter for the named exchange, building it on
// first use.
func (f *Factory) Create(name string) (exchanges.Exchange, error) {
	key := strings.ToLower(name)

	f.mu.RLock()
	if client, ok := f.clients[key]; ok {
		f.mu.RUnlock()
		return client, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if client, ok := f.clients[key]; ok {
		return client, nil
	}

	client, err := f.build(key)
	if err != nil {
		return nil, err
	}
	f.clients[key] = client
	return client, nil
}

func (f *Factory) build(name string) (exchanges.Exchange, error) {
	switch name {
	case "delta":
		return delta.NewClient(delta.Config{
			APIKey:          f.cfg.Delta.APIKey,
			Secret:          f.cfg.Delta.Secret,
			Testnet:         f.cfg.Delta.Testnet,
			BaseURL:         f.cfg.Delta.BaseURL,
			Cache:           f.cache,
			CatalogCacheTTL: f.cfg.Transport.CatalogCacheTTL,
			Retry:           retryFromConfig(f.cfg.Transport),
		})
	default:
		return nil, errors.Wrapf(exchanges.ErrNotSupported, "unknown exchange %q", name)
	}
}

func retryFromConfig(cfg config.TransportConfig) *retry.Middleware {
	c := retry.DefaultConfig()
	if cfg.MaxRetries > 0 {
		c.MaxRetries = cfg.MaxRetries
	}
	return retry.New(c)
}
