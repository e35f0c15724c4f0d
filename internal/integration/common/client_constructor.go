package common

import (
	"net/http"

	"github.com/dailysync/standup-backend/internal/config"
	pkgHTTP "github.com/dailysync/standup-backend/pkg/http"
	"go.uber.org/zap"
)

func baseOpts(cfg config.HTTPClientConfig) []pkgHTTP.HttpOpts {
	return []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
	}
}

// NewBaseClient builds a raw *http.Client with the shared outbound limits,
// for libraries that bring their own request encoding.
func NewBaseClient(cfg config.HTTPClientConfig, extra ...pkgHTTP.HttpOpts) *http.Client {
	return pkgHTTP.NewClient(append(baseOpts(cfg), extra...)...)
}

// NewBaseConnector builds a JSON connector with the shared outbound limits
// and request logging.
func NewBaseConnector(baseURL string, cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: baseURL,
	}

	opts := append(baseOpts(cfg), pkgHTTP.WithRequestLogging())

	return pkgHTTP.NewConnector(connCfg, opts...)
}
