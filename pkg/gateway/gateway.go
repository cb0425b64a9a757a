package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tso-redispatch/redispatch/pkg/log"
)

// Proxy is the pass-through gateway in front of the order service. It adds
// no routing rules of its own: every request is forwarded to the upstream
// with its raw path intact.
type Proxy struct {
	upstream *url.URL
	logger   zerolog.Logger
	http     *http.Server
}

// NewProxy creates a gateway proxying to the upstream base URL
func NewProxy(upstream string) (*Proxy, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url: %w", err)
	}

	return &Proxy{
		upstream: target,
		logger:   log.WithComponent("gateway"),
	}, nil
}

// Handler returns the reverse proxy handler
func (p *Proxy) Handler() http.Handler {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			// SetURL joins escaped paths, so pre-encoded order ids pass
			// through exactly once-encoded
			pr.SetURL(p.upstream)
		},
		// Unbuffered writes so stream events pass through live
		FlushInterval: -1,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.logger.Warn().Err(err).Str("path", r.URL.EscapedPath()).Msg("Upstream error")
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return proxy
}

// Start starts the gateway and blocks until it stops
func (p *Proxy) Start(addr string) error {
	p.http = &http.Server{
		Addr:        addr,
		Handler:     p.Handler(),
		ReadTimeout: 30 * time.Second,
		// No write timeout: proxied streams are long-lived
		IdleTimeout: 120 * time.Second,
	}

	p.logger.Info().Str("addr", addr).Str("upstream", p.upstream.String()).Msg("Gateway listening")
	if err := p.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("gateway server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the gateway
func (p *Proxy) Stop(ctx context.Context) error {
	if p.http == nil {
		return nil
	}
	return p.http.Shutdown(ctx)
}
