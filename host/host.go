package host

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/quill-ui/quill-host/engine"
)

// Host binds an engine to the embedding application. It holds no state of its
// own beyond configuration and is safe for concurrent use.
type Host struct {
	eng    engine.Engine
	client *http.Client
	log    *zap.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithHTTPClient sets the client used for font downloads and other outbound
// fetches. Defaults to http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(h *Host) {
		if c != nil {
			h.client = c
		}
	}
}

// WithLogger sets the host's logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// New creates a Host bound to eng. The Host does not own the engine; the
// caller closes it.
func New(eng engine.Engine, opts ...Option) *Host {
	h := &Host{
		eng:    eng,
		client: http.DefaultClient,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Engine returns the engine this host is bound to.
func (h *Host) Engine() engine.Engine {
	return h.eng
}
