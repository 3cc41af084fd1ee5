package router

import (
	"log/slog"

	"github.com/vango-dev/navkit/pkg/location"
)

// Option configures a Router.
type Option func(*options)

type options struct {
	maxRedirects int
	logger       *slog.Logger
	observer     Observer
}

func defaultOptions() options {
	return options{
		maxRedirects: DefaultMaxRedirects,
		logger:       slog.Default().With("component", "router"),
	}
}

// WithLogger sets the structured logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "router")
	}
}

// WithObserver sets the observer notified after every resolution pass.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithMaxRedirects bounds redirect chains. Values below 1 keep the default.
func WithMaxRedirects(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRedirects = n
		}
	}
}

// Config is the construction-time router configuration.
type Config struct {
	// Routes is the route table, in match order.
	Routes []Route

	// Mode selects hash or history addressing. Default: ModeHistory.
	Mode Mode

	// Base is a path prefix stripped and prepended in history mode.
	// Ignored in hash mode.
	Base string

	// MaxRedirects bounds redirect chains. Default: DefaultMaxRedirects.
	MaxRedirects int
}

// NewFromConfig builds the table and the adapter for cfg.Mode over w and
// returns a router using them. Options are applied after cfg.
func NewFromConfig(cfg Config, w location.Window, opts ...Option) (*Router, error) {
	table, err := NewTable(cfg.Routes...)
	if err != nil {
		return nil, err
	}

	var adapter location.Adapter
	switch cfg.Mode {
	case ModeHash:
		adapter = location.NewFragment(w)
	case ModeHistory:
		adapter = location.NewHistory(w, cfg.Base)
	default:
		return nil, ErrInvalidMode
	}

	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithMaxRedirects(cfg.MaxRedirects))
	all = append(all, opts...)
	return New(table, adapter, all...), nil
}
