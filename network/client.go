package network

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GriffinCanCode/pnetwork/internal/config"
	"github.com/GriffinCanCode/pnetwork/internal/logging"
	"github.com/GriffinCanCode/pnetwork/internal/monitoring"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultTimeout bounds each HTTP exchange of the transport New creates when
// none is given. Zero in TransportOptions disables the bound.
const DefaultTimeout = 30 * time.Second

// Client runs requests against one Environment.
type Client struct {
	env       *Environment
	transport Transport
	logger    *logging.Logger
	trace     *logging.Logger
	metrics   *monitoring.Metrics
}

// Option configures a Client.
type Option func(*options)

type options struct {
	transport  Transport
	logger     *zap.Logger
	debug      bool
	debugOut   io.Writer
	registerer prometheus.Registerer
}

// WithTransport replaces the default RestyTransport.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the logger used for request lifecycle messages.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDebug enables the request trace: path, headers, params and raw body of
// every request, written to stderr unless WithDebugOutput is set.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// WithDebugOutput redirects the request trace.
func WithDebugOutput(w io.Writer) Option {
	return func(o *options) { o.debugOut = w }
}

// WithMetrics registers request metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New creates a Client for env.
func New(env *Environment, opts ...Option) *Client {
	o := options{debugOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	if env == nil {
		env = NewEnvironment("", nil)
	}

	c := &Client{
		env:       env,
		transport: o.transport,
		logger:    logging.Nop(),
	}
	if c.transport == nil {
		c.transport = NewRestyTransport(TransportOptions{Timeout: DefaultTimeout})
	}
	if o.logger != nil {
		c.logger = &logging.Logger{Logger: o.logger}
	}
	if o.debug {
		trace, err := logging.NewTrace(o.debugOut, "debug")
		if err == nil {
			c.trace = trace
		}
	}
	if o.registerer != nil {
		c.metrics = monitoring.NewMetrics(o.registerer)
	}
	return c
}

// NewFromEnv creates a Client from PNETWORK_* environment variables. opts
// are applied after the configured ones.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newFromConfig(cfg, opts...)
}

// NewFromFile creates a Client from a YAML or TOML config file.
func NewFromFile(path string, opts ...Option) (*Client, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return newFromConfig(cfg, opts...)
}

func newFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	transport := NewRestyTransport(TransportOptions{
		Timeout:   cfg.Transport.Timeout.Duration(),
		UserAgent: cfg.Transport.UserAgent,
		RateLimit: cfg.Transport.RateLimitRPS,
	})

	base := []Option{
		WithTransport(transport),
		WithLogger(logger.Logger),
		WithDebug(cfg.Debug),
	}
	env := NewEnvironment(cfg.Environment.BaseURL, cfg.Environment.DefaultHeaders)
	return New(env, append(base, opts...)...), nil
}

// Environment returns the client's environment.
func (c *Client) Environment() *Environment {
	return c.env
}

// Stats holds running totals of completed requests.
type Stats struct {
	Requests      int64
	Errors        int64
	TotalDuration time.Duration
}

// Stats returns the totals recorded since the client was created. They are
// only kept when WithMetrics is set; otherwise Stats is zero.
func (c *Client) Stats() Stats {
	if c.metrics == nil {
		return Stats{}
	}
	snap := c.metrics.Snapshot()
	return Stats{
		Requests:      snap.TotalRequests,
		Errors:        snap.TotalErrors,
		TotalDuration: snap.TotalDuration,
	}
}

// Request sends ep and decodes the response body into T, or []T when the
// located payload is an array. completion is called exactly once.
func Request[T any](c *Client, ep Endpoint, completion func(Response[T])) {
	execute(c, ep, decodeModel, completion)
}

// RequestRaw sends ep without decoding the body. The response carries the
// status and Raw only.
func (c *Client) RequestRaw(ep Endpoint, completion func(Response[NoDecode])) {
	execute(c, ep, decodeNone, completion)
}

// Fetch is Request that blocks until the response is available.
func Fetch[T any](c *Client, ep Endpoint) Response[T] {
	done := make(chan Response[T], 1)
	Request(c, ep, func(resp Response[T]) {
		done <- resp
	})
	return <-done
}

func execute[T any](c *Client, ep Endpoint, mode decodeMode, completion func(Response[T])) {
	id := uuid.NewString()
	c.traceRequest(id, ep)

	req, err := Build(c.env, ep)
	if err != nil {
		resp := Response[T]{Error: err}
		c.finish(id, ep, resp.StatusCode, resp.Error, resp.Raw, 0, -1)
		completion(resp)
		return
	}

	go func() {
		start := time.Now()
		out := c.transport.RoundTrip(req)

		resp := classify[T](out)
		if resp.Error == nil {
			decode(&resp, out.Body, mode)
		}

		size := -1
		if out.Status != nil && out.Body != nil {
			size = len(out.Body)
		}
		c.finish(id, ep, resp.StatusCode, resp.Error, resp.Raw, time.Since(start), size)
		completion(resp)
	}()
}

func (c *Client) traceRequest(id string, ep Endpoint) {
	if c.trace == nil {
		return
	}
	c.trace.Debug("Request",
		zap.String("request_id", id),
		zap.String("method", string(ep.Method())),
		zap.String("path", ep.Path()),
		zap.Any("headers", ep.Headers()),
		zap.Any("params", ep.Params()),
	)
}

func (c *Client) finish(id string, ep Endpoint, status int, err error, raw string, elapsed time.Duration, size int) {
	outcome := outcomeLabel(err)

	if c.trace != nil {
		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("path", ep.Path()),
			zap.Int("status", status),
			zap.String("outcome", outcome),
		}
		c.trace.Debug("Response", fields...)
		if raw != "" {
			c.trace.Debug("Response body\n" + raw)
		}
	}

	c.logger.Debug("request completed",
		zap.String("request_id", id),
		zap.String("method", string(ep.Method())),
		zap.String("path", ep.Path()),
		zap.Int("status", status),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed),
		zap.Error(err),
	)

	if c.metrics != nil {
		c.metrics.RecordRequest(string(ep.Method()), outcome, elapsed, size)
	}
}
