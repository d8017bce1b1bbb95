package network

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Status is the status-bearing part of a transport response.
type Status struct {
	Code   int
	Header http.Header
}

// Outcome is what a Transport reports for one request. Status is nil when no
// response was received. Body is nil when the response had no body.
type Outcome struct {
	Status *Status
	Body   []byte
	Err    error
}

// Transport sends a built request. RoundTrip is called once per request on a
// goroutine owned by the Client and may block.
type Transport interface {
	RoundTrip(req *WireRequest) Outcome
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(req *WireRequest) Outcome

func (f TransportFunc) RoundTrip(req *WireRequest) Outcome {
	return f(req)
}

// TransportOptions configures the default transport.
type TransportOptions struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// UserAgent is sent unless a request sets its own.
	UserAgent string
	// RateLimit is requests per second. Zero or less is unlimited.
	RateLimit float64
}

// RestyTransport is the default Transport, built on resty over a pooled
// HTTP transport. It never retries.
type RestyTransport struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Mu      sync.RWMutex
}

// NewRestyTransport creates a RestyTransport.
func NewRestyTransport(opts TransportOptions) *RestyTransport {
	pooled := retryablehttp.NewClient()
	pooled.RetryMax = 0
	pooled.Logger = nil

	restyClient := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetTransport(pooled.HTTPClient.Transport)
	if opts.UserAgent != "" {
		restyClient.SetHeader("User-Agent", opts.UserAgent)
	}

	t := &RestyTransport{Resty: restyClient}
	t.SetRateLimit(opts.RateLimit)
	return t
}

// SetRateLimit configures rate limiting (requests per second).
func (t *RestyTransport) SetRateLimit(rps float64) {
	t.Mu.Lock()
	defer t.Mu.Unlock()
	if rps <= 0 {
		t.Limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		t.Limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
	}
}

// SetTimeout configures the request timeout.
func (t *RestyTransport) SetTimeout(d time.Duration) {
	t.Mu.Lock()
	defer t.Mu.Unlock()
	t.Resty.SetTimeout(d)
}

// RoundTrip sends req and reports the outcome. A transport error that
// happens after the status line was read keeps the status.
func (t *RestyTransport) RoundTrip(req *WireRequest) Outcome {
	t.Mu.RLock()
	limiter := t.Limiter
	r := t.Resty.R()
	t.Mu.RUnlock()

	if err := limiter.Wait(context.Background()); err != nil {
		return Outcome{Err: fmt.Errorf("rate limit error: %w", err)}
	}

	r.SetHeaderMultiValues(req.Header)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(string(req.Method), req.URL.String())

	out := Outcome{Err: err}
	if resp != nil && resp.RawResponse != nil {
		out.Status = &Status{Code: resp.StatusCode(), Header: resp.Header()}
		out.Body = resp.Body()
		if out.Body == nil && err == nil {
			out.Body = []byte{}
		}
	}
	return out
}
