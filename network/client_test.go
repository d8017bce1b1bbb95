package network

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestDecodesResponse(t *testing.T) {
	transport := &fakeTransport{outcome: okOutcome(`{"id":7,"name":"ana"}`)}
	client := New(testEnvironment(), WithTransport(transport))

	done := make(chan Response[user], 1)
	Request(client, NewEndpoint("users/7", MethodGet, nil, nil, nil), func(resp Response[user]) {
		done <- resp
	})
	resp := await(t, done)

	require.NoError(t, resp.Error)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, &user{ID: 7, Name: "ana"}, resp.Object)
	assert.Equal(t, int32(1), transport.calls.Load())

	sent := transport.last.Load()
	require.NotNil(t, sent)
	assert.Equal(t, "https://api.example.com/v1/users/7", sent.URL.String())
	assert.Equal(t, "application/json", sent.Header.Get("Accept"))
}

func TestRequestPointerModel(t *testing.T) {
	transport := &fakeTransport{outcome: okOutcome(`{"data":{"items":[{"id":3}]}}`)}
	client := New(testEnvironment(), WithTransport(transport))

	done := make(chan Response[*item], 1)
	Request(client, NewEndpoint("items", MethodGet, nil, nil, nil), func(resp Response[*item]) {
		done <- resp
	})
	resp := await(t, done)

	require.NoError(t, resp.Error)
	require.Len(t, resp.List, 1)
	assert.Equal(t, 3, resp.List[0].ID)
}

func TestRequestCompletesExactlyOnce(t *testing.T) {
	outcomes := map[string]Outcome{
		"success":       okOutcome(`{"id":1}`),
		"no response":   {Err: errors.New("refused")},
		"service error": {Status: &Status{Code: 200}, Err: errors.New("reset")},
		"no content":    {Status: &Status{Code: 204}},
		"parse failure": okOutcome(`{`),
	}

	for name, outcome := range outcomes {
		t.Run(name, func(t *testing.T) {
			transport := &fakeTransport{outcome: outcome}
			client := New(testEnvironment(), WithTransport(transport))

			var calls atomic.Int32
			done := make(chan Response[user], 2)
			Request(client, NewEndpoint("users", MethodGet, nil, nil, nil), func(resp Response[user]) {
				calls.Add(1)
				done <- resp
			})
			resp := await(t, done)

			assert.Equal(t, int32(1), calls.Load())
			assert.Equal(t, int32(1), transport.calls.Load())
			if resp.Error != nil {
				assert.Nil(t, resp.Object)
				assert.Nil(t, resp.List)
			}
		})
	}
}

func TestRequestInvalidURL(t *testing.T) {
	transport := &fakeTransport{outcome: okOutcome(`{}`)}
	client := New(NewEnvironment("", nil), WithTransport(transport))

	var got Response[user]
	called := false
	Request(client, NewEndpoint("users", MethodGet, nil, nil, nil), func(resp Response[user]) {
		called = true
		got = resp
	})

	// A build failure completes before Request returns.
	require.True(t, called)
	assert.True(t, errors.Is(got.Error, ErrInvalidURL))
	assert.Equal(t, 0, got.StatusCode)
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestRequestTransportOutcomes(t *testing.T) {
	t.Run("transport error with status", func(t *testing.T) {
		client := New(testEnvironment(), WithTransport(&fakeTransport{outcome: Outcome{
			Status: &Status{Code: http.StatusGatewayTimeout},
			Body:   []byte(`{"id":1}`),
			Err:    errors.New("timeout"),
		}}))

		resp := Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))

		assert.Equal(t, ServiceError("timeout"), resp.Error)
		assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
		assert.Nil(t, resp.Object)
		assert.Empty(t, resp.Raw)
	})

	t.Run("no content", func(t *testing.T) {
		client := New(testEnvironment(), WithTransport(&fakeTransport{outcome: Outcome{
			Status: &Status{Code: http.StatusOK},
		}}))

		resp := Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))

		assert.Equal(t, ErrNoContent, resp.Error)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("error status still decodes", func(t *testing.T) {
		client := New(testEnvironment(), WithTransport(&fakeTransport{outcome: Outcome{
			Status: &Status{Code: http.StatusNotFound},
			Body:   []byte(`{"id":0,"name":"missing"}`),
		}}))

		resp := Fetch[user](client, NewEndpoint("users/9", MethodGet, nil, nil, nil))

		require.NoError(t, resp.Error)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "missing", resp.Object.Name)
	})
}

func TestRequestRaw(t *testing.T) {
	client := New(testEnvironment(), WithTransport(&fakeTransport{outcome: okOutcome(`{"anything":[1,2,3]}`)}))

	done := make(chan Response[NoDecode], 1)
	client.RequestRaw(NewEndpoint("events", MethodPost, nil, nil, JSONPost{}), func(resp Response[NoDecode]) {
		done <- resp
	})
	resp := await(t, done)

	require.NoError(t, resp.Error)
	assert.Nil(t, resp.Object)
	assert.Nil(t, resp.List)
	assert.JSONEq(t, `{"anything":[1,2,3]}`, resp.Raw)
}

func TestConcurrentRequests(t *testing.T) {
	transport := TransportFunc(func(req *WireRequest) Outcome {
		return okOutcome(`{"id":1,"name":"` + req.URL.Path + `"}`)
	})
	client := New(testEnvironment(), WithTransport(transport))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		path := "users/" + string(rune('a'+i))
		go func() {
			defer wg.Done()
			resp := Fetch[user](client, NewEndpoint(path, MethodGet, nil, nil, nil))
			assert.NoError(t, resp.Error)
			assert.Equal(t, "/v1/"+path, resp.Object.Name)
		}()
	}
	wg.Wait()
}

func TestDebugTrace(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		var buf bytes.Buffer
		client := New(testEnvironment(),
			WithTransport(&fakeTransport{outcome: okOutcome(`{"id":1}`)}),
			WithDebug(true),
			WithDebugOutput(&buf),
		)

		ep := NewEndpoint("users", MethodPost, map[string]string{"X-Trace": "on"}, map[string]string{"q": "go"}, JSONPost{})
		resp := Fetch[user](client, ep)
		require.NoError(t, resp.Error)

		out := buf.String()
		assert.Contains(t, out, "users")
		assert.Contains(t, out, "X-Trace")
		assert.Contains(t, out, `"q"`)
		assert.Contains(t, out, `"id": 1`)
		assert.Contains(t, out, "request_id")
	})

	t.Run("disabled", func(t *testing.T) {
		var buf bytes.Buffer
		client := New(testEnvironment(),
			WithTransport(&fakeTransport{outcome: okOutcome(`{"id":1}`)}),
			WithDebugOutput(&buf),
		)

		resp := Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))
		require.NoError(t, resp.Error)
		assert.Empty(t, buf.String())
	})

	t.Run("does not change results", func(t *testing.T) {
		transport := &fakeTransport{outcome: okOutcome(`{"id":1,"name":"ana"}`)}
		plain := Fetch[user](New(testEnvironment(), WithTransport(transport)), NewEndpoint("users", MethodGet, nil, nil, nil))
		traced := Fetch[user](New(testEnvironment(), WithTransport(transport), WithDebug(true), WithDebugOutput(&bytes.Buffer{})),
			NewEndpoint("users", MethodGet, nil, nil, nil))

		assert.Equal(t, plain, traced)
	})
}

func TestLoggerReceivesCompletion(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	client := New(testEnvironment(),
		WithTransport(&fakeTransport{outcome: okOutcome(`{`)}),
		WithLogger(zap.New(core)),
	)

	resp := Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))
	require.Error(t, resp.Error)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "json-parsing-failure", entries[0].ContextMap()["outcome"])
	assert.Equal(t, "users", entries[0].ContextMap()["path"])
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	transport := &fakeTransport{outcome: okOutcome(`{"id":1}`)}
	client := New(testEnvironment(), WithTransport(transport), WithMetrics(reg))

	Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))
	Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(client.metrics.RequestsTotal.WithLabelValues("GET", "ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(client.metrics.ResponseSize))
	stats := client.Stats()
	assert.Equal(t, int64(2), stats.Requests)
	assert.Zero(t, stats.Errors)
	assert.Positive(t, stats.TotalDuration)

	broken := New(NewEnvironment("", nil), WithTransport(transport), WithMetrics(prometheus.NewRegistry()))
	Request(broken, NewEndpoint("users", MethodDelete, nil, nil, nil), func(Response[user]) {})

	assert.Equal(t, 1.0, testutil.ToFloat64(broken.metrics.RequestsTotal.WithLabelValues("DELETE", "invalid-url")))
	assert.Equal(t, 0, testutil.CollectAndCount(broken.metrics.ResponseSize))
	assert.Equal(t, Stats{Requests: 1, Errors: 1}, broken.Stats())
}

func TestStatsWithoutMetrics(t *testing.T) {
	transport := &fakeTransport{outcome: okOutcome(`{"id":1}`)}
	client := New(testEnvironment(), WithTransport(transport))

	Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))
	assert.Equal(t, Stats{}, client.Stats())
}

func TestDefaultTransportTimeout(t *testing.T) {
	client := New(testEnvironment())

	transport, ok := client.transport.(*RestyTransport)
	require.True(t, ok)
	assert.Equal(t, DefaultTimeout, transport.Resty.GetClient().Timeout)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment:
  base_url: https://api.example.com/v2
  default_headers:
    X-App: demo
transport:
  user_agent: tests/1.0
`), 0o644))

	transport := &fakeTransport{outcome: okOutcome(`{"id":1}`)}
	client, err := NewFromFile(path, WithTransport(transport))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v2", client.Environment().BaseURL())
	assert.Equal(t, "demo", client.Environment().DefaultHeaders()["X-App"])

	resp := Fetch[user](client, NewEndpoint("users", MethodGet, nil, nil, nil))
	require.NoError(t, resp.Error)
	assert.Equal(t, "https://api.example.com/v2/users", transport.last.Load().URL.String())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("PNETWORK_BASE_URL", "https://env.example.com")
	t.Setenv("PNETWORK_DEFAULT_HEADERS", "Accept:application/json")

	client, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", client.Environment().BaseURL())
	assert.Equal(t, "application/json", client.Environment().DefaultHeaders()["Accept"])
	assert.IsType(t, &RestyTransport{}, client.transport)

	t.Setenv("PNETWORK_LOG_LEVEL", "loud")
	_, err = NewFromEnv()
	assert.Error(t, err)
}
