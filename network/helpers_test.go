package network

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// item is wrapped as {"data": {"items": [...]}}.
type item struct {
	ID int `json:"id"`
}

func (item) MapJSON() []string { return []string{"data", "items"} }

// profile declares its keys on the pointer receiver.
type profile struct {
	Email string `json:"email"`
}

func (*profile) MapJSON() []string { return []string{"data", "profile"} }

// label points at a scalar.
type label string

func (label) MapJSON() []string { return []string{"data"} }

// fakeTransport records calls and answers with a fixed outcome.
type fakeTransport struct {
	outcome Outcome
	calls   atomic.Int32
	last    atomic.Pointer[WireRequest]
}

func (f *fakeTransport) RoundTrip(req *WireRequest) Outcome {
	f.calls.Add(1)
	f.last.Store(req)
	return f.outcome
}

func okOutcome(body string) Outcome {
	return Outcome{
		Status: &Status{Code: http.StatusOK, Header: http.Header{}},
		Body:   []byte(body),
	}
}

// await waits for a completion delivered on another goroutine.
func await[T any](t *testing.T, ch <-chan Response[T]) Response[T] {
	t.Helper()
	select {
	case resp := <-ch:
		return resp
	case <-time.After(5 * time.Second):
		require.FailNow(t, "completion was not called")
		return Response[T]{}
	}
}

func testEnvironment() *Environment {
	return NewEnvironment("https://api.example.com/v1", map[string]string{
		"Accept": "application/json",
	})
}
