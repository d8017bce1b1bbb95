package network

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/GriffinCanCode/pnetwork/internal/jsonx"
)

// WireRequest is a transport-ready request produced by Build.
type WireRequest struct {
	Method Method
	URL    *url.URL
	Header http.Header
	// Body is nil when nothing is sent.
	Body []byte
}

// Build turns ep into a wire request against env. It fails with
// ErrInvalidURL when env cannot resolve a URL for ep.
//
// Default headers are applied before endpoint headers, so the endpoint wins
// for the same key. MultipartPost always sets its own Content-Type. Only POST
// requests carry a body.
func Build(env *Environment, ep Endpoint) (*WireRequest, error) {
	u, err := env.URL(ep)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Cause: err}
	}

	req := &WireRequest{
		Method: ep.method,
		URL:    u,
		Header: make(http.Header),
	}

	for key, value := range env.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	for key, value := range ep.headers {
		req.Header.Set(key, value)
	}

	if mp, ok := ep.postType.(MultipartPost); ok {
		req.Header.Set("Content-Type", "multipart/form-data; boundary="+mp.Boundary)
	}

	if ep.method == MethodPost {
		req.Body = encodeBody(ep)
	}

	return req, nil
}

func encodeBody(ep Endpoint) []byte {
	switch pt := ep.postType.(type) {
	case JSONPost:
		return encodeJSON(ep.params)
	case MultipartPost:
		return pt.Body
	default:
		return encodeString(ep.params)
	}
}

// encodeString joins params as key=value pairs in key order. Values are sent
// as-is, without percent-encoding.
func encodeString(params map[string]string) []byte {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	if len(keys) == 0 {
		return []byte{}
	}

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	return []byte(strings.Join(pairs, "&"))
}

// encodeJSON returns nil for empty params.
func encodeJSON(params map[string]string) []byte {
	if len(params) == 0 {
		return nil
	}
	data, err := jsonx.MarshalIndent(params)
	if err != nil {
		return nil
	}
	return data
}
