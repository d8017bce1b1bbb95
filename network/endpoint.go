package network

import (
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
)

// Method is the HTTP method of an Endpoint.
type Method string

const (
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
)

// PostType selects how a POST body is encoded. It is one of StringPost,
// JSONPost or MultipartPost.
type PostType interface {
	postType()
}

// StringPost encodes params as key=value pairs joined with "&".
type StringPost struct{}

// JSONPost encodes params as a JSON object.
type JSONPost struct{}

// MultipartPost sends a pre-built multipart body. Boundary is used verbatim
// in the Content-Type header.
type MultipartPost struct {
	Body     []byte
	Boundary string
}

func (StringPost) postType()    {}
func (JSONPost) postType()      {}
func (MultipartPost) postType() {}

// Endpoint describes one HTTP call relative to an Environment. It is
// immutable: the constructor and accessors copy their maps.
type Endpoint struct {
	path     string
	method   Method
	headers  map[string]string
	params   map[string]string
	postType PostType
}

// NewEndpoint creates an Endpoint. A nil postType means StringPost.
func NewEndpoint(path string, method Method, headers, params map[string]string, postType PostType) Endpoint {
	if postType == nil {
		postType = StringPost{}
	}
	if mp, ok := postType.(MultipartPost); ok {
		mp.Body = append([]byte(nil), mp.Body...)
		postType = mp
	}
	return Endpoint{
		path:     path,
		method:   method,
		headers:  copyMap(headers),
		params:   copyMap(params),
		postType: postType,
	}
}

func (e Endpoint) Path() string               { return e.path }
func (e Endpoint) Method() Method             { return e.method }
func (e Endpoint) Headers() map[string]string { return copyMap(e.headers) }
func (e Endpoint) Params() map[string]string  { return copyMap(e.params) }
func (e Endpoint) PostType() PostType         { return e.postType }

var paramEncoder = schema.NewEncoder()

// ParamsFrom converts a struct into endpoint params using its `schema` tags.
// Multi-valued fields are joined with ",".
//
//	type search struct {
//		Query string `schema:"q"`
//		Page  int    `schema:"page,omitempty"`
//	}
func ParamsFrom(v any) (map[string]string, error) {
	values := url.Values{}
	if err := paramEncoder.Encode(v, values); err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = strings.Join(vals, ",")
		}
	}
	return params, nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	maps.Copy(out, m)
	return out
}
