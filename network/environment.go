package network

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// URLResolver composes the full request URL for an endpoint.
type URLResolver func(baseURL string, ep Endpoint) (*url.URL, error)

// Environment supplies the base URL and default headers shared by every
// endpoint a Client calls. Default headers may be changed between requests
// from any goroutine; each build works on a snapshot.
type Environment struct {
	baseURL string

	mu       sync.RWMutex
	headers  map[string]string
	resolver URLResolver
}

// NewEnvironment creates an Environment. defaultHeaders is copied.
func NewEnvironment(baseURL string, defaultHeaders map[string]string) *Environment {
	return &Environment{
		baseURL:  baseURL,
		headers:  copyMap(defaultHeaders),
		resolver: JoinURL,
	}
}

// BaseURL returns the base URL.
func (e *Environment) BaseURL() string {
	return e.baseURL
}

// DefaultHeaders returns a copy of the default headers.
func (e *Environment) DefaultHeaders() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copyMap(e.headers)
}

// SetDefaultHeader adds or replaces a default header.
func (e *Environment) SetDefaultHeader(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.headers[key] = value
}

// RemoveDefaultHeader removes a default header.
func (e *Environment) RemoveDefaultHeader(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.headers, key)
}

// SetResolver replaces the URL composition used by URL. A nil resolver
// restores JoinURL.
func (e *Environment) SetResolver(resolver URLResolver) {
	if resolver == nil {
		resolver = JoinURL
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resolver = resolver
}

// URL returns the full request URL for ep.
func (e *Environment) URL(ep Endpoint) (*url.URL, error) {
	e.mu.RLock()
	resolver := e.resolver
	e.mu.RUnlock()
	return resolver(e.baseURL, ep)
}

// JoinURL returns baseURL + "/" + path. The result must parse as an absolute
// URL without spaces.
func JoinURL(baseURL string, ep Endpoint) (*url.URL, error) {
	raw := baseURL + "/" + ep.Path()
	if strings.ContainsRune(raw, ' ') {
		return nil, fmt.Errorf("url %q contains spaces", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("url %q is not absolute", raw)
	}
	return u, nil
}
