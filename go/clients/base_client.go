package clients

import (
	"net/http"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
)

// BaseClient is an HTTP client that honours response Cache-Control, so
// repeated reads inside a response's max-age never leave the process.
type BaseClient struct {
	baseURL string
	client  *http.Client
	headers http.Header
}

func NewBaseClient(baseURL string) *BaseClient {
	c := &BaseClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: make(http.Header),
	}

	cache := httpcache.NewMemoryCacheTransport()
	cache.Transport = &headerTransport{headers: c.headers, next: http.DefaultTransport}
	c.client = &http.Client{
		Transport: cache,
		Timeout:   30 * time.Second,
	}
	return c
}

// SetHeader adds a header to every request. Call it before the first request.
func (c *BaseClient) SetHeader(key, value string) {
	c.headers.Set(key, value)
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

func (c *BaseClient) HTTPClient() *http.Client {
	return c.client
}

type headerTransport struct {
	headers http.Header
	next    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.next.RoundTrip(req)
	}
	// clone so the caller's request is left untouched
	req = req.Clone(req.Context())
	for key, values := range t.headers {
		req.Header[key] = values
	}
	return t.next.RoundTrip(req)
}
