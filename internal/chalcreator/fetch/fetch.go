// Package fetch downloads the solution template served at a fixed URL.
package fetch

import (
	"context"
	"crypto/tls"
	"io"
	"time"

	"github.com/imroc/req/v3"

	"github.com/canopus/chalcreator/internal/chalcreator/errors"
	"github.com/canopus/chalcreator/internal/log"
)

// DefaultTemplateURL serves the pwntools solution template
const DefaultTemplateURL = "https://gist.githubusercontent.com/the-rectifier/9af60d9d85e2600708e582505060258b/raw/8faedc9c67728afa853386aa41a7df873863e0b7/solution.py"

// DefaultTimeout bounds a whole template download
const DefaultTimeout = 30 * time.Second

// Fetcher retrieves a remote document.
//
// Fetch returns the response body once a success status was received; the
// caller must close it. Any failure is a *errors.FetchError.
type Fetcher interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	URL() string
}

// HTTPFetcher performs a single GET with no retries
type HTTPFetcher struct {
	url    string
	client *req.Client
}

// NewHTTPFetcher creates a fetcher for url. An empty url selects DefaultTemplateURL.
func NewHTTPFetcher(url string) *HTTPFetcher {
	if url == "" {
		url = DefaultTemplateURL
	}
	return &HTTPFetcher{url: url, client: newClient()}
}

func newClient() *req.Client {
	return req.C().
		SetUserAgent("chalcreator").
		SetTLSClientConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
		}).
		SetTimeout(DefaultTimeout).
		DisableAutoDecode().
		DisableAutoReadResponse()
}

// URL returns the fetched address
func (f *HTTPFetcher) URL() string { return f.url }

// Fetch implements Fetcher
func (f *HTTPFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	log.Debug("GET %s", f.url)

	resp, err := f.client.R().SetContext(ctx).Get(f.url)
	if err != nil {
		if resp != nil && resp.Response != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, &errors.FetchError{URL: f.url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &errors.FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	log.DebugH2("GET %s returned %d (%s)", f.url, resp.StatusCode, resp.Header.Get("Content-Type"))
	return resp.Body, nil
}
