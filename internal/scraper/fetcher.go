package scraper

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/idna"
)

const (
	// DefaultTimeout bounds the whole fetch including redirects and body read.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent mimics a desktop browser so sites serve their normal markup.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	maxRedirects = 10
	maxBodyBytes = 5 << 20
)

// Page is the raw result of a successful fetch.
type Page struct {
	Body       string
	FinalURL   string
	StatusCode int
}

// HTTPClient abstracts outbound requests to simplify testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads a single page with one attempt and no retries.
type Fetcher struct {
	client    HTTPClient
	userAgent string
}

// FetcherOption configures optional dependencies.
type FetcherOption func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithUserAgent overrides the browser User-Agent header.
func WithUserAgent(userAgent string) FetcherOption {
	return func(f *Fetcher) {
		if ua := strings.TrimSpace(userAgent); ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher builds a fetcher whose client follows up to ten redirects and
// gives up after timeout.
func NewFetcher(timeout time.Duration, opts ...FetcherOption) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a GET against rawURL and returns the decoded body together
// with the URL reached after redirects.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{
			URL:        target.String(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	limited := io.LimitReader(resp.Body, maxBodyBytes)
	reader, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		reader = limited
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{URL: target.String(), Err: fmt.Errorf("read body: %w", err)}
	}

	finalURL := target.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Page{Body: string(body), FinalURL: finalURL, StatusCode: resp.StatusCode}, nil
}

// ValidateURL accepts absolute http and https URLs with a host. Hostnames are
// only checked for punycode encodability; names like my_site.example.com
// are left for resolution to accept or reject.
func ValidateURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidURL)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: %q must use http or https", ErrInvalidURL, trimmed)
	}

	host := parsed.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidURL, trimmed)
	}
	if net.ParseIP(host) == nil {
		if _, err := idna.Punycode.ToASCII(host); err != nil {
			return nil, fmt.Errorf("%w: host %q: %v", ErrInvalidURL, host, err)
		}
	}

	return parsed, nil
}
