package warps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CatalogPath is the fixed resource holding the catalog array.
const CatalogPath = "/data.json"

// Source loads the full warp catalog.
// This interface is implemented by *Client and can be used for testing.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// FetchErrorKind classifies catalog load failures.
type FetchErrorKind int

const (
	// FetchRequest covers request construction and transport failures.
	FetchRequest FetchErrorKind = iota
	// FetchStatus covers non-2xx responses.
	FetchStatus
	// FetchDecode covers bodies that are not a record array.
	FetchDecode
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchStatus:
		return "status"
	case FetchDecode:
		return "decode"
	default:
		return "request"
	}
}

// FetchError reports a failed catalog load. No partial data accompanies it.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchStatus:
		return fmt.Sprintf("fetch %s: returned status %d", e.URL, e.Status)
	case FetchDecode:
		return fmt.Sprintf("fetch %s: decode response: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client reads the catalog from a site over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultSiteURL   = "http://127.0.0.1:8080"
	defaultUserAgent = "pwarps/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given site URL. A zero timeout uses the default.
func NewClient(siteURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(siteURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Origin returns scheme://host of the site the client reads from.
func (c *Client) Origin() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.Scheme + "://" + c.baseURL.Host
}

// Load fetches the catalog and returns the records in the order the site
// delivered them.
func (c *Client) Load(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	started := time.Now()
	var records []Record
	if err := c.do(ctx, http.MethodGet, CatalogPath, &records); err != nil {
		slog.Warn("catalog load failed", "url", c.catalogURL(), "err", err)
		return nil, err
	}
	if records == nil {
		err := &FetchError{Kind: FetchDecode, URL: c.catalogURL(), Err: errors.New("expected a JSON array")}
		slog.Warn("catalog load failed", "url", c.catalogURL(), "err", err)
		return nil, err
	}
	slog.Info("catalog loaded", "url", c.catalogURL(), "count", len(records), "took", time.Since(started))
	return records, nil
}

func (c *Client) catalogURL() string {
	return c.baseURL.ResolveReference(&url.URL{Path: CatalogPath}).String()
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return &FetchError{Kind: FetchRequest, URL: reqURL.String(), Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Kind: FetchRequest, URL: reqURL.String(), Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{Kind: FetchStatus, URL: reqURL.String(), Status: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &FetchError{Kind: FetchDecode, URL: reqURL.String(), Err: err}
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return &FetchError{Kind: FetchDecode, URL: reqURL.String(), Err: errors.New("unexpected data after JSON value")}
	}
	return nil
}

func parseBaseURL(siteURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(siteURL)
	if trimmed == "" {
		trimmed = defaultSiteURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse site_url %q: %w", siteURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse site_url %q: missing host", siteURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
