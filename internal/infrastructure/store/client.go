package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"deal_radar/internal/domain"
	"deal_radar/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DefaultTimeout   = 12 * time.Second
)

type ClientOptions struct {
	Transport http.RoundTripper
	Timeout   time.Duration
	// RateInterval is the minimum gap between requests; zero disables limiting.
	RateInterval time.Duration
	UserAgent    string
}

// Client is the HTTP client shared by the JSON store adapters. Transport
// failures and unexpected responses are returned as domain errors so adapters
// never leak raw transport errors.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	timeout    time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RateInterval), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		limiter:    limiter,
		userAgent:  opts.UserAgent,
		timeout:    opts.Timeout,
	}
}

func (c *Client) Transport() http.RoundTripper {
	return c.httpClient.Transport
}

func (c *Client) UserAgent() string {
	return c.userAgent
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Wait blocks until the rate limiter allows the next request.
func (c *Client) Wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return TransportError(ctx, err)
	}

	return nil
}

// GetJSON issues a GET to rawURL with query and decodes the JSON body into dest.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, dest any) error {
	if err := c.Wait(ctx); err != nil {
		return err
	}

	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewError(errcodes.StoreUnavailable, "unexpected status "+strconv.Itoa(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.WrapError(err, errcodes.MalformedResponse, "decode response")
	}

	return nil
}

// TransportError classifies a failed request as a timeout or an unavailable store.
func TransportError(ctx context.Context, err error) error {
	var netErr net.Error

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.WrapError(err, errcodes.TimeoutExceeded, "store request timed out")
	}

	return domain.WrapError(err, errcodes.StoreUnavailable, "store request failed")
}

// NotFound is returned by adapters when the search has no usable result.
func NotFound(game string) error {
	return domain.NewError(errcodes.GameNotFound, fmt.Sprintf("no results for %q", game))
}

// ResolveURL joins a store-relative link with the store base.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	b, err := url.Parse(base)
	if err != nil {
		return ref
	}

	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return b.ResolveReference(r).String()
}

// Number is a numeric field that stores send either as a JSON number or as a
// quoted string. The raw text is kept so prices are parsed exactly later.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}

	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	*n = Number(s)

	return nil
}

func (n Number) String() string {
	return string(n)
}

// Int returns the value as an integer, dropping any fractional part.
func (n Number) Int() (int, bool) {
	if n == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, false
	}

	return int(f), true
}
