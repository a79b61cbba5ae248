package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultEndpoint  = "https://poe.ninja/api/data/currencyoverview"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "lifeforce-prices/1.0 (+https://poe.ninja)"
)

// Client fetches currency overviews from poe.ninja. One request per Fetch,
// no retries.
type Client struct {
	endpoint  string
	userAgent string
	client    *http.Client
	now       func() time.Time
}

type Options struct {
	Endpoint  string
	Timeout   time.Duration
	UserAgent string
}

func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		endpoint:  opts.Endpoint,
		userAgent: opts.UserAgent,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		now: time.Now,
	}
}

// Fetch downloads the currency overview for league and extracts the tracked
// lifeforce quotes and the divine ratio.
func (c *Client) Fetch(ctx context.Context, league string) (Snapshot, error) {
	u, err := c.overviewURL(league)
	if err != nil {
		return Snapshot{}, err
	}
	body, err := c.httpGet(ctx, u)
	if err != nil {
		return Snapshot{}, err
	}
	ov, err := decodeOverview(body)
	if err != nil {
		return Snapshot{}, err
	}
	quotes, ratio := buildQuotes(ov.Lines)
	return Snapshot{
		FetchedAt:   c.now(),
		League:      league,
		Quotes:      quotes,
		DivineRatio: ratio,
	}, nil
}

func (c *Client) overviewURL(league string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("league", league)
	q.Set("type", "Currency")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) httpGet(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: http %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	return b, nil
}
