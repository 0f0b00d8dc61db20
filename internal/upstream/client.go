// SPDX-License-Identifier: MIT

// Package upstream fetches raw programme listings from the guide API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ManuGH/epgrab/internal/channels"
	xglog "github.com/ManuGH/epgrab/internal/log"
	"github.com/ManuGH/epgrab/internal/metrics"
	"github.com/ManuGH/epgrab/internal/window"
)

const (
	// DefaultTimeout bounds a single listing request.
	DefaultTimeout = 15 * time.Second
	// DefaultDelay is the pause after every request that reached the network.
	DefaultDelay = 1500 * time.Millisecond

	listingPath     = "/api/tv/program"
	acceptHeader    = "application/json, text/plain, */*"
	maxResponseSize = 8 << 20
)

// Identity is the fixed header set the upstream service gates on.
type Identity struct {
	UserAgent string
	Referer   string
	Origin    string
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Identity Identity
	Timeout  time.Duration
	Delay    time.Duration
	Sleep    Sleeper
	// Transport overrides the base round tripper (tests).
	Transport http.RoundTripper
}

// Client issues one GET per (channel, date) pair. Callers iterate
// sequentially; the post-request delay is the only throttle.
type Client struct {
	base     string
	identity Identity
	delay    time.Duration
	sleep    Sleeper
	http     *http.Client
}

// New creates a listing client for the API rooted at base.
func New(base string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	rt := opts.Transport
	if rt == nil {
		rt = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DisableKeepAlives:     true,
			ForceAttemptHTTP2:     false,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
		}
	}

	return &Client{
		base:     strings.TrimRight(base, "/"),
		identity: opts.Identity,
		delay:    delay,
		sleep:    sleep,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(rt),
		},
	}
}

// ListingURL returns the request URL for one channel alias and day.
func (c *Client) ListingURL(alias string, day window.Date) string {
	q := url.Values{}
	q.Set("channel", alias)
	q.Set("date", day.String())
	return c.base + listingPath + "?" + q.Encode()
}

// Fetch retrieves the raw listing of ch for day. Every failure is returned as
// a *FetchError; nothing is retried.
func (c *Client) Fetch(ctx context.Context, ch channels.Channel, day window.Date) (*Listing, error) {
	date := day.String()
	fail := func(reason Reason, status int, contentType string, err error) (*Listing, error) {
		return nil, &FetchError{
			Reason:      reason,
			Channel:     ch.ID,
			Date:        date,
			Status:      status,
			ContentType: contentType,
			Err:         err,
		}
	}

	if strings.TrimSpace(ch.Alias) == "" {
		metrics.RecordFetch(string(ReasonInvalidRequest), 0)
		return fail(ReasonInvalidRequest, 0, "", errors.New("channel alias is empty"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ListingURL(ch.Alias, day), nil)
	if err != nil {
		metrics.RecordFetch(string(ReasonInvalidRequest), 0)
		return fail(ReasonInvalidRequest, 0, "", err)
	}
	c.setHeaders(req)

	// From here on the request reaches the network; pause afterwards no
	// matter how it ends.
	defer c.sleep(ctx, c.delay)

	logger := xglog.WithComponentFromContext(ctx, "upstream")
	logger.Debug().
		Str(xglog.FieldChannel, ch.ID).
		Str(xglog.FieldDate, date).
		Str("url", req.URL.String()).
		Msg("requesting listing")

	start := time.Now()
	listing, reason, status, contentType, err := c.do(req)
	if reason == "" {
		metrics.RecordFetch("ok", time.Since(start))
		listing.ChannelID = ch.ID
		listing.Date = date
		return listing, nil
	}
	metrics.RecordFetch(string(reason), time.Since(start))
	return fail(reason, status, contentType, err)
}

func (c *Client) do(req *http.Request) (*Listing, Reason, int, string, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, ReasonNetwork, 0, "", err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return nil, ReasonHTTPStatus, res.StatusCode, "", nil
	}

	contentType := res.Header.Get("Content-Type")
	if !isJSON(contentType) {
		return nil, ReasonUnexpectedContentType, res.StatusCode, contentType, nil
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, ReasonNetwork, res.StatusCode, "", err
	}

	var envelope listingResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ReasonDecode, res.StatusCode, "", err
	}
	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ReasonEmpty, res.StatusCode, "", nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, ReasonDecode, res.StatusCode, "", err
	}
	if len(elems) == 0 {
		return nil, ReasonEmpty, res.StatusCode, "", nil
	}

	listing := &Listing{ContentType: contentType, Items: make([]RawProgramme, 0, len(elems))}
	for i, elem := range elems {
		var item RawProgramme
		if err := json.Unmarshal(elem, &item); err != nil {
			listing.Rejected = append(listing.Rejected, ItemError{Index: i, Raw: elem, Err: err})
			continue
		}
		listing.Items = append(listing.Items, item)
	}
	return listing, "", res.StatusCode, contentType, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.identity.UserAgent != "" {
		req.Header.Set("User-Agent", c.identity.UserAgent)
	}
	if c.identity.Referer != "" {
		req.Header.Set("Referer", c.identity.Referer)
	}
	if c.identity.Origin != "" {
		req.Header.Set("Origin", c.identity.Origin)
	}
}

// isJSON accepts application/json and any +json structured suffix.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
