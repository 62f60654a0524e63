// Package fetch retrieves image bytes over HTTP and classifies the outcome.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Skryldev/placeholder-kit/config"
	"github.com/Skryldev/placeholder-kit/core"
	"github.com/Skryldev/placeholder-kit/utils"
)

// Fetcher performs a single bounded HTTP GET per URL.  No automatic retry and
// no caching across runs: a stalled or failing fetch degrades that one entry,
// never the whole run.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// New creates a Fetcher from cfg.  A nil-safe default client is built with the
// configured per-fetch timeout.
func New(cfg config.Config) *Fetcher {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		timeout:   timeout,
		maxBytes:  cfg.MaxImageBytes,
		userAgent: cfg.UserAgent,
	}
}

// Fetch retrieves url and classifies the result.  Transport errors, non-2xx
// statuses, and empty bodies map to NetworkFailure; bodies that are not a
// recognized image encoding map to DecodeFailure.
func (f *Fetcher) Fetch(ctx context.Context, url string) *core.FetchResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.NetworkFailure(fmt.Sprintf("invalid request: %v", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return core.NetworkFailure(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.NetworkFailure(fmt.Sprintf("unexpected status %s", resp.Status))
	}

	body := resp.Body
	var limited = &utils.LimitedReader{R: body, Max: f.maxBytes}
	buf, err := utils.DrainReader(ctx, limited, 32*1024)
	if err != nil {
		return core.NetworkFailure(fmt.Sprintf("reading body: %v", err))
	}
	data := utils.CloneBytes(buf.Bytes())
	utils.ReleaseBuffer(buf)

	if len(data) == 0 {
		return core.NetworkFailure("empty response body")
	}

	contentType := resp.Header.Get("Content-Type")
	if utils.DetectFormat(data) == "unknown" && !strings.Contains(contentType, "image") {
		return core.DecodeFailure(fmt.Sprintf("unrecognized content (%d bytes, %q)", len(data), contentType))
	}
	return core.Fetched(data, contentType)
}
