// Package vardok reads concept variable documents from Vardok, the predecessor
// registry, and translates them into definition drafts.
package vardok

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html/charset"

	"vardef/pkg/platform/sentinel"
)

// Client fetches single-language Vardok documents.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	timeout time.Duration
}

// NewClient builds a client whose timeout bounds each Fetch, retries and backoff included.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil
	if logger != nil {
		rc.Logger = logger
	}
	return &Client{http: rc, baseURL: baseURL, timeout: timeout}
}

// Fetch returns the document for id in language. Unknown ids yield
// sentinel.ErrNotFound; transport failures and 5xx yield sentinel.ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, id, language string) (*FIMD, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	target := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(id), url.PathEscape(language))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch vardok %s: %w: %v", id, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read vardok %s: %w: %v", id, sentinel.ErrUnavailable, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("vardok %s: %w", id, sentinel.ErrNotFound)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("vardok %s: %w: status %d", id, sentinel.ErrUnavailable, resp.StatusCode)
	case len(bytes.TrimSpace(body)) == 0:
		return nil, fmt.Errorf("vardok %s: empty document: %w", id, sentinel.ErrNotFound)
	}
	return Decode(body)
}

// Decode parses a FIMD document in any charset its prolog declares.
func Decode(body []byte) (*FIMD, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	var doc FIMD
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode vardok document: %w: %v", sentinel.ErrBadData, err)
	}
	return &doc, nil
}
