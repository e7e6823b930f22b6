package klass

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"vardef/internal/klass/models"
	"vardef/pkg/platform/sentinel"
)

// Languages fetched for every classification.
var Languages = []string{"nb", "nn", "en"}

const (
	// Codes valid at any point since this date are fetched.
	codesFrom = "1800-01-01"
	maxPages  = 500
)

// Client reads classification code lists from the Klass API. Responses are HAL JSON
// paged through _links.next.href.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	timeout time.Duration
	now     func() time.Time
}

// NewClient builds a Klass client retrying transient failures up to three times.
// timeout bounds each page request, retries and backoff included.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil
	if logger != nil {
		rc.Logger = logger
	}
	return &Client{http: rc, baseURL: baseURL, timeout: timeout, now: time.Now}
}

// FetchClassification returns every code of the classification in all languages.
func (c *Client) FetchClassification(ctx context.Context, classificationID string) (*models.Classification, error) {
	out := &models.Classification{
		ID:          classificationID,
		Codes:       make(map[string]map[string]models.CodeItem, len(Languages)),
		RefreshedAt: c.now().UTC(),
	}
	for _, lang := range Languages {
		codes, err := c.fetchLanguage(ctx, classificationID, lang)
		if err != nil {
			return nil, err
		}
		out.Codes[lang] = codes
	}
	return out, nil
}

func (c *Client) fetchLanguage(ctx context.Context, classificationID, language string) (map[string]models.CodeItem, error) {
	q := url.Values{}
	q.Set("from", codesFrom)
	q.Set("to", c.now().AddDate(0, 0, 1).Format(time.DateOnly))
	q.Set("language", language)
	next := fmt.Sprintf("%s/classifications/%s/codes?%s", c.baseURL, url.PathEscape(classificationID), q.Encode())

	codes := make(map[string]models.CodeItem)
	for page := 0; next != ""; page++ {
		if page == maxPages {
			return nil, fmt.Errorf("classification %s: more than %d pages: %w", classificationID, maxPages, sentinel.ErrBadData)
		}
		body, err := c.get(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("classification %s (%s): %w", classificationID, language, err)
		}
		if !gjson.ValidBytes(body) {
			return nil, fmt.Errorf("classification %s (%s): invalid json: %w", classificationID, language, sentinel.ErrBadData)
		}
		parsed := gjson.ParseBytes(body)
		items := parsed.Get("_embedded.codes")
		if !items.Exists() {
			items = parsed.Get("codes")
		}
		for _, item := range items.Array() {
			code := parseCode(item)
			if code.Code == "" {
				continue
			}
			codes[code.Code] = code
		}
		next = parsed.Get("_links.next.href").String()
	}
	return codes, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", sentinel.ErrUnavailable, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, sentinel.ErrNotFound
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}
	return body, nil
}

func parseCode(item gjson.Result) models.CodeItem {
	return models.CodeItem{
		Code:       item.Get("code").String(),
		ParentCode: item.Get("parentCode").String(),
		Level:      item.Get("level").String(),
		Name:       item.Get("name").String(),
		ShortName:  item.Get("shortName").String(),
		ValidFrom:  parseDay(item.Get("validFrom").String()),
		ValidTo:    parseDay(item.Get("validTo").String()),
	}
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}
