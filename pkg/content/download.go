package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/net/html/charset"
)

// maxPageSize limits how much of a page is read into memory
const maxPageSize = 5 * 1024 * 1024

// ErrPermanent marks download failures which are not worth retrying, like 404
var ErrPermanent = errors.New("permanent download error")

// HTTPDownloader fetches article pages over http with a timeout and retries
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
	retries   int
	delay     time.Duration
}

// DownloaderParams defines parameters for NewHTTPDownloader
type DownloaderParams struct {
	Timeout   time.Duration // per request
	UserAgent string
	Retries   int           // total attempts, 1 disables retrying
	Delay     time.Duration // initial backoff delay
}

// NewHTTPDownloader makes a page downloader
func NewHTTPDownloader(params DownloaderParams) *HTTPDownloader {
	if params.Timeout <= 0 {
		params.Timeout = 10 * time.Second
	}
	if params.Retries <= 0 {
		params.Retries = 1
	}
	if params.Delay <= 0 {
		params.Delay = 500 * time.Millisecond
	}
	return &HTTPDownloader{
		client:    &http.Client{Timeout: params.Timeout},
		userAgent: params.UserAgent,
		retries:   params.Retries,
		delay:     params.Delay,
	}
}

// Download retrieves the page body, retrying transient failures with exponential backoff
func (d *HTTPDownloader) Download(ctx context.Context, pageURL string) ([]byte, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: %w", pageURL, ErrPermanent)
	}

	var body []byte
	rpt := repeater.NewBackoff(d.retries, d.delay, repeater.WithMaxDelay(5*time.Second))
	err = rpt.Do(ctx, func() error {
		b, e := d.get(ctx, pageURL)
		if e != nil {
			return e
		}
		body = b
		return nil
	}, ErrPermanent)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", pageURL, err)
	}
	return body, nil
}

func (d *HTTPDownloader) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req)
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return nil, fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, ErrPermanent)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	// extractors expect utf-8, legacy pages declare their charset in the header or a meta tag
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
