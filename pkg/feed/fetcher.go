package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/bytenews/pkg/content"
	"github.com/umputun/bytenews/pkg/domain"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// maxFeedSize limits how much of a feed document is read
const maxFeedSize = 10 * 1024 * 1024

// errPermanent marks feed responses not worth retrying
var errPermanent = errors.New("permanent feed error")

// Extractor resolves article text for a feed entry
type Extractor interface {
	Extract(ctx context.Context, entry domain.RawEntry) content.Result
}

// Classifier guesses a category from title and content
type Classifier interface {
	Classify(title, content string) string
}

// Params defines parameters for NewFetcher
type Params struct {
	Timeout        time.Duration // per feed request
	UserAgent      string
	Retries        int           // total attempts for the feed request
	Delay          time.Duration // initial backoff delay
	ExtractWorkers int           // concurrent entry extractions inside a source
}

// Fetcher downloads a feed and turns its entries into articles
type Fetcher struct {
	client     *http.Client
	extractor  Extractor
	classifier Classifier
	params     Params
	now        func() time.Time
}

// NewFetcher creates a feed fetcher
func NewFetcher(extractor Extractor, classifier Classifier, params Params) *Fetcher {
	if params.Timeout <= 0 {
		params.Timeout = 10 * time.Second
	}
	if params.UserAgent == "" {
		params.UserAgent = "ByteNewsScraper/1.0"
	}
	if params.Retries <= 0 {
		params.Retries = 1
	}
	if params.Delay <= 0 {
		params.Delay = 500 * time.Millisecond
	}
	if params.ExtractWorkers <= 0 {
		params.ExtractWorkers = 4
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		extractor:  extractor,
		classifier: classifier,
		params:     params,
		now:        time.Now,
	}
}

// FetchSource returns articles for all entries of the source, in feed order.
// An unreachable or broken feed gives an empty list, entries are never dropped for poor content.
func (f *Fetcher) FetchSource(ctx context.Context, src domain.FeedSource) []domain.Article {
	entries, err := f.Parse(ctx, src.URL)
	if err != nil {
		lgr.Printf("[WARN] can't fetch source %s (%s): %v", src.Name, src.URL, err)
		return []domain.Article{}
	}
	lgr.Printf("[DEBUG] fetched %d entries from %s", len(entries), src.Name)

	res := make([]domain.Article, len(entries))
	g := errgroup.Group{}
	g.SetLimit(f.params.ExtractWorkers)
	for i, entry := range entries {
		g.Go(func() error {
			res[i] = f.buildArticle(ctx, src, entry)
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// Parse fetches the feed document and converts its items to raw entries
func (f *Fetcher) Parse(ctx context.Context, feedURL string) ([]domain.RawEntry, error) {
	body, err := f.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]domain.RawEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entry := toRawEntry(item)
		// link is the dedup key, an entry without one can't be stored
		if entry.Link == "" {
			lgr.Printf("[WARN] skip entry %q from %s, no link", item.Title, feedURL)
			continue
		}
		res = append(res, entry)
	}
	return res, nil
}

func (f *Fetcher) buildArticle(ctx context.Context, src domain.FeedSource, entry domain.RawEntry) domain.Article {
	text := f.extractor.Extract(ctx, entry).Text

	summary := content.Clean(entry.Summary)
	if summary == "" {
		summary = domain.NoSummary
	}

	categoryText := text
	if text == domain.NoContent {
		categoryText = ""
	}

	return domain.Article{
		Title:     strings.TrimSpace(entry.Title),
		Link:      entry.Link,
		Content:   text,
		Summary:   summary,
		Published: f.publishedAt(entry),
		Source:    src.Name,
		Category:  f.classifier.Classify(entry.Title, categoryText),
	}
}

// publishedAt picks the parsed date, then a best-effort parse of the raw date text, then now
func (f *Fetcher) publishedAt(entry domain.RawEntry) time.Time {
	if entry.Published != nil && !entry.Published.IsZero() {
		return entry.Published.UTC()
	}
	if raw := strings.TrimSpace(entry.PublishedRaw); raw != "" {
		if t, err := dateparse.ParseIn(raw, time.UTC); err == nil {
			return t.UTC()
		}
		lgr.Printf("[DEBUG] can't parse date %q for %s", raw, entry.Link)
	}
	return f.now().UTC()
}

// fetch retrieves the feed body with retries, client errors other than 429 are not retried
func (f *Fetcher) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	var body []byte
	rpt := repeater.NewBackoff(f.params.Retries, f.params.Delay, repeater.WithMaxDelay(5*time.Second))
	err := rpt.Do(ctx, func() error {
		b, err := f.get(ctx, feedURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, errPermanent)
	return body, err
}

func (f *Fetcher) get(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w: %w", errPermanent, err)
	}
	addFeedHeaders(req)
	req.Header.Set("User-Agent", f.params.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, errPermanent)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// toRawEntry converts a parsed feed item, richer content variants go first
func toRawEntry(item *gofeed.Item) domain.RawEntry {
	res := domain.RawEntry{
		Title:   item.Title,
		Link:    strings.TrimSpace(item.Link),
		Summary: item.Description,
	}
	if res.Link == "" && strings.HasPrefix(item.GUID, "http") {
		res.Link = item.GUID
	}

	for _, v := range []string{item.Content, item.Description} {
		if strings.TrimSpace(v) != "" {
			res.ContentVariants = append(res.ContentVariants, v)
		}
	}

	switch {
	case item.PublishedParsed != nil:
		res.Published = item.PublishedParsed
	case item.UpdatedParsed != nil:
		res.Published = item.UpdatedParsed
	}
	res.PublishedRaw = item.Published
	if res.PublishedRaw == "" {
		res.PublishedRaw = item.Updated
	}
	return res
}
