package content

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/bytenews/pkg/domain"
)

//go:generate moq -out mocks/downloader.go -pkg mocks -skip-ensure -fmt goimports . Downloader

// DefaultMinLength is the shortest text accepted from a non-terminal strategy
const DefaultMinLength = 300

// errNoText is returned by strategies which found nothing to extract
var errNoText = errors.New("no text extracted")

// Downloader retrieves raw page bytes
type Downloader interface {
	Download(ctx context.Context, pageURL string) ([]byte, error)
}

// Strategy is a single step of the extraction chain
type Strategy interface {
	Name() string
	TryExtract(ctx context.Context, page *Page) (string, error)
}

// Page wraps a feed entry and downloads its html at most once, on first use.
// Not safe for concurrent use, a page belongs to one chain run.
type Page struct {
	Entry domain.RawEntry

	downloader Downloader
	loaded     bool
	body       []byte
	err        error
}

// NewPage makes a page for the entry, downloader can be nil for feed-only extraction
func NewPage(entry domain.RawEntry, downloader Downloader) *Page {
	return &Page{Entry: entry, downloader: downloader}
}

// HTML returns the downloaded page body, the result (including an error) is cached
func (p *Page) HTML(ctx context.Context) ([]byte, error) {
	if p.loaded {
		return p.body, p.err
	}
	p.loaded = true
	if p.downloader == nil {
		p.err = errors.New("no downloader configured")
		return nil, p.err
	}
	p.body, p.err = p.downloader.Download(ctx, p.Entry.Link)
	return p.body, p.err
}

// URL returns the parsed entry link, an empty url if it can't be parsed
func (p *Page) URL() *url.URL {
	u, err := url.Parse(p.Entry.Link)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// Chain tries extraction strategies in order until one yields long enough text.
// The last strategy is terminal, any non-empty text it returns is accepted.
type Chain struct {
	downloader Downloader
	strategies []Strategy
	minLength  int
}

// NewChain makes an extraction chain. With no strategies given the default order is used:
// feed payload, trafilatura, readability, raw paragraphs.
func NewChain(downloader Downloader, minLength int, strategies ...Strategy) *Chain {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Chain{downloader: downloader, strategies: strategies, minLength: minLength}
}

// DefaultStrategies returns the standard extraction order
func DefaultStrategies() []Strategy {
	return []Strategy{&FeedStrategy{}, &TrafilaturaStrategy{}, &ReadabilityStrategy{}, &ParagraphStrategy{}}
}

// Result is the outcome of a chain run
type Result struct {
	Text     string
	Strategy string // name of the accepted strategy, empty if none
}

// Extract resolves entry content. It never fails, when nothing is accepted
// the text is domain.NoContent and Strategy is empty.
func (c *Chain) Extract(ctx context.Context, entry domain.RawEntry) Result {
	page := NewPage(entry, c.downloader)
	for i, s := range c.strategies {
		if ctx.Err() != nil {
			break
		}
		text, err := s.TryExtract(ctx, page)
		if err != nil {
			lgr.Printf("[DEBUG] %s extraction failed for %s: %v", s.Name(), entry.Link, err)
			continue
		}
		terminal := i == len(c.strategies)-1
		if c.accepted(text, terminal) {
			lgr.Printf("[DEBUG] %s extracted %d chars for %s", s.Name(), utf8.RuneCountInString(text), entry.Link)
			return Result{Text: text, Strategy: s.Name()}
		}
		lgr.Printf("[DEBUG] %s text too short (%d chars) for %s", s.Name(), utf8.RuneCountInString(text), entry.Link)
	}
	lgr.Printf("[WARN] no content extracted for %s", entry.Link)
	return Result{Text: domain.NoContent}
}

func (c *Chain) accepted(text string, terminal bool) bool {
	if text == "" {
		return false
	}
	return terminal || utf8.RuneCountInString(text) >= c.minLength
}

// FeedStrategy uses content delivered in the feed itself
type FeedStrategy struct{}

// Name of the strategy
func (s *FeedStrategy) Name() string { return "feed" }

// TryExtract returns the longest cleaned content variant of the entry
func (s *FeedStrategy) TryExtract(_ context.Context, page *Page) (string, error) {
	best := ""
	for _, v := range page.Entry.ContentVariants {
		if cleaned := Clean(v); utf8.RuneCountInString(cleaned) > utf8.RuneCountInString(best) {
			best = cleaned
		}
	}
	if best == "" {
		return "", fmt.Errorf("feed payload: %w", errNoText)
	}
	return best, nil
}
