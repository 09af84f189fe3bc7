package content

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
)

// TrafilaturaStrategy extracts the main article text from the downloaded page with trafilatura
type TrafilaturaStrategy struct{}

// Name of the strategy
func (s *TrafilaturaStrategy) Name() string { return "trafilatura" }

// TryExtract runs trafilatura over the page html
func (s *TrafilaturaStrategy) TryExtract(ctx context.Context, page *Page) (string, error) {
	body, err := page.HTML(ctx)
	if err != nil {
		return "", err
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     page.URL(),
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", page.Entry.Link, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return "", fmt.Errorf("trafilatura %s: %w", page.Entry.Link, errNoText)
	}
	return strings.TrimSpace(result.ContentText), nil
}

// ReadabilityStrategy extracts the article text using the readability heuristic
type ReadabilityStrategy struct{}

// Name of the strategy
func (s *ReadabilityStrategy) Name() string { return "readability" }

// TryExtract parses the page html with go-readability
func (s *ReadabilityStrategy) TryExtract(ctx context.Context, page *Page) (string, error) {
	body, err := page.HTML(ctx)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(body), page.URL())
	if err != nil {
		return "", fmt.Errorf("readability parse %s: %w", page.Entry.Link, err)
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("readability %s: %w", page.Entry.Link, errNoText)
	}
	return text, nil
}

// ParagraphStrategy collects the text of every paragraph element on the page.
// It is the last resort when smarter extractors give too little.
type ParagraphStrategy struct{}

// Name of the strategy
func (s *ParagraphStrategy) Name() string { return "paragraphs" }

// TryExtract joins the text of all <p> elements with spaces
func (s *ParagraphStrategy) TryExtract(ctx context.Context, page *Page) (string, error) {
	body, err := page.HTML(ctx)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html %s: %w", page.Entry.Link, err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := NormalizeSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return "", fmt.Errorf("paragraphs %s: %w", page.Entry.Link, errNoText)
	}
	return strings.Join(paragraphs, " "), nil
}
