package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/bytenews/pkg/domain"
)

// Generator creates RSS feeds from stored articles
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed, articles with audio get an enclosure
func (g *Generator) GenerateRSS(articles []domain.Article, category string) (string, error) {
	// determine title and self link
	title := "ByteNews - All Categories"
	selfLink := g.baseURL + "/rss"
	if category != "" {
		title = "ByteNews - " + category
		selfLink = fmt.Sprintf("%s/rss/%s", g.baseURL, url.PathEscape(category))
	}

	// convert articles to RSS items
	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a))
	}

	// create RSS structure
	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Summarized news from subscribed sources",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	// marshal to XML
	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(a domain.Article) *RSSItem {
	item := &RSSItem{
		Title:       a.Title,
		Link:        a.Link,
		GUID:        &GUID{Value: a.Link, IsPermaLink: "true"},
		Description: a.Summary,
		PubDate:     a.Published.Format(time.RFC1123Z),
		Source:      a.Source,
	}
	if a.Category != "" {
		item.Categories = []string{a.Category}
	}
	// attach rendered audio
	if a.AudioPath != "" {
		item.Enclosure = &Enclosure{URL: g.mediaURL(a.AudioPath), Type: "audio/mpeg", Length: "0"}
	}
	return item
}

// mediaURL makes an absolute url for a file under the media root
func (g *Generator) mediaURL(relPath string) string {
	parts := strings.Split(strings.TrimLeft(relPath, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return g.baseURL + "/media/" + strings.Join(parts, "/")
}

// GenerateOPML creates an OPML file listing configured sources
func (g *Generator) GenerateOPML(sources []domain.FeedSource) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	// convert sources to OPML outlines
	outlines := make([]outline, 0, len(sources))
	for _, s := range sources {
		outlines = append(outlines, outline{Text: s.Name, Title: s.Name, Type: "rss", XMLUrl: s.URL})
	}

	// create OPML structure
	doc := opml{
		Version: "2.0",
		Head:    head{Title: "ByteNews Sources", DateCreated: time.Now().Format(time.RFC1123Z)},
		Body:    body{Outlines: outlines},
	}

	// marshal to XML
	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
