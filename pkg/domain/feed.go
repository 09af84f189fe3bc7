package domain

import "time"

// FeedSource represents a configured RSS/Atom endpoint
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RawEntry is a single feed item as delivered by the feed parser
type RawEntry struct {
	Title           string
	Link            string
	ContentVariants []string // candidate content fields in priority order
	Summary         string   // raw summary or description, may contain html
	Published       *time.Time
	PublishedRaw    string // unparsed date text, used when the parser could not parse it
}
