package domain

import "time"

// sentinel values used when a field can't be resolved
const (
	NoContent       = "No content available."
	NoSummary       = "No summary available."
	NoSummaryInput  = "No content available to summarize."
	DefaultCategory = "General"
)

// Article represents a news article produced by the ingestion pipeline
type Article struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Link             string     `json:"link"` // unique across all stored articles
	Content          string     `json:"content"`
	Summary          string     `json:"summary"`
	Published        time.Time  `json:"published"`
	Source           string     `json:"source"`
	Category         string     `json:"category"`
	CategoryID       int64      `json:"category_id"`
	AudioPath        string     `json:"audio_path,omitempty"` // relative to the media root, empty if no audio
	AudioGeneratedAt *time.Time `json:"audio_generated_at,omitempty"`
	Approved         bool       `json:"approved"` // moderation flag, new articles are pending
	CreatedAt        time.Time  `json:"created_at"`
}

// HasContent reports whether the article has real content rather than the sentinel
func (a *Article) HasContent() bool {
	return a.Content != "" && a.Content != NoContent
}

// HasSummary reports whether the article has a real summary rather than the sentinel
func (a *Article) HasSummary() bool {
	return a.Summary != "" && a.Summary != NoSummary && a.Summary != NoSummaryInput
}

// Category represents an article category
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ArticleFilter represents filtering criteria for article listing
type ArticleFilter struct {
	Category string
	Approved *bool // nil means any moderation state
	Limit    int
	Offset   int
}

// ArticleStats holds article counts by moderation state
type ArticleStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
}
