// Package ingest runs feed sources through fetching, summarization, storage and audio rendering.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/bytenews/pkg/domain"
	"github.com/umputun/bytenews/pkg/repository"
	"github.com/umputun/bytenews/pkg/summary"
)

//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/category_store.go -pkg mocks -skip-ensure -fmt goimports . CategoryStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure -fmt goimports . Renderer

// summary policies
const (
	PolicyAlways  = "always"  // summarize every article with real content
	PolicyMissing = "missing" // summarize only when the feed gave no summary
)

// stages reported by StageError
const (
	StageSummary = "summary"
	StageAudio   = "audio"
)

var (
	// ErrNoContent returned when an article has nothing to summarize
	ErrNoContent = errors.New("article has no content")
	// ErrNoSummary returned when an article has no summary to render
	ErrNoSummary = errors.New("article has no summary")
	// ErrAudioDisabled returned when audio is requested without a renderer
	ErrAudioDisabled = errors.New("audio rendering disabled")
)

// StageError tells which regeneration stage failed
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

// Unwrap returns the underlying error
func (e *StageError) Unwrap() error { return e.Err }

// ArticleStore persists articles
type ArticleStore interface {
	ArticleExists(ctx context.Context, link string) (bool, error)
	CreateArticle(ctx context.Context, article *domain.Article, categoryID int64) (int64, error)
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	UpdateArticleAudioPath(ctx context.Context, id int64, path string) error
	UpdateArticleSummary(ctx context.Context, id int64, summary string) error
}

// CategoryStore resolves category records by name
type CategoryStore interface {
	CreateOrGetCategory(ctx context.Context, name string) (domain.Category, error)
}

// Fetcher turns a feed source into articles
type Fetcher interface {
	FetchSource(ctx context.Context, src domain.FeedSource) []domain.Article
}

// Summarizer builds extractive summaries
type Summarizer interface {
	SummarizeLength(text, title string, l summary.Length) string
}

// Renderer turns summaries into audio files
type Renderer interface {
	Render(ctx context.Context, text string, articleID int64) (string, error)
	Remove(relPath string) error
}

// Config holds pipeline dependencies and parameters
type Config struct {
	Articles      ArticleStore
	Categories    CategoryStore
	Fetcher       Fetcher
	Summarizer    Summarizer
	Renderer      Renderer // nil disables audio
	MaxWorkers    int      // concurrent sources
	SummaryLength summary.Length
	SummaryPolicy string // PolicyAlways or PolicyMissing
}

// Pipeline ingests feed sources into storage
type Pipeline struct {
	articles   ArticleStore
	categories CategoryStore
	fetcher    Fetcher
	summarizer Summarizer
	renderer   Renderer
	maxWorkers int
	length     summary.Length
	policy     string

	catMu    sync.Mutex
	catCache map[string]domain.Category
}

// NewPipeline creates an ingestion pipeline
func NewPipeline(cfg Config) *Pipeline {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.SummaryLength == "" {
		cfg.SummaryLength = summary.Medium
	}
	if cfg.SummaryPolicy != PolicyMissing {
		cfg.SummaryPolicy = PolicyAlways
	}
	return &Pipeline{
		articles:   cfg.Articles,
		categories: cfg.Categories,
		fetcher:    cfg.Fetcher,
		summarizer: cfg.Summarizer,
		renderer:   cfg.Renderer,
		maxWorkers: cfg.MaxWorkers,
		length:     cfg.SummaryLength,
		policy:     cfg.SummaryPolicy,
		catCache:   map[string]domain.Category{},
	}
}

// Ingest fetches all sources and stores new articles, returning how many were added.
// Failures of a source or an article are logged and skipped.
func (p *Pipeline) Ingest(ctx context.Context, sources []domain.FeedSource) int {
	var added atomic.Int64
	g := errgroup.Group{}
	g.SetLimit(p.maxWorkers)
	for _, src := range sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			n := p.ingestSource(ctx, src)
			added.Add(int64(n))
			return nil
		})
	}
	_ = g.Wait()

	total := int(added.Load())
	lgr.Printf("[INFO] ingested %d new articles from %d sources", total, len(sources))
	return total
}

func (p *Pipeline) ingestSource(ctx context.Context, src domain.FeedSource) int {
	articles := p.fetcher.FetchSource(ctx, src)
	added := 0
	for i := range articles {
		if ctx.Err() != nil {
			lgr.Printf("[INFO] ingestion of %s canceled", src.Name)
			break
		}
		if p.ingestArticle(ctx, &articles[i]) {
			added++
		}
	}
	lgr.Printf("[DEBUG] source %s: %d fetched, %d added", src.Name, len(articles), added)
	return added
}

// ingestArticle stores a single article, returns true if it was added
func (p *Pipeline) ingestArticle(ctx context.Context, a *domain.Article) bool {
	if strings.TrimSpace(a.Link) == "" {
		lgr.Printf("[WARN] article %q has no link, skipped", a.Title)
		return false
	}

	exists, err := p.articles.ArticleExists(ctx, a.Link)
	if err != nil {
		lgr.Printf("[WARN] can't check article %s: %v", a.Link, err)
		return false
	}
	if exists {
		lgr.Printf("[DEBUG] article %s already stored", a.Link)
		return false
	}

	cat, err := p.category(ctx, a.Category)
	if err != nil {
		lgr.Printf("[WARN] can't resolve category %q for %s: %v", a.Category, a.Link, err)
		return false
	}
	a.Category = cat.Name

	if p.needsSummary(a) {
		a.Summary = p.summarizer.SummarizeLength(a.Content, a.Title, p.length)
	}

	id, err := p.articles.CreateArticle(ctx, a, cat.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			lgr.Printf("[DEBUG] article %s stored concurrently, skipped", a.Link)
			return false
		}
		lgr.Printf("[WARN] can't store article %s: %v", a.Link, err)
		return false
	}

	if p.renderer != nil && a.HasSummary() {
		if _, err := p.renderAudio(ctx, id, a.Summary); err != nil {
			lgr.Printf("[WARN] audio for article %d (%s) not rendered: %v", id, a.Link, err)
		}
	}
	return true
}

// category returns the stored category by name, lookups are serialized and cached
func (p *Pipeline) category(ctx context.Context, name string) (domain.Category, error) {
	if name == "" {
		name = domain.DefaultCategory
	}
	p.catMu.Lock()
	defer p.catMu.Unlock()
	if c, ok := p.catCache[name]; ok {
		return c, nil
	}
	c, err := p.categories.CreateOrGetCategory(ctx, name)
	if err != nil {
		return domain.Category{}, err
	}
	p.catCache[name] = c
	return c, nil
}

func (p *Pipeline) needsSummary(a *domain.Article) bool {
	if !a.HasContent() {
		return false
	}
	if p.policy == PolicyMissing {
		return !a.HasSummary()
	}
	return true
}

// renderAudio makes an audio file and stores its path, the file is removed if storing fails
func (p *Pipeline) renderAudio(ctx context.Context, id int64, text string) (string, error) {
	path, err := p.renderer.Render(ctx, text, id)
	if err != nil {
		return "", fmt.Errorf("render audio: %w", err)
	}
	if err := p.articles.UpdateArticleAudioPath(ctx, id, path); err != nil {
		if rmErr := p.renderer.Remove(path); rmErr != nil {
			lgr.Printf("[WARN] can't remove orphan audio %s: %v", path, rmErr)
		}
		return "", fmt.Errorf("store audio path: %w", err)
	}
	return path, nil
}

// RegenerateSummary recomputes the summary of a stored article with the given length
func (p *Pipeline) RegenerateSummary(ctx context.Context, id int64, length summary.Length) (string, error) {
	a, err := p.articles.GetArticle(ctx, id)
	if err != nil {
		return "", &StageError{Stage: StageSummary, Err: err}
	}
	if !a.HasContent() {
		return "", &StageError{Stage: StageSummary, Err: ErrNoContent}
	}

	s := p.summarizer.SummarizeLength(a.Content, a.Title, length)
	if err := p.articles.UpdateArticleSummary(ctx, id, s); err != nil {
		return "", &StageError{Stage: StageSummary, Err: err}
	}
	lgr.Printf("[INFO] regenerated %s summary for article %d", length, id)
	return s, nil
}

// RegenerateAudio renders the current summary of a stored article into a new file.
// The previous file is removed only after the new path is stored.
func (p *Pipeline) RegenerateAudio(ctx context.Context, id int64) (string, error) {
	if p.renderer == nil {
		return "", &StageError{Stage: StageAudio, Err: ErrAudioDisabled}
	}
	a, err := p.articles.GetArticle(ctx, id)
	if err != nil {
		return "", &StageError{Stage: StageAudio, Err: err}
	}
	if !a.HasSummary() {
		return "", &StageError{Stage: StageAudio, Err: ErrNoSummary}
	}

	path, err := p.renderAudio(ctx, id, a.Summary)
	if err != nil {
		return "", &StageError{Stage: StageAudio, Err: err}
	}
	if a.AudioPath != "" && a.AudioPath != path {
		if err := p.renderer.Remove(a.AudioPath); err != nil {
			lgr.Printf("[WARN] can't remove previous audio %s: %v", a.AudioPath, err)
		}
	}
	lgr.Printf("[INFO] regenerated audio for article %d: %s", id, path)
	return path, nil
}
