package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/bytenews/pkg/classifier"
	"github.com/umputun/bytenews/pkg/content"
	contentmocks "github.com/umputun/bytenews/pkg/content/mocks"
	"github.com/umputun/bytenews/pkg/domain"
	"github.com/umputun/bytenews/pkg/feed"
	"github.com/umputun/bytenews/pkg/repository"
	"github.com/umputun/bytenews/pkg/summary"
)

func TestPipeline_EndToEnd(t *testing.T) {
	pageText := "The national football team won the final on Sunday. " +
		"Fans celebrated in the streets of the capital until late at night. " +
		"The coach praised the defence for an outstanding performance. " +
		"The captain scored the winning goal in the last minute of the match. " +
		"Officials announced a parade for the football team on Tuesday morning. " +
		"Tickets for the next tournament went on sale the same evening."
	require.GreaterOrEqual(t, len(pageText), 300)
	page := "<html><head><title>Final</title></head><body><article><p>" + pageText + "</p></article></body></html>"

	rss := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>T</title>
		<item><title>Big win</title><link>https://x/1</link><description>Short teaser.</description>
		<pubDate>Mon, 02 Jan 2006 15:04:05 +0000</pubDate></item>
		<item><title>Quiet afternoon</title><link>https://x/2</link><description>Nothing much.</description></item>
		</channel></rss>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rss))
	}))
	defer ts.Close()

	dl := &contentmocks.DownloaderMock{DownloadFunc: func(ctx context.Context, pageURL string) ([]byte, error) {
		if pageURL == "https://x/1" {
			return []byte(page), nil
		}
		return nil, errors.New("connection reset")
	}}

	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	fetcher := feed.NewFetcher(content.NewChain(dl, 300), classifier.New(classifier.DefaultTable()), feed.Params{Timeout: time.Second})
	p := NewPipeline(Config{
		Articles:   repos.Article,
		Categories: repos.Category,
		Fetcher:    fetcher,
		Summarizer: summary.New(),
	})
	sources := []domain.FeedSource{{Name: "Test News", URL: ts.URL}}

	added := p.Ingest(context.Background(), sources)
	require.Equal(t, 2, added)

	list, err := repos.Article.ListArticles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	byLink := map[string]domain.Article{}
	for _, a := range list {
		byLink[a.Link] = a
	}

	full := byLink["https://x/1"]
	assert.Contains(t, full.Content, "The national football team won the final")
	assert.NotEqual(t, "Short teaser.", full.Content)
	assert.Equal(t, "Sports", full.Category)
	assert.Equal(t, "Test News", full.Source)
	assert.Equal(t, summary.New().SummarizeLength(full.Content, "Big win", summary.Medium), full.Summary)
	assert.Equal(t, 3, strings.Count(full.Summary, ". ")+1, "medium summary has three sentences: %q", full.Summary)

	failed := byLink["https://x/2"]
	assert.Equal(t, domain.NoContent, failed.Content)
	assert.Equal(t, domain.DefaultCategory, failed.Category)
	assert.Equal(t, "Nothing much.", failed.Summary)

	again := p.Ingest(context.Background(), sources)
	assert.Equal(t, 0, again)
	count, err := repos.Article.CountArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	regenerated, err := p.RegenerateSummary(context.Background(), full.ID, summary.Short)
	require.NoError(t, err)
	stored, err := repos.Article.GetArticle(context.Background(), full.ID)
	require.NoError(t, err)
	assert.Equal(t, regenerated, stored.Summary)
	assert.Equal(t, full.Content, stored.Content)
}
