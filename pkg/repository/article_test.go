package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/bytenews/pkg/domain"
)

func newArticle(link string, published time.Time) *domain.Article {
	return &domain.Article{
		Title:     "Title " + link,
		Link:      link,
		Content:   "Some content for " + link,
		Summary:   "Summary for " + link,
		Published: published,
		Source:    "Test Source",
	}
}

func TestArticleRepository_CreateAndGet(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	cat, err := repos.Category.CreateOrGetCategory(ctx, "Science")
	require.NoError(t, err)

	published := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	a := newArticle("https://x/1", published)
	id, err := repos.Article.CreateArticle(ctx, a, cat.ID)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, id, a.ID)
	assert.Equal(t, cat.ID, a.CategoryID)

	got, err := repos.Article.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Title https://x/1", got.Title)
	assert.Equal(t, "https://x/1", got.Link)
	assert.Equal(t, "Some content for https://x/1", got.Content)
	assert.Equal(t, "Summary for https://x/1", got.Summary)
	assert.Equal(t, "Test Source", got.Source)
	assert.Equal(t, "Science", got.Category)
	assert.Equal(t, cat.ID, got.CategoryID)
	assert.True(t, published.Equal(got.Published), "published %v", got.Published)
	assert.Empty(t, got.AudioPath)
	assert.Nil(t, got.AudioGeneratedAt)
	assert.False(t, got.Approved, "new articles are pending")
	assert.False(t, got.CreatedAt.IsZero())

	exists, err := repos.Article.ArticleExists(ctx, "https://x/1")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repos.Article.ArticleExists(ctx, "https://x/2")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repos.Article.GetArticle(ctx, 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestArticleRepository_Duplicate(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	cat, err := repos.Category.CreateOrGetCategory(ctx, "General")
	require.NoError(t, err)

	_, err = repos.Article.CreateArticle(ctx, newArticle("https://x/dup", time.Now()), cat.ID)
	require.NoError(t, err)

	second := newArticle("https://x/dup", time.Now())
	second.Title = "other title"
	_, err = repos.Article.CreateArticle(ctx, second, cat.ID)
	require.ErrorIs(t, err, ErrDuplicate)
	assert.Zero(t, second.ID)

	count, err := repos.Article.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestArticleRepository_UnknownCategory(t *testing.T) {
	repos := setupTestDB(t)
	_, err := repos.Article.CreateArticle(context.Background(), newArticle("https://x/fk", time.Now()), 999)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestArticleRepository_Updates(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	cat, err := repos.Category.CreateOrGetCategory(ctx, "General")
	require.NoError(t, err)
	id, err := repos.Article.CreateArticle(ctx, newArticle("https://x/u", time.Now()), cat.ID)
	require.NoError(t, err)

	require.NoError(t, repos.Article.UpdateArticleAudioPath(ctx, id, "news_audio/summary_1_x.mp3"))
	require.NoError(t, repos.Article.UpdateArticleSummary(ctx, id, "New summary."))

	got, err := repos.Article.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "news_audio/summary_1_x.mp3", got.AudioPath)
	require.NotNil(t, got.AudioGeneratedAt)
	assert.WithinDuration(t, time.Now(), *got.AudioGeneratedAt, time.Minute)
	assert.Equal(t, "New summary.", got.Summary)
	assert.Equal(t, "Some content for https://x/u", got.Content, "content untouched")

	require.ErrorIs(t, repos.Article.UpdateArticleAudioPath(ctx, 999, "x.mp3"), ErrNotFound)
	require.ErrorIs(t, repos.Article.UpdateArticleSummary(ctx, 999, "x"), ErrNotFound)
}

func TestArticleRepository_ListArticles(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	science, err := repos.Category.CreateOrGetCategory(ctx, "Science")
	require.NoError(t, err)
	sports, err := repos.Category.CreateOrGetCategory(ctx, "Sports")
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 6 {
		cat := science
		if i%2 == 1 {
			cat = sports
		}
		_, err := repos.Article.CreateArticle(ctx, newArticle(fmt.Sprintf("https://x/%d", i), base.Add(time.Duration(i)*time.Hour)), cat.ID)
		require.NoError(t, err)
	}

	t.Run("all newest first", func(t *testing.T) {
		res, err := repos.Article.ListArticles(ctx, domain.ArticleFilter{})
		require.NoError(t, err)
		require.Len(t, res, 6)
		assert.Equal(t, "https://x/5", res[0].Link)
		assert.Equal(t, "https://x/0", res[5].Link)
	})

	t.Run("by category", func(t *testing.T) {
		res, err := repos.Article.ListArticles(ctx, domain.ArticleFilter{Category: "Sports"})
		require.NoError(t, err)
		require.Len(t, res, 3)
		for _, a := range res {
			assert.Equal(t, "Sports", a.Category)
		}
		assert.Equal(t, "https://x/5", res[0].Link)
	})

	t.Run("limit and offset", func(t *testing.T) {
		res, err := repos.Article.ListArticles(ctx, domain.ArticleFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "https://x/4", res[0].Link)
		assert.Equal(t, "https://x/3", res[1].Link)
	})

	t.Run("unknown category", func(t *testing.T) {
		res, err := repos.Article.ListArticles(ctx, domain.ArticleFilter{Category: "Nope"})
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestArticleRepository_Approval(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	cat, err := repos.Category.CreateOrGetCategory(ctx, "General")
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]int64, 0, 4)
	for i := range 4 {
		id, err := repos.Article.CreateArticle(ctx, newArticle(fmt.Sprintf("https://x/%d", i), base.Add(time.Duration(i)*time.Hour)), cat.ID)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	stats, err := repos.Article.ArticleStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStats{Total: 4, Approved: 0, Pending: 4}, stats)

	n, err := repos.Article.SetArticlesApproved(ctx, true, ids[0], ids[2], 999)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "unknown id ignored")

	stats, err = repos.Article.ArticleStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStats{Total: 4, Approved: 2, Pending: 2}, stats)

	approved := true
	res, err := repos.Article.ListArticles(ctx, domain.ArticleFilter{Approved: &approved})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "https://x/2", res[0].Link)
	assert.Equal(t, "https://x/0", res[1].Link)
	assert.True(t, res[0].Approved)

	pending := false
	res, err = repos.Article.ListArticles(ctx, domain.ArticleFilter{Approved: &pending})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "https://x/3", res[0].Link)
	assert.False(t, res[0].Approved)

	n, err = repos.Article.SetArticlesApproved(ctx, false, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, err := repos.Article.GetArticle(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, got.Approved)

	n, err = repos.Article.SetArticlesApproved(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestArticleRepository_ArticleStatsEmpty(t *testing.T) {
	repos := setupTestDB(t)
	stats, err := repos.Article.ArticleStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleStats{}, stats)
}

func TestArticleRepository_ConcurrentCreate(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	cat, err := repos.Category.CreateOrGetCategory(ctx, "General")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created, dups := 0, 0
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Article.CreateArticle(ctx, newArticle("https://x/same", time.Now()), cat.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			assert.ErrorIs(t, err, ErrDuplicate)
			dups++
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, 9, dups)
}
