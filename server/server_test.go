package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/bytenews/pkg/domain"
	"github.com/umputun/bytenews/pkg/ingest"
	"github.com/umputun/bytenews/pkg/repository"
	"github.com/umputun/bytenews/pkg/summary"
	"github.com/umputun/bytenews/server/mocks"
)

type testDeps struct {
	articles    *mocks.ArticlesMock
	categories  *mocks.CategoriesMock
	regenerator *mocks.RegeneratorMock
	updater     *mocks.UpdaterMock
}

func newTestDeps() *testDeps {
	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stored := []domain.Article{
		{ID: 2, Title: "Match report", Link: "https://news.example.com/match", Summary: "Home team won.", Published: published,
			Source: "Sport Wire", Category: "Sports", CategoryID: 1, AudioPath: "news_audio/summary_2_x.mp3"},
		{ID: 1, Title: "Market update", Link: "https://news.example.com/market", Summary: "Stocks rose.",
			Published: published.Add(-time.Hour), Source: "Biz Wire", Category: "Business", CategoryID: 2},
	}
	return &testDeps{
		articles: &mocks.ArticlesMock{
			GetArticleFunc: func(_ context.Context, id int64) (*domain.Article, error) {
				for _, a := range stored {
					if a.ID == id {
						return &a, nil
					}
				}
				return nil, fmt.Errorf("get article %d: %w", id, repository.ErrNotFound)
			},
			ListArticlesFunc: func(_ context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
				res := []domain.Article{}
				for _, a := range stored {
					if filter.Category == "" || a.Category == filter.Category {
						res = append(res, a)
					}
				}
				return res, nil
			},
			ArticleStatsFunc: func(context.Context) (domain.ArticleStats, error) {
				return domain.ArticleStats{Total: int64(len(stored)), Approved: 1, Pending: 1}, nil
			},
			SetArticlesApprovedFunc: func(_ context.Context, _ bool, ids ...int64) (int64, error) {
				var n int64
				for _, id := range ids {
					for _, a := range stored {
						if a.ID == id {
							n++
						}
					}
				}
				return n, nil
			},
		},
		categories: &mocks.CategoriesMock{
			ListCategoriesFunc: func(context.Context) ([]domain.Category, error) {
				return []domain.Category{{ID: 2, Name: "Business"}, {ID: 1, Name: "Sports"}}, nil
			},
		},
		regenerator: &mocks.RegeneratorMock{
			RegenerateSummaryFunc: func(_ context.Context, id int64, length summary.Length) (string, error) {
				return fmt.Sprintf("%s summary of %d", length, id), nil
			},
			RegenerateAudioFunc: func(_ context.Context, id int64) (string, error) {
				return fmt.Sprintf("news_audio/summary_%d_new.mp3", id), nil
			},
		},
		updater: &mocks.UpdaterMock{
			UpdateNowFunc: func(context.Context) int { return 3 },
			SourcesFunc: func() []domain.FeedSource {
				return []domain.FeedSource{{Name: "Sport Wire", URL: "https://sport.example.com/rss"}}
			},
		},
	}
}

func (d *testDeps) server(params Params) *Server {
	if params.BaseURL == "" {
		params.BaseURL = "https://bytenews.example.com"
	}
	return New(params, d.articles, d.categories, d.regenerator, d.updater)
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func TestServer_New(t *testing.T) {
	srv := New(Params{Version: "1.0.0"}, nil, nil, nil, nil)
	require.NotNil(t, srv)
	assert.Equal(t, ":8080", srv.Listen)
	assert.Equal(t, 30*time.Second, srv.Timeout)
	assert.Equal(t, "1.0.0", srv.Version)
	assert.False(t, srv.Debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	deps := newTestDeps()
	srv := deps.server(Params{Listen: fmt.Sprintf("127.0.0.1:%d", port), Timeout: 5 * time.Second, Version: "1.0.0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "bytenews", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_Status(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{Version: "1.2.3"})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	res := decodeJSON(t, rec)
	assert.Equal(t, "ok", res["status"])
	assert.Equal(t, "1.2.3", res["version"])
	assert.InDelta(t, 2, res["articles"], 0)
	assert.InDelta(t, 1, res["approved"], 0)
	assert.InDelta(t, 1, res["pending"], 0)
	assert.InDelta(t, 1, res["sources"], 0)

	t.Run("count failure is not fatal", func(t *testing.T) {
		deps.articles.ArticleStatsFunc = func(context.Context) (domain.ArticleStats, error) {
			return domain.ArticleStats{}, errors.New("db down")
		}
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/status")
		require.Equal(t, http.StatusOK, rec.Code)
		_, ok := decodeJSON(t, rec)["articles"]
		assert.False(t, ok)
	})
}

func TestServer_ListArticles(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	t.Run("all", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles")
		require.Equal(t, http.StatusOK, rec.Code)
		var articles []domain.Article
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
		require.Len(t, articles, 2)
		assert.Equal(t, "Match report", articles[0].Title)
		assert.Equal(t, "news_audio/summary_2_x.mp3", articles[0].AudioPath)
	})

	t.Run("filter passed to store", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles?category=Business&limit=10&offset=5")
		require.Equal(t, http.StatusOK, rec.Code)
		calls := deps.articles.ListArticlesCalls()
		assert.Equal(t, domain.ArticleFilter{Category: "Business", Limit: 10, Offset: 5}, calls[len(calls)-1].Filter)
	})

	t.Run("approved filter", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles?approved=true")
		require.Equal(t, http.StatusOK, rec.Code)
		calls := deps.articles.ListArticlesCalls()
		require.NotNil(t, calls[len(calls)-1].Filter.Approved)
		assert.True(t, *calls[len(calls)-1].Filter.Approved)

		rec = doRequest(t, srv, http.MethodGet, "/api/v1/articles?approved=0")
		require.Equal(t, http.StatusOK, rec.Code)
		calls = deps.articles.ListArticlesCalls()
		require.NotNil(t, calls[len(calls)-1].Filter.Approved)
		assert.False(t, *calls[len(calls)-1].Filter.Approved)
	})

	t.Run("limit capped", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles?limit=100000")
		require.Equal(t, http.StatusOK, rec.Code)
		calls := deps.articles.ListArticlesCalls()
		assert.Equal(t, maxListLimit, calls[len(calls)-1].Filter.Limit)
	})

	t.Run("bad params", func(t *testing.T) {
		for _, q := range []string{"limit=abc", "limit=-1", "offset=x", "approved=maybe"} {
			rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles?"+q)
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})

	t.Run("store error", func(t *testing.T) {
		deps.articles.ListArticlesFunc = func(context.Context, domain.ArticleFilter) ([]domain.Article, error) {
			return nil, errors.New("db down")
		}
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "db down", decodeJSON(t, rec)["error"])
	})
}

func TestServer_GetArticle(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles/1")
	require.Equal(t, http.StatusOK, rec.Code)
	var article domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, int64(1), article.ID)
	assert.Equal(t, "Business", article.Category)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/articles/42")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/articles/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/articles/0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CategoriesAndSources(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []domain.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Equal(t, []domain.Category{{ID: 2, Name: "Business"}, {ID: 1, Name: "Sports"}}, categories)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/sources")
	require.Equal(t, http.StatusOK, rec.Code)
	var sources []domain.FeedSource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sources))
	assert.Equal(t, []domain.FeedSource{{Name: "Sport Wire", URL: "https://sport.example.com/rss"}}, sources)

	deps.categories.ListCategoriesFunc = func(context.Context) ([]domain.Category, error) { return nil, errors.New("db down") }
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/categories")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_RegenerateSummary(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	t.Run("default length", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/summary")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decodeJSON(t, rec)
		assert.Equal(t, "medium summary of 2", res["summary"])
		assert.Equal(t, "medium", res["length"])
	})

	t.Run("explicit length", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/summary?length=long")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "long summary of 2", decodeJSON(t, rec)["summary"])
		calls := deps.regenerator.RegenerateSummaryCalls()
		assert.Equal(t, summary.Long, calls[len(calls)-1].Length)
	})

	t.Run("invalid length", func(t *testing.T) {
		before := len(deps.regenerator.RegenerateSummaryCalls())
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/summary?length=huge")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Len(t, deps.regenerator.RegenerateSummaryCalls(), before)
	})

	t.Run("failure reports stage", func(t *testing.T) {
		deps.regenerator.RegenerateSummaryFunc = func(context.Context, int64, summary.Length) (string, error) {
			return "", &ingest.StageError{Stage: ingest.StageSummary, Err: ingest.ErrNoContent}
		}
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/summary")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		res := decodeJSON(t, rec)
		assert.Equal(t, "summary", res["stage"])
		assert.Contains(t, res["error"], "article has no content")
	})

	t.Run("missing article", func(t *testing.T) {
		deps.regenerator.RegenerateSummaryFunc = func(context.Context, int64, summary.Length) (string, error) {
			return "", &ingest.StageError{Stage: ingest.StageSummary, Err: repository.ErrNotFound}
		}
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/99/summary")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "summary", decodeJSON(t, rec)["stage"])
	})
}

func TestServer_RegenerateAudio(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/audio")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "news_audio/summary_2_new.mp3", decodeJSON(t, rec)["audio_path"])

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "backend failure", err: errors.New("tts backend: 500"), code: http.StatusBadGateway},
		{name: "disabled", err: ingest.ErrAudioDisabled, code: http.StatusServiceUnavailable},
		{name: "not found", err: repository.ErrNotFound, code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps.regenerator.RegenerateAudioFunc = func(context.Context, int64) (string, error) {
				return "", &ingest.StageError{Stage: ingest.StageAudio, Err: tt.err}
			}
			rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/audio")
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "audio", decodeJSON(t, rec)["stage"])
		})
	}

	// mounted api group answers unmatched methods with not found
	for _, path := range []string{"/api/v1/articles/2/audio", "/api/v1/articles/2/summary", "/api/v1/ingest"} {
		rec = doRequest(t, srv, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
	assert.Len(t, deps.regenerator.RegenerateAudioCalls(), 4)
	assert.Empty(t, deps.updater.UpdateNowCalls())
}

func TestServer_ApproveArticle(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/approve")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeJSON(t, rec)
	assert.Equal(t, true, res["approved"])
	assert.InDelta(t, 2, res["id"], 0)

	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/articles/2/approve")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeJSON(t, rec)["approved"])

	calls := deps.articles.SetArticlesApprovedCalls()
	require.Len(t, calls, 2)
	assert.True(t, calls[0].Approved)
	assert.Equal(t, []int64{2}, calls[0].Ids)
	assert.False(t, calls[1].Approved)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/articles/99/approve")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/articles/x/approve")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	deps.articles.SetArticlesApprovedFunc = func(context.Context, bool, ...int64) (int64, error) {
		return 0, errors.New("db down")
	}
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/articles/2/approve")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_Ingest(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/ingest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 3, decodeJSON(t, rec)["added"], 0)
	assert.Len(t, deps.updater.UpdateNowCalls(), 1)
}

func TestServer_RSS(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	t.Run("all categories", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/rss")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "<title>ByteNews - All Categories</title>")
		assert.Contains(t, body, "<title>Match report</title>")
		assert.Contains(t, body, "<title>Market update</title>")
		assert.Contains(t, body, `url="https://bytenews.example.com/media/news_audio/summary_2_x.mp3"`)
		assert.Contains(t, body, `type="audio/mpeg"`)
	})

	t.Run("single category", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/rss/Business")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<title>ByteNews - Business</title>")
		assert.Contains(t, body, "<title>Market update</title>")
		assert.NotContains(t, body, "Match report")
		calls := deps.articles.ListArticlesCalls()
		assert.Equal(t, domain.ArticleFilter{Category: "Business", Limit: defaultRSSLimit}, calls[len(calls)-1].Filter)
	})

	t.Run("category query param", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/rss?category=Sports")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>ByteNews - Sports</title>")
	})

	t.Run("store error", func(t *testing.T) {
		deps.articles.ListArticlesFunc = func(context.Context, domain.ArticleFilter) ([]domain.Article, error) {
			return nil, errors.New("db down")
		}
		rec := doRequest(t, srv, http.MethodGet, "/rss")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_OPML(t *testing.T) {
	deps := newTestDeps()
	srv := deps.server(Params{})

	rec := doRequest(t, srv, http.MethodGet, "/opml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/x-opml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `xmlUrl="https://sport.example.com/rss"`)
}

func TestServer_Media(t *testing.T) {
	mediaDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(mediaDir, "news_audio"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "news_audio", "summary_1_a.mp3"), []byte("ID3 audio"), 0o600))

	deps := newTestDeps()
	srv := deps.server(Params{MediaDir: mediaDir})

	rec := doRequest(t, srv, http.MethodGet, "/media/news_audio/summary_1_a.mp3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ID3 audio", rec.Body.String())

	rec = doRequest(t, srv, http.MethodGet, "/media/news_audio/missing.mp3")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("not served without media dir", func(t *testing.T) {
		srv := deps.server(Params{})
		rec := doRequest(t, srv, http.MethodGet, "/media/news_audio/summary_1_a.mp3")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Recoverer(t *testing.T) {
	deps := newTestDeps()
	deps.articles.GetArticleFunc = func(context.Context, int64) (*domain.Article, error) { panic("boom") }
	srv := deps.server(Params{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/articles/1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), `"id"`))
}
