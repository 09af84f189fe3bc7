package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/bytenews/pkg/domain"
	"github.com/umputun/bytenews/pkg/ingest"
	"github.com/umputun/bytenews/pkg/repository"
	"github.com/umputun/bytenews/pkg/summary"
)

const maxListLimit = 500

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.Version,
		"time":    time.Now().UTC(),
		"sources": len(s.updater.Sources()),
	}
	stats, err := s.articles.ArticleStats(r.Context())
	if err != nil {
		lgr.Printf("[WARN] can't count articles: %v", err)
	} else {
		status["articles"] = stats.Total
		status["approved"] = stats.Approved
		status["pending"] = stats.Pending
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listArticlesHandler returns stored articles, newest first
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.ArticleFilter{Category: r.URL.Query().Get("category")}
	var err error
	if filter.Limit, err = queryInt(r, "limit", 0, maxListLimit); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0, -1); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if v := r.URL.Query().Get("approved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid approved %q", v), http.StatusBadRequest)
			return
		}
		filter.Approved = &approved
	}

	articles, err := s.articles.ListArticles(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to list articles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, articles)
}

// getArticleHandler returns a single article
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	article, err := s.articles.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to get article %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, article)
}

// listCategoriesHandler returns all known categories
func (s *Server) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.ListCategories(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list categories: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, categories)
}

// listSourcesHandler returns configured feed sources
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.updater.Sources())
}

// regenerateSummaryHandler recomputes the summary with an optional length
func (s *Server) regenerateSummaryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	length := summary.Medium
	if v := r.URL.Query().Get("length"); v != "" {
		switch summary.Length(v) {
		case summary.Short, summary.Medium, summary.Long:
			length = summary.Length(v)
		default:
			renderError(w, r, fmt.Errorf("invalid length %q", v), http.StatusBadRequest)
			return
		}
	}

	res, err := s.regenerator.RegenerateSummary(r.Context(), id, length)
	if err != nil {
		lgr.Printf("[WARN] failed to regenerate summary for article %d: %v", id, err)
		renderStageError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "length": length, "summary": res})
}

// regenerateAudioHandler renders the current summary into a new audio file
func (s *Server) regenerateAudioHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	path, err := s.regenerator.RegenerateAudio(r.Context(), id)
	if err != nil {
		lgr.Printf("[WARN] failed to regenerate audio for article %d: %v", id, err)
		renderStageError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "audio_path": path})
}

// approveArticleHandler marks the article approved on POST and back to pending on DELETE
func (s *Server) approveArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	approved := r.Method == http.MethodPost
	updated, err := s.articles.SetArticlesApproved(r.Context(), approved, id)
	if err != nil {
		lgr.Printf("[ERROR] failed to set approval for article %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if updated == 0 {
		renderError(w, r, fmt.Errorf("article %d: %w", id, repository.ErrNotFound), http.StatusNotFound)
		return
	}
	lgr.Printf("[INFO] article %d approved=%v", id, approved)
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "approved": approved})
}

// ingestHandler runs a full ingestion pass and reports the number of new articles
func (s *Server) ingestHandler(w http.ResponseWriter, r *http.Request) {
	added := s.updater.UpdateNow(r.Context())
	renderJSON(w, r, http.StatusOK, rest.JSON{"added": added})
}

// renderStageError maps pipeline failures to a status code and reports the failed stage.
// Missing articles are 404, disabled audio is 503, anything else gets the given code.
func renderStageError(w http.ResponseWriter, r *http.Request, err error, code int) {
	resp := rest.JSON{"error": err.Error()}
	var se *ingest.StageError
	if errors.As(err, &se) {
		resp["stage"] = se.Stage
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ingest.ErrAudioDisabled):
		code = http.StatusServiceUnavailable
	}
	renderJSON(w, r, code, resp)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid article ID %q", r.PathValue("id"))
	}
	return id, nil
}

// queryInt parses a non-negative int query parameter, max < 0 means no upper bound
func queryInt(r *http.Request, name string, def, maxVal int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	if maxVal >= 0 && n > maxVal {
		n = maxVal
	}
	return n, nil
}
