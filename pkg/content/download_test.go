package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPDownloader_Download(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	defer ts.Close()

	d := NewHTTPDownloader(DownloaderParams{Timeout: time.Second, UserAgent: "ByteNewsScraper/1.0"})
	body, err := d.Download(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<p>hello</p>")
	assert.Equal(t, "ByteNewsScraper/1.0", ua)
}

func TestHTTPDownloader_Charset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1252")
		_, _ = w.Write([]byte("<html><body><p>caf\xe9 cr\xe8me</p></body></html>"))
	}))
	defer ts.Close()

	d := NewHTTPDownloader(DownloaderParams{Timeout: time.Second})
	body, err := d.Download(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html><body><p>café crème</p></body></html>", string(body))
}

func TestHTTPDownloader_Retries(t *testing.T) {
	t.Run("server error is retried", func(t *testing.T) {
		var hits int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&hits, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer ts.Close()

		d := NewHTTPDownloader(DownloaderParams{Timeout: time.Second, Retries: 3, Delay: time.Millisecond})
		body, err := d.Download(context.Background(), ts.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", string(body))
		assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	})

	t.Run("not found is not retried", func(t *testing.T) {
		var hits int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		d := NewHTTPDownloader(DownloaderParams{Timeout: time.Second, Retries: 3, Delay: time.Millisecond})
		_, err := d.Download(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		var hits int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		d := NewHTTPDownloader(DownloaderParams{Timeout: time.Second, Retries: 2, Delay: time.Millisecond})
		_, err := d.Download(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})
}

func TestHTTPDownloader_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	d := NewHTTPDownloader(DownloaderParams{Timeout: 100 * time.Millisecond})
	start := time.Now()
	_, err := d.Download(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHTTPDownloader_InvalidURL(t *testing.T) {
	d := NewHTTPDownloader(DownloaderParams{Timeout: time.Second, Retries: 3})
	for _, u := range []string{"", "not-a-url", "://bad"} {
		_, err := d.Download(context.Background(), u)
		require.Error(t, err, "url %q", u)
	}
}
