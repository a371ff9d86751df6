package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestShortener(t *testing.T, token string, handler http.HandlerFunc) *ShortenerClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewShortenerClient(token)
	c.apiURL = srv.URL
	return c
}

func TestShorten_Success(t *testing.T) {
	c := newTestShortener(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"link":"https://bit.ly/abc123","id":"bit.ly/abc123"}`))
	})

	got := c.Shorten(context.Background(), "https://www.amazon.in/dp/B0ABCDEFG1?tag=myid-21")
	assert.Equal(t, "https://bit.ly/abc123", got)
}

func TestShorten_NoTokenIsPassThrough(t *testing.T) {
	called := false
	c := newTestShortener(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	longURL := "https://www.amazon.in/dp/B0ABCDEFG1?tag=myid-21"
	assert.Equal(t, longURL, c.Shorten(context.Background(), longURL))
	assert.False(t, called, "no request should be issued without a token")
}

func TestShorten_ServerErrorFallsBack(t *testing.T) {
	c := newTestShortener(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	longURL := "https://www.amazon.in/dp/B0ABCDEFG1?tag=myid-21"
	assert.Equal(t, longURL, c.Shorten(context.Background(), longURL))
}

func TestShorten_MalformedBodyFallsBack(t *testing.T) {
	c := newTestShortener(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	longURL := "https://www.amazon.in/dp/B0ABCDEFG1?tag=myid-21"
	assert.Equal(t, longURL, c.Shorten(context.Background(), longURL))
}

func TestShorten_MissingLinkFieldFallsBack(t *testing.T) {
	c := newTestShortener(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"bit.ly/abc123"}`))
	})

	longURL := "https://www.amazon.in/dp/B0ABCDEFG1?tag=myid-21"
	assert.Equal(t, longURL, c.Shorten(context.Background(), longURL))
}

func TestShorten_TransportErrorFallsBack(t *testing.T) {
	c := NewShortenerClient("secret-token")
	c.apiURL = "http://127.0.0.1:1" // nothing listens here

	longURL := "https://www.amazon.in/dp/B0ABCDEFG1?tag=myid-21"
	assert.Equal(t, longURL, c.Shorten(context.Background(), longURL))
}
