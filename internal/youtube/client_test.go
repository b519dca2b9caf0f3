package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FindTrailer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "The Matrix 1999 trailer", q.Get("q"))
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "1", q.Get("maxResults"))
		assert.Equal(t, "yt-key", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":{"kind":"youtube#video","videoId":"vKQi3bBA1y8"},"snippet":{"title":"The Matrix (1999) Official Trailer"}}]}`))
	}))
	defer server.Close()

	client := NewClient("yt-key", WithBaseURL(server.URL))

	got, err := client.FindTrailer(context.Background(), "The Matrix", 1999)
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/vKQi3bBA1y8", got)
}

func TestClient_FindTrailer_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := NewClient("yt-key", WithBaseURL(server.URL))

	_, err := client.FindTrailer(context.Background(), "Zzyzx", 0)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestClient_FindTrailer_SkipsNonVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":{"kind":"youtube#channel","channelId":"UC1"}}]}`))
	}))
	defer server.Close()

	client := NewClient("yt-key", WithBaseURL(server.URL))

	_, err := client.FindTrailer(context.Background(), "Heat", 1995)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestClient_FindTrailer_Quota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The request cannot be completed because you have exceeded your quota."}}`))
	}))
	defer server.Close()

	client := NewClient("yt-key", WithBaseURL(server.URL))

	_, err := client.FindTrailer(context.Background(), "Heat", 1995)
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "exceeded your quota")
}

func TestClient_FindTrailer_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("yt-key", WithBaseURL(server.URL))

	_, err := client.FindTrailer(context.Background(), "Heat", 1995)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)
	assert.Contains(t, err.Error(), "500")
}

func TestEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/abc_-123", EmbedURL("abc_-123"))
}
