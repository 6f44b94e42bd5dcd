package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPVideoGenerate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"video_url": "https://cdn.example.com/out.mp4"})
	}))
	defer srv.Close()

	p := NewHTTPVideo("runway", srv.URL, "secret", 10*time.Second)
	url, err := p.GenerateVideo(context.Background(), VideoRequest{Prompt: "a cat", Duration: 15})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/out.mp4", url)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "a cat", gotBody["prompt"])
	assert.Equal(t, float64(15), gotBody["duration"])
}

func TestHTTPVideoAlternateURLField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/alt.mp4"})
	}))
	defer srv.Close()

	p := NewHTTPVideo("kling", srv.URL, "secret", 10*time.Second)
	url, err := p.GenerateVideo(context.Background(), VideoRequest{Prompt: "waves"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/alt.mp4", url)
}

func TestHTTPVideoRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewHTTPVideo("sora", srv.URL, "secret", 10*time.Second)
	_, err := p.GenerateVideo(context.Background(), VideoRequest{Prompt: "x"})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "sora", perr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
}

func TestHTTPVideoEmptyResultURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewHTTPVideo("hailuo", srv.URL, "secret", 10*time.Second)
	_, err := p.GenerateVideo(context.Background(), VideoRequest{Prompt: "x"})
	assert.Error(t, err)
}

func TestHTTPVideoMissingKey(t *testing.T) {
	p := NewHTTPVideo("runway", "https://example.com", "", 10*time.Second)
	_, err := p.GenerateVideo(context.Background(), VideoRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}
