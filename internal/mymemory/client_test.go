package mymemory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestTranslate(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Hello", r.URL.Query().Get("q"))
		assert.Equal(t, "en|fr", r.URL.Query().Get("langpair"))
		assert.Equal(t, "ops@example.com", r.URL.Query().Get("de"))
		fmt.Fprint(w, `{"responseData":{"translatedText":"Bonjour","match":1},"responseStatus":200}`)
	})

	client := NewClient(srv.URL, "ops@example.com", 100, srv.Client())
	got, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)
}

func TestTranslateWithoutEmail(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["de"]
		assert.False(t, ok)
		fmt.Fprint(w, `{"responseData":{"translatedText":"Hola"}}`)
	})

	got, err := NewClient(srv.URL, "", 100, srv.Client()).Translate(context.Background(), "Hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "Hola", got)
}

func TestTranslateFailures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "http status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: ErrRejected,
		},
		{
			name: "numeric response status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"responseData":{"translatedText":"MYMEMORY WARNING: YOU USED ALL AVAILABLE FREE TRANSLATIONS"},"responseStatus":429}`)
			},
			wantErr: ErrRejected,
		},
		{
			name: "string response status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"responseData":{"translatedText":"INVALID LANGUAGE PAIR"},"responseStatus":"403","responseDetails":"bad langpair"}`)
			},
			wantErr: ErrRejected,
		},
		{
			name: "empty text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"responseData":{"translatedText":""},"responseStatus":200}`)
			},
			wantErr: ErrEmptyTranslation,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			srv := newServer(t, testCase.handler)
			got, err := NewClient(srv.URL, "", 100, srv.Client()).Translate(context.Background(), "Hello", "en", "fr")
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Empty(t, got)
		})
	}
}

func TestTranslateUndecodableBody(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>oops</html>")
	})

	_, err := NewClient(srv.URL, "", 100, srv.Client()).Translate(context.Background(), "Hello", "en", "fr")
	assert.Error(t, err)
}

func TestTranslatePacing(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"responseData":{"translatedText":"ok"},"responseStatus":200}`)
	})

	// one request every 100ms: the third call cannot start before ~200ms
	client := NewClient(srv.URL, "", 10, srv.Client())
	start := time.Now()
	for range 3 {
		_, err := client.Translate(context.Background(), "x", "en", "fr")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTranslateLimiterHonoursContext(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responseData":{"translatedText":"ok"}}`)
	})

	client := NewClient(srv.URL, "", 0.1, srv.Client())
	_, err := client.Translate(context.Background(), "x", "en", "fr")
	require.NoError(t, err, "first call uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Translate(ctx, "x", "en", "fr")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}
