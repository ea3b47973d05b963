package bundled

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/roadtrack/internal/roadmap"
)

func TestAll(t *testing.T) {
	ids := make([]string, 0, 3)
	for _, e := range All() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"react", "vue", "javascript"}, ids)
}

func TestLookup(t *testing.T) {
	ex, ok := Lookup("vue")
	require.True(t, ok)
	assert.Equal(t, "vue-roadmap.json", ex.File)

	_, ok = Lookup("angular")
	assert.False(t, ok)
}

func TestEmbeddedExamplesAreValid(t *testing.T) {
	for _, ex := range All() {
		t.Run(ex.ID, func(t *testing.T) {
			data, err := EmbeddedSource{}.Fetch(context.Background(), ex)
			require.NoError(t, err)

			// Bundled files must also pass the untrusted path.
			rm, err := roadmap.Decode(data)
			require.NoError(t, err)
			assert.NotEmpty(t, rm.Items)

			seen := make(map[string]bool)
			for _, it := range rm.Items {
				assert.False(t, seen[it.ID], "duplicate id %q", it.ID)
				seen[it.ID] = true
			}
		})
	}
}

func TestLoadUnknownExample(t *testing.T) {
	_, err := Load(context.Background(), EmbeddedSource{}, "svelte")
	assert.ErrorIs(t, err, ErrUnknownExample)
}

func TestLoadEmbedded(t *testing.T) {
	rm, err := Load(context.Background(), EmbeddedSource{}, "react")
	require.NoError(t, err)
	assert.Equal(t, "React Developer", rm.Name)
	assert.Equal(t, 0, roadmap.Progress(rm))
}

func TestHTTPSource(t *testing.T) {
	body, err := dataFS.ReadFile("data/javascript-roadmap.json")
	require.NoError(t, err)

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path != "/static/javascript-roadmap.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/static/", WithTimeout(5*time.Second))

	t.Run("success", func(t *testing.T) {
		rm, err := Load(context.Background(), src, "javascript")
		require.NoError(t, err)
		assert.Equal(t, "/static/javascript-roadmap.json", gotPath)
		assert.Equal(t, "JavaScript Fundamentals", rm.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Load(context.Background(), src, "vue")
		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
		assert.Equal(t, "vue", fe.ID)
	})
}

func TestHTTPSourceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := Load(context.Background(), NewHTTPSource(server.URL), "react")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
}

func TestHTTPSourceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := Load(context.Background(), NewHTTPSource(url), "react")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
	assert.NotNil(t, fe.Err)
}

func TestHTTPSourceCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, NewHTTPSource(server.URL), "react")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.ErrorIs(t, err, context.Canceled)
}
