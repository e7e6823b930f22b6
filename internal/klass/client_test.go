package klass

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vardef/pkg/platform/sentinel"
)

// =============================================================================
// Klass client
// =============================================================================
// Justification: paging and status handling are the only logic in the client, so
// an httptest server standing in for the Klass API is the right level.

func halPage(codes string, next string) string {
	links := `{}`
	if next != "" {
		links = fmt.Sprintf(`{"next":{"href":%q}}`, next)
	}
	return fmt.Sprintf(`{"_embedded":{"codes":[%s]},"_links":%s}`, codes, links)
}

func TestClientFetchClassification(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classifications/702/codes", r.URL.Path)
		assert.Equal(t, codesFrom, r.URL.Query().Get("from"))
		assert.NotEmpty(t, r.URL.Query().Get("to"))

		lang := r.URL.Query().Get("language")
		w.Header().Set("Content-Type", "application/hal+json")
		if r.URL.Query().Get("page") == "" {
			next := srv.URL + "/classifications/702/codes?language=" + lang + "&from=" + codesFrom + "&to=2030-01-01&page=1"
			fmt.Fprint(w, halPage(`{"code":"01","name":"Person `+lang+`","level":"1","validFrom":"2010-01-01"}`, next))
			return
		}
		fmt.Fprint(w, halPage(`{"code":"20","name":"Foretak `+lang+`","level":"1","validTo":"2024-12-31"}`, ""))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	got, err := c.FetchClassification(context.Background(), "702")
	require.NoError(t, err)

	assert.Equal(t, "702", got.ID)
	assert.Equal(t, 2, got.Size())
	require.Contains(t, got.Codes, "en")
	assert.Equal(t, "Person en", got.Codes["en"]["01"].Name)
	assert.Equal(t, "Foretak nn", got.Codes["nn"]["20"].Name)
	require.NotNil(t, got.Codes["nb"]["01"].ValidFrom)
	assert.Equal(t, 2010, got.Codes["nb"]["01"].ValidFrom.Year())
	assert.NotNil(t, got.Codes["nb"]["20"].ValidTo)
}

func TestClientAcceptsPlainCodeList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"codes":[{"code":"he04","name":"Helse"}]}`)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, time.Second, nil).FetchClassification(context.Background(), "618")
	require.NoError(t, err)
	assert.True(t, got.Has("he04"))
}

func TestClientErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, nil).FetchClassification(context.Background(), "999")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("server errors are retried then unavailable", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, nil)
		c.http.RetryWaitMin = time.Millisecond
		c.http.RetryWaitMax = time.Millisecond
		_, err := c.FetchClassification(context.Background(), "702")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.Equal(t, int32(4), calls.Load())
	})

	t.Run("timeout bounds retries and backoff", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 150*time.Millisecond, nil)
		start := time.Now()
		_, err := c.FetchClassification(context.Background(), "702")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.Less(t, time.Since(start), time.Second)
		assert.Less(t, calls.Load(), int32(4))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>maintenance</html>`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, nil).FetchClassification(context.Background(), "702")
		assert.ErrorIs(t, err, sentinel.ErrBadData)
	})

	t.Run("endless paging is cut off", func(t *testing.T) {
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, halPage(`{"code":"01","name":"x"}`, srv.URL+r.URL.Path+"?again=1"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, nil).FetchClassification(context.Background(), "702")
		assert.ErrorIs(t, err, sentinel.ErrBadData)
	})
}
