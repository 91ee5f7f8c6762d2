package httpstore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const twoTodos = `[
	{"userId": 1, "id": 1, "title": "delectus aut autem", "completed": false},
	{"userId": 1, "id": 2, "title": "quis ut nam facilis", "completed": true}
]`

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(Options{Endpoint: srv.URL + "/todos", HTTP: srv.Client()})
	require.NoError(t, err)
	return c
}

func TestFetchSendsLimitAndDecodes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/todos", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("_limit"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoTodos))
	}))
	defer srv.Close()

	todos, err := newTestClient(t, srv).Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, int32(1), hits.Load())

	assert.Equal(t, 1, todos[0].ID)
	assert.Equal(t, 1, todos[0].OwnerID)
	assert.Equal(t, "delectus aut autem", todos[0].Title)
	assert.False(t, todos[0].Completed)
	assert.True(t, todos[1].Completed)
}

func TestFetchKeepsExistingQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("userId"))
		assert.Equal(t, "7", r.URL.Query().Get("_limit"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(Options{Endpoint: srv.URL + "/todos?userId=3", HTTP: srv.Client()})
	require.NoError(t, err)
	todos, err := c.Fetch(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Fetch(context.Background(), 5)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Contains(t, statusErr.Error(), "boom")
	assert.Equal(t, KindStatus, Classify(err))
}

func TestFetchDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Fetch(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, KindDecode, Classify(err))
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{Endpoint: url})
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, KindRefused, Classify(err))
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Options{Endpoint: srv.URL, HTTP: srv.Client()})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Fetch(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, Classify(err))
}

func TestNewDefaultsAndValidation(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.Endpoint())

	_, err = New(Options{Endpoint: "::not a url"})
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, KindNetwork, Classify(errors.New("something odd")))
	assert.Equal(t, KindStatus, Classify(&StatusError{Code: 404}))
	assert.Equal(t, "unexpected status 404", (&StatusError{Code: 404}).Error())
}
