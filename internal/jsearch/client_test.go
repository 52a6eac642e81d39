package jsearch

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
)

const searchBody = `{
	"status": "OK",
	"request_id": "req-1",
	"data": [
		{
			"job_id": "abc123",
			"employer_name": "Acme",
			"job_title": "React developer",
			"job_country": "US",
			"job_is_remote": true,
			"job_highlights": {"Qualifications": ["3+ years React"]}
		},
		{"job_id": "def456", "job_title": "Frontend engineer"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key",
		WithBaseURL(server.URL),
		WithBaseBackoff(time.Millisecond),
	)
	require.NoError(t, err)
	return client
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, ErrAPIKeyNotSet)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient("key")
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, defaultHost, client.host)
	assert.Equal(t, 2, client.maxRetries)
}

func TestSearch_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "React developer", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "1", r.URL.Query().Get("num_pages"))
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, defaultHost, r.Header.Get("X-RapidAPI-Host"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})

	jobs, err := client.Search(context.Background(), SearchParams{Query: "React developer", Page: 2})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "abc123", jobs[0].JobID)
	require.NotNil(t, jobs[0].EmployerName)
	assert.Equal(t, "Acme", *jobs[0].EmployerName)
	assert.True(t, jobs[0].JobIsRemote)
	require.NotNil(t, jobs[0].JobHighlights)
	assert.Equal(t, []string{"3+ years React"}, jobs[0].JobHighlights.Qualifications)

	assert.Nil(t, jobs[1].EmployerName)
	assert.Nil(t, jobs[1].JobHighlights)
}

func TestSearch_QueryRequired(t *testing.T) {
	client, err := NewClient("key")
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchParams{})
	assert.ErrorIs(t, err, ErrQueryRequired)
}

func TestSearch_EmptyData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","data":null}`))
	})

	jobs, err := client.Search(context.Background(), SearchParams{Query: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestDetails_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job-details", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("job_id"))
		_, _ = w.Write([]byte(`{"status":"OK","data":[{"job_id":"abc123","job_title":"React developer"}]}`))
	})

	jobs, err := client.Details(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "abc123", jobs[0].JobID)
}

func TestDetails_JobIDRequired(t *testing.T) {
	client, err := NewClient("key")
	require.NoError(t, err)

	_, err = client.Details(context.Background(), "")
	assert.ErrorIs(t, err, ErrJobIDRequired)
}

func TestDetails_APIErrorInBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ERROR","error":{"message":"Invalid job_id","code":400}}`))
	})

	_, err := client.Details(context.Background(), "bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "Invalid job_id")
}

func TestSearch_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	})

	jobs, err := client.Search(context.Background(), SearchParams{Query: "go"})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSearch_RateLimitedExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "go"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSearch_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "go"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearch_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := client.Search(context.Background(), SearchParams{Query: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}

func TestSearch_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, SearchParams{Query: "go"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
