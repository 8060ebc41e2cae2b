package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/social-detail-bot/pkg/errors"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"github.com/orgball2608/social-detail-bot/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = retry.Config{
	MaxRetries:      2,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
	Multiplier:      1,
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/api/", "secret", 5*time.Second, logger.NewNop())
	require.NoError(t, err)
	return c.WithRetryConfig(fastRetry)
}

func TestGetUserByID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/jane", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"username":"jane","first_name":"Jane","last_name":"Doe","profile_photo":"p.jpg","cover_photo":null,"created_at":"2023-01-02T03:04:05.000Z"}`))
	}))

	u, err := c.GetUserByID(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "jane", u.Username)
	require.NotNil(t, u.ProfilePhoto)
	assert.Equal(t, "p.jpg", *u.ProfilePhoto)
	assert.Nil(t, u.CoverPhoto)
}

func TestGetPostByID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/12", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":12,"content":"hi","media_url":"m.mp4","created_at":"2024-01-01T00:00:00.000Z","user_id":7,"unique_id":"1234567890","user_name":"jane","user_profile_photo":null}`))
	}))

	p, err := c.GetPostByID(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.ID)
	assert.Equal(t, "m.mp4", p.Media())
	assert.Equal(t, "1234567890", p.UniqueID)
	assert.Nil(t, p.UserProfilePhoto)
}

func TestNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))

	_, err := c.GetPostByID(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.CodePostNotFound, errors.GetCode(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":1}`))
	}))

	p, err := c.GetPostByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestServerErrorsExhaustRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.GetUserByID(context.Background(), "jane")
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
	assert.Equal(t, int32(fastRetry.MaxRetries+1), calls.Load())
}

func TestUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.GetUserByID(context.Background(), "jane")
	assert.True(t, errors.IsUnauthorized(err))
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))

	_, err := c.GetPostByID(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, errors.CodeDecode, errors.GetCode(err))
}

func TestIDIsPathEscaped(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id":1}`))
	}))

	_, err := c.GetUserByID(context.Background(), "a/b")
	require.NoError(t, err)
}

func TestEmptyIDMakesNoRequest(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL)
	}))

	for _, id := range []string{"", ".", ".."} {
		_, err := c.GetPostByID(context.Background(), id)
		assert.True(t, errors.IsNotFound(err))
	}
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewClient("not a url", "", time.Second, logger.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
