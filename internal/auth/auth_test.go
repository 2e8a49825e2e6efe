package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tango/internal/vocab"
)

func TestNewStaticTokens_Validation(t *testing.T) {
	_, err := NewStaticTokens([]User{{ID: "u1", Token: ""}})
	assert.Error(t, err)

	_, err = NewStaticTokens([]User{{ID: "u1", Token: "t"}, {ID: "u2", Token: "t"}})
	assert.Error(t, err)

	v, err := NewStaticTokens(nil)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), "anything")
	assert.ErrorIs(t, err, vocab.ErrUnauthorized)
}

func TestStaticTokens_Verify(t *testing.T) {
	v, err := NewStaticTokens([]User{{ID: "u1", Token: " tok-1 "}, {ID: "u2", Token: "tok-2"}})
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	id, err = v.Verify(context.Background(), "tok-2")
	require.NoError(t, err)
	assert.Equal(t, "u2", id)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, vocab.ErrUnauthorized)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer  abc ", want: "abc"},
		{header: "Basic abc", want: ""},
		{header: "abc", want: ""},
		{header: "", want: ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, BearerToken(r), "header %q", tt.header)
	}
}

func TestMiddleware_AttachesUser(t *testing.T) {
	v, err := NewStaticTokens([]User{{ID: "u1", Token: "tok"}})
	require.NoError(t, err)

	var seen string
	h := Middleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/folders", nil)
	r.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "u1", seen)

	r = httptest.NewRequest(http.MethodGet, "/folders", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "", seen)
}
