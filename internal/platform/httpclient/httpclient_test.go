package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "v", r.Header.Get("X-Test"))

		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"got": in["say"]})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	var out struct {
		Got string `json:"got"`
	}
	err = c.DoJSON(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "echo",
		Header: map[string]string{"X-Test": "v"},
		Body:   map[string]string{"say": "hola"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hola", out.Got)
}

func TestDoJSON_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/forbidden" {
			http.Error(w, "nope", http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), Request{Path: "/forbidden"}, nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.True(t, httpErr.Rejected())
	assert.Equal(t, "nope", httpErr.Body)

	err = c.DoJSON(context.Background(), Request{Path: "/other"}, nil)
	require.True(t, errors.As(err, &httpErr))
	assert.False(t, httpErr.Rejected())
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: "::not a url"})
	assert.Error(t, err)
}
