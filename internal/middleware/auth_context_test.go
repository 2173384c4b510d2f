package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/ports/auth"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(_ context.Context, _ string) (auth.Claims, error) {
	return s.claims, s.err
}

func capture(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) (access.Principal, bool) {
	t.Helper()
	var (
		got access.Principal
		ok  bool
	)
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = GetPrincipal(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext_DevHeaders(t *testing.T) {
	mw := AuthContext(nil, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "C123")
	p, ok := capture(t, mw, req)
	require.True(t, ok)
	assert.Equal(t, access.Principal{ID: "C123", Role: access.RoleClient, OwnedResourceID: "C123"}, p)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "acct-9")
	req.Header.Set(HeaderDebugRole, "employee")
	req.Header.Set(HeaderDebugOwnedID, "E5")
	p, ok = capture(t, mw, req)
	require.True(t, ok)
	assert.Equal(t, access.RoleEmployee, p.Role)
	assert.Equal(t, "E5", p.OwnedResourceID)
}

func TestAuthContext_NoHeadersNoPrincipal(t *testing.T) {
	_, ok := capture(t, AuthContext(nil, logger.Nop()), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestAuthContext_Bearer(t *testing.T) {
	mw := AuthContext(stubVerifier{claims: auth.Claims{Subject: "E1", Role: "admin"}}, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer v4.local.abc")
	p, ok := capture(t, mw, req)
	require.True(t, ok)
	assert.True(t, p.IsAdmin())

	// los headers de debug se ignoran fuera de modo dev
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "C123")
	_, ok = capture(t, mw, req)
	assert.False(t, ok)
}

func TestAuthContext_RejectedToken(t *testing.T) {
	mw := AuthContext(stubVerifier{err: errors.New("expired")}, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	_, ok := capture(t, mw, req)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("abc"))
}
