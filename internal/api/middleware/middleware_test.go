package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles"
	"github.com/m04kA/SMC-MarketplaceService/pkg/jwt"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
)

const testSecret = "test-secret"

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	var gotUserID int64
	h := Auth(testSecret, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	valid, err := jwt.GenerateToken(7, testSecret, 1)
	require.NoError(t, err)
	forged, err := jwt.GenerateToken(7, "other-secret", 1)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "no bearer prefix", header: valid, wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			r := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(7), gotUserID)
			}
		})
	}
}

type staticRoles map[int64]domain.Role

func (s staticRoles) GetRole(_ context.Context, userID int64) (domain.Role, error) {
	if userID == 500 {
		return "", errors.New("db down")
	}
	role, ok := s[userID]
	if !ok {
		return "", profiles.ErrProfileNotFound
	}
	return role, nil
}

func TestLoadRoleAndRequireRole(t *testing.T) {
	roles := staticRoles{1: domain.RoleUser, 2: domain.RoleVendor, 3: domain.RoleAdmin}
	chain := LoadRole(roles, logger.NewNop())(RequireRole(domain.RoleVendor, domain.RoleAdmin)(http.HandlerFunc(okHandler)))

	tests := []struct {
		name       string
		userID     int64
		wantStatus int
	}{
		{name: "vendor allowed", userID: 2, wantStatus: http.StatusOK},
		{name: "admin allowed", userID: 3, wantStatus: http.StatusOK},
		{name: "user forbidden", userID: 1, wantStatus: http.StatusForbidden},
		{name: "deleted user", userID: 404, wantStatus: http.StatusUnauthorized},
		{name: "resolver failure", userID: 500, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/profile", nil)
			r = r.WithContext(WithUserID(r.Context(), tt.userID))
			w := httptest.NewRecorder()

			chain.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	})

	t.Run("preserved", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "req-1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "req-1", seen)
		assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2, nil, logger.NewNop())
	h := limiter.Middleware(http.HandlerFunc(okHandler))

	call := func(ip string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		r.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	// лимит считается отдельно для каждого IP
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))

	limiter.evict(time.Now().Add(time.Minute))
	assert.Empty(t, limiter.visitors)
}

func TestClientIP(t *testing.T) {
	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name      string
		trusted   []netip.Prefix
		remote    string
		forwarded string
		want      string
	}{
		{name: "remote address", remote: "192.168.1.10:5555", want: "192.168.1.10"},
		{name: "header ignored without trusted proxies", remote: "192.168.1.10:5555", forwarded: "203.0.113.5", want: "192.168.1.10"},
		{name: "header ignored from untrusted peer", trusted: proxies, remote: "198.51.100.7:5555", forwarded: "203.0.113.5", want: "198.51.100.7"},
		{name: "client behind trusted proxy", trusted: proxies, remote: "10.0.0.2:5555", forwarded: "203.0.113.5", want: "203.0.113.5"},
		{name: "spoofed leftmost entry skipped", trusted: proxies, remote: "10.0.0.2:5555", forwarded: "1.2.3.4, 203.0.113.5, 10.0.0.3", want: "203.0.113.5"},
		{name: "only trusted hops", trusted: proxies, remote: "10.0.0.2:5555", forwarded: "10.0.0.9", want: "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(60, 1, tt.trusted, logger.NewNop())

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			assert.Equal(t, tt.want, limiter.clientIP(r))
		})
	}
}

func TestRateLimiter_ForwardedHeaderDoesNotBypassLimit(t *testing.T) {
	limiter := NewRateLimiter(1, 1, nil, logger.NewNop())
	h := limiter.Middleware(http.HandlerFunc(okHandler))

	call := func(forwarded string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/validate", nil)
		r.RemoteAddr = "198.51.100.7:4000"
		r.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("2.2.2.2"))
}

type recordedMetric struct {
	method, path, status string
}

type fakeHTTPMetrics struct{ calls []recordedMetric }

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, path, status string, _ float64) {
	f.calls = append(f.calls, recordedMetric{method: method, path: path, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, recordedMetric{method: "GET", path: "/bookings/{bookingId}", status: "404"}, m.calls[0])
}

func TestRecover(t *testing.T) {
	h := Recover(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
