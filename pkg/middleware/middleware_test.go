package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	mem "lumijob/pkg/memcache"
	"lumijob/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type storedRoles map[string]string

func (r storedRoles) ResolveRole(_ context.Context, email string) (string, error) {
	role, ok := r[email]
	if !ok {
		return "", utils.ErrAccountNotFound
	}
	return role, nil
}

func TestJWTAuthAndRole(t *testing.T) {
	jm := utils.NewJWTManager("secret", time.Hour)
	roles := storedRoles{"acme@x.com": "company", "jane@x.com": "candidate"}
	r := gin.New()
	r.GET("/company", JWTAuthMiddleware(jm), RoleMiddleware(roles, "company"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextEmail))
	})

	cases := []struct {
		name  string
		email string
		claim string
		want  int
	}{
		{"missing header", "", "", http.StatusUnauthorized},
		{"bad token", "", "Bearer nope", http.StatusUnauthorized},
		{"stored candidate", "jane@x.com", "company", http.StatusForbidden},
		{"stored company", "Acme@X.com", "candidate", http.StatusOK},
		{"unknown account", "ghost@x.com", "company", http.StatusNotFound},
		{"admin", "ops@x.com", RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/company", nil)
			switch tc.claim {
			case "", "Bearer nope":
				if tc.claim != "" {
					req.Header.Set("Authorization", tc.claim)
				}
			default:
				token, err := jm.CreateToken(tc.email, tc.claim)
				if err != nil {
					t.Fatalf("create token: %v", err)
				}
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
			if tc.want == http.StatusOK && w.Body.String() != strings.ToLower(tc.email) {
				t.Fatalf("email not lowercased into context: %q", w.Body.String())
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	jm := utils.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(jm), AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for claim, want := range map[string]int{"company": http.StatusForbidden, RoleAdmin: http.StatusOK} {
		token, err := jm.CreateToken("ops@x.com", claim)
		if err != nil {
			t.Fatalf("create token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("%s: status = %d, want %d", claim, w.Code, want)
		}
	}
}

func TestTraceIDKeepsValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "7f0c2f5e-51c1-4d58-9d7e-1b1f8c1f4c4a")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "7f0c2f5e-51c1-4d58-9d7e-1b1f8c1f4c4a" {
		t.Fatalf("trace id not kept: %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() == "not-a-uuid" || w.Header().Get(TraceHeader) == "" {
		t.Fatalf("invalid trace id should be replaced")
	}
}

type stubLimiter struct {
	allow bool
	err   error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allow, s.err }

func TestRateLimit(t *testing.T) {
	cases := []struct {
		name    string
		limiter Limiter
		want    int
	}{
		{"disabled", nil, http.StatusOK},
		{"allowed", stubLimiter{allow: true}, http.StatusOK},
		{"blocked", stubLimiter{allow: false}, http.StatusTooManyRequests},
		{"limiter down", stubLimiter{err: errors.New("down")}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/apply", RateLimit(tc.limiter, "apply", zap.NewNop()), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/apply", nil))
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestIdempotencyReplaysSuccessOnly(t *testing.T) {
	store := mem.NewIdempotencyKeys()
	var calls int32
	var reject atomic.Bool

	r := gin.New()
	r.POST("/apply", Idempotency(store, time.Minute), func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		if reject.Load() {
			utils.RespondRejected(c, "already applied")
			return
		}
		utils.RespondSuccess(c, gin.H{"insertedId": "abc"}, "applied")
	})

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/apply", nil)
		if key != "" {
			req.Header.Set(IdempotencyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send("k1")
	second := send("k1")
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if second.Body.String() != first.Body.String() || second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("second response was not a replay: %s", second.Body.String())
	}

	reject.Store(true)
	send("k2")
	send("k2")
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("rejected results must not be replayed, calls = %d", calls)
	}

	send("")
	if atomic.LoadInt32(&calls) != 4 {
		t.Fatalf("requests without key always run")
	}
}
