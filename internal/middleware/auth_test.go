package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func runAuth(token string, prepare func(*fasthttp.RequestCtx)) (*fasthttp.RequestCtx, bool) {
	called := false
	handler := JWTAuth(testSecret, nil)(func(*fasthttp.RequestCtx) { called = true })

	ctx := &fasthttp.RequestCtx{}
	if prepare != nil {
		prepare(ctx)
	}
	if token != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	}
	handler(ctx)
	return ctx, called
}

func TestJWTAuthInjectsIdentityHeaders(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id":    "u1",
		"session_id": "s1",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	ctx, called := runAuth(token, nil)
	if !called {
		t.Fatal("handler not called for a valid token")
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "u1" {
		t.Errorf("X-User-ID = %q", got)
	}
	if got := string(ctx.Request.Header.Peek("X-Session-ID")); got != "s1" {
		t.Errorf("X-Session-ID = %q", got)
	}
}

func TestJWTAuthOverridesClientSuppliedIdentity(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx, called := runAuth(token, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("X-User-ID", "attacker")
		ctx.Request.Header.Set("X-Session-ID", "attacker-session")
	})
	if !called {
		t.Fatal("handler not called for a valid token")
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "u1" {
		t.Errorf("spoofed X-User-ID survived: %q", got)
	}
	if got := string(ctx.Request.Header.Peek("X-Session-ID")); got != "" {
		t.Errorf("spoofed X-Session-ID survived: %q", got)
	}
}

func TestJWTAuthRejectsNonStringUserIDClaim(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx, called := runAuth(token, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("X-User-ID", "attacker")
	})
	if called {
		t.Fatal("handler called despite malformed user_id claim")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "" {
		t.Errorf("client identity header passed through: %q", got)
	}
}

func TestJWTAuthRejectsMissingAndForgedTokens(t *testing.T) {
	if ctx, called := runAuth("", nil); called || ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Error("missing token must be rejected with 401")
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	if ctx, called := runAuth(forged, nil); called || ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Error("token signed with the wrong secret must be rejected with 401")
	}
}
