package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notes_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

type testJWTConfig struct{ secret string }

func (c testJWTConfig) GetJWTAccessSecret() string { return c.secret }

func signToken(t *testing.T, secret string, mutate func(jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":       uuid.New().String(),
		"tenant_id": uuid.New().String(),
		"role":      "MEMBER",
		"type":      AccessTokenType,
		"exp":       time.Now().Add(time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func newAuthEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", AuthRequired(testJWTConfig{secret: testSecret}, logger.New("development")), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func doRequest(engine *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	engine := newAuthEngine(t)

	cases := map[string]map[string]string{
		"no header":       nil,
		"empty bearer":    {"Authorization": "Bearer "},
		"wrong scheme":    {"Authorization": "Basic abc"},
		"no bearer space": {"Authorization": "Bearertoken"},
	}

	for name, headers := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(engine, headers)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	engine := newAuthEngine(t)

	cases := map[string]string{
		"garbage":          "not-a-jwt",
		"wrong secret":     signToken(t, "other-secret", nil),
		"expired":          signToken(t, testSecret, func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }),
		"wrong type":       signToken(t, testSecret, func(c jwt.MapClaims) { c["type"] = "refresh" }),
		"missing tenant":   signToken(t, testSecret, func(c jwt.MapClaims) { delete(c, "tenant_id") }),
		"bad tenant id":    signToken(t, testSecret, func(c jwt.MapClaims) { c["tenant_id"] = "not-a-uuid" }),
		"missing role":     signToken(t, testSecret, func(c jwt.MapClaims) { delete(c, "role") }),
		"missing subject":  signToken(t, testSecret, func(c jwt.MapClaims) { delete(c, "sub") }),
		"non-uuid subject": signToken(t, testSecret, func(c jwt.MapClaims) { c["sub"] = "42" }),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(engine, map[string]string{"Authorization": "Bearer " + token})
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthRequiredSeedsVerifiedIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	tenantID := uuid.New()
	token := signToken(t, testSecret, func(c jwt.MapClaims) {
		c["sub"] = userID.String()
		c["tenant_id"] = tenantID.String()
		c["role"] = "ADMIN"
	})

	var identity Identity
	engine := gin.New()
	engine.GET("/protected", AuthRequired(testJWTConfig{secret: testSecret}, logger.New("development")), func(c *gin.Context) {
		identity = GetIdentity(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	// A forged identity header must have no effect: identity flows only
	// from the verified token.
	req.Header.Set("X-User-Payload", `{"userId":"attacker","role":"ADMIN"}`)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !identity.IsAuthenticated() {
		t.Fatal("expected authenticated identity")
	}
	if identity.UserID() != userID {
		t.Fatalf("expected user %s, got %s", userID, identity.UserID())
	}
	if identity.TenantID() != tenantID {
		t.Fatalf("expected tenant %s, got %s", tenantID, identity.TenantID())
	}
	if identity.Role() != "ADMIN" {
		t.Fatalf("expected role ADMIN, got %s", identity.Role())
	}
}

func TestAuthRequiredIgnoresForgedHeadersWithoutToken(t *testing.T) {
	engine := newAuthEngine(t)

	rec := doRequest(engine, map[string]string{
		"X-User-Payload": `{"userId":"attacker","tenantId":"any","role":"ADMIN"}`,
		"X-User-Id":      uuid.New().String(),
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged headers without token, got %d", rec.Code)
	}
}
