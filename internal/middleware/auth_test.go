package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"authservice/internal/models"
	"authservice/internal/roles"
	"authservice/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fakeVerifier accepts exactly one token string.
type fakeVerifier struct {
	valid  string
	claims *models.Claims
}

func (f *fakeVerifier) VerifyToken(tokenString string) (*models.Claims, error) {
	if tokenString == f.valid {
		return f.claims, nil
	}
	return nil, service.ErrTokenInvalid
}

func newTestRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/api")
	protected.Use(RequireAuth(verifier, zap.NewNop()))
	protected.GET("/me", func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	protected.GET("/admin", RequireRole(roles.Admin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "welcome"})
	})
	protected.GET("/basic", RequireRole(roles.Basic), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "welcome"})
	})

	// Misconfigured on purpose: role gate with no verification upstream.
	r.GET("/unverified", RequireRole(roles.Basic), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "should never happen"})
	})

	return r
}

func doRequest(r *gin.Engine, path, cookie string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func studentVerifier() *fakeVerifier {
	return &fakeVerifier{
		valid:  "good-token",
		claims: &models.Claims{Username: "sue", RoleName: "student"},
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r := newTestRouter(studentVerifier())

	w, body := doRequest(r, "/api/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body["message"] != "Token required" {
		t.Fatalf("message = %v, want %q", body["message"], "Token required")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := newTestRouter(studentVerifier())

	w, body := doRequest(r, "/api/me", "tampered")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body["message"] != "Token invalid" {
		t.Fatalf("message = %v, want %q", body["message"], "Token invalid")
	}
}

func TestRequireAuth_AttachesClaims(t *testing.T) {
	r := newTestRouter(studentVerifier())

	w, body := doRequest(r, "/api/me", "good-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["username"] != "sue" {
		t.Fatalf("username = %v, want %q", body["username"], "sue")
	}
}

func TestRequireRole_Insufficient(t *testing.T) {
	r := newTestRouter(studentVerifier())

	w, body := doRequest(r, "/api/admin", "good-token")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body["message"] != "This is not for you" {
		t.Fatalf("message = %v, want %q", body["message"], "This is not for you")
	}
}

func TestRequireRole_Sufficient(t *testing.T) {
	r := newTestRouter(studentVerifier())

	w, _ := doRequest(r, "/api/basic", "good-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	admin := &fakeVerifier{valid: "admin-token", claims: &models.Claims{Username: "root", RoleName: "admin"}}
	w, _ = doRequest(newTestRouter(admin), "/api/admin", "admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", w.Code)
	}
}

func TestRequireRole_WithoutUpstreamVerification(t *testing.T) {
	r := newTestRouter(studentVerifier())

	// Claims were never attached, so the gate must refuse instead of
	// re-deriving them from the raw cookie.
	w, body := doRequest(r, "/unverified", "good-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body["message"] != "Token required" {
		t.Fatalf("message = %v, want %q", body["message"], "Token required")
	}
}
