package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gridspot/internal/shared/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func operatorEngine(t *testing.T, secretHash string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Operator.SecretHash = secretHash

	engine := gin.New()
	engine.Use(OperatorAuthWithConfig(cfg))
	engine.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": OperatorActor(c)})
	})
	return engine
}

func hashSecret(t *testing.T, secret string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestOperatorAuthAcceptsHeaderSecret(t *testing.T) {
	engine := operatorEngine(t, hashSecret(t, "swordfish"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Operator-Secret", "swordfish")
	req.Header.Set("X-Operator-Name", "ops-alice")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "ops-alice") {
		t.Errorf("actor missing from response: %s", body)
	}
}

func TestOperatorAuthAcceptsBearerToken(t *testing.T) {
	engine := operatorEngine(t, hashSecret(t, "swordfish"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer swordfish")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
}

func TestOperatorAuthRejectsWrongSecret(t *testing.T) {
	engine := operatorEngine(t, hashSecret(t, "swordfish"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Operator-Secret", "guess")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"status":"error"`) {
		t.Errorf("rejection must use the error envelope: %s", body)
	}
}

func TestOperatorAuthRejectsMissingSecret(t *testing.T) {
	engine := operatorEngine(t, hashSecret(t, "swordfish"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
}

func TestOperatorAuthUnconfiguredChannel(t *testing.T) {
	engine := operatorEngine(t, "")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Operator-Secret", "anything")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", w.Code)
	}
}
