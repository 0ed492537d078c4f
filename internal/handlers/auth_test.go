package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AloneGhost12/website/internal/middleware"
)

func TestIssuedTokenSubjectResolvesToUserID(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := issueToken(userID, "a@x.com", "test-secret", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	got, err := middleware.UserIDFromToken(token, "test-secret")
	if err != nil {
		t.Fatalf("UserIDFromToken returned error: %v", err)
	}
	if got != userID {
		t.Fatalf("expected subject %s, got %s", userID.Hex(), got.Hex())
	}
}

func TestIssuedTokenRejectedWithWrongSecret(t *testing.T) {
	token, err := issueToken(primitive.NewObjectID(), "a@x.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	if _, err := middleware.UserIDFromToken(token, "other-secret"); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func adminLoginRouter(key, username, password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/admin/login", AdminLogin(key, username, password))
	return r
}

func TestAdminLoginUnconfigured(t *testing.T) {
	r := adminLoginRouter("", "admin", "pass")

	req := httptest.NewRequest("POST", "/api/admin/login",
		strings.NewReader(`{"username":"admin","password":"pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 503 {
		t.Fatalf("expected 503 when admin key unconfigured, got %d", w.Code)
	}
}

func TestAdminLoginWrongCredentials(t *testing.T) {
	r := adminLoginRouter("the-key", "admin", "pass")

	req := httptest.NewRequest("POST", "/api/admin/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 401 {
		t.Fatalf("expected 401 for wrong credentials, got %d", w.Code)
	}
}

func TestAdminLoginReturnsKey(t *testing.T) {
	r := adminLoginRouter("the-key", "admin", "pass")

	req := httptest.NewRequest("POST", "/api/admin/login",
		strings.NewReader(`{"username":"admin","password":"pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if body["key"] != "the-key" {
		t.Fatalf("expected admin key in response, got %+v", body)
	}
}
