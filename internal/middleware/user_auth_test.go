package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token failed: %v", err)
	}
	return signed
}

func userTestRouter(captured *primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", UserAuth(testSecret), func(c *gin.Context) {
		*captured = c.MustGet("userId").(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestUserAuthMissingToken(t *testing.T) {
	var got primitive.ObjectID
	r := userTestRouter(&got)

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestUserAuthMalformedHeader(t *testing.T) {
	var got primitive.ObjectID
	r := userTestRouter(&got)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "not-a-bearer-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed header, got %d", w.Code)
	}
}

func TestUserAuthWrongSecret(t *testing.T) {
	var got primitive.ObjectID
	r := userTestRouter(&got)

	userID := primitive.NewObjectID()
	signed := signTestToken(t, jwt.MapClaims{
		"sub": userID.Hex(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "other-secret")

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", w.Code)
	}
}

func TestUserAuthExpiredToken(t *testing.T) {
	var got primitive.ObjectID
	r := userTestRouter(&got)

	userID := primitive.NewObjectID()
	signed := signTestToken(t, jwt.MapClaims{
		"sub": userID.Hex(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestUserAuthValidTokenInjectsUserID(t *testing.T) {
	var got primitive.ObjectID
	r := userTestRouter(&got)

	userID := primitive.NewObjectID()
	signed := signTestToken(t, jwt.MapClaims{
		"sub":   userID.Hex(),
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", w.Code)
	}
	if got != userID {
		t.Fatalf("expected userId %s in context, got %s", userID.Hex(), got.Hex())
	}
}
