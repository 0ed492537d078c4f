package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reviewTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/products/:id/reviews", func(c *gin.Context) {
		c.Set("userId", primitive.NewObjectID())
	}, CreateReview(nil))
	return r
}

func postReview(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/products/"+primitive.NewObjectID().Hex()+"/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReviewMissingRating(t *testing.T) {
	r := reviewTestRouter()

	w := postReview(t, r, `{"text":"nice"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without rating, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Rating required") {
		t.Fatalf("expected Rating required error, got %s", w.Body.String())
	}
}

func TestCreateReviewRatingAboveFive(t *testing.T) {
	r := reviewTestRouter()

	w := postReview(t, r, `{"rating":7}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating 7, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rating must be at most 5") {
		t.Fatalf("expected rating bound error, got %s", w.Body.String())
	}
}

func TestCreateReviewNegativeRating(t *testing.T) {
	r := reviewTestRouter()

	w := postReview(t, r, `{"rating":-3}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating -3, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rating must be at least 1") {
		t.Fatalf("expected rating bound error, got %s", w.Body.String())
	}
}
