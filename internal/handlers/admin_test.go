package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func createProductRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/products", AdminCreateProduct(nil))
	return r
}

func postProduct(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/admin/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminCreateProductNegativePrice(t *testing.T) {
	r := createProductRouter()

	w := postProduct(t, r, `{"title":"Mug","cat":"home","price":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "price must be at least 0") {
		t.Fatalf("expected price bound error, got %s", w.Body.String())
	}
}

func TestAdminCreateProductNegativeStock(t *testing.T) {
	r := createProductRouter()

	w := postProduct(t, r, `{"title":"Mug","cat":"home","price":9.5,"stock":-5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative stock, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "stock must be at least 0") {
		t.Fatalf("expected stock bound error, got %s", w.Body.String())
	}
}

func TestAdminCreateProductRatingAboveFive(t *testing.T) {
	r := createProductRouter()

	w := postProduct(t, r, `{"title":"Mug","cat":"home","price":9.5,"rating":9}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating 9, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rating must be at most 5") {
		t.Fatalf("expected rating bound error, got %s", w.Body.String())
	}
}

func TestAdminCreateProductMissingPrice(t *testing.T) {
	r := createProductRouter()

	w := postProduct(t, r, `{"title":"Mug","cat":"home"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without price, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Missing fields: title, cat, price") {
		t.Fatalf("expected missing fields error, got %s", w.Body.String())
	}
}
