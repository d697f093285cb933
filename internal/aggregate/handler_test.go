package aggregate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cvgen-backend/cv/model"
)

func newHandlerRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func TestCategoriesEndpointListsFullSchema(t *testing.T) {
	r := newHandlerRouter(NewService(NewClient("http://unused")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cv/categories", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Categories []categoryResponse `json:"categories"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Categories) != len(model.AllCategories) {
		t.Fatalf("expected %d categories, got %d", len(model.AllCategories), len(payload.Categories))
	}
	if payload.Categories[0].Category != string(model.CategoryPersonal) {
		t.Fatalf("expected personal first, got %s", payload.Categories[0].Category)
	}
	for _, c := range payload.Categories {
		if c.Layout == "profile" {
			continue
		}
		if len(c.Attributes) == 0 {
			t.Fatalf("category %s has no attributes", c.Category)
		}
	}
}

func TestModelEndpointRequiresSubjectID(t *testing.T) {
	r := newHandlerRouter(NewService(NewClient("http://unused")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cv/model", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
