package export

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvgen-backend/cv/style"
	"cvgen-backend/internal/exports"
	localstore "cvgen-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T, agg Aggregator) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(agg, localstore.New(t.TempDir()), exports.NewMemoryRepo(), nil, style.TemplateAcademic)
	handler := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:test-user")
		c.Next()
	})
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r, svc
}

func TestExportHandlerRejectsEmptySelection(t *testing.T) {
	r, _ := newTestRouter(t, &stubAggregator{model: testModel()})

	body := `{"subjectId":"subject-1","template":"academic","format":"word","categories":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if payload.Error.Code != "validation_error" {
		t.Fatalf("unexpected code: %q", payload.Error.Code)
	}
	if payload.Error.Details["state"] != string(StateFailed) {
		t.Fatalf("expected failed state in details, got %v", payload.Error.Details["state"])
	}
}

func TestExportHandlerWordDownload(t *testing.T) {
	r, _ := newTestRouter(t, &stubAggregator{model: testModel()})

	body := `{"subjectId":"subject-1","template":"academic","format":"word","categories":["personal","patents"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	disposition := resp.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, ".docx") {
		t.Fatalf("expected docx attachment, got %q", disposition)
	}
	if resp.Header().Get("X-Export-Id") == "" {
		t.Fatalf("expected export id header")
	}
	if resp.Body.Len() == 0 {
		t.Fatalf("expected binary body")
	}
}

func TestExportHandlerListAndDownloadHistory(t *testing.T) {
	r, svc := newTestRouter(t, &stubAggregator{model: testModel()})

	body := `{"subjectId":"subject-1","format":"word","categories":["patents"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", resp.Code, resp.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/cv/exports", nil)
	listResp := httptest.NewRecorder()
	r.ServeHTTP(listResp, listReq)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list failed: %d", listResp.Code)
	}
	var listPayload struct {
		Exports []exportResponse `json:"exports"`
	}
	if err := json.Unmarshal(listResp.Body.Bytes(), &listPayload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listPayload.Exports) != 1 {
		t.Fatalf("expected 1 export, got %d", len(listPayload.Exports))
	}
	item := listPayload.Exports[0]
	if item.Template != string(svc.DefaultTemplate) {
		t.Fatalf("expected default template, got %q", item.Template)
	}

	dlReq := httptest.NewRequest(http.MethodGet, "/api/v1/cv/exports/"+item.ID+"/download", nil)
	dlResp := httptest.NewRecorder()
	r.ServeHTTP(dlResp, dlReq)
	if dlResp.Code != http.StatusOK {
		t.Fatalf("download failed: %d %s", dlResp.Code, dlResp.Body.String())
	}
	if dlResp.Body.Len() == 0 {
		t.Fatalf("expected artifact bytes")
	}

	missingReq := httptest.NewRequest(http.MethodGet, "/api/v1/cv/exports/nope/download", nil)
	missingResp := httptest.NewRecorder()
	r.ServeHTTP(missingResp, missingReq)
	if missingResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown export, got %d", missingResp.Code)
	}
}
