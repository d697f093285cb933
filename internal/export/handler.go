package export

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvgen-backend/internal/exports"
	"cvgen-backend/internal/shared/server/middleware"
	"cvgen-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the export service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cv/export", h.export)
	rg.GET("/cv/exports", h.list)
	rg.GET("/cv/exports/:id/download", h.download)
}

func (h *Handler) export(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Export(c.Request.Context(), userID, req)
	if err != nil {
		state, reason, _ := h.Svc.JobFor(userID).Snapshot()
		details := map[string]any{"state": state, "reason": reason}
		switch {
		case errors.Is(err, exports.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), details)
		case errors.Is(err, ErrSuperseded):
			respond.Error(c, http.StatusConflict, "superseded", err.Error(), details)
		default:
			respond.Error(c, http.StatusBadGateway, "export_failed", err.Error(), details)
		}
		c.Set("jobState", string(state))
		return
	}

	c.Set("jobState", string(result.State))
	c.Set("subjectId", req.SubjectID)
	if result.ExportID != "" {
		c.Set("exportId", result.ExportID)
	}

	if len(result.Data) > 0 {
		c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
		if result.ExportID != "" {
			c.Header("X-Export-Id", result.ExportID)
		}
		c.Data(http.StatusOK, result.MimeType, result.Data)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.Svc.ListHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to list exports", err.Error(), nil)
		return
	}

	out := make([]exportResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toResponse(item))
	}
	respond.JSON(c, http.StatusOK, gin.H{"exports": out})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	exportID := c.Param("id")

	record, err := h.Svc.History.GetByID(c.Request.Context(), userID, exportID)
	if err != nil {
		switch {
		case errors.Is(err, exports.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		case errors.Is(err, exports.ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "export belongs to another user", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "failed to load export", err.Error(), nil)
		}
		return
	}

	body, err := h.Svc.Store.Open(c.Request.Context(), record.StorageKey)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to open artifact", err.Error(), nil)
		return
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to read artifact", err.Error(), nil)
		return
	}

	c.Set("exportId", record.ID)
	c.Header("Content-Disposition", `attachment; filename="`+record.FileName+`"`)
	c.Data(http.StatusOK, record.MimeType, data)
}

type exportResponse struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`
	Template  string `json:"template"`
	Format    string `json:"format"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	CreatedAt string `json:"createdAt"`
}

func toResponse(e exports.CVExport) exportResponse {
	return exportResponse{
		ID:        e.ID,
		SubjectID: e.SubjectID,
		Template:  e.Template,
		Format:    e.Format,
		FileName:  e.FileName,
		MimeType:  e.MimeType,
		SizeBytes: e.SizeBytes,
		CreatedAt: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
