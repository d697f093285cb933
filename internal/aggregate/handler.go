package aggregate

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvgen-backend/cv/registry"
	"cvgen-backend/internal/shared/server/respond"
)

// Handler exposes the assembled CV model and the category schema over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches model routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cv/categories", h.categories)
	rg.GET("/cv/model", h.model)
}

func (h *Handler) model(c *gin.Context) {
	subjectID := strings.TrimSpace(c.Query("subjectId"))
	if subjectID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "subjectId is required", nil)
		return
	}

	m, err := h.Svc.Aggregate(c.Request.Context(), subjectID)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "aggregate_failed", err.Error(), nil)
		return
	}

	c.Set("subjectId", subjectID)
	respond.JSON(c, http.StatusOK, m)
}

func (h *Handler) categories(c *gin.Context) {
	sections := registry.Sections()
	out := make([]categoryResponse, 0, len(sections))
	for _, s := range sections {
		item := categoryResponse{
			Category: string(s.Category),
			Title:    s.Title,
			Layout:   layoutName(s.Layout),
			Numbered: s.Numbered,
		}
		for _, a := range s.Attributes {
			item.Attributes = append(item.Attributes, attributeResponse{Label: a.Label, Attr: a.Attr})
		}
		out = append(out, item)
	}
	respond.JSON(c, http.StatusOK, gin.H{"categories": out})
}

type categoryResponse struct {
	Category   string              `json:"category"`
	Title      string              `json:"title"`
	Layout     string              `json:"layout"`
	Numbered   bool                `json:"numbered"`
	Attributes []attributeResponse `json:"attributes,omitempty"`
}

type attributeResponse struct {
	Label string `json:"label"`
	Attr  string `json:"attr"`
}

func layoutName(l registry.Layout) string {
	switch l {
	case registry.LayoutProfile:
		return "profile"
	case registry.LayoutTable:
		return "table"
	default:
		return "list"
	}
}
