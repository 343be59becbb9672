package handlers

import (
	"net/http"
	"strings"

	"abarto-backend/internal/http/middleware"
	"abarto-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	Svc services.SearchService
}

func NewSearchHandler(svc services.SearchService) SearchHandler {
	return SearchHandler{Svc: svc}
}

// GET /api/search?q=&page=&limit=
// Results are grouped by resource type; page/limit apply within each group
// and there is no combined total.
func (h SearchHandler) Global(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		RespondError(c, http.StatusBadRequest, "q is required")
		return
	}

	svc := h.Svc
	svc.RequestID = middleware.GetRequestID(c)

	groups, err := svc.Global(c.Request.Context(), q, c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": groups})
}
