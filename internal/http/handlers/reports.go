package handlers

import (
	"net/http"

	"abarto-backend/internal/http/middleware"
	"abarto-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportDocsHandler struct {
	Svc services.ReportDocsService
}

func NewReportDocsHandler(svc services.ReportDocsService) ReportDocsHandler {
	return ReportDocsHandler{Svc: svc}
}

// GET /api/reports/:id/pdf returns the stored report rendered as a PDF.
func (h ReportDocsHandler) GetPDF(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := h.Svc
	svc.RequestID = middleware.GetRequestID(c)

	pdfBytes, filename, err := svc.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
