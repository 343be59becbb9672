package handlers

import (
	"net/http"
	"strconv"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/query"
	"abarto-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ResourceHandler is the generic HTTP adapter instantiated once per
// descriptor. It shapes the response envelope and leaves everything else to
// the service.
type ResourceHandler struct {
	Svc services.ResourceService
}

func NewResourceHandler(svc services.ResourceService) ResourceHandler {
	return ResourceHandler{Svc: svc}
}

const (
	allowCollection     = "GET, POST, HEAD, OPTIONS"
	allowItem           = "GET, PUT, PATCH, DELETE, HEAD, OPTIONS"
	allowItemAppendOnly = "GET, HEAD, OPTIONS"
)

// GET /api/<resource>
func (h ResourceHandler) List(c *gin.Context) {
	res := h.Svc.Res()
	p := query.ResolvePagination(c.Request.URL.Query(), res)

	records, total, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(records, total, p))
}

// GET /api/<resource>/search
func (h ResourceHandler) Search(c *gin.Context) {
	res := h.Svc.Res()
	values := c.Request.URL.Query()
	p := query.ResolvePagination(values, res)
	crit := query.BuildCriteria(values, res)

	records, total, err := h.Svc.Search(c.Request.Context(), crit, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(records, total, p))
}

// GET /api/<resource>/:id
func (h ResourceHandler) Get(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	rec, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rec})
}

// POST /api/<resource>
func (h ResourceHandler) Create(c *gin.Context) {
	var rec domain.Record
	if !BindJSONOrError(c, &rec) {
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), rec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// PUT /api/<resource>/:id
func (h ResourceHandler) Replace(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	var rec domain.Record
	if !BindJSONOrError(c, &rec) {
		return
	}
	updated, err := h.Svc.Replace(c.Request.Context(), id, rec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// PATCH /api/<resource>/:id
func (h ResourceHandler) Patch(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	var rec domain.Record
	if !BindJSONOrError(c, &rec) {
		return
	}
	updated, err := h.Svc.Patch(c.Request.Context(), id, rec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DELETE /api/<resource>/:id
func (h ResourceHandler) Delete(c *gin.Context) {
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	removed, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": removed})
}

// HEAD /api/<resource>
func (h ResourceHandler) HeadCollection(c *gin.Context) {
	total, err := h.Svc.Count(c.Request.Context(), query.Criteria{})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-Resource-Type", h.Svc.Res().Name)
	c.Status(http.StatusOK)
}

// HEAD /api/<resource>/:id
func (h ResourceHandler) HeadItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	meta, err := h.Svc.Metadata(c.Request.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("X-Resource-Type", h.Svc.Res().Name)
	if lm, ok := meta.LastModified(); ok {
		c.Header("Last-Modified", lm.Time.UTC().Format(http.TimeFormat))
	}
	c.Status(http.StatusOK)
}

// OPTIONS /api/<resource>
func (h ResourceHandler) OptionsCollection(c *gin.Context) {
	c.Header("Allow", allowCollection)
	c.Status(http.StatusNoContent)
}

// OPTIONS /api/<resource>/:id
func (h ResourceHandler) OptionsItem(c *gin.Context) {
	if h.Svc.Res().AppendOnly {
		c.Header("Allow", allowItemAppendOnly)
	} else {
		c.Header("Allow", allowItem)
	}
	c.Status(http.StatusNoContent)
}

func (h ResourceHandler) recordID(c *gin.Context) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return 0, false
	}
	return id, true
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidIDError{Value: raw}
	}
	return id, nil
}

func listEnvelope(records []domain.Record, total int64, p query.Pagination) gin.H {
	return gin.H{
		"success":    true,
		"data":       records,
		"count":      len(records),
		"total":      total,
		"page":       p.Page,
		"limit":      p.Limit,
		"totalPages": totalPages(total, p.Limit),
	}
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
