package handlers

import (
	"database/sql"
	"net/http"

	intdb "abarto-backend/internal/db"
	"abarto-backend/internal/registry"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	DB *sql.DB
}

// GET /api/health
func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "ok"}})
}

// GET /api/db-check reports connectivity plus resource tables the schema is
// still missing.
func (h SystemHandler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database is not connected")
		return
	}
	if err := h.DB.PingContext(c.Request.Context()); err != nil {
		RespondError(c, http.StatusInternalServerError, "database ping failed")
		return
	}

	missing := intdb.MissingTables(c.Request.Context(), h.DB, registry.All)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":         "ok",
			"missing_tables": missing,
		},
	})
}
