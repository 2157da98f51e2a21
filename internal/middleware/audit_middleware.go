package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/services"
)

// Audit records every mutating API call after its handler has run. Reads and
// the audit endpoints themselves are skipped.
func Audit(audit *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/super-admin/audit") {
			return
		}

		actor := c.GetString(ContextEmail)
		if actor == "" {
			actor = "anonymous"
		}

		audit.Record(c.Request.Context(), models.AuditLog{
			Actor:  actor,
			Method: c.Request.Method,
			Path:   path,
			Entity: entityFromPath(path),
			Status: c.Writer.Status(),
		})
	}
}

// entityFromPath pulls the collection segment out of an /api path.
func entityFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/")
	if trimmed == path {
		return ""
	}
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
