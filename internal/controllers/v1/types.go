package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/triz-financeiro/backend/internal/models"
)

type URIID struct {
	ID uint64 `uri:"id" binding:"required"` // ID of the resource
}

// currentUser returns the ID of the authenticated user. The auth middleware
// guarantees it is set on all protected routes.
func currentUser(c *gin.Context) string {
	return c.GetString(string(models.ContextUserID))
}
