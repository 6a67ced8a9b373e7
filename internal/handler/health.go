package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Reports liveness and whether a snapshot has been captured yet
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	_, ready := h.snapshots.Latest()
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "snapshot_ready": ready})
}
