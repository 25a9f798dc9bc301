package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Reset all state
// @Description  Wipes users, sessions, blogs and events. Test/ops baseline only.
// @Tags         testing
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/testing/reset [post]
func (h *Handler) resetState(c *gin.Context) {
	if err := h.services.Reset(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to reset state", "reset_failed", err)
		return
	}
	if h.log != nil {
		h.log.Infow("state_reset")
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
