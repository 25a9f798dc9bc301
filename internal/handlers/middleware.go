package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var errBadAuthHeader = errors.New("invalid Authorization header format")

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errBadAuthHeader
	}
	return parts[1], nil
}

func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	userId, err := h.services.ParseToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set("userId", userId)
	c.Next()
}

// callerID reads the authenticated user id stored by the middleware.
func callerID(c *gin.Context) int {
	v, ok := c.Get("userId")
	if !ok {
		return 0
	}
	id, _ := v.(int)
	return id
}
