package handlers

import (
	"errors"
	"net/http"

	"bloglist/internal/repository"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
)

// msgWrongCredentials is the single user-facing failure text for any
// credential mismatch; unknown-username and wrong-password are not
// distinguishable from the outside.
const msgWrongCredentials = "Wrong username or password"

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signUpRequest  true  "Registration payload"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(input.Name, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		if h.log != nil {
			h.log.Infow("sign_up_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Sign in and receive a session credential
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signInRequest  true  "Credentials"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("sign_in_rejected", "username", input.Username)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgWrongCredentials})
			return
		}
		if h.log != nil {
			h.log.Errorw("sign_in_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Log out, revoking the session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	// Revoking an already-revoked session is a no-op, so repeating a
	// logout stays a 200.
	if err := h.services.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if h.log != nil {
			h.log.Errorw("logout_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
