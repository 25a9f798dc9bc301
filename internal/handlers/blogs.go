package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgBlogRemoved = "Blog removed successfully"

	errListBlogs  = "failed to load blogs"
	errCreateBlog = "failed to create blog"
	errLikeBlog   = "failed to like blog"
	errDeleteBlog = "failed to delete blog"
)

// Request DTO for blog creation.
type createBlogRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	URL    string `json:"url" binding:"required"`
}

// blogView is a Blog plus the per-caller delete affordance. The flag is
// computed from the same predicate the delete endpoint enforces, so a
// non-owner never sees an enabled delete action.
type blogView struct {
	models.Blog
	Deletable bool `json:"deletable"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// blogIDParam parses the :id path segment; writes a 400 and returns false
// when it is not a number.
func (h *Handler) blogIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blog id"})
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// @Summary      List blogs ranked by likes
// @Description  Sorted by like count descending; ties keep creation order.
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, blogs"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/blogs [get]
// @Security     BearerAuth
func (h *Handler) listBlogs(c *gin.Context) {
	ctx := c.Request.Context()
	uid := callerID(c)

	blogs, err := h.services.Ranked(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListBlogs, "blogs_list_failed", err)
		return
	}

	views := make([]blogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, blogView{Blog: b, Deletable: h.services.CanDelete(uid, b)})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(views),
		"blogs": views,
	})
}

// @Summary      Create a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  createBlogRequest  true  "Blog payload"
// @Success      201  {object}  map[string]interface{}  "message, blog"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/blogs [post]
// @Security     BearerAuth
func (h *Handler) createBlog(c *gin.Context) {
	var req createBlogRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	uid := callerID(c)

	blog, err := h.services.Blogs.Create(ctx, uid, req.Title, req.Author, req.URL)
	if err != nil {
		if errors.Is(err, service.ErrBlogInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateBlog, "blog_create_failed", err, "title", req.Title)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": service.BlogAddedMessage(blog.Title, blog.Author),
		"blog":    blogView{Blog: blog, Deletable: true},
	})
}

// @Summary      Like a blog
// @Tags         blogs
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]int  "likes"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/blogs/{id}/like [post]
// @Security     BearerAuth
func (h *Handler) likeBlog(c *gin.Context) {
	id, ok := h.blogIDParam(c)
	if !ok {
		return
	}

	likes, err := h.services.Like(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLikeBlog, "blog_like_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// @Summary      Delete a blog
// @Description  Only the owner may delete; anyone else gets a 403.
// @Tags         blogs
// @Produce      json
// @Param        id   path      int  true  "Blog ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/blogs/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBlog(c *gin.Context) {
	id, ok := h.blogIDParam(c)
	if !ok {
		return
	}

	uid := callerID(c)
	if err := h.services.Blogs.Delete(c.Request.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrBlogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errDeleteBlog, "blog_delete_failed", err, "id", id)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgBlogRemoved})
}
