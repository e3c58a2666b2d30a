package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contentapp "github.com/storefront/backend/internal/application/content"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// BlogHandler handles blog content endpoints
type BlogHandler struct {
	BaseHandler
	blogService *contentapp.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService *contentapp.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// SetPublishedRequest publishes or unpublishes a post
type SetPublishedRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// List godoc
// @Summary  List published blog posts
// @Tags     blog
// @Produce  json
// @Success  200 {object} APIResponse[[]contentapp.BlogPostResponse]
// @Router   /blog [get]
func (h *BlogHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	page, err := h.blogService.ListPublished(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// GetBySlug godoc
// @Summary  Get a blog post by slug
// @Tags     blog
// @Produce  json
// @Param    slug path string true "Post slug"
// @Success  200 {object} APIResponse[contentapp.BlogPostResponse]
// @Router   /blog/{slug} [get]
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Post slug is required")
		return
	}

	post, err := h.blogService.GetBySlug(c.Request.Context(), slug, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// AdminList godoc
// @Summary  List all blog posts including drafts (admin)
// @Tags     admin-blog
// @Produce  json
// @Success  200 {object} APIResponse[[]contentapp.BlogPostResponse]
// @Security BearerAuth
// @Router   /admin/blog [get]
func (h *BlogHandler) AdminList(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	page, err := h.blogService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// AdminCreate godoc
// @Summary  Create a blog post (admin)
// @Tags     admin-blog
// @Accept   json
// @Produce  json
// @Param    request body contentapp.CreateBlogPostRequest true "Post"
// @Success  201 {object} APIResponse[contentapp.BlogPostResponse]
// @Security BearerAuth
// @Router   /admin/blog [post]
func (h *BlogHandler) AdminCreate(c *gin.Context) {
	var req contentapp.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	post, err := h.blogService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, post)
}

// AdminUpdate godoc
// @Summary  Update a blog post (admin)
// @Tags     admin-blog
// @Accept   json
// @Produce  json
// @Param    id path string true "Post ID" format(uuid)
// @Param    request body contentapp.UpdateBlogPostRequest true "Post update"
// @Success  200 {object} APIResponse[contentapp.BlogPostResponse]
// @Security BearerAuth
// @Router   /admin/blog/{id} [put]
func (h *BlogHandler) AdminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	var req contentapp.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	post, err := h.blogService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// AdminSetPublished godoc
// @Summary  Publish or unpublish a blog post (admin)
// @Tags     admin-blog
// @Accept   json
// @Produce  json
// @Param    id path string true "Post ID" format(uuid)
// @Param    request body SetPublishedRequest true "Published flag"
// @Success  200 {object} APIResponse[contentapp.BlogPostResponse]
// @Security BearerAuth
// @Router   /admin/blog/{id}/published [put]
func (h *BlogHandler) AdminSetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	var req SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	post, err := h.blogService.SetPublished(c.Request.Context(), id, *req.Published)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// AdminDelete godoc
// @Summary  Delete a blog post (admin)
// @Tags     admin-blog
// @Param    id path string true "Post ID" format(uuid)
// @Success  204
// @Security BearerAuth
// @Router   /admin/blog/{id} [delete]
func (h *BlogHandler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
