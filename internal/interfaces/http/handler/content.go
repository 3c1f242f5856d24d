package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contentapp "github.com/packmart/backend/internal/application/content"
	"github.com/packmart/backend/internal/interfaces/http/dto"
)

// PostHandler handles blog posts, public reads and admin authoring
type PostHandler struct {
	BaseHandler
	postService *contentapp.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *contentapp.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPublished returns published posts for the storefront blog
func (h *PostHandler) ListPublished(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	posts, err := h.postService.ListPublished(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, posts)
}

// GetBySlug returns a published post by its slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Create creates a draft post
func (h *PostHandler) Create(c *gin.Context) {
	var req contentapp.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, post)
}

// List returns all posts, drafts included, for the admin console
func (h *PostHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.postService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single post by ID
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Update edits a post's content
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req contentapp.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Publish makes a post visible on the storefront
func (h *PostHandler) Publish(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	post, err := h.postService.Publish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Unpublish pulls a post back to draft
func (h *PostHandler) Unpublish(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	post, err := h.postService.Unpublish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Delete removes a post
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *PostHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err.Error())
		return uuid.Nil, false
	}
	return uuid.MustParse(idReq.ID), true
}

// RegisterPublicRoutes registers the storefront blog routes
func (h *PostHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	blog := rg.Group("/blog")
	{
		blog.GET("/posts", h.ListPublished)
		blog.GET("/posts/:slug", h.GetBySlug)
	}
}

// RegisterAdminRoutes registers the admin authoring routes
func (h *PostHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	{
		posts.POST("", h.Create)
		posts.GET("", h.List)
		posts.GET("/:id", h.Get)
		posts.PUT("/:id", h.Update)
		posts.POST("/:id/publish", h.Publish)
		posts.POST("/:id/unpublish", h.Unpublish)
		posts.DELETE("/:id", h.Delete)
	}
}
