package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/packmart/backend/internal/application/identity"
	"github.com/packmart/backend/internal/interfaces/http/dto"
)

// UserHandler handles admin-console user management
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create adds a new admin-console user
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// List returns all admin-console users
func (h *UserHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.bindUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// SetRole changes another user's role
func (h *UserHandler) SetRole(c *gin.Context) {
	id, ok := h.bindUserID(c)
	if !ok {
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.SetRole(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Deactivate disables another user's account
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindUserID(c)
	if !ok {
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), actorID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *UserHandler) bindUserID(c *gin.Context) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err.Error())
		return uuid.Nil, false
	}
	return uuid.MustParse(idReq.ID), true
}

// RegisterAdminRoutes registers the user management routes
func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id/role", h.SetRole)
		users.POST("/:id/deactivate", h.Deactivate)
	}
}
