package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	contactapp "github.com/packmart/backend/internal/application/contact"
	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/infrastructure/telemetry"
	"github.com/packmart/backend/internal/interfaces/http/dto"
	"github.com/packmart/backend/internal/interfaces/http/middleware"
)

// ContactHandler handles the public contact form and the admin inbox
type ContactHandler struct {
	BaseHandler
	messageService *contactapp.MessageService
	metrics        *telemetry.StoreMetrics
}

// NewContactHandler creates a new ContactHandler. Metrics may be nil when
// telemetry is disabled.
func NewContactHandler(messageService *contactapp.MessageService, metrics *telemetry.StoreMetrics) *ContactHandler {
	return &ContactHandler{
		messageService: messageService,
		metrics:        metrics,
	}
}

// Submit accepts a public contact-form submission
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactapp.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.messageService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordContactSubmitted(c.Request.Context())
	}
	h.Created(c, resp)
}

// ListMessagesRequest filters the admin inbox listing
type ListMessagesRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=unread replied"`
}

// List returns contact messages for the admin console
func (h *ContactHandler) List(c *gin.Context) {
	req := ListMessagesRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()

	var (
		result *shared.Paginated[contactapp.MessageResponse]
		err    error
	)
	if req.Status != "" {
		result, err = h.messageService.ListByStatus(c.Request.Context(), contact.MessageStatus(req.Status), filter)
	} else {
		result, err = h.messageService.List(c.Request.Context(), filter)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single contact message
func (h *ContactHandler) Get(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	id := uuid.MustParse(idReq.ID)

	resp, err := h.messageService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reply sends an email reply and marks the message replied
func (h *ContactHandler) Reply(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	id := uuid.MustParse(idReq.ID)

	var req contactapp.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.messageService.Reply(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordContactReplied(c.Request.Context())
	}
	h.Success(c, resp)
}

// Delete removes a contact message
func (h *ContactHandler) Delete(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	id := uuid.MustParse(idReq.ID)

	if err := h.messageService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UnreadCountResponse carries the unread badge count
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// UnreadCount returns the number of unread messages
func (h *ContactHandler) UnreadCount(c *gin.Context) {
	count, err := h.messageService.UnreadCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, UnreadCountResponse{Unread: count})
}

// RegisterPublicRoutes registers the unauthenticated contact-form route
func (h *ContactHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Submit)
}

// RegisterAdminRoutes registers the admin inbox routes. The replyGuard
// middleware gates the mutating routes to roles that may answer customers.
func (h *ContactHandler) RegisterAdminRoutes(rg *gin.RouterGroup, replyGuard gin.HandlerFunc) {
	messages := rg.Group("/contact-messages")
	{
		messages.GET("", h.List)
		messages.GET("/unread-count", h.UnreadCount)
		messages.GET("/:id", h.Get)
		messages.POST("/:id/reply", replyGuard, h.Reply)
		messages.DELETE("/:id", replyGuard, h.Delete)
	}
}
