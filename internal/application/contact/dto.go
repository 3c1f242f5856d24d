package contact

import (
	"time"

	"github.com/google/uuid"
	"github.com/packmart/backend/internal/domain/contact"
)

// SubmitMessageRequest is the public contact-form submission payload
type SubmitMessageRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Company string `json:"company" binding:"max=200"`
	Subject string `json:"subject" binding:"max=300"`
	Message string `json:"message" binding:"required,min=1,max=10000"`
}

// SubmitMessageResponse confirms a persisted submission
type SubmitMessageResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// ReplyRequest is the operator's reply payload
type ReplyRequest struct {
	Subject string `json:"subject" binding:"required,min=1,max=300"`
	Message string `json:"message" binding:"required,min=1,max=10000"`
}

// ReplyResponse confirms a delivered reply
type ReplyResponse struct {
	Success bool `json:"success"`
}

// MessageResponse is the admin-console view of a contact message
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToMessageResponse converts a domain Message to its response shape
func ToMessageResponse(m *contact.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Company:   m.Company,
		Subject:   m.Subject,
		Message:   m.Body,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToMessageResponses converts a slice of domain Messages
func ToMessageResponses(messages []contact.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses
}
