package contact

import (
	"regexp"
	"strings"

	"github.com/packmart/backend/internal/domain/shared"
)

// MessageStatus represents the handling status of a contact message
type MessageStatus string

const (
	MessageStatusUnread  MessageStatus = "unread"
	MessageStatusReplied MessageStatus = "replied"
)

// emailPattern requires a single "@" with non-space segments on both sides
// and a dot somewhere in the domain segment.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message represents an inbound contact-form inquiry.
// It is the aggregate root for the contact context.
type Message struct {
	shared.BaseEntity
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Body    string
	Status  MessageStatus
}

// NewMessage creates a contact message from a form submission.
// Name, email and body are required; phone, company and subject are optional.
func NewMessage(name, email, phone, company, subject, body string) (*Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	body = strings.TrimSpace(body)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message is required")
	}

	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(phone),
		Company:    strings.TrimSpace(company),
		Subject:    strings.TrimSpace(subject),
		Body:       body,
		Status:     MessageStatusUnread,
	}, nil
}

// ValidateEmail checks the address against the contact-form email rule
func ValidateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_INPUT", "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_INPUT", "Email address is not valid")
	}
	return nil
}

// MarkReplied records that an operator reply has been sent.
// The transition is one-way: a replied message stays replied.
func (m *Message) MarkReplied() {
	if m.Status == MessageStatusReplied {
		return
	}
	m.Status = MessageStatusReplied
	m.Touch()
}

// IsReplied reports whether the message has been replied to
func (m *Message) IsReplied() bool {
	return m.Status == MessageStatusReplied
}
