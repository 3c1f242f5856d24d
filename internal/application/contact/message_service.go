package contact

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/notification"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/infrastructure/telemetry"
)

// MessageService handles the contact inquiry workflow: recording inbound
// submissions and sending operator replies.
type MessageService struct {
	messageRepo contact.MessageRepository
	sender      notification.Sender
	inbox       string
	logger      *zap.Logger
}

// NewMessageService creates a new MessageService. inbox is the address
// that receives new-submission notifications.
func NewMessageService(messageRepo contact.MessageRepository, sender notification.Sender, inbox string, logger *zap.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		sender:      sender,
		inbox:       inbox,
		logger:      logger.Named("contact"),
	}
}

// Submit validates and persists a contact-form submission, then attempts a
// notification email. The persisted row is the source of truth: a failed
// notification is logged and the submission still succeeds.
func (s *MessageService) Submit(ctx context.Context, req SubmitMessageRequest) (*SubmitMessageResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "contact", "submit")
	defer span.End()

	message, err := contact.NewMessage(req.Name, req.Email, req.Phone, req.Company, req.Subject, req.Message)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrMessageID, message.ID.String())

	if err := s.messageRepo.Save(ctx, message); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.inbox != "" {
		if err := s.sender.Send(ctx, s.buildNotification(message)); err != nil {
			telemetry.AddEvent(span, "notification_email_failed")
			s.logger.Warn("contact notification email failed",
				zap.String("message_id", message.ID.String()),
				zap.Error(err),
			)
		}
	}

	return &SubmitMessageResponse{Success: true, ID: message.ID}, nil
}

// Reply sends the operator's reply email and marks the message replied.
// The email is the whole point of a reply, so a failed send fails the
// operation and leaves the status untouched. Replying to an already
// replied message re-sends the email; the status stays replied.
func (s *MessageService) Reply(ctx context.Context, id uuid.UUID, req ReplyRequest) (*ReplyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "contact", "reply")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrMessageID, id.String())

	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.sender.Send(ctx, s.buildReply(message, req)); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("reply email failed",
			zap.String("message_id", message.ID.String()),
			zap.Error(err),
		)
		return nil, shared.ErrUpstream
	}

	if !message.IsReplied() {
		message.MarkReplied()
		if err := s.messageRepo.UpdateStatus(ctx, message.ID, contact.MessageStatusReplied); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	return &ReplyResponse{Success: true}, nil
}

// Get returns a single contact message
func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (*MessageResponse, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMessageResponse(message)
	return &resp, nil
}

// List returns contact messages matching the filter, paginated
func (s *MessageService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[MessageResponse], error) {
	messages, err := s.messageRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.messageRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToMessageResponses(messages), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByStatus returns contact messages with the given status, paginated
func (s *MessageService) ListByStatus(ctx context.Context, status contact.MessageStatus, filter shared.Filter) (*shared.Paginated[MessageResponse], error) {
	messages, err := s.messageRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.messageRepo.CountByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToMessageResponses(messages), total, filter.Page, filter.PageSize)
	return &result, nil
}

// UnreadCount returns the number of unread messages for the admin badge
func (s *MessageService) UnreadCount(ctx context.Context) (int64, error) {
	return s.messageRepo.CountByStatus(ctx, contact.MessageStatusUnread)
}

// Delete removes a contact message. Admin cleanup only; the reply
// workflow never deletes.
func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.messageRepo.Delete(ctx, id)
}

// buildNotification renders the new-submission email for the shop inbox
func (s *MessageService) buildNotification(m *contact.Message) notification.Email {
	subject := m.Subject
	if subject == "" {
		subject = "New contact inquiry"
	}

	var text strings.Builder
	fmt.Fprintf(&text, "New contact form submission\n\n")
	fmt.Fprintf(&text, "Name: %s\n", m.Name)
	fmt.Fprintf(&text, "Email: %s\n", m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&text, "Phone: %s\n", m.Phone)
	}
	if m.Company != "" {
		fmt.Fprintf(&text, "Company: %s\n", m.Company)
	}
	fmt.Fprintf(&text, "\n%s\n", m.Body)

	return notification.Email{
		To:       []string{s.inbox},
		ReplyTo:  m.Email,
		Subject:  fmt.Sprintf("[Contact] %s", subject),
		TextBody: text.String(),
	}
}

// buildReply renders the operator's reply with the original inquiry quoted
func (s *MessageService) buildReply(m *contact.Message, req ReplyRequest) notification.Email {
	var htmlBody strings.Builder
	fmt.Fprintf(&htmlBody, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>"))
	htmlBody.WriteString("<hr><p><strong>Your original inquiry</strong></p>")
	fmt.Fprintf(&htmlBody, "<p>From: %s &lt;%s&gt;", html.EscapeString(m.Name), html.EscapeString(m.Email))
	if m.Phone != "" {
		fmt.Fprintf(&htmlBody, "<br>Phone: %s", html.EscapeString(m.Phone))
	}
	if m.Company != "" {
		fmt.Fprintf(&htmlBody, "<br>Company: %s", html.EscapeString(m.Company))
	}
	if m.Subject != "" {
		fmt.Fprintf(&htmlBody, "<br>Subject: %s", html.EscapeString(m.Subject))
	}
	fmt.Fprintf(&htmlBody, "<br>Sent: %s</p>", m.CreatedAt.Format("2 Jan 2006 15:04"))
	fmt.Fprintf(&htmlBody, "<blockquote>%s</blockquote>", strings.ReplaceAll(html.EscapeString(m.Body), "\n", "<br>"))

	var text strings.Builder
	text.WriteString(req.Message)
	text.WriteString("\n\n---\nYour original inquiry\n")
	fmt.Fprintf(&text, "From: %s <%s>\n", m.Name, m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&text, "Phone: %s\n", m.Phone)
	}
	if m.Company != "" {
		fmt.Fprintf(&text, "Company: %s\n", m.Company)
	}
	if m.Subject != "" {
		fmt.Fprintf(&text, "Subject: %s\n", m.Subject)
	}
	fmt.Fprintf(&text, "Sent: %s\n\n%s\n", m.CreatedAt.Format("2 Jan 2006 15:04"), m.Body)

	return notification.Email{
		To:       []string{m.Email},
		Subject:  req.Subject,
		HTMLBody: htmlBody.String(),
		TextBody: text.String(),
	}
}
