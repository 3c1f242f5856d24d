package notification

import "context"

// Email is a single transactional message handed to the email provider
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers transactional email through a hosted provider.
// Delivery is synchronous; callers decide whether a failure is fatal.
type Sender interface {
	Send(ctx context.Context, email Email) error
}
