package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/notification"
)

// maxResponseSize is the maximum allowed response size from the email API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Sentinel errors for provider failures
var (
	ErrEmailUnavailable  = errors.New("email: provider unavailable")
	ErrEmailSendRejected = errors.New("email: send rejected")
	ErrEmailInvalidInput = errors.New("email: invalid message")
)

// sendRequest is the provider's wire shape for a send call
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// sendResponse is the provider's wire shape for a send result
type sendResponse struct {
	ID string `json:"id"`
}

// errorResponse is the provider's wire shape for a rejected call
type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ResendSender implements notification.Sender against the Resend HTTP API
type ResendSender struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewResendSender creates a new Resend-backed email sender
func NewResendSender(config *Config, logger *zap.Logger) (*ResendSender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ResendSender{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger.Named("email"),
	}, nil
}

// Send delivers a single transactional email synchronously
func (s *ResendSender) Send(ctx context.Context, email notification.Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("%w: no recipients", ErrEmailInvalidInput)
	}
	if email.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrEmailInvalidInput)
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("%w: body is required", ErrEmailInvalidInput)
	}

	payload, err := json.Marshal(sendRequest{
		From:    s.config.FromAddress,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		HTML:    email.HTMLBody,
		Text:    email.TextBody,
	})
	if err != nil {
		return fmt.Errorf("email: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIBaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("email: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("email: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var provErr errorResponse
		if json.Unmarshal(body, &provErr) == nil && provErr.Message != "" {
			return fmt.Errorf("%w: HTTP %d: %s", ErrEmailSendRejected, resp.StatusCode, provErr.Message)
		}
		return fmt.Errorf("%w: HTTP %d", ErrEmailSendRejected, resp.StatusCode)
	}

	var result sendResponse
	if err := json.Unmarshal(body, &result); err == nil && result.ID != "" {
		s.logger.Debug("email accepted", zap.String("provider_id", result.ID), zap.String("subject", email.Subject))
	}
	return nil
}

var _ notification.Sender = (*ResendSender)(nil)
