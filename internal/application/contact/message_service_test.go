package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/notification"
	"github.com/packmart/backend/internal/domain/shared"
)

// MockMessageRepository is a mock implementation of contact.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contact.Message), args.Error(1)
}

func (m *MockMessageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contact.Message, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]contact.Message), args.Error(1)
}

func (m *MockMessageRepository) FindByStatus(ctx context.Context, status contact.MessageStatus, filter shared.Filter) ([]contact.Message, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]contact.Message), args.Error(1)
}

func (m *MockMessageRepository) Save(ctx context.Context, message *contact.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status contact.MessageStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMessageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountByStatus(ctx context.Context, status contact.MessageStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSender is a mock implementation of notification.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email notification.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func newTestService(repo *MockMessageRepository, sender *MockSender) *MessageService {
	return NewMessageService(repo, sender, "sales@packmart.tn", zap.NewNop())
}

func TestMessageService_Submit(t *testing.T) {
	t.Run("persists message and sends notification", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*contact.Message")).Return(nil)
		sender.On("Send", mock.Anything, mock.MatchedBy(func(e notification.Email) bool {
			return len(e.To) == 1 && e.To[0] == "sales@packmart.tn" && e.ReplyTo == "ana@x.tn"
		})).Return(nil)

		resp, err := svc.Submit(context.Background(), SubmitMessageRequest{
			Name:    "Ana",
			Email:   "ana@x.tn",
			Message: "Hello",
		})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("notification failure does not fail the submission", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("provider down"))

		resp, err := svc.Submit(context.Background(), SubmitMessageRequest{
			Name:    "Ana",
			Email:   "ana@x.tn",
			Message: "Hello",
		})

		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("missing message is rejected before any persistence", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)

		_, err := svc.Submit(context.Background(), SubmitMessageRequest{
			Name:  "Ana",
			Email: "ana@x.tn",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)

		_, err := svc.Submit(context.Background(), SubmitMessageRequest{
			Name:    "Ana",
			Email:   "not-an-email",
			Message: "Hello",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure fails the submission", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)

		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Submit(context.Background(), SubmitMessageRequest{
			Name:    "Ana",
			Email:   "ana@x.tn",
			Message: "Hello",
		})

		assert.Error(t, err)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestMessageService_Reply(t *testing.T) {
	newUnreadMessage := func() *contact.Message {
		msg, err := contact.NewMessage("Maria", "maria@example.com", "+216123456", "Acme", "Bulk order", "Need 500 boxes")
		require.NoError(t, err)
		return msg
	}

	t.Run("sends reply and marks message replied", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)
		msg := newUnreadMessage()

		repo.On("FindByID", mock.Anything, msg.ID).Return(msg, nil)
		sender.On("Send", mock.Anything, mock.MatchedBy(func(e notification.Email) bool {
			return len(e.To) == 1 && e.To[0] == "maria@example.com" &&
				e.Subject == "Re: your order"
		})).Return(nil)
		repo.On("UpdateStatus", mock.Anything, msg.ID, contact.MessageStatusReplied).Return(nil)

		resp, err := svc.Reply(context.Background(), msg.ID, ReplyRequest{
			Subject: "Re: your order",
			Message: "We can ship next week.",
		})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, contact.MessageStatusReplied, msg.Status)
		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("reply email quotes the original inquiry", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)
		msg := newUnreadMessage()

		var sent notification.Email
		repo.On("FindByID", mock.Anything, msg.ID).Return(msg, nil)
		sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			sent = args.Get(1).(notification.Email)
		}).Return(nil)
		repo.On("UpdateStatus", mock.Anything, msg.ID, contact.MessageStatusReplied).Return(nil)

		_, err := svc.Reply(context.Background(), msg.ID, ReplyRequest{
			Subject: "Re: Bulk order",
			Message: "Quote attached.",
		})
		require.NoError(t, err)

		assert.Contains(t, sent.TextBody, "Maria")
		assert.Contains(t, sent.TextBody, "maria@example.com")
		assert.Contains(t, sent.TextBody, "+216123456")
		assert.Contains(t, sent.TextBody, "Acme")
		assert.Contains(t, sent.TextBody, "Need 500 boxes")
		assert.Contains(t, sent.HTMLBody, "Quote attached.")
	})

	t.Run("missing message yields not found without email", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Reply(context.Background(), id, ReplyRequest{Subject: "S", Message: "B"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("email failure fails the reply and keeps status unread", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)
		msg := newUnreadMessage()

		repo.On("FindByID", mock.Anything, msg.ID).Return(msg, nil)
		sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp exploded"))

		_, err := svc.Reply(context.Background(), msg.ID, ReplyRequest{Subject: "S", Message: "B"})

		assert.ErrorIs(t, err, shared.ErrUpstream)
		assert.Equal(t, contact.MessageStatusUnread, msg.Status)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second reply re-sends email and keeps status replied", func(t *testing.T) {
		repo := new(MockMessageRepository)
		sender := new(MockSender)
		svc := newTestService(repo, sender)
		msg := newUnreadMessage()
		msg.MarkReplied()

		repo.On("FindByID", mock.Anything, msg.ID).Return(msg, nil)
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Reply(context.Background(), msg.ID, ReplyRequest{Subject: "S", Message: "B"})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, contact.MessageStatusReplied, msg.Status)
		// Already-replied messages are not re-written
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})
}

func TestMessageService_UnreadCount(t *testing.T) {
	repo := new(MockMessageRepository)
	sender := new(MockSender)
	svc := newTestService(repo, sender)

	repo.On("CountByStatus", mock.Anything, contact.MessageStatusUnread).Return(int64(4), nil)

	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
