package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	contactapp "github.com/packmart/backend/internal/application/contact"
	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/notification"
	"github.com/packmart/backend/internal/infrastructure/persistence"
)

type captureSender struct {
	sent []notification.Email
	err  error
}

func (s *captureSender) Send(ctx context.Context, email notification.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

// Exercises the full inquiry lifecycle against a real database: submit,
// notify, reply, status flip.
func TestContactWorkflow_SubmitThenReply(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormContactMessageRepository(tdb.DB)
	sender := &captureSender{}
	service := contactapp.NewMessageService(repo, sender, "sales@packmart.tn", zap.NewNop())
	ctx := context.Background()

	submitted, err := service.Submit(ctx, contactapp.SubmitMessageRequest{
		Name:    "Imen Trabelsi",
		Email:   "imen@packmart.tn",
		Subject: "Custom printing",
		Message: "Can you print our logo on the 20cm kraft boxes?",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"sales@packmart.tn"}, sender.sent[0].To)
	assert.Equal(t, "imen@packmart.tn", sender.sent[0].ReplyTo)

	unread, err := service.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	_, err = service.Reply(ctx, submitted.ID, contactapp.ReplyRequest{
		Subject: "Re: Custom printing",
		Message: "Yes, single-colour logo printing is available from 100 units.",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"imen@packmart.tn"}, sender.sent[1].To)

	stored, err := repo.FindByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, contact.MessageStatusReplied, stored.Status)

	unread, err = service.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

// A failed reply email must leave the message unread.
func TestContactWorkflow_ReplyFailureKeepsUnread(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormContactMessageRepository(tdb.DB)
	sender := &captureSender{}
	service := contactapp.NewMessageService(repo, sender, "sales@packmart.tn", zap.NewNop())
	ctx := context.Background()

	submitted, err := service.Submit(ctx, contactapp.SubmitMessageRequest{
		Name:    "Sami Ben Ali",
		Email:   "sami@example.com",
		Message: "Do you deliver to Sfax?",
	})
	require.NoError(t, err)

	sender.err = errors.New("provider rejected the message")
	_, err = service.Reply(ctx, submitted.ID, contactapp.ReplyRequest{
		Subject: "Re: Delivery",
		Message: "We do.",
	})
	require.Error(t, err)

	stored, err := repo.FindByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, contact.MessageStatusUnread, stored.Status)
}
