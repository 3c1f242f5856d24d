package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/infrastructure/persistence"
)

func TestContactMessageRepository_SaveAndFind(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormContactMessageRepository(tdb.DB)
	ctx := context.Background()

	msg, err := contact.NewMessage("Imen Trabelsi", "imen@packmart.tn", "+216 20 123 456", "Dar Imen Pastries", "Custom boxes", "Do you print logos?")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, msg))

	found, err := repo.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Imen Trabelsi", found.Name)
	assert.Equal(t, "imen@packmart.tn", found.Email)
	assert.Equal(t, "+216 20 123 456", found.Phone)
	assert.Equal(t, contact.MessageStatusUnread, found.Status)
}

func TestContactMessageRepository_FindByID_NotFound(t *testing.T) {
	tdb := NewSharedTestDB(t)
	repo := persistence.NewGormContactMessageRepository(tdb.DB)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.True(t, shared.IsNotFound(err))
}

func TestContactMessageRepository_UpdateStatus(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormContactMessageRepository(tdb.DB)
	ctx := context.Background()

	msg, err := contact.NewMessage("Sami", "sami@packmart.tn", "", "", "", "Hello")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, msg))

	require.NoError(t, repo.UpdateStatus(ctx, msg.ID, contact.MessageStatusReplied))

	found, err := repo.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, contact.MessageStatusReplied, found.Status)

	err = repo.UpdateStatus(ctx, uuid.New(), contact.MessageStatusReplied)
	assert.True(t, shared.IsNotFound(err))
}

func TestContactMessageRepository_StatusCountsAndListing(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormContactMessageRepository(tdb.DB)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		msg, err := contact.NewMessage("Sender", "sender@example.com", "", "", "", "Question")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, msg))
	}
	replied, err := contact.NewMessage("Replied", "replied@example.com", "", "", "", "Answered")
	require.NoError(t, err)
	replied.MarkReplied()
	require.NoError(t, repo.Save(ctx, replied))

	unreadCount, err := repo.CountByStatus(ctx, contact.MessageStatusUnread)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unreadCount)

	repliedMessages, err := repo.FindByStatus(ctx, contact.MessageStatusReplied, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, repliedMessages, 1)
	assert.Equal(t, "replied@example.com", repliedMessages[0].Email)

	total, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestContactMessageRepository_Delete(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormContactMessageRepository(tdb.DB)
	ctx := context.Background()

	msg, err := contact.NewMessage("Sami", "sami@packmart.tn", "", "", "", "Hello")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, msg))

	require.NoError(t, repo.Delete(ctx, msg.ID))

	_, err = repo.FindByID(ctx, msg.ID)
	assert.True(t, shared.IsNotFound(err))

	err = repo.Delete(ctx, msg.ID)
	assert.True(t, shared.IsNotFound(err))
}
