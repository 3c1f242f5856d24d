package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	contactapp "github.com/packmart/backend/internal/application/contact"
	"github.com/packmart/backend/internal/domain/contact"
	"github.com/packmart/backend/internal/domain/notification"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryMessageRepo is an in-memory contact.MessageRepository for handler tests
type memoryMessageRepo struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*contact.Message
}

func newMemoryMessageRepo() *memoryMessageRepo {
	return &memoryMessageRepo{messages: make(map[uuid.UUID]*contact.Message)}
}

func (r *memoryMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *memoryMessageRepo) FindAll(ctx context.Context, filter shared.Filter) ([]contact.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]contact.Message, 0, len(r.messages))
	for _, m := range r.messages {
		items = append(items, *m)
	}
	return items, nil
}

func (r *memoryMessageRepo) FindByStatus(ctx context.Context, status contact.MessageStatus, filter shared.Filter) ([]contact.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]contact.Message, 0)
	for _, m := range r.messages {
		if m.Status == status {
			items = append(items, *m)
		}
	}
	return items, nil
}

func (r *memoryMessageRepo) Save(ctx context.Context, message *contact.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *memoryMessageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status contact.MessageStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return shared.ErrNotFound
	}
	m.Status = status
	return nil
}

func (r *memoryMessageRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.messages)), nil
}

func (r *memoryMessageRepo) CountByStatus(ctx context.Context, status contact.MessageStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages {
		if m.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memoryMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}

// recordingSender captures outbound email and can be told to fail
type recordingSender struct {
	sent []notification.Email
	err  error
}

func (s *recordingSender) Send(ctx context.Context, email notification.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

func newContactRouter(repo *memoryMessageRepo, sender *recordingSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := contactapp.NewMessageService(repo, sender, "sales@packmart.tn", zap.NewNop())
	h := NewContactHandler(service, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterPublicRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin"), func(c *gin.Context) { c.Next() })
	return r
}

func submitPayload() map[string]any {
	return map[string]any{
		"name":    "Imen Trabelsi",
		"email":   "imen.trabelsi@packmart.tn",
		"company": "Dar Imen Pastries",
		"subject": "Custom printed boxes",
		"message": "Do you print logos on the 20cm kraft boxes?",
	}
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContactHandler_Submit(t *testing.T) {
	repo := newMemoryMessageRepo()
	sender := &recordingSender{}
	r := newContactRouter(repo, sender)

	w := postJSON(r, "/api/v1/contact", submitPayload())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	count, _ := repo.CountByStatus(context.Background(), contact.MessageStatusUnread)
	assert.Equal(t, int64(1), count)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"sales@packmart.tn"}, sender.sent[0].To)
}

func TestContactHandler_Submit_ValidationDetails(t *testing.T) {
	r := newContactRouter(newMemoryMessageRepo(), &recordingSender{})

	w := postJSON(r, "/api/v1/contact", map[string]any{"name": "Imen Trabelsi"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details)
}

func TestContactHandler_Submit_NotificationFailureStillPersists(t *testing.T) {
	repo := newMemoryMessageRepo()
	sender := &recordingSender{err: errors.New("smtp down")}
	r := newContactRouter(repo, sender)

	w := postJSON(r, "/api/v1/contact", submitPayload())

	// Notification is best effort; the submission itself must not fail.
	assert.Equal(t, http.StatusCreated, w.Code)
	count, _ := repo.Count(context.Background(), shared.DefaultFilter())
	assert.Equal(t, int64(1), count)
}

func TestContactHandler_Reply(t *testing.T) {
	repo := newMemoryMessageRepo()
	sender := &recordingSender{}
	r := newContactRouter(repo, sender)

	msg, err := contact.NewMessage("Imen Trabelsi", "imen.trabelsi@packmart.tn", "", "", "Boxes", "Question about sizes")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), msg))

	w := postJSON(r, "/api/v1/admin/contact-messages/"+msg.ID.String()+"/reply", map[string]any{
		"subject": "Re: Boxes",
		"message": "Yes, all sizes between 10cm and 40cm.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"imen.trabelsi@packmart.tn"}, sender.sent[0].To)

	stored, err := repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, contact.MessageStatusReplied, stored.Status)
}

func TestContactHandler_Reply_EmailFailureLeavesUnread(t *testing.T) {
	repo := newMemoryMessageRepo()
	sender := &recordingSender{err: errors.New("provider rejected")}
	r := newContactRouter(repo, sender)

	msg, err := contact.NewMessage("Imen Trabelsi", "imen.trabelsi@packmart.tn", "", "", "", "Hello")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), msg))

	w := postJSON(r, "/api/v1/admin/contact-messages/"+msg.ID.String()+"/reply", map[string]any{
		"subject": "Re: Hello",
		"message": "Hi",
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UPSTREAM")

	stored, err := repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, contact.MessageStatusUnread, stored.Status)
}

func TestContactHandler_Reply_NotFound(t *testing.T) {
	r := newContactRouter(newMemoryMessageRepo(), &recordingSender{})

	w := postJSON(r, "/api/v1/admin/contact-messages/"+uuid.NewString()+"/reply", map[string]any{
		"subject": "Re",
		"message": "Hi",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactHandler_UnreadCount(t *testing.T) {
	repo := newMemoryMessageRepo()
	r := newContactRouter(repo, &recordingSender{})

	msg, err := contact.NewMessage("Sami", "sami@packmart.tn", "", "", "", "Hello")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), msg))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/contact-messages/unread-count", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread":1`)
}

func TestContactHandler_ListByStatus(t *testing.T) {
	repo := newMemoryMessageRepo()
	r := newContactRouter(repo, &recordingSender{})

	unread, err := contact.NewMessage("Sami", "sami@packmart.tn", "", "", "", "Hello")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), unread))

	replied, err := contact.NewMessage("Imen", "imen@packmart.tn", "", "", "", "Hi")
	require.NoError(t, err)
	replied.MarkReplied()
	require.NoError(t, repo.Save(context.Background(), replied))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/contact-messages?status=replied", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "imen@packmart.tn", items[0].(map[string]interface{})["email"])
}

func TestContactHandler_Delete(t *testing.T) {
	repo := newMemoryMessageRepo()
	r := newContactRouter(repo, &recordingSender{})

	msg, err := contact.NewMessage("Sami", "sami@packmart.tn", "", "", "", "Hello")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), msg))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/contact-messages/"+msg.ID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err = repo.FindByID(context.Background(), msg.ID)
	assert.Error(t, err)
}
