package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/identity"
	"github.com/packmart/backend/internal/domain/shared"
)

func TestUserService_Create(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	mockRepo.On("FindByEmail", mock.Anything, "rim@packmart.tn").Return(nil, shared.ErrNotFound)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := service.Create(context.Background(), CreateUserRequest{
		Email:       "Rim@PackMart.tn",
		DisplayName: "Rim Gharbi",
		Password:    "a-long-password",
		Role:        "editor",
	})

	require.NoError(t, err)
	assert.Equal(t, "rim@packmart.tn", resp.Email)
	assert.Equal(t, identity.RoleEditor, resp.Role)
	assert.Equal(t, identity.UserStatusActive, resp.Status)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	existing := newTestUser(t, identity.RoleAdmin)
	mockRepo.On("FindByEmail", mock.Anything, "sami@packmart.tn").Return(existing, nil)

	_, err := service.Create(context.Background(), CreateUserRequest{
		Email:    "sami@packmart.tn",
		Password: "a-long-password",
		Role:     "viewer",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateEmailCaseInsensitive(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	existing := newTestUser(t, identity.RoleAdmin)
	mockRepo.On("FindByEmail", mock.Anything, "sami@packmart.tn").Return(existing, nil)

	_, err := service.Create(context.Background(), CreateUserRequest{
		Email:    " Sami@PackMart.tn ",
		Password: "a-long-password",
		Role:     "viewer",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	_, err := service.Create(context.Background(), CreateUserRequest{
		Email:    "rim@packmart.tn",
		Password: "a-long-password",
		Role:     "manager",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	user := newTestUser(t, identity.RoleAdmin)
	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	mockRepo.On("Save", mock.Anything, user).Return(nil)

	err := service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "correct-horse-battery",
		NewPassword:     "even-longer-password",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("even-longer-password"))
	assert.False(t, user.VerifyPassword("correct-horse-battery"))
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	user := newTestUser(t, identity.RoleAdmin)
	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "even-longer-password",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.True(t, user.VerifyPassword("correct-horse-battery"))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_SetRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	user := newTestUser(t, identity.RoleViewer)
	actorID := uuid.New()
	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	mockRepo.On("Save", mock.Anything, user).Return(nil)

	resp, err := service.SetRole(context.Background(), actorID, user.ID, SetRoleRequest{Role: "admin"})

	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, resp.Role)
}

func TestUserService_SetRole_SelfRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	id := uuid.New()
	_, err := service.SetRole(context.Background(), id, id, SetRoleRequest{Role: "viewer"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_Deactivate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	user := newTestUser(t, identity.RoleEditor)
	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	mockRepo.On("Save", mock.Anything, user).Return(nil)

	err := service.Deactivate(context.Background(), uuid.New(), user.ID)

	require.NoError(t, err)
	assert.False(t, user.IsActive())
}

func TestUserService_Deactivate_SelfRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, zap.NewNop())

	id := uuid.New()
	err := service.Deactivate(context.Background(), id, id)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
