package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/identity"
	"github.com/packmart/backend/internal/domain/shared"
)

// UserService manages operator accounts for the admin console
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.Named("users"),
	}
}

// Create provisions a new operator account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	// Accounts store the lowercased address, so the duplicate check has
	// to look up the same form.
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.DisplayName, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Get returns a single operator account
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns a page of operator accounts
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, ToUserResponse(&users[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ChangePassword replaces a user's password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("UNAUTHORIZED", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// SetRole changes an operator's role. Operators cannot change their own
// role; that would let a lone owner lock everyone out by mistake.
func (s *UserService) SetRole(ctx context.Context, actorID, id uuid.UUID, req SetRoleRequest) (*UserResponse, error) {
	if actorID == id {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot change your own role")
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Deactivate disables an operator account
func (s *UserService) Deactivate(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return shared.NewDomainError("FORBIDDEN", "You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}
