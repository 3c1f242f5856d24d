package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/identity"
	"github.com/packmart/backend/internal/domain/shared"
	"github.com/packmart/backend/internal/infrastructure/auth"
)

// AuthService handles admin-console sign-in, token rotation and sign-out
type AuthService struct {
	userRepo  identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwt:       jwt,
		blacklist: blacklist,
		logger:    logger.Named("auth"),
	}
}

// Login verifies credentials and issues a token pair. A wrong email and a
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("email", user.Email))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("FORBIDDEN", "Account is deactivated")
	}

	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return &LoginResponse{User: ToUserResponse(user), Tokens: tokens}, nil
}

// Refresh rotates a refresh token into a new pair. The user is re-read so
// a role change or deactivation takes effect on the next rotation, and the
// old refresh token is revoked.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("FORBIDDEN", "Account is deactivated")
	}

	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, err
	}

	if s.blacklist != nil && claims.ID != "" {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Warn("failed to revoke rotated refresh token",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
	}

	return tokens, nil
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		// already unusable, nothing to revoke
		return nil
	}
	if s.blacklist == nil || claims.ID == "" {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
}

// LogoutEverywhere revokes every outstanding token for a user
func (s *AuthService) LogoutEverywhere(ctx context.Context, userID string) error {
	if s.blacklist == nil {
		return nil
	}
	return s.blacklist.AddUserTokensToBlacklist(ctx, userID, s.jwt.GetRefreshTokenExpiration())
}

// CheckAccessToken validates an access token against signature, expiry and
// revocation. Used by the authentication middleware.
func (s *AuthService) CheckAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil {
		return nil
	}
	if claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("blacklist lookup failed", zap.Error(err))
			return shared.ErrUpstream
		}
		if revoked {
			return auth.ErrTokenBlacklisted
		}
	}
	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("blacklist lookup failed", zap.Error(err))
		return shared.ErrUpstream
	}
	if invalidated {
		return auth.ErrTokenBlacklisted
	}
	return nil
}
