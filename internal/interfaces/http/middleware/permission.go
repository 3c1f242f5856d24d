package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/packmart/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for the role capability middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when the capability check fails (optional)
	OnDenied func(c *gin.Context, capability string)
}

// RoleCheck reports whether a role grants a capability
type RoleCheck func(identity.Role) bool

// RequireCapability creates middleware that gates a route on a role
// capability. The capability name only appears in logs and denial hooks.
func RequireCapability(capability string, check RoleCheck) gin.HandlerFunc {
	return RequireCapabilityWithConfig(PermissionConfig{}, capability, check)
}

// RequireCapabilityWithConfig creates capability middleware with custom config
func RequireCapabilityWithConfig(cfg PermissionConfig, capability string, check RoleCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleCapabilityDenied(c, cfg, capability, "No authentication claims found")
			return
		}

		if !check(claims.Role) {
			handleCapabilityDenied(c, cfg, capability, "Role lacks required capability")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Capability check passed",
				zap.String("user_id", claims.UserID),
				zap.String("role", string(claims.Role)),
				zap.String("capability", capability),
			)
		}

		c.Next()
	}
}

// RequireAdminView gates routes on read access to the admin console
func RequireAdminView() gin.HandlerFunc {
	return RequireCapability("admin.view", identity.Role.CanViewAdmin)
}

// RequireContentManager gates routes on blog authoring access
func RequireContentManager() gin.HandlerFunc {
	return RequireCapability("content.manage", identity.Role.CanManageContent)
}

// RequireContactResponder gates routes on contact inbox mutation access
func RequireContactResponder() gin.HandlerFunc {
	return RequireCapability("contacts.reply", identity.Role.CanReplyContacts)
}

// RequireOrderManager gates routes on order fulfilment access
func RequireOrderManager() gin.HandlerFunc {
	return RequireCapability("orders.manage", identity.Role.CanManageOrders)
}

// RequireUserManager gates routes on user administration access
func RequireUserManager() gin.HandlerFunc {
	return RequireCapability("users.manage", identity.Role.CanManageUsers)
}

// handleCapabilityDenied handles capability check failures
func handleCapabilityDenied(c *gin.Context, cfg PermissionConfig, capability, reason string) {
	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		fields := []zap.Field{
			zap.String("capability", capability),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		}
		if claims != nil {
			fields = append(fields,
				zap.String("user_id", claims.UserID),
				zap.String("role", string(claims.Role)),
			)
		}
		cfg.Logger.Warn("Capability check failed", fields...)
	}

	if cfg.OnDenied != nil {
		cfg.OnDenied(c, capability)
		return
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "You do not have permission to perform this action",
		},
	})
}
