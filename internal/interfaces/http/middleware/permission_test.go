package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/packmart/backend/internal/domain/identity"
	"github.com/packmart/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
)

func newCapabilityRouter(role identity.Role, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(JWTClaimsKey, &auth.Claims{
			UserID: "8fca7f6e-57ad-4f9f-8f4f-0d1a25b3c001",
			Email:  "sami@packmart.tn",
			Role:   role,
		})
		c.Next()
	})
	r.POST("/guarded", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGuarded(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name  string
		role  identity.Role
		guard gin.HandlerFunc
		want  int
	}{
		{"viewer can view admin", identity.RoleViewer, RequireAdminView(), http.StatusOK},
		{"viewer cannot manage content", identity.RoleViewer, RequireContentManager(), http.StatusForbidden},
		{"editor can manage content", identity.RoleEditor, RequireContentManager(), http.StatusOK},
		{"editor cannot reply to contacts", identity.RoleEditor, RequireContactResponder(), http.StatusForbidden},
		{"admin can reply to contacts", identity.RoleAdmin, RequireContactResponder(), http.StatusOK},
		{"admin can manage orders", identity.RoleAdmin, RequireOrderManager(), http.StatusOK},
		{"admin cannot manage users", identity.RoleAdmin, RequireUserManager(), http.StatusForbidden},
		{"super admin can manage users", identity.RoleSuperAdmin, RequireUserManager(), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGuarded(newCapabilityRouter(tt.role, tt.guard))
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
			}
		})
	}
}

func TestRequireCapabilityWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/guarded", RequireAdminView(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doGuarded(r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapabilityOnDeniedHook(t *testing.T) {
	var denied string
	guard := RequireCapabilityWithConfig(PermissionConfig{
		OnDenied: func(c *gin.Context, capability string) {
			denied = capability
			c.AbortWithStatus(http.StatusNotFound)
		},
	}, "users.manage", identity.Role.CanManageUsers)

	w := doGuarded(newCapabilityRouter(identity.RoleViewer, guard))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "users.manage", denied)
}
