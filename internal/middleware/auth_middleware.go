package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/cems/internal/app/auth"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/services"
	"github.com/yigit/cems/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUser     = "user"
	ContextUserID   = "userID"
	ContextRoleType = "roleType"
)

// AuthMiddleware authenticates requests and applies the role gate
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// tokenFromRequest reads the bearer token from the Authorization header,
// falling back to a token query parameter for Swagger UI and browsers.
func tokenFromRequest(c *gin.Context) string {
	header := strings.Trim(c.GetHeader("Authorization"), "\"'")
	if header == "" {
		header = c.Query("token")
	}
	if header == "" {
		return ""
	}

	// Accept a raw JWT as well as "Bearer <jwt>"
	if strings.Count(header, ".") == 2 && !strings.HasPrefix(header, "Bearer ") {
		return header
	}
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return ""
	}
	return token
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(ContextUser, user)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextRoleType, user.RoleType)
}

// JWTAuth requires a valid token whose user still exists
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Not authorized, no token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		user, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if user, err := m.authService.Authenticate(c.Request.Context(), token); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireCapability aborts with 403 unless the user's role grants action.
// It must run after JWTAuth.
func (m *AuthMiddleware) RequireCapability(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Not authorized, no token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if err := authz.Authorize(user.RoleType, action); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentUserID returns the authenticated user's id or nil for guests
func CurrentUserID(c *gin.Context) *int64 {
	user, ok := CurrentUser(c)
	if !ok {
		return nil
	}
	id := user.ID
	return &id
}
