package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/app/models/dto"
	"github.com/oguzk/acadrecord/internal/app/services"
	"github.com/oguzk/acadrecord/internal/pkg/auth"
)

// Context keys set by SessionAuth
const (
	ContextTeacherKey   = "teacher"
	ContextTeacherIDKey = "teacherID"
)

// AuthMiddleware authenticates teachers. The primary mechanism is the
// session cookie holding the URL-encoded teacher public identifier;
// API clients may send a Bearer token instead.
type AuthMiddleware struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
	cookieName  string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService *services.AuthService, jwtService *auth.JWTService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		jwtService:  jwtService,
		cookieName:  cookieName,
	}
}

// SessionAuth resolves the requesting teacher or aborts with 401
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		teacher := m.resolveTeacher(c)
		if teacher == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
			return
		}

		c.Set(ContextTeacherKey, teacher)
		c.Set(ContextTeacherIDKey, teacher.ID)
		c.Next()
	}
}

func (m *AuthMiddleware) resolveTeacher(c *gin.Context) *models.Teacher {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		publicID, err := url.QueryUnescape(cookie)
		if err != nil {
			return nil
		}
		teacher, err := m.authService.ResolvePublicID(c.Request.Context(), publicID)
		if err != nil {
			return nil
		}
		return teacher
	}

	tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil
	}
	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil
	}
	teacher, err := m.authService.ResolveID(c.Request.Context(), claims.TeacherID)
	if err != nil {
		return nil
	}
	return teacher
}

// TeacherID returns the authenticated teacher's id from the context
func TeacherID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextTeacherIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// CurrentTeacher returns the authenticated teacher from the context
func CurrentTeacher(c *gin.Context) *models.Teacher {
	if v, ok := c.Get(ContextTeacherKey); ok {
		if t, ok := v.(*models.Teacher); ok {
			return t
		}
	}
	return nil
}
