package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/acadrecord/internal/app/models/dto"
	"github.com/oguzk/acadrecord/internal/app/services"
	"github.com/oguzk/acadrecord/internal/middleware"
)

// AuthController handles login and session management
type AuthController struct {
	authService  *services.AuthService
	cookieName   string
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cookieName string, cookieMaxAge int, cookieSecure bool) *AuthController {
	return &AuthController{
		authService:  authService,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// Login authenticates a teacher
// @Summary Teacher login
// @Description Verifies credentials, sets the session cookie and returns a bearer token for API clients.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed credentials"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email and password are required"))
		return
	}

	teacher, token, expiresIn, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The cookie value is the URL-encoded teacher public identifier.
	ctx.SetCookie(c.cookieName, url.QueryEscape(teacher.PublicID),
		c.cookieMaxAge, "/", "", c.cookieSecure, true)

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Teacher:     teacher,
		AccessToken: token,
		ExpiresIn:   expiresIn,
	})
}

// Logout clears the session cookie
// @Summary Teacher logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(c.cookieName, "", -1, "/", "", c.cookieSecure, true)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// Me returns the authenticated teacher
// @Summary Current teacher profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.Teacher
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, middleware.CurrentTeacher(ctx))
}
