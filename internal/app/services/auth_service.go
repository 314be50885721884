package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/app/repositories"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
	"github.com/oguzk/acadrecord/internal/pkg/auth"
	"github.com/oguzk/acadrecord/internal/pkg/logger"
)

// AuthService handles teacher authentication
type AuthService struct {
	teacherRepo *repositories.TeacherRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(teacherRepo *repositories.TeacherRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		teacherRepo: teacherRepo,
		jwtService:  jwtService,
	}
}

// Login verifies credentials and returns the teacher with a bearer
// token. The caller is responsible for setting the session cookie.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Teacher, string, int, error) {
	teacher, err := s.teacherRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeacherNotFound) {
			return nil, "", 0, apperrors.ErrInvalidCredentials
		}
		return nil, "", 0, fmt.Errorf("error retrieving teacher: %w", err)
	}

	if !auth.CheckPassword(teacher.PasswordHash, password) {
		logger.Warn().Str("email", email).Msg("Login attempt with wrong password")
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(teacher)
	if err != nil {
		return nil, "", 0, fmt.Errorf("error issuing token: %w", err)
	}

	return teacher, token, expiresIn, nil
}

// ResolvePublicID maps a session cookie value to the teacher account
func (s *AuthService) ResolvePublicID(ctx context.Context, publicID string) (*models.Teacher, error) {
	return s.teacherRepo.GetByPublicID(ctx, publicID)
}

// ResolveID maps a token subject to the teacher account
func (s *AuthService) ResolveID(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}
