package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/app/repositories"
	"github.com/oguzk/acadrecord/internal/config"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
	"github.com/oguzk/acadrecord/internal/pkg/auth"
)

// CreateDefaultData creates the default teacher account if no account
// exists for the configured email. Uploads need at least one teacher
// to attribute student claims to.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	teacherRepo := repositories.NewTeacherRepository(dbPool)

	email := config.GetEnv("SEED_TEACHER_EMAIL", "teacher@acadrecord.local")
	password := config.GetEnv("SEED_TEACHER_PASSWORD", "Teacher123!")

	lgr.Info().Msg("Checking/Creating default teacher account...")

	_, err := teacherRepo.GetByEmail(ctx, email)
	if err == nil {
		lgr.Info().Str("email", email).Msg("Default teacher already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrTeacherNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default teacher")
		return err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default teacher password")
		return err
	}

	department := "GENERAL"
	teacher := &models.Teacher{
		PublicID:     uuid.New().String(),
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     "Default Teacher",
		Department:   &department,
		CreatedAt:    time.Now(),
	}

	if err := teacherRepo.Create(ctx, teacher); err != nil {
		lgr.Error().Err(err).Msg("Error creating default teacher")
		return err
	}

	lgr.Info().Int64("teacherID", teacher.ID).Str("email", email).Msg("Default teacher created successfully")
	return nil
}
