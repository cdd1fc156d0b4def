package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appModels "github.com/emirhan/coursehub/internal/app/models"
	appRepos "github.com/emirhan/coursehub/internal/app/repositories"
	"github.com/emirhan/coursehub/internal/config"
	"github.com/emirhan/coursehub/internal/db"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
	"github.com/emirhan/coursehub/internal/pkg/auth"
)

// CreateDefaultData creates the bootstrap admin account and, when enabled,
// a small sample catalog. Safe to run on every startup: existing rows are
// left untouched.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(database.Pool)

	if cfg.Seed.AdminPassword == "" {
		lgr.Info().Msg("No seed admin password configured, skipping admin account creation")
	} else {
		if err := createAdmin(ctx, userRepo, cfg, lgr); err != nil {
			return err
		}
	}

	if cfg.Seed.SampleCatalog {
		if err := createSampleCatalog(ctx, database, userRepo, lgr); err != nil {
			return err
		}
	}

	return nil
}

func createAdmin(ctx context.Context, userRepo *appRepos.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	hashed, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &appModels.User{
		Email:     cfg.Seed.AdminEmail,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Admin",
		RoleType:  appModels.RoleAdmin,
		IsActive:  true,
	}

	err = userRepo.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", cfg.Seed.AdminEmail).Msg("Seed admin already exists")
			return nil
		}
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Seed admin account created")
	return nil
}

// createSampleCatalog inserts a demo teacher and a three-course chain
// (intro -> data structures -> algorithms) in one transaction, so a partial
// catalog never becomes visible.
func createSampleCatalog(ctx context.Context, database *db.PostgresDB, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	teacherEmail := "teacher@coursehub.local"

	teacher, err := userRepo.GetByEmail(ctx, teacherEmail)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return fmt.Errorf("failed to look up sample teacher: %w", err)
		}

		hashed, hashErr := auth.HashPassword("teacher123")
		if hashErr != nil {
			return fmt.Errorf("failed to hash sample teacher password: %w", hashErr)
		}

		teacher = &appModels.User{
			Email:     teacherEmail,
			Password:  hashed,
			FirstName: "Sample",
			LastName:  "Teacher",
			RoleType:  appModels.RoleTeacher,
			IsActive:  true,
		}
		if err := userRepo.Create(ctx, teacher); err != nil {
			if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				return fmt.Errorf("failed to create sample teacher: %w", err)
			}
			teacher, err = userRepo.GetByEmail(ctx, teacherEmail)
			if err != nil {
				return fmt.Errorf("failed to reload sample teacher: %w", err)
			}
		}
	}

	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		courses := []struct {
			code     string
			name     string
			credits  int
			capacity int
			prereq   string
		}{
			{code: "CS101", name: "Introduction to Programming", credits: 6, capacity: 60},
			{code: "CS201", name: "Data Structures", credits: 6, capacity: 40, prereq: "CS101"},
			{code: "CS301", name: "Algorithms", credits: 8, capacity: 30, prereq: "CS201"},
		}

		for _, c := range courses {
			var courseID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO courses (code, name, credits, capacity, teacher_id)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
				RETURNING id`,
				c.code, c.name, c.credits, c.capacity, teacher.ID,
			).Scan(&courseID)
			if err != nil {
				return fmt.Errorf("failed to insert sample course %s: %w", c.code, err)
			}

			if c.prereq == "" {
				continue
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO course_prerequisites (course_id, prerequisite_id)
				SELECT $1, id FROM courses WHERE code = $2
				ON CONFLICT DO NOTHING`,
				courseID, c.prereq,
			)
			if err != nil {
				return fmt.Errorf("failed to link prerequisite for %s: %w", c.code, err)
			}
		}

		lgr.Info().Int("courses", len(courses)).Msg("Sample catalog seeded")
		return nil
	})
}
