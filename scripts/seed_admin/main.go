// Command seed_admin creates the first console account, or resets the
// password of an existing one.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/repository"
	"github.com/kampus/orari/migrations"
	"github.com/kampus/orari/pkg/config"
	"github.com/kampus/orari/pkg/database"
	"github.com/kampus/orari/pkg/logger"
)

func main() {
	var (
		email    string
		password string
		fullName string
		role     string
		migrate  bool
	)
	flag.StringVar(&email, "email", "", "account email")
	flag.StringVar(&password, "password", "", "account password")
	flag.StringVar(&fullName, "name", "Administrator", "display name")
	flag.StringVar(&role, "role", string(models.RoleAdmin), "ADMIN or EDITOR")
	flag.BoolVar(&migrate, "migrate", false, "apply migrations first")
	flag.Parse()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		log.Fatal("-email and a -password of at least 8 characters are required")
	}
	userRole := models.UserRole(strings.ToUpper(role))
	if userRole != models.RoleAdmin && userRole != models.RoleEditor {
		log.Fatalf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if migrate {
		if err := database.Migrate(ctx, db, migrations.Files, logr); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logr.Fatal("failed to hash password", zap.Error(err))
	}

	users := repository.NewUserRepository(db)
	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := users.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			logr.Fatal("failed to reset password", zap.Error(err))
		}
		logr.Info("password reset", zap.String("email", email), zap.String("user_id", existing.ID))
	case errors.Is(err, sql.ErrNoRows):
		user := &models.User{Email: email, PasswordHash: string(hash), FullName: fullName, Role: userRole, Active: true}
		if err := users.Create(ctx, user); err != nil {
			logr.Fatal("failed to create user", zap.Error(err))
		}
		logr.Info("user created", zap.String("email", email), zap.String("user_id", user.ID), zap.String("role", string(userRole)))
	default:
		logr.Fatal("failed to look up user", zap.Error(err))
	}
}
