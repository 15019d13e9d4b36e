// Command seed inserts the initial administrator account so a fresh
// deployment has someone able to create the rest.
package main

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/e-garderoba/backend/internal/core/domain"
	"github.com/e-garderoba/backend/internal/infrastructure/config"
	mongodb "github.com/e-garderoba/backend/internal/infrastructure/db/mongo"
	"github.com/e-garderoba/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("jkowalski"), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	admin, err := repo.Insert(ctx, &domain.User{
		FirstName:    "Jan",
		LastName:     "Kowalski",
		Email:        "jkowalski@example.com",
		Phone:        "123456789",
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			log.Info().Msg("admin account already seeded")
			return
		}
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	log.Info().Int64("id", admin.ID).Str("email", admin.Email).Msg("admin account seeded")
}
