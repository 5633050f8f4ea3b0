package forum

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agoraforum/agora/internal/models"
	"github.com/agoraforum/agora/pkg/telemetry"
)

// Credentials identifies an authenticated caller.
type Credentials struct {
	UserID  int64
	IsAdmin bool
}

// Register creates a new non-admin user with a bcrypt-hashed password.
// A second registration for the same email fails and creates no row.
func (s *Service) Register(ctx context.Context, email, plainPassword string) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.Register")
	defer span.End()

	var created *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users, _, _ := repos(tx)

		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return Internal("failed to look up user", err)
		}
		if existing != nil {
			return AlreadyExists("User already exist for the given e-mail.")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(plainPassword), s.bcryptCost)
		if err != nil {
			return Internal("failed to hash password", err)
		}

		user := &models.User{
			Email:    email,
			Password: string(hashed),
			IsAdmin:  false,
		}
		if err := users.Create(ctx, user); err != nil {
			return Internal("failed to create user", err)
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", created.ID))
	return created, nil
}

// VerifyCredentials checks an email and plain password against the stored
// bcrypt hash. An unknown email and a wrong password fail identically.
func (s *Service) VerifyCredentials(ctx context.Context, email, plainPassword string) (*Credentials, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.VerifyCredentials")
	defer span.End()

	users, _, _ := repos(s.db.DB)

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, BadCredentials("Bad credentials. Login failed!")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword)); err != nil {
		return nil, BadCredentials("Bad credentials. Login failed!")
	}

	return &Credentials{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}
