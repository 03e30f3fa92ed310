// Package services holds the business rules. Services depend on narrow
// repository interfaces so tests can substitute in-memory fakes.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhant14g/Real-shop/app/jobs"
	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/auth"
	"github.com/siddhant14g/Real-shop/pkg/logger"
	"github.com/siddhant14g/Real-shop/pkg/queue"
	"github.com/siddhant14g/Real-shop/pkg/rbac"
)

// UserStore is the persistence surface AuthService needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"nullable,in=customer,admin"`
	Address  string `json:"address" validate:"nullable,max=500"`
}

// AuthResult is what both register and login hand back.
type AuthResult struct {
	Token string
	User  *models.User
}

// Register creates an account, queues the welcome email and issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Validation("User already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "hash password", err)
	}

	role := in.Role
	if role == "" {
		role = rbac.RoleCustomer
	}

	u := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Role:     role,
		Address:  in.Address,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	// Fire and forget; a mail failure never rolls back registration.
	if err := queue.Dispatch(&jobs.WelcomeEmailJob{Email: u.Email, UserName: u.Name}); err != nil {
		logger.Warn("auth: welcome email not queued", "email", u.Email, "error", err)
	}

	token, err := auth.GenerateToken(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "issue token", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

// LoginInput is the payload for credential checks.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a token. The same message is used
// for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Validation("Invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(u.Password, in.Password) {
		return nil, apperr.Validation("Invalid credentials")
	}

	token, err := auth.GenerateToken(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "issue token", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

// ParseUserID converts the token subject back to an ObjectID.
func ParseUserID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Unauthenticated("Invalid token subject")
	}
	return oid, nil
}
