package service

import (
	"context"
	"dlin210/account-portal/internal/api/models"
	"dlin210/account-portal/internal/api/repository"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"
)

var tracer = otel.Tracer("service.user")

// bcryptCost is the work factor applied to registration passwords.
const bcryptCost = 10

var (
	// ErrEmailTaken means an account with the submitted email already exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrExistsCheck wraps a failure of the duplicate-email lookup.
	ErrExistsCheck = errors.New("error checking if user exists")
	// ErrCreate wraps a failure to persist the new user.
	ErrCreate = errors.New("error creating user")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// CredentialVerifier checks a username/password pair against stored
// accounts. The login handler depends on this interface only.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

// UserService defines the interface for user-related business logic.
type UserService interface {
	CredentialVerifier
	Register(ctx context.Context, form models.RegisterForm) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register checks for an existing account, hashes the password, and persists
// the new user. Validation is the caller's concern; see ValidateRegistration.
func (s *userService) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer span.End()

	existing, err := s.userRepo.FindByEmail(ctx, form.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExistsCheck, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}

	user := &models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: string(hash),
		MobileNo: form.MobileNo,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index can still reject a concurrent duplicate that
		// slipped past the existence check above.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	return user, nil
}

// Verify implements CredentialVerifier against the users collection.
func (s *userService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserService.Verify")
	defer span.End()

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
