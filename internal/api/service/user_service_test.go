package service

import (
	"context"
	"dlin210/account-portal/internal/api/models"
	"dlin210/account-portal/internal/api/repository"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	users map[string]*models.User

	findErr   error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.users[email], nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) EnsureIndexes(_ context.Context) error { return nil }

func TestUserService_Register_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	form := models.RegisterForm{
		Name:     "A",
		Email:    "a@b.com",
		Password: "password1",
		MobileNo: "1234567890",
	}

	user, err := svc.Register(context.Background(), form)
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Len(t, repo.users, 1)
	stored := repo.users["a@b.com"]
	require.NotNil(t, stored)
	assert.Equal(t, "A", stored.Name)
	assert.Equal(t, "1234567890", stored.MobileNo)

	// The stored password is a hash, not the plaintext, and verifies
	// against the submitted password.
	assert.NotEqual(t, "password1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password1")))
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	form := models.RegisterForm{Name: "X", Email: "x@y.com", Password: "password1", MobileNo: "1234567890"}
	_, err := svc.Register(context.Background(), form)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), form)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.users, 1, "no second record should be created")
}

func TestUserService_Register_DuplicateInsertRace(t *testing.T) {
	// A concurrent registration can pass the existence check and then hit
	// the unique index. The insert failure surfaces as ErrEmailTaken, not
	// as an infrastructure error.
	repo := newFakeUserRepo()
	repo.createErr = repository.ErrDuplicateEmail
	svc := NewUserService(repo)

	form := models.RegisterForm{Name: "X", Email: "x@y.com", Password: "password1", MobileNo: "1234567890"}
	_, err := svc.Register(context.Background(), form)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_Register_LookupFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := NewUserService(repo)

	form := models.RegisterForm{Name: "A", Email: "a@b.com", Password: "password1", MobileNo: "1234567890"}
	_, err := svc.Register(context.Background(), form)
	assert.ErrorIs(t, err, ErrExistsCheck)
	assert.Empty(t, repo.users)
}

func TestUserService_Register_CreateFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("write concern error")
	svc := NewUserService(repo)

	form := models.RegisterForm{Name: "A", Email: "a@b.com", Password: "password1", MobileNo: "1234567890"}
	_, err := svc.Register(context.Background(), form)
	assert.ErrorIs(t, err, ErrCreate)
	assert.NotErrorIs(t, err, ErrExistsCheck)
}

func TestUserService_Verify(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	form := models.RegisterForm{Name: "A", Email: "a@b.com", Password: "password1", MobileNo: "1234567890"}
	_, err := svc.Register(context.Background(), form)
	require.NoError(t, err)

	user, err := svc.Verify(context.Background(), "a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)

	_, err = svc.Verify(context.Background(), "a@b.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Verify(context.Background(), "nobody@b.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
