package repository

import (
	"context"
	"dlin210/account-portal/internal/api/models"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("repository.user")

// ErrDuplicateEmail is returned by Create when the unique index on email
// rejects the insert.
var ErrDuplicateEmail = errors.New("email already exists")

const usersCollection = "users"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	EnsureIndexes(ctx context.Context) error
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a MongoDB-based UserRepository.
func NewUserRepository(database *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: database.Collection(usersCollection)}
}

// EnsureIndexes creates the unique index on email. Running it at startup
// closes the window between the existence check and the insert.
func (r *mongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by exact email match. A missing user is not
// an error; both return values are nil.
func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.FindByEmail")
	defer span.End()
	span.SetAttributes(attribute.String("user.email", email))

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new user record. The caller is responsible for hashing
// the password beforehand.
func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.Create")
	defer span.End()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
