package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const usersCollection = "Users"

// ErrUserExists reports a registration against an email that is already taken.
var ErrUserExists = errors.New("user already exists")

// ErrInvalidCredentials reports a failed login. Unknown email and wrong
// password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is an API account. PasswordHash never serializes to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"Email" json:"email"`
	PasswordHash string             `bson:"PasswordHash" json:"-"`
	FullName     string             `bson:"FullName" json:"fullName"`
	Role         string             `bson:"Role" json:"role"`
	CreatedAt    time.Time          `bson:"CreatedAt" json:"createdAt"`
}

// UserStore persists accounts in the Users collection.
type UserStore struct {
	exec record.Executor
	log  logger.Logger
	now  func() time.Time
}

// NewUserStore creates the account store.
func NewUserStore(exec record.Executor, log logger.Logger) *UserStore {
	return &UserStore{exec: exec, log: log, now: time.Now}
}

// EnsureIndexes creates the unique email index. Unlike the business-key
// indexes this one is not optional; duplicate accounts break login.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	return s.exec.EnsureUniqueIndex(ctx, usersCollection, "Email")
}

// GetByEmail returns the account for a (case-normalized) email address, or
// record.ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.exec.FindOne(ctx, usersCollection, bson.M{"Email": normalizeEmail(email)}, &user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the account for a user id, or record.ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := s.exec.FindOne(ctx, usersCollection, bson.M{"_id": id}, &user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a new account. The plaintext password is hashed with
// bcrypt before the document is written and never leaves this function.
func (s *UserStore) Create(ctx context.Context, email, password, fullName string) (*User, error) {
	email = normalizeEmail(email)

	if _, err := s.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, record.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         "User",
		CreatedAt:    s.now().UTC(),
	}
	result, err := s.exec.InsertOne(ctx, usersCollection, user)
	if err != nil {
		return nil, err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	s.log.Info("user registered", "email", user.Email)
	return user, nil
}

// Authenticate verifies a login and returns the account on success.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.GetByEmail(ctx, email)
	if errors.Is(err, record.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
