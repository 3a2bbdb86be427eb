package services

import (
	"context"
	"testing"
	"time"

	"shopcore/internal/common"
	"shopcore/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testSecret = "test-secret"

func TestRegister_InvalidEmail(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "not-an-email", "password123")
	assert.Nil(t, user)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "a@example.com", "short")
	assert.Nil(t, user)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

func TestRegister_HashesPasswordAndLowercasesEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "a@example.com" && u.IsActive && !u.IsSuperuser
	})).Return(nil)

	user, err := svc.Register(context.Background(), "A@Example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	userRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)
	userID := uuid.New()
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(&models.User{
		ID:           userID,
		Email:        "a@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	token, err := svc.Login(context.Background(), "a@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	parsed, err := jwt.ParseWithClaims(token.AccessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), sub)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(&models.User{
		Email:        "a@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	token, err := svc.Login(context.Background(), "a@example.com", "wrong-password")
	assert.Nil(t, token)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	userRepo.On("GetByEmail", mock.Anything, "missing@example.com").Return(nil, nil)

	token, err := svc.Login(context.Background(), "missing@example.com", "password123")
	assert.Nil(t, token)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(&models.User{
		Email:        "a@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	token, err := svc.Login(context.Background(), "a@example.com", "password123")
	assert.Nil(t, token)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
}
