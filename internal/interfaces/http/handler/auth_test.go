package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	identityapp "github.com/stylehub/backend/internal/application/identity"
	"github.com/stylehub/backend/internal/domain/identity"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/auth"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepo) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepo) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*identity.Account, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepo) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Account), args.Error(1)
}

func (m *MockAccountRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepo) Save(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthHandlerTest(t *testing.T) (*AuthHandler, *MockAccountRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := new(MockAccountRepo)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "stylehub-test",
	})
	service := identityapp.NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	return NewAuthHandler(service), repo
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h, repo := newAuthHandlerTest(t)

	repo.On("FindByUsername", mock.Anything, "alice").Return(nil, shared.ErrNotFound)
	repo.On("FindByPhoneNumber", mock.Anything, "+15550100").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	authedRequest(c, uuid.Nil, http.MethodPost, "/auth/register", identityapp.RegisterRequest{
		Username:    "alice",
		PhoneNumber: "+15550100",
		Password:    "correct-horse",
	})

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h, repo := newAuthHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	authedRequest(c, uuid.Nil, http.MethodPost, "/auth/register", identityapp.RegisterRequest{
		Username:    "alice",
		PhoneNumber: "+15550100",
		Password:    "short",
	})

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h, repo := newAuthHandlerTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	account, err := identity.NewAccount("alice", "+15550100", string(hash), identity.RoleCustomer)
	require.NoError(t, err)
	account.Activate()

	repo.On("FindByUsername", mock.Anything, "alice").Return(account, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	authedRequest(c, uuid.Nil, http.MethodPost, "/auth/login", identityapp.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h, repo := newAuthHandlerTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	account, err := identity.NewAccount("alice", "+15550100", string(hash), identity.RoleCustomer)
	require.NoError(t, err)
	account.Activate()

	repo.On("FindByUsername", mock.Anything, "alice").Return(account, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	authedRequest(c, uuid.Nil, http.MethodPost, "/auth/login", identityapp.LoginRequest{
		Username: "alice",
		Password: "correct-horse",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	tokens, ok := data["tokens"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
}
