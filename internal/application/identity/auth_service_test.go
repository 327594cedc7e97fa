package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stylehub/backend/internal/domain/identity"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/auth"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*identity.Account, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Account), args.Error(1)
}

func (m *MockAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "stylehub-test",
	})
}

func newTestAuthService(repo *MockAccountRepository) (*AuthService, auth.TokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(repo, newTestJWTService(), blacklist, zap.NewNop()), blacklist
}

func createTestAccount(t *testing.T, password string) *identity.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	account, err := identity.NewAccount("alice", "+8613800000001", string(hash), identity.RoleCustomer)
	require.NoError(t, err)
	account.Activate()
	return account
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(MockAccountRepository)
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	repo.On("FindByUsername", ctx, "bob").Return(nil, shared.ErrNotFound)
	repo.On("FindByPhoneNumber", ctx, "+8613800000002").Return(nil, shared.ErrNotFound)
	repo.On("Save", ctx, mock.AnythingOfType("*identity.Account")).Return(nil)

	result, err := service.Register(ctx, RegisterRequest{
		Username:    "bob",
		PhoneNumber: "+8613800000002",
		Password:    "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob", result.Username)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, "customer", result.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := new(MockAccountRepository)
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	existing := createTestAccount(t, "whatever")
	repo.On("FindByUsername", ctx, "alice").Return(existing, nil)

	_, err := service.Register(ctx, RegisterRequest{
		Username:    "alice",
		PhoneNumber: "+8613800000003",
		Password:    "s3cret-pass",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(MockAccountRepository)
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	account := createTestAccount(t, "s3cret-pass")
	repo.On("FindByUsername", ctx, "alice").Return(account, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*identity.Account")).Return(nil)

	result, err := service.Login(ctx, LoginRequest{Username: "alice", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, account.ID, result.Account.ID)
	assert.NotNil(t, result.Account.LastActiveAt)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockAccountRepository)
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	account := createTestAccount(t, "s3cret-pass")
	repo.On("FindByUsername", ctx, "alice").Return(account, nil)

	_, err := service.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Login_BannedAccount(t *testing.T) {
	repo := new(MockAccountRepository)
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	account := createTestAccount(t, "s3cret-pass")
	account.Ban()
	repo.On("FindByUsername", ctx, "alice").Return(account, nil)

	_, err := service.Login(ctx, LoginRequest{Username: "alice", Password: "s3cret-pass"})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestAuthService_Refresh_RotatesPairAndBurnsOldToken(t *testing.T) {
	repo := new(MockAccountRepository)
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	account := createTestAccount(t, "s3cret-pass")
	jwtSvc := newTestJWTService()
	pair, err := jwtSvc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   account.ID,
		Username: account.Username,
		Role:     string(account.Role),
	})
	require.NoError(t, err)

	repo.On("FindByID", ctx, account.ID).Return(account, nil)

	newPair, err := service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)

	// The burned refresh token must be rejected on replay.
	_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	repo := new(MockAccountRepository)
	service, blacklist := newTestAuthService(repo)
	ctx := context.Background()

	account := createTestAccount(t, "s3cret-pass")
	jwtSvc := newTestJWTService()
	pair, err := jwtSvc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   account.ID,
		Username: account.Username,
		Role:     string(account.Role),
	})
	require.NoError(t, err)

	claims, err := service.tokens.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, claims))

	blocked, err := blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestAuthService_PromoteToSeller(t *testing.T) {
	repo := new(MockAccountRepository)
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	account := createTestAccount(t, "s3cret-pass")
	repo.On("FindByID", ctx, account.ID).Return(account, nil)
	repo.On("Save", ctx, account).Return(nil)

	result, err := service.PromoteToSeller(ctx, account.ID)

	require.NoError(t, err)
	assert.Equal(t, "seller", result.Role)
	repo.AssertExpectations(t)
}
