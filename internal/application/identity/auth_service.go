package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stylehub/backend/internal/domain/identity"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/auth"
)

// AuthService handles account registration and authentication
type AuthService struct {
	accounts  identity.AccountRepository
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(accounts identity.AccountRepository, tokens *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts:  accounts,
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Register creates a new active customer account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AccountResponse, error) {
	if existing, err := s.accounts.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}
	if existing, err := s.accounts.FindByPhoneNumber(ctx, req.PhoneNumber); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Phone number is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewDomainError("REGISTRATION_FAILED", "Failed to process password")
	}

	account, err := identity.NewAccount(req.Username, req.PhoneNumber, string(hash), identity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	account.Activate()

	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username))

	resp := ToAccountResponse(account)
	return &resp, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	account, err := s.accounts.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !account.CanLogin() {
		return nil, shared.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.ErrUnauthorized
	}

	pair, err := s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   account.ID,
		Username: account.Username,
		Role:     string(account.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("LOGIN_FAILED", "Failed to issue tokens")
	}

	account.TouchLastActive(time.Now())
	if err := s.accounts.Save(ctx, account); err != nil {
		s.logger.Warn("Failed to record last active time",
			zap.String("account_id", account.ID.String()),
			zap.Error(err))
	}

	return &LoginResponse{
		Account: ToAccountResponse(account),
		Tokens:  pair,
	}, nil
}

// Logout blacklists the current access token until it expires
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

// Refresh rotates a refresh token into a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Blacklist lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("REFRESH_FAILED", "Failed to validate refresh token")
	}
	if blacklisted {
		return nil, shared.ErrUnauthorized
	}

	accountID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !account.CanLogin() {
		return nil, shared.ErrForbidden
	}

	pair, err := s.tokens.RefreshTokenPair(req.RefreshToken, account.Username, string(account.Role))
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	// Used refresh tokens are burned so they cannot be replayed.
	if ttl := claims.GetRemainingTTL(); ttl > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("Failed to blacklist used refresh token", zap.Error(err))
		}
	}

	return pair, nil
}

// GetAccount returns the account profile for the given id
func (s *AuthService) GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// PromoteToSeller upgrades a customer account to the seller role
func (s *AuthService) PromoteToSeller(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := account.PromoteToSeller(); err != nil {
		return nil, err
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account promoted to seller", zap.String("account_id", account.ID.String()))

	resp := ToAccountResponse(account)
	return &resp, nil
}
