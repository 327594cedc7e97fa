package identity

import (
	"regexp"
	"time"

	"github.com/stylehub/backend/internal/domain/shared"
)

// Role represents the role of an account on the platform
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus represents the activation status of an account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// Account represents a platform account aggregate root
type Account struct {
	shared.BaseAggregateRoot
	Username     string
	PhoneNumber  string
	PasswordHash string
	Status       AccountStatus
	IsBanned     bool
	Role         Role
	LastActiveAt *time.Time
}

// NewAccount creates a new account in the inactive state
func NewAccount(username, phoneNumber, passwordHash string, role Role) (*Account, error) {
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > 50 {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phoneNumber) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number is not valid")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown account role")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PhoneNumber:       phoneNumber,
		PasswordHash:      passwordHash,
		Status:            AccountStatusInactive,
		Role:              role,
	}, nil
}

// Activate marks the account as active
func (a *Account) Activate() {
	a.Status = AccountStatusActive
	a.UpdatedAt = time.Now()
}

// Deactivate marks the account as inactive
func (a *Account) Deactivate() {
	a.Status = AccountStatusInactive
	a.UpdatedAt = time.Now()
}

// Ban blocks the account from logging in
func (a *Account) Ban() {
	a.IsBanned = true
	a.UpdatedAt = time.Now()
}

// Unban lifts a ban
func (a *Account) Unban() {
	a.IsBanned = false
	a.UpdatedAt = time.Now()
}

// CanLogin reports whether the account may authenticate
func (a *Account) CanLogin() bool {
	return !a.IsBanned && a.Status == AccountStatusActive
}

// TouchLastActive records the most recent activity time
func (a *Account) TouchLastActive(at time.Time) {
	a.LastActiveAt = &at
	a.UpdatedAt = at
}

// PromoteToSeller grants the seller role to a customer account
func (a *Account) PromoteToSeller() error {
	if a.Role == RoleAdmin {
		return shared.NewDomainError("INVALID_ROLE", "Admin accounts cannot become sellers")
	}
	a.Role = RoleSeller
	a.UpdatedAt = time.Now()
	return nil
}
