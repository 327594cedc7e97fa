package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Default assets served when a shop has not uploaded its own
const (
	DefaultLogoURL  = "/assets/shop/default-logo.png"
	DefaultCoverURL = "/assets/shop/default-cover.jpg"
)

// Status represents the operating status of a shop
type Status string

const (
	StatusActive    Status = "active"
	StatusClosed    Status = "closed"
	StatusSuspended Status = "suspended"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusSuspended:
		return true
	}
	return false
}

// Shop represents a seller storefront aggregate root
type Shop struct {
	shared.BaseAggregateRoot
	Name        string
	LogoURL     string
	CoverURL    string
	Description string
	Status      Status
	AccountID   uuid.UUID
	IsDeleted   bool
	DeletedAt   *time.Time
}

// NewShop creates a new active shop owned by the given account
func NewShop(accountID uuid.UUID, name, description string) (*Shop, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Shop owner account ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot exceed 100 characters")
	}

	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		LogoURL:           DefaultLogoURL,
		CoverURL:          DefaultCoverURL,
		Description:       description,
		Status:            StatusActive,
		AccountID:         accountID,
	}, nil
}

// UpdateProfile updates the shop's displayed information
func (s *Shop) UpdateProfile(name, description, logoURL, coverURL string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot exceed 100 characters")
	}
	s.Name = name
	s.Description = description
	if logoURL != "" {
		s.LogoURL = logoURL
	}
	if coverURL != "" {
		s.CoverURL = coverURL
	}
	s.UpdatedAt = time.Now()
	return nil
}

// Close stops the shop from taking orders; the owner can reopen it
func (s *Shop) Close() error {
	if s.Status == StatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Suspended shops cannot be closed by the owner")
	}
	s.Status = StatusClosed
	s.UpdatedAt = time.Now()
	return nil
}

// Reopen reactivates a closed shop
func (s *Shop) Reopen() error {
	if s.Status == StatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Suspended shops can only be reactivated by an admin")
	}
	s.Status = StatusActive
	s.UpdatedAt = time.Now()
	return nil
}

// Suspend is an admin action blocking the shop entirely
func (s *Shop) Suspend() {
	s.Status = StatusSuspended
	s.UpdatedAt = time.Now()
}

// Unsuspend lifts an admin suspension, returning the shop to active
func (s *Shop) Unsuspend() {
	s.Status = StatusActive
	s.UpdatedAt = time.Now()
}

// SoftDelete marks the shop as deleted without removing the row
func (s *Shop) SoftDelete() {
	now := time.Now()
	s.IsDeleted = true
	s.DeletedAt = &now
	s.UpdatedAt = now
}

// IsAcceptingOrders reports whether checkout may include this shop's products
func (s *Shop) IsAcceptingOrders() bool {
	return !s.IsDeleted && s.Status == StatusActive
}
