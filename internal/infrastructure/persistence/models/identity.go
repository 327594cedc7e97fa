package models

import (
	"time"

	"github.com/stylehub/backend/internal/domain/identity"
)

// AccountModel is the persistence model for the Account aggregate root.
type AccountModel struct {
	AggregateModel
	Username     string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	PhoneNumber  string                 `gorm:"type:varchar(20);not null;uniqueIndex"`
	PasswordHash string                 `gorm:"type:varchar(100);not null"`
	Status       identity.AccountStatus `gorm:"type:varchar(20);not null;default:'inactive'"`
	IsBanned     bool                   `gorm:"not null;default:false"`
	Role         identity.Role          `gorm:"type:varchar(20);not null;index"`
	LastActiveAt *time.Time
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *identity.Account {
	account := &identity.Account{
		Username:     m.Username,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
		Status:       m.Status,
		IsBanned:     m.IsBanned,
		Role:         m.Role,
		LastActiveAt: m.LastActiveAt,
	}
	m.PopulateAggregateRoot(&account.BaseAggregateRoot)
	return account
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *identity.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Username = a.Username
	m.PhoneNumber = a.PhoneNumber
	m.PasswordHash = a.PasswordHash
	m.Status = a.Status
	m.IsBanned = a.IsBanned
	m.Role = a.Role
	m.LastActiveAt = a.LastActiveAt
}

// AccountModelFromDomain creates a new persistence model from a domain Account entity.
func AccountModelFromDomain(a *identity.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}
