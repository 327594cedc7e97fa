package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/shop"
)

// ShopModel is the persistence model for the Shop aggregate root.
type ShopModel struct {
	AggregateModel
	Name        string      `gorm:"type:varchar(100);not null"`
	LogoURL     string      `gorm:"type:varchar(500)"`
	CoverURL    string      `gorm:"type:varchar(500)"`
	Description string      `gorm:"type:text"`
	Status      shop.Status `gorm:"type:varchar(20);not null;default:'active';index"`
	AccountID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex"`
	IsDeleted   bool        `gorm:"not null;default:false;index"`
	DeletedAt   *time.Time
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop entity.
func (m *ShopModel) ToDomain() *shop.Shop {
	s := &shop.Shop{
		Name:        m.Name,
		LogoURL:     m.LogoURL,
		CoverURL:    m.CoverURL,
		Description: m.Description,
		Status:      m.Status,
		AccountID:   m.AccountID,
		IsDeleted:   m.IsDeleted,
		DeletedAt:   m.DeletedAt,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Shop entity.
func (m *ShopModel) FromDomain(s *shop.Shop) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.LogoURL = s.LogoURL
	m.CoverURL = s.CoverURL
	m.Description = s.Description
	m.Status = s.Status
	m.AccountID = s.AccountID
	m.IsDeleted = s.IsDeleted
	m.DeletedAt = s.DeletedAt
}

// ShopModelFromDomain creates a new persistence model from a domain Shop entity.
func ShopModelFromDomain(s *shop.Shop) *ShopModel {
	m := &ShopModel{}
	m.FromDomain(s)
	return m
}
