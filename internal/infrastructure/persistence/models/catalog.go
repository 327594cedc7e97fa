package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehub/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Images      []string        `gorm:"serializer:json;type:jsonb"`
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsActive    bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		Name:        m.Name,
		Description: m.Description,
		BasePrice:   m.BasePrice,
		Images:      m.Images,
		ShopID:      m.ShopID,
		IsActive:    m.IsActive,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.BasePrice = p.BasePrice
	m.Images = p.Images
	m.ShopID = p.ShopID
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
