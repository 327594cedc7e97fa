package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehub/backend/internal/domain/catalog"
)

// AttributeModel is the persistence model for the Attribute aggregate.
// A zero shop_id marks a global attribute.
type AttributeModel struct {
	AggregateModel
	Label  string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_attributes_shop_label"`
	ShopID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attributes_shop_label"`
}

// TableName returns the table name for GORM
func (AttributeModel) TableName() string {
	return "attributes"
}

// ToDomain converts the persistence model to a domain Attribute.
func (m *AttributeModel) ToDomain() *catalog.Attribute {
	a := &catalog.Attribute{
		Label:  m.Label,
		ShopID: m.ShopID,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Attribute.
func (m *AttributeModel) FromDomain(a *catalog.Attribute) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Label = a.Label
	m.ShopID = a.ShopID
}

// AttributeValueModel is the persistence model for attribute values.
type AttributeValueModel struct {
	AggregateModel
	AttributeID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_attribute_values_unique"`
	Value           string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_attribute_values_unique"`
	ImageURL        string          `gorm:"type:varchar(500)"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShopID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_attribute_values_unique"`
}

// TableName returns the table name for GORM
func (AttributeValueModel) TableName() string {
	return "attribute_values"
}

// ToDomain converts the persistence model to a domain AttributeValue.
func (m *AttributeValueModel) ToDomain() *catalog.AttributeValue {
	v := &catalog.AttributeValue{
		AttributeID:     m.AttributeID,
		Value:           m.Value,
		ImageURL:        m.ImageURL,
		PriceAdjustment: m.PriceAdjustment,
		ShopID:          m.ShopID,
	}
	m.PopulateAggregateRoot(&v.BaseAggregateRoot)
	return v
}

// FromDomain populates the persistence model from a domain AttributeValue.
func (m *AttributeValueModel) FromDomain(v *catalog.AttributeValue) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.AttributeID = v.AttributeID
	m.Value = v.Value
	m.ImageURL = v.ImageURL
	m.PriceAdjustment = v.PriceAdjustment
	m.ShopID = v.ShopID
}

// VariantModel is the persistence model for product variants.
type VariantModel struct {
	AggregateModel
	ProductID  uuid.UUID                  `gorm:"type:uuid;not null;index;uniqueIndex:idx_variants_product_key"`
	VariantKey string                     `gorm:"type:varchar(200);not null;uniqueIndex:idx_variants_product_key"`
	Selections []catalog.VariantSelection `gorm:"serializer:json;type:jsonb"`
	Stock      int                        `gorm:"not null;default:0"`
	Images     []string                   `gorm:"serializer:json;type:jsonb"`
}

// TableName returns the table name for GORM
func (VariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain Variant.
func (m *VariantModel) ToDomain() *catalog.Variant {
	v := &catalog.Variant{
		ProductID:  m.ProductID,
		Key:        m.VariantKey,
		Selections: m.Selections,
		Stock:      m.Stock,
		Images:     m.Images,
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	m.PopulateAggregateRoot(&v.BaseAggregateRoot)
	return v
}

// FromDomain populates the persistence model from a domain Variant.
func (m *VariantModel) FromDomain(v *catalog.Variant) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.ProductID = v.ProductID
	m.VariantKey = v.Key
	m.Selections = v.Selections
	m.Stock = v.Stock
	m.Images = v.Images
}
