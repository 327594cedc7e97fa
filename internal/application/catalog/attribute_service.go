package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
)

// AttributeService manages the variant attributes sellers build their
// product variants from. Sellers see global attributes plus their own;
// admins maintain the global set.
type AttributeService struct {
	attributes catalog.AttributeRepository
	shops      shop.Repository
	logger     *zap.Logger
}

// NewAttributeService creates a new attribute service
func NewAttributeService(
	attributes catalog.AttributeRepository,
	shops shop.Repository,
	logger *zap.Logger,
) *AttributeService {
	return &AttributeService{
		attributes: attributes,
		shops:      shops,
		logger:     logger,
	}
}

// List returns the attributes available to the caller's shop, values included
func (s *AttributeService) List(ctx context.Context, accountID uuid.UUID) ([]AttributeResponse, error) {
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	attributes, err := s.attributes.FindForShop(ctx, ownShop.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]AttributeResponse, len(attributes))
	for i := range attributes {
		attr := &attributes[i]
		values, err := s.attributes.FindValuesForShop(ctx, attr.ID, ownShop.ID)
		if err != nil {
			return nil, err
		}
		valueResponses := make([]AttributeValueResponse, len(values))
		for j := range values {
			valueResponses[j] = ToAttributeValueResponse(&values[j])
		}
		responses[i] = AttributeResponse{
			ID:     attr.ID,
			Label:  attr.Label,
			Global: attr.IsGlobal(),
			Values: valueResponses,
		}
	}
	return responses, nil
}

// Create adds an attribute. Only admins may create global ones; sellers
// always get shop-scoped attributes.
func (s *AttributeService) Create(ctx context.Context, accountID uuid.UUID, req CreateAttributeRequest, asAdmin bool) (*AttributeResponse, error) {
	shopID := uuid.Nil
	if !req.Global || !asAdmin {
		ownShop, err := s.shops.FindByAccountID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		shopID = ownShop.ID
	}

	attribute, err := catalog.NewAttribute(shopID, req.Label)
	if err != nil {
		return nil, err
	}
	if err := s.attributes.Save(ctx, attribute); err != nil {
		return nil, err
	}

	s.logger.Info("Attribute created",
		zap.String("attribute_id", attribute.ID.String()),
		zap.String("label", attribute.Label),
		zap.Bool("global", attribute.IsGlobal()))

	return &AttributeResponse{
		ID:     attribute.ID,
		Label:  attribute.Label,
		Global: attribute.IsGlobal(),
		Values: []AttributeValueResponse{},
	}, nil
}

// AddValue adds a value to an attribute the caller may manage
func (s *AttributeService) AddValue(ctx context.Context, accountID, attributeID uuid.UUID, req AttributeValueRequest, asAdmin bool) (*AttributeValueResponse, error) {
	attribute, shopID, err := s.managedAttribute(ctx, accountID, attributeID, asAdmin)
	if err != nil {
		return nil, err
	}

	// Values on a global attribute stay shop-scoped unless an admin adds
	// them, so one shop's "Burgundy" does not leak to everyone.
	valueShopID := shopID
	if asAdmin && attribute.IsGlobal() {
		valueShopID = uuid.Nil
	}

	value, err := catalog.NewAttributeValue(attribute.ID, valueShopID, req.Value, req.ImageURL, req.PriceAdjustment)
	if err != nil {
		return nil, err
	}
	if err := s.attributes.SaveValue(ctx, value); err != nil {
		return nil, err
	}

	resp := ToAttributeValueResponse(value)
	return &resp, nil
}

// Delete removes an attribute and all of its values. Sellers may add
// values to global attributes but never delete them.
func (s *AttributeService) Delete(ctx context.Context, accountID, attributeID uuid.UUID, asAdmin bool) error {
	attribute, _, err := s.managedAttribute(ctx, accountID, attributeID, asAdmin)
	if err != nil {
		return err
	}
	if attribute.IsGlobal() && !asAdmin {
		return shared.ErrForbidden
	}
	return s.attributes.Delete(ctx, attributeID)
}

// DeleteValue removes a single attribute value
func (s *AttributeService) DeleteValue(ctx context.Context, accountID, valueID uuid.UUID, asAdmin bool) error {
	value, err := s.attributes.FindValueByID(ctx, valueID)
	if err != nil {
		return err
	}

	if value.ShopID == uuid.Nil {
		if !asAdmin {
			return shared.ErrForbidden
		}
		return s.attributes.DeleteValue(ctx, valueID)
	}

	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return shared.ErrForbidden
	}
	if value.ShopID != ownShop.ID {
		return shared.ErrForbidden
	}
	return s.attributes.DeleteValue(ctx, valueID)
}

// managedAttribute loads an attribute and checks the caller may manage
// it: admins manage global attributes, sellers their own. Sellers may
// also attach values to global attributes, so the caller's shop id is
// returned alongside.
func (s *AttributeService) managedAttribute(ctx context.Context, accountID, attributeID uuid.UUID, asAdmin bool) (*catalog.Attribute, uuid.UUID, error) {
	attribute, err := s.attributes.FindByID(ctx, attributeID)
	if err != nil {
		return nil, uuid.Nil, err
	}

	if attribute.IsGlobal() {
		if asAdmin {
			return attribute, uuid.Nil, nil
		}
		ownShop, err := s.shops.FindByAccountID(ctx, accountID)
		if err != nil {
			return nil, uuid.Nil, shared.ErrForbidden
		}
		return attribute, ownShop.ID, nil
	}

	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, uuid.Nil, shared.ErrForbidden
	}
	if attribute.ShopID != ownShop.ID {
		return nil, uuid.Nil, shared.ErrForbidden
	}
	return attribute, ownShop.ID, nil
}
