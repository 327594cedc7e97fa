package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/domain/shop"
)

// VariantService manages the sellable attribute combinations of a
// product: size/color variants with their own stock, images and derived
// price.
type VariantService struct {
	variants   catalog.VariantRepository
	attributes catalog.AttributeRepository
	products   catalog.ProductRepository
	shops      shop.Repository
	logger     *zap.Logger
}

// NewVariantService creates a new variant service
func NewVariantService(
	variants catalog.VariantRepository,
	attributes catalog.AttributeRepository,
	products catalog.ProductRepository,
	shops shop.Repository,
	logger *zap.Logger,
) *VariantService {
	return &VariantService{
		variants:   variants,
		attributes: attributes,
		products:   products,
		shops:      shops,
		logger:     logger,
	}
}

// GenerateCombinations expands the chosen attribute values into every
// selection combination the product does not have a variant for yet
func (s *VariantService) GenerateCombinations(ctx context.Context, accountID, productID uuid.UUID, req GenerateVariantsRequest) ([]VariantCombination, error) {
	if _, err := s.ownedProduct(ctx, accountID, productID); err != nil {
		return nil, err
	}

	existing, err := s.variants.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, v := range existing {
		taken[v.Key] = true
	}

	options := make([]catalog.AttributeOption, len(req.Options))
	for i, opt := range req.Options {
		options[i] = catalog.AttributeOption{AttributeID: opt.AttributeID, ValueIDs: opt.ValueIDs}
	}

	combinations := []VariantCombination{}
	for _, selections := range catalog.GenerateSelections(options) {
		key := catalog.VariantKey(selections)
		if taken[key] {
			continue
		}
		combinations = append(combinations, VariantCombination{
			VariantKey: key,
			Selections: toSelectionInputs(selections),
		})
	}
	return combinations, nil
}

// CreateBulk creates several variants for a product in one request. Every
// selection must reference a value visible to the seller's shop, and no
// combination may collide with an existing variant.
func (s *VariantService) CreateBulk(ctx context.Context, accountID, productID uuid.UUID, req CreateVariantsRequest) ([]VariantResponse, error) {
	product, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	existing, err := s.variants.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, v := range existing {
		taken[v.Key] = true
	}

	variants := make([]*catalog.Variant, 0, len(req.Variants))
	allValueIDs := make([]uuid.UUID, 0, len(req.Variants))
	for _, input := range req.Variants {
		selections := make([]catalog.VariantSelection, len(input.Selections))
		for i, sel := range input.Selections {
			selections[i] = catalog.VariantSelection{AttributeID: sel.AttributeID, ValueID: sel.ValueID}
			allValueIDs = append(allValueIDs, sel.ValueID)
		}

		variant, err := catalog.NewVariant(productID, selections, input.Stock, input.Images)
		if err != nil {
			return nil, err
		}
		if taken[variant.Key] {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Variant combination already exists")
		}
		taken[variant.Key] = true
		variants = append(variants, variant)
	}

	valuesByID, err := s.resolveValues(ctx, ownShop.ID, allValueIDs)
	if err != nil {
		return nil, err
	}
	for _, variant := range variants {
		for _, sel := range variant.Selections {
			value, ok := valuesByID[sel.ValueID]
			if !ok {
				return nil, shared.NewDomainError("INVALID_VARIANT", "Variant references an unknown attribute value")
			}
			if value.AttributeID != sel.AttributeID {
				return nil, shared.NewDomainError("INVALID_VARIANT", "Attribute value does not belong to the selected attribute")
			}
		}
	}

	if err := s.variants.SaveAll(ctx, variants); err != nil {
		return nil, err
	}

	s.logger.Info("Variants created",
		zap.String("product_id", productID.String()),
		zap.Int("count", len(variants)))

	responses := make([]VariantResponse, len(variants))
	for i, variant := range variants {
		responses[i] = toVariantResponse(variant, product.BasePrice, valuesByID)
	}
	return responses, nil
}

// List returns the variants of an active product for the storefront
func (s *VariantService) List(ctx context.Context, productID uuid.UUID) ([]VariantResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}
	return s.listVariants(ctx, product)
}

// ListForSeller returns a product's variants regardless of active state,
// owner only
func (s *VariantService) ListForSeller(ctx context.Context, accountID, productID uuid.UUID) ([]VariantResponse, error) {
	product, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}
	return s.listVariants(ctx, product)
}

// SetStock replaces a variant's stock level
func (s *VariantService) SetStock(ctx context.Context, accountID, productID, variantID uuid.UUID, stock int) (*VariantResponse, error) {
	product, err := s.ownedProduct(ctx, accountID, productID)
	if err != nil {
		return nil, err
	}
	variant, err := s.productVariant(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}

	if err := variant.SetStock(stock); err != nil {
		return nil, err
	}
	if err := s.variants.Save(ctx, variant); err != nil {
		return nil, err
	}

	valuesByID, err := s.resolveAdjustments(ctx, variant.Selections)
	if err != nil {
		return nil, err
	}
	resp := toVariantResponse(variant, product.BasePrice, valuesByID)
	return &resp, nil
}

// Delete removes a variant from a product
func (s *VariantService) Delete(ctx context.Context, accountID, productID, variantID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, accountID, productID); err != nil {
		return err
	}
	if _, err := s.productVariant(ctx, productID, variantID); err != nil {
		return err
	}
	return s.variants.Delete(ctx, variantID)
}

func (s *VariantService) listVariants(ctx context.Context, product *catalog.Product) ([]VariantResponse, error) {
	variants, err := s.variants.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(variants)*catalog.MaxVariantAttributes)
	for i := range variants {
		for _, sel := range variants[i].Selections {
			ids = append(ids, sel.ValueID)
		}
	}
	valuesByID, err := s.valuesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]VariantResponse, len(variants))
	for i := range variants {
		responses[i] = toVariantResponse(&variants[i], product.BasePrice, valuesByID)
	}
	return responses, nil
}

// resolveValues loads values by id and checks each one is visible to the
// shop: global, or created by the shop itself
func (s *VariantService) resolveValues(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]catalog.AttributeValue, error) {
	valuesByID, err := s.valuesByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, value := range valuesByID {
		if value.ShopID != uuid.Nil && value.ShopID != shopID {
			return nil, shared.ErrForbidden
		}
	}
	return valuesByID, nil
}

func (s *VariantService) resolveAdjustments(ctx context.Context, selections []catalog.VariantSelection) (map[uuid.UUID]catalog.AttributeValue, error) {
	ids := make([]uuid.UUID, len(selections))
	for i, sel := range selections {
		ids[i] = sel.ValueID
	}
	return s.valuesByID(ctx, ids)
}

func (s *VariantService) valuesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.AttributeValue, error) {
	values, err := s.attributes.FindValuesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	valuesByID := make(map[uuid.UUID]catalog.AttributeValue, len(values))
	for _, value := range values {
		valuesByID[value.ID] = value
	}
	return valuesByID, nil
}

func (s *VariantService) ownedProduct(ctx context.Context, accountID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	ownShop, err := s.shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, shared.ErrForbidden
	}
	if product.ShopID != ownShop.ID {
		return nil, shared.ErrForbidden
	}
	return product, nil
}

func (s *VariantService) productVariant(ctx context.Context, productID, variantID uuid.UUID) (*catalog.Variant, error) {
	variant, err := s.variants.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant.ProductID != productID {
		return nil, shared.ErrNotFound
	}
	return variant, nil
}

func toVariantResponse(v *catalog.Variant, basePrice decimal.Decimal, valuesByID map[uuid.UUID]catalog.AttributeValue) VariantResponse {
	adjustments := make([]decimal.Decimal, 0, len(v.Selections))
	for _, sel := range v.Selections {
		if value, ok := valuesByID[sel.ValueID]; ok {
			adjustments = append(adjustments, value.PriceAdjustment)
		}
	}
	images := v.Images
	if images == nil {
		images = []string{}
	}
	return VariantResponse{
		ID:         v.ID,
		ProductID:  v.ProductID,
		VariantKey: v.Key,
		Selections: toSelectionInputs(v.Selections),
		Stock:      v.Stock,
		Images:     images,
		Price:      catalog.EffectivePrice(basePrice, adjustments),
	}
}

func toSelectionInputs(selections []catalog.VariantSelection) []VariantSelectionInput {
	inputs := make([]VariantSelectionInput, len(selections))
	for i, sel := range selections {
		inputs[i] = VariantSelectionInput{AttributeID: sel.AttributeID, ValueID: sel.ValueID}
	}
	return inputs
}
