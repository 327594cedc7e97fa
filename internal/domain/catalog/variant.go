package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stylehub/backend/internal/domain/shared"
)

// MaxVariantAttributes caps how many attribute axes a single product may
// combine into variants.
const MaxVariantAttributes = 3

// VariantSelection pins one attribute of a variant to a concrete value
type VariantSelection struct {
	AttributeID uuid.UUID `json:"attribute_id"`
	ValueID     uuid.UUID `json:"value_id"`
}

// Variant is one sellable combination of attribute values for a product,
// e.g. the white shirt in size M. Its price is derived from the product
// base price plus the selected values' adjustments; only stock and images
// are stored per variant.
type Variant struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID
	Key        string
	Selections []VariantSelection `gorm:"serializer:json"`
	Stock      int
	Images     []string `gorm:"serializer:json"`
}

// NewVariant creates a variant from a set of attribute selections. The
// variant key is derived from the selections so equal combinations always
// produce the same key.
func NewVariant(productID uuid.UUID, selections []VariantSelection, stock int, images []string) (*Variant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Variant product ID cannot be empty")
	}
	if err := validateSelections(selections); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Variant stock cannot be negative")
	}
	if images == nil {
		images = []string{}
	}
	return &Variant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Key:               VariantKey(selections),
		Selections:        selections,
		Stock:             stock,
		Images:            images,
	}, nil
}

// SetStock replaces the variant stock level
func (v *Variant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Variant stock cannot be negative")
	}
	v.Stock = stock
	v.UpdatedAt = time.Now()
	return nil
}

// VariantKey builds the canonical key for a selection set: the selected
// value IDs, sorted and joined with "|". Selection order does not matter.
func VariantKey(selections []VariantSelection) string {
	ids := make([]string, len(selections))
	for i, sel := range selections {
		ids[i] = sel.ValueID.String()
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

func validateSelections(selections []VariantSelection) error {
	if len(selections) == 0 {
		return shared.NewDomainError("INVALID_VARIANT", "Variant needs at least one attribute selection")
	}
	if len(selections) > MaxVariantAttributes {
		return shared.NewDomainError("INVALID_VARIANT", "Variant cannot combine more than 3 attributes")
	}
	seen := make(map[uuid.UUID]bool, len(selections))
	for _, sel := range selections {
		if sel.AttributeID == uuid.Nil || sel.ValueID == uuid.Nil {
			return shared.NewDomainError("INVALID_VARIANT", "Variant selection IDs cannot be empty")
		}
		if seen[sel.AttributeID] {
			return shared.NewDomainError("INVALID_VARIANT", "Variant selects the same attribute twice")
		}
		seen[sel.AttributeID] = true
	}
	return nil
}

// EffectivePrice computes a variant's price: the product base price plus
// the selected values' adjustments, floored at zero.
func EffectivePrice(basePrice decimal.Decimal, adjustments []decimal.Decimal) decimal.Decimal {
	price := basePrice
	for _, adj := range adjustments {
		price = price.Add(adj)
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// AttributeOption lists the candidate values for one attribute when
// generating variant combinations.
type AttributeOption struct {
	AttributeID uuid.UUID
	ValueIDs    []uuid.UUID
}

// GenerateSelections expands attribute options into every selection
// combination (the cartesian product). Options beyond the attribute cap
// are ignored.
func GenerateSelections(options []AttributeOption) [][]VariantSelection {
	if len(options) > MaxVariantAttributes {
		options = options[:MaxVariantAttributes]
	}
	combos := [][]VariantSelection{}
	for _, opt := range options {
		if len(opt.ValueIDs) == 0 {
			continue
		}
		if len(combos) == 0 {
			for _, valueID := range opt.ValueIDs {
				combos = append(combos, []VariantSelection{{AttributeID: opt.AttributeID, ValueID: valueID}})
			}
			continue
		}
		next := make([][]VariantSelection, 0, len(combos)*len(opt.ValueIDs))
		for _, combo := range combos {
			for _, valueID := range opt.ValueIDs {
				extended := make([]VariantSelection, len(combo), len(combo)+1)
				copy(extended, combo)
				extended = append(extended, VariantSelection{AttributeID: opt.AttributeID, ValueID: valueID})
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}
