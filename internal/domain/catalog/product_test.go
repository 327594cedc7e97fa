package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	p, err := NewProduct(uuid.New(), "Linen Shirt", "Breathable summer shirt", decimal.NewFromInt(150))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	p := createTestProduct(t)

	assert.True(t, p.IsActive)
	assert.Empty(t, p.Images)
}

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct(uuid.Nil, "Linen Shirt", "", decimal.NewFromInt(150))
	assert.Error(t, err)

	_, err = NewProduct(uuid.New(), "", "", decimal.NewFromInt(150))
	assert.Error(t, err)

	_, err = NewProduct(uuid.New(), "Linen Shirt", "", decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestProduct_Images(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.AddImage("/uploads/a.jpg"))
	require.NoError(t, p.AddImage("/uploads/b.jpg"))
	assert.Error(t, p.AddImage("/uploads/a.jpg"), "duplicate image")
	assert.Error(t, p.AddImage(""))

	require.NoError(t, p.RemoveImage("/uploads/a.jpg"))
	assert.Equal(t, []string{"/uploads/b.jpg"}, p.Images)

	assert.Error(t, p.RemoveImage("/uploads/missing.jpg"))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	p := createTestProduct(t)

	p.Deactivate()
	assert.False(t, p.IsActive)

	p.Activate()
	assert.True(t, p.IsActive)
}

func TestProduct_Update(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.Update("Linen Shirt v2", "Updated", decimal.NewFromInt(180)))
	assert.Equal(t, "Linen Shirt v2", p.Name)
	assert.True(t, p.BasePrice.Equal(decimal.NewFromInt(180)))

	assert.Error(t, p.Update("", "x", decimal.NewFromInt(10)))
}
