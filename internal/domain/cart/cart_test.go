package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	c, err := NewCart(uuid.New())
	require.NoError(t, err)

	productID := uuid.New()
	require.NoError(t, c.AddItem(productID, 2))
	require.NoError(t, c.AddItem(productID, 3))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestCart_AddItem_Validation(t *testing.T) {
	c, err := NewCart(uuid.New())
	require.NoError(t, err)

	assert.Error(t, c.AddItem(uuid.Nil, 1))
	assert.Error(t, c.AddItem(uuid.New(), 0))
	assert.Error(t, c.AddItem(uuid.New(), -2))
}

func TestCart_SetItemQuantity(t *testing.T) {
	c, err := NewCart(uuid.New())
	require.NoError(t, err)

	productID := uuid.New()
	require.NoError(t, c.AddItem(productID, 2))
	require.NoError(t, c.SetItemQuantity(productID, 7))
	assert.Equal(t, 7, c.Items[0].Quantity)

	assert.Error(t, c.SetItemQuantity(uuid.New(), 1))
	assert.Error(t, c.SetItemQuantity(productID, 0))
}

func TestCart_RemoveItem_Clear(t *testing.T) {
	c, err := NewCart(uuid.New())
	require.NoError(t, err)

	p1, p2 := uuid.New(), uuid.New()
	require.NoError(t, c.AddItem(p1, 1))
	require.NoError(t, c.AddItem(p2, 1))

	require.NoError(t, c.RemoveItem(p1))
	assert.Len(t, c.Items, 1)
	assert.Error(t, c.RemoveItem(p1))

	c.Clear()
	assert.True(t, c.IsEmpty())
}
