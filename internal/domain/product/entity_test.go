package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("", "", decimal.NewFromInt(10), decimal.NewFromInt(15), 5)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("Arroz", "", decimal.NewFromInt(-1), decimal.NewFromInt(15), 5)
	assert.ErrorIs(t, err, ErrInvalidCostPrice)

	_, err = NewProduct("Arroz", "", decimal.NewFromInt(10), decimal.NewFromInt(-1), 5)
	assert.ErrorIs(t, err, ErrInvalidSalePrice)

	p, err := NewProduct("Arroz 5kg", "Tipo 1", decimal.NewFromInt(20), decimal.NewFromFloat(25.50), 100)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, 100, p.Stock)
}

func TestMargin(t *testing.T) {
	p := &Product{CostPrice: decimal.NewFromInt(20), SalePrice: decimal.NewFromInt(25)}
	assert.True(t, p.Margin().Equal(decimal.NewFromInt(25)), "margin = %s", p.Margin())

	p = &Product{CostPrice: decimal.NewFromInt(30), SalePrice: decimal.NewFromInt(40)}
	assert.True(t, p.Margin().Equal(decimal.NewFromFloat(33.33)), "margin = %s", p.Margin())

	// Custo zero não divide por zero
	p = &Product{CostPrice: decimal.Zero, SalePrice: decimal.NewFromInt(10)}
	assert.True(t, p.Margin().IsZero())
}

func TestAdjustStock(t *testing.T) {
	p := &Product{Stock: 10}

	require.NoError(t, p.AdjustStock(-4))
	assert.Equal(t, 6, p.Stock)

	require.NoError(t, p.AdjustStock(20))
	assert.Equal(t, 26, p.Stock)

	err := p.AdjustStock(-30)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 26, p.Stock)
}
