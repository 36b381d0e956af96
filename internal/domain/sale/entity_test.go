package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleCalculatesTotal(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Name: "Arroz 5kg", Quantity: 2, UnitPrice: decimal.NewFromFloat(25.50)},
		{ProductID: "p2", Name: "Feijão 1kg", Quantity: 3, UnitPrice: decimal.NewFromFloat(8.90)},
	}

	s, err := NewSale("5511999990001", items)
	require.NoError(t, err)

	assert.True(t, s.Total.Equal(decimal.NewFromFloat(77.70)), "total = %s", s.Total)
	assert.True(t, s.Paid.IsZero())
	assert.Equal(t, StatusPending, s.Status)
	assert.NotEmpty(t, s.ID)
}

func TestNewSaleValidation(t *testing.T) {
	item := Item{ProductID: "p1", Name: "Arroz", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}

	_, err := NewSale("", []Item{item})
	assert.ErrorIs(t, err, ErrEmptyClient)

	_, err = NewSale("5511999990001", nil)
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = NewSale("5511999990001", []Item{{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(10)}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewSale("5511999990001", []Item{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}})
	assert.ErrorIs(t, err, ErrInvalidUnitPrice)
}

func TestOutstandingNeverNegative(t *testing.T) {
	s := &Sale{Total: decimal.NewFromInt(100), Paid: decimal.NewFromInt(30)}
	assert.True(t, s.Outstanding().Equal(decimal.NewFromInt(70)))

	s.Paid = decimal.NewFromInt(100)
	assert.True(t, s.Outstanding().IsZero())
	assert.True(t, s.IsSettled())

	// Pago acima do total não gera saldo negativo
	s.Paid = decimal.NewFromInt(150)
	assert.True(t, s.Outstanding().IsZero())
}

func TestChangeStatusTransitions(t *testing.T) {
	s := &Sale{Status: StatusPending}

	require.NoError(t, s.ChangeStatus(StatusDispatched))
	assert.Equal(t, StatusDispatched, s.Status)

	require.NoError(t, s.ChangeStatus(StatusDelivered))
	assert.Equal(t, StatusDelivered, s.Status)

	err := s.ChangeStatus(StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestChangeStatusRejectsSkippingSteps(t *testing.T) {
	s := &Sale{Status: StatusPending}

	err := s.ChangeStatus(StatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusPending, s.Status)
}

func TestCancelOnlyPending(t *testing.T) {
	s := &Sale{Status: StatusPending}
	require.NoError(t, s.Cancel())
	assert.True(t, s.IsCancelled())

	assert.ErrorIs(t, s.Cancel(), ErrAlreadyCancelled)

	dispatched := &Sale{Status: StatusDispatched}
	assert.ErrorIs(t, dispatched.Cancel(), ErrInvalidTransition)
}

func TestParseStatus(t *testing.T) {
	status, ok := ParseStatus("dispatched")
	assert.True(t, ok)
	assert.Equal(t, StatusDispatched, status)

	_, ok = ParseStatus("shipped")
	assert.False(t, ok)
}
