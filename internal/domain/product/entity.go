package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("nome não pode ser vazio")
	ErrInvalidCostPrice  = errors.New("preço de custo não pode ser negativo")
	ErrInvalidSalePrice  = errors.New("preço de venda não pode ser negativo")
	ErrInsufficientStock = errors.New("estoque insuficiente")
)

// Status representa o estado do produto
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Product representa um produto no catálogo
type Product struct {
	ID          string          `json:"id"`          // ID do Produto
	Name        string          `json:"name"`        // Nome do Produto
	Description string          `json:"description"` // Descrição
	CostPrice   decimal.Decimal `json:"cost_price"`  // Preço de Custo
	SalePrice   decimal.Decimal `json:"sale_price"`  // Preço de Venda
	Stock       int             `json:"stock"`       // Quantidade em Estoque
	Status      Status          `json:"status"`      // Status do Produto
	CreatedAt   time.Time       `json:"created_at"`  // Data de Criação
	UpdatedAt   time.Time       `json:"updated_at"`  // Data de Atualização
}

// NewProduct cria um novo produto
func NewProduct(name, description string, costPrice, salePrice decimal.Decimal, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if costPrice.IsNegative() {
		return nil, ErrInvalidCostPrice
	}

	if salePrice.IsNegative() {
		return nil, ErrInvalidSalePrice
	}

	now := time.Now()
	return &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CostPrice:   costPrice,
		SalePrice:   salePrice,
		Stock:       stock,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsActive verifica se o produto está ativo
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// Margin retorna a margem de lucro percentual sobre o custo.
// Retorna zero quando o custo é zero para evitar divisão por zero.
func (p *Product) Margin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.CostPrice).
		Div(p.CostPrice).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// Update atualiza os dados do produto
func (p *Product) Update(name, description string, costPrice, salePrice decimal.Decimal) error {
	if name == "" {
		return ErrEmptyName
	}

	if costPrice.IsNegative() {
		return ErrInvalidCostPrice
	}

	if salePrice.IsNegative() {
		return ErrInvalidSalePrice
	}

	p.Name = name
	p.Description = description
	p.CostPrice = costPrice
	p.SalePrice = salePrice
	p.UpdatedAt = time.Now()

	return nil
}

// AdjustStock ajusta o estoque do produto pela quantidade informada.
// Quantidades negativas representam saída; o estoque nunca fica negativo.
func (p *Product) AdjustStock(quantity int) error {
	if p.Stock+quantity < 0 {
		return ErrInsufficientStock
	}

	p.Stock += quantity
	p.UpdatedAt = time.Now()

	return nil
}

// Deactivate desativa o produto
func (p *Product) Deactivate() {
	p.Status = StatusInactive
	p.UpdatedAt = time.Now()
}
