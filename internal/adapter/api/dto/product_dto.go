package dto

import (
	"time"

	"github.com/hugohenrick/gestor-vendas/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductRequest representa a requisição de produto.
// Valores monetários trafegam como string para preservar a precisão
// decimal de ponta a ponta.
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CostPrice   string `json:"cost_price" binding:"required"`
	SalePrice   string `json:"sale_price" binding:"required"`
	Stock       int    `json:"stock" binding:"min=0"`
}

// ProductStockRequest representa a requisição de ajuste de estoque
type ProductStockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Margin      decimal.Decimal `json:"margin"`
	Stock       int             `json:"stock"`
	Status      product.Status  `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"total_pages"`
}

// ToProductResponse converte um produto para o formato de resposta
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Margin:      p.Margin(),
		Stock:       p.Stock,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos para o formato de resposta
func ToProductListResponse(products []*product.Product, total, page, size int) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductResponse(p))
	}

	return ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
