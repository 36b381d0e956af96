package dto

import (
	"time"

	"github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// SaleItemRequest representa a requisição de item de venda
type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// SaleRequest representa a requisição de venda
type SaleRequest struct {
	ClientPhone string            `json:"client_phone" binding:"required"`
	Items       []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleStatusRequest representa a requisição de mudança de status da venda
type SaleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SaleItemResponse representa a resposta de item de venda
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// SaleResponse representa a resposta de venda
type SaleResponse struct {
	ID          string             `json:"id"`
	ClientPhone string             `json:"client_phone"`
	Items       []SaleItemResponse `json:"items"`
	Total       decimal.Decimal    `json:"total"`
	Paid        decimal.Decimal    `json:"paid"`
	Outstanding decimal.Decimal    `json:"outstanding"`
	Status      sale.Status        `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// SaleListResponse representa a resposta de lista de vendas
type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
}

// ToSaleResponse converte uma venda para o formato de resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total(),
		})
	}

	return SaleResponse{
		ID:          s.ID,
		ClientPhone: s.ClientPhone,
		Items:       items,
		Total:       s.Total,
		Paid:        s.Paid,
		Outstanding: s.Outstanding(),
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSaleListResponse converte uma lista de vendas para o formato de resposta
func ToSaleListResponse(sales []*sale.Sale, total, page, size int) SaleListResponse {
	items := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, ToSaleResponse(s))
	}

	return SaleListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
