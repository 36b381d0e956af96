package dto

import (
	"time"

	"github.com/hugohenrick/gestor-vendas/internal/domain/client"
)

// ClientRequest representa a requisição de cliente
type ClientRequest struct {
	Phone        string `json:"phone" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Observations string `json:"observations"`
}

// ClientResponse representa a resposta de cliente
type ClientResponse struct {
	Phone        string        `json:"phone"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Observations string        `json:"observations"`
	Status       client.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ClientListResponse representa a resposta de lista de clientes
type ClientListResponse struct {
	Items      []ClientResponse `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Size       int              `json:"size"`
	TotalPages int              `json:"total_pages"`
}

// ToClientResponse converte um cliente para o formato de resposta
func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		Phone:        c.Phone,
		Name:         c.Name,
		Address:      c.Address,
		Observations: c.Observations,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToClientListResponse converte uma lista de clientes para o formato de resposta
func ToClientListResponse(clients []*client.Client, total, page, size int) ClientListResponse {
	items := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, ToClientResponse(c))
	}

	return ClientListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
