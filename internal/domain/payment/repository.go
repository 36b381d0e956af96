package payment

import (
	"context"
)

// Repository define a interface para operações de repositório de pagamentos
type Repository interface {
	// Insert grava um novo pagamento
	Insert(ctx context.Context, p *Payment) error

	// FindByID busca um pagamento pelo ID
	FindByID(ctx context.Context, id string) (*Payment, error)

	// ListBySale lista os pagamentos de uma venda, do mais antigo para o
	// mais recente
	ListBySale(ctx context.Context, saleID string) ([]*Payment, error)

	// CountBySale conta quantos pagamentos uma venda possui
	CountBySale(ctx context.Context, saleID string) (int, error)
}
