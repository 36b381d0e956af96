package sale

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create grava a venda e baixa o estoque dos produtos dos itens na
	// mesma transação
	Create(ctx context.Context, s *Sale) error

	// CancelRestoringStock cancela a venda e devolve o estoque dos itens
	// na mesma transação
	CancelRestoringStock(ctx context.Context, s *Sale) error

	// FindByID busca uma venda pelo ID
	FindByID(ctx context.Context, id string) (*Sale, error)

	// FindByClient lista as vendas de um cliente, da mais antiga para a
	// mais recente (created_at, id como desempate determinístico)
	FindByClient(ctx context.Context, clientPhone string, limit, offset int) ([]*Sale, error)

	// List lista as vendas com paginação
	List(ctx context.Context, limit, offset int) ([]*Sale, error)

	// UpdateStatus atualiza o status de uma venda
	UpdateStatus(ctx context.Context, id string, status Status) error

	// UpdatePaid grava o valor pago recalculado de uma venda
	UpdatePaid(ctx context.Context, id string, paid decimal.Decimal) error

	// Count conta quantas vendas existem
	Count(ctx context.Context) (int, error)

	// CountByClient conta quantas vendas um cliente possui
	CountByClient(ctx context.Context, clientPhone string) (int, error)
}
