package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// List lista os produtos com paginação
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Update atualiza os dados de um produto existente
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto
	Delete(ctx context.Context, id string) error

	// Count conta quantos produtos existem
	Count(ctx context.Context) (int, error)

	// FindByName busca produtos pelo nome
	FindByName(ctx context.Context, name string, limit, offset int) ([]*Product, error)

	// UpdateStock atualiza o estoque de um produto
	UpdateStock(ctx context.Context, id string, stock int) error
}
