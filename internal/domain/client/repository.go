package client

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Client) error

	// FindByPhone busca um cliente pelo telefone
	FindByPhone(ctx context.Context, phone string) (*Client, error)

	// List lista os clientes com paginação
	List(ctx context.Context, limit, offset int) ([]*Client, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Client) error

	// Delete remove um cliente
	Delete(ctx context.Context, phone string) error

	// Count conta quantos clientes existem
	Count(ctx context.Context) (int, error)

	// Exists verifica se um cliente existe
	Exists(ctx context.Context, phone string) (bool, error)

	// FindByName busca clientes pelo nome
	FindByName(ctx context.Context, name string, limit, offset int) ([]*Client, error)
}
