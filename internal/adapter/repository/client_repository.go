package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/gestor-vendas/internal/domain/client"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrClientNotFound     = errors.New("cliente não encontrado")
	ErrClientDuplicateKey = errors.New("cliente com mesmo telefone já existe")
)

// ClientRepository implementa a interface client.Repository
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository cria uma nova instância de ClientRepository
func NewClientRepository(db *pgxpool.Pool) client.Repository {
	return &ClientRepository{
		db: db,
	}
}

// Create implementa client.Repository.Create
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO clients (
			phone, name, address, observations, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.Phone, c.Name, c.Address, c.Observations, c.Status, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrClientDuplicateKey
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByPhone implementa client.Repository.FindByPhone
func (r *ClientRepository) FindByPhone(ctx context.Context, phone string) (*client.Client, error) {
	var c client.Client

	err := r.db.QueryRow(ctx,
		`SELECT phone, name, address, observations, status, created_at, updated_at
		FROM clients WHERE phone = $1`,
		phone).Scan(
		&c.Phone, &c.Name, &c.Address, &c.Observations, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return &c, nil
}

// List implementa client.Repository.List
func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*client.Client, error) {
	rows, err := r.db.Query(ctx,
		`SELECT phone, name, address, observations, status, created_at, updated_at
		FROM clients ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// Update implementa client.Repository.Update
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE clients SET
			name = $2, address = $3, observations = $4, status = $5, updated_at = $6
		WHERE phone = $1`,
		c.Phone, c.Name, c.Address, c.Observations, c.Status, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// Delete implementa client.Repository.Delete
func (r *ClientRepository) Delete(ctx context.Context, phone string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE phone = $1`, phone)
	if err != nil {
		return fmt.Errorf("erro ao remover cliente: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// Count implementa client.Repository.Count
func (r *ClientRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}
	return count, nil
}

// Exists implementa client.Repository.Exists
func (r *ClientRepository) Exists(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE phone = $1)`, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}
	return exists, nil
}

// FindByName implementa client.Repository.FindByName
func (r *ClientRepository) FindByName(ctx context.Context, name string, limit, offset int) ([]*client.Client, error) {
	rows, err := r.db.Query(ctx,
		`SELECT phone, name, address, observations, status, created_at, updated_at
		FROM clients WHERE name ILIKE $1 ORDER BY name LIMIT $2 OFFSET $3`,
		"%"+name+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes por nome: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

func scanClients(rows pgx.Rows) ([]*client.Client, error) {
	clients := make([]*client.Client, 0)
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.Phone, &c.Name, &c.Address, &c.Observations,
			&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		clients = append(clients, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer clientes: %w", err)
	}

	return clients, nil
}
