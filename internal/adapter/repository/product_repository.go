package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/gestor-vendas/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrProductNotFound = errors.New("produto não encontrado")
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (
			id, name, description, cost_price, sale_price, stock, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.CostPrice, p.SalePrice, p.Stock,
		p.Status, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product

	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, cost_price, sale_price, stock, status,
			created_at, updated_at
		FROM products WHERE id = $1`,
		id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CostPrice, &p.SalePrice, &p.Stock,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return &p, nil
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, cost_price, sale_price, stock, status,
			created_at, updated_at
		FROM products ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $2, description = $3, cost_price = $4, sale_price = $5,
			stock = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.CostPrice, p.SalePrice, p.Stock,
		p.Status, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover produto: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}
	return count, nil
}

// FindByName implementa product.Repository.FindByName
func (r *ProductRepository) FindByName(ctx context.Context, name string, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, cost_price, sale_price, stock, status,
			created_at, updated_at
		FROM products WHERE name ILIKE $1 ORDER BY name LIMIT $2 OFFSET $3`,
		"%"+name+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos por nome: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// UpdateStock implementa product.Repository.UpdateStock
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = NOW() WHERE id = $1`,
		id, stock)

	if err != nil {
		return fmt.Errorf("erro ao atualizar estoque: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func scanProducts(rows pgx.Rows) ([]*product.Product, error) {
	products := make([]*product.Product, 0)
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CostPrice,
			&p.SalePrice, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer produtos: %w", err)
	}

	return products, nil
}
