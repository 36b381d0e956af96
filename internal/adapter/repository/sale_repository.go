package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugohenrick/gestor-vendas/internal/domain/product"
	"github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Erros específicos do repositório
var (
	ErrSaleNotFound = errors.New("venda não encontrada")
)

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{
		db: db,
	}
}

// Create implementa sale.Repository.Create.
// A venda e a baixa de estoque dos itens são gravadas na mesma transação:
// ou a venda existe com o estoque descontado, ou nada foi gravado.
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (
			id, client_phone, items, total, paid, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.ClientPhone, items, s.Total, s.Paid, s.Status,
		s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	for _, item := range s.Items {
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW()
			WHERE id = $1 AND stock >= $2`,
			item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("erro ao baixar estoque do produto %s: %w", item.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("produto %s: %w", item.ProductID, product.ErrInsufficientStock)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// CancelRestoringStock implementa sale.Repository.CancelRestoringStock.
// O cancelamento e a devolução do estoque acontecem na mesma transação.
func (r *SaleRepository) CancelRestoringStock(ctx context.Context, s *sale.Sale) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = NOW() WHERE id = $1`,
		s.ID, sale.StatusCancelled)
	if err != nil {
		return fmt.Errorf("erro ao cancelar venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	for _, item := range s.Items {
		_, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1`,
			item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("erro ao devolver estoque do produto %s: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, client_phone, items, total, paid, status, created_at, updated_at
		FROM sales WHERE id = $1`,
		id)

	s, err := scanSaleRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	return s, nil
}

// FindByClient implementa sale.Repository.FindByClient.
// A ordenação por (created_at, id) garante desempate determinístico entre
// vendas criadas no mesmo instante.
func (r *SaleRepository) FindByClient(ctx context.Context, clientPhone string, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, client_phone, items, total, paid, status, created_at, updated_at
		FROM sales WHERE client_phone = $1
		ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`,
		clientPhone, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas do cliente: %w", err)
	}
	defer rows.Close()

	return scanSales(rows)
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, client_phone, items, total, paid, status, created_at, updated_at
		FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	return scanSales(rows)
}

// UpdateStatus implementa sale.Repository.UpdateStatus
func (r *SaleRepository) UpdateStatus(ctx context.Context, id string, status sale.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status da venda: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// UpdatePaid implementa sale.Repository.UpdatePaid
func (r *SaleRepository) UpdatePaid(ctx context.Context, id string, paid decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales SET paid = $2, updated_at = NOW() WHERE id = $1`,
		id, paid)

	if err != nil {
		return fmt.Errorf("erro ao atualizar valor pago da venda: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// Count implementa sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}
	return count, nil
}

// CountByClient implementa sale.Repository.CountByClient
func (r *SaleRepository) CountByClient(ctx context.Context, clientPhone string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE client_phone = $1`, clientPhone).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas do cliente: %w", err)
	}
	return count, nil
}

func scanSaleRow(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var itemsJSON []byte

	err := row.Scan(&s.ID, &s.ClientPhone, &itemsJSON, &s.Total, &s.Paid,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}

	return &s, nil
}

func scanSales(rows pgx.Rows) ([]*sale.Sale, error) {
	sales := make([]*sale.Sale, 0)
	for rows.Next() {
		s, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer vendas: %w", err)
	}

	return sales, nil
}
