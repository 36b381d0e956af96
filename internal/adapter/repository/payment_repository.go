package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/gestor-vendas/internal/domain/payment"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrPaymentNotFound = errors.New("pagamento não encontrado")
)

// PaymentRepository implementa a interface payment.Repository
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository cria uma nova instância de PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) payment.Repository {
	return &PaymentRepository{
		db: db,
	}
}

// Insert implementa payment.Repository.Insert
func (r *PaymentRepository) Insert(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payments (
			id, sale_id, amount, method, date, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.SaleID, p.Amount, p.Method, p.Date, p.Note, p.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao registrar pagamento: %w", err)
	}

	return nil
}

// FindByID implementa payment.Repository.FindByID
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment

	err := r.db.QueryRow(ctx,
		`SELECT id, sale_id, amount, method, date, note, created_at
		FROM payments WHERE id = $1`,
		id).Scan(&p.ID, &p.SaleID, &p.Amount, &p.Method, &p.Date, &p.Note, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pagamento: %w", err)
	}

	return &p, nil
}

// ListBySale implementa payment.Repository.ListBySale
func (r *PaymentRepository) ListBySale(ctx context.Context, saleID string) ([]*payment.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, amount, method, date, note, created_at
		FROM payments WHERE sale_id = $1 ORDER BY created_at ASC, id ASC`,
		saleID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos da venda: %w", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		var p payment.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Amount, &p.Method, &p.Date,
			&p.Note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler pagamento: %w", err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer pagamentos: %w", err)
	}

	return payments, nil
}

// CountBySale implementa payment.Repository.CountBySale
func (r *PaymentRepository) CountBySale(ctx context.Context, saleID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE sale_id = $1`, saleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar pagamentos: %w", err)
	}
	return count, nil
}
