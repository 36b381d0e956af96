package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hugohenrick/gestor-vendas/internal/domain/payment"
	"github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AllocationStores expõe vendas e pagamentos dentro de uma única transação
// para o alocador de pagamentos. Implementa payment.SaleStore e
// payment.PaymentStore.
type AllocationStores struct {
	tx pgx.Tx
}

// WithClientLock executa fn dentro de uma transação que detém um advisory
// lock por cliente. Duas alocações simultâneas para o mesmo cliente são
// serializadas aqui; sem isso ambas leriam o mesmo saldo em aberto e
// alocariam o pagamento em dobro.
func WithClientLock(ctx context.Context, db *pgxpool.Pool, clientPhone string, fn func(stores *AllocationStores) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, clientPhone); err != nil {
		return fmt.Errorf("erro ao adquirir lock do cliente: %w", err)
	}

	if err := fn(&AllocationStores{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// ListByClient implementa payment.SaleStore.ListByClient.
// Todas as vendas do cliente são retornadas, inclusive canceladas: o
// alocador precisa distinguir cliente sem vendas de cliente sem vendas
// em aberto. A ordenação por (created_at, id) é o desempate
// determinístico para vendas criadas no mesmo instante.
func (s *AllocationStores) ListByClient(ctx context.Context, clientPhone string) ([]*sale.Sale, error) {
	rows, err := s.tx.Query(ctx,
		`SELECT id, client_phone, items, total, paid, status, created_at, updated_at
		FROM sales WHERE client_phone = $1
		ORDER BY created_at ASC, id ASC`,
		clientPhone)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas do cliente: %w", err)
	}
	defer rows.Close()

	sales := make([]*sale.Sale, 0)
	for rows.Next() {
		var v sale.Sale
		var itemsJSON []byte
		if err := rows.Scan(&v.ID, &v.ClientPhone, &itemsJSON, &v.Total, &v.Paid,
			&v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &v.Items); err != nil {
			return nil, fmt.Errorf("erro ao converter itens: %w", err)
		}
		sales = append(sales, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer vendas: %w", err)
	}

	return sales, nil
}

// UpdatePaid implementa payment.SaleStore.UpdatePaid
func (s *AllocationStores) UpdatePaid(ctx context.Context, saleID string, paid decimal.Decimal) error {
	tag, err := s.tx.Exec(ctx,
		`UPDATE sales SET paid = $2, updated_at = NOW() WHERE id = $1`,
		saleID, paid)

	if err != nil {
		return fmt.Errorf("erro ao gravar valor pago da venda: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// Insert implementa payment.PaymentStore.Insert
func (s *AllocationStores) Insert(ctx context.Context, p *payment.Payment) error {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO payments (
			id, sale_id, amount, method, date, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.SaleID, p.Amount, p.Method, p.Date, p.Note, p.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao registrar pagamento: %w", err)
	}

	return nil
}

// ListBySale implementa payment.PaymentStore.ListBySale
func (s *AllocationStores) ListBySale(ctx context.Context, saleID string) ([]*payment.Payment, error) {
	rows, err := s.tx.Query(ctx,
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
