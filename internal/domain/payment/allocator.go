package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyClient    = errors.New("cliente não informado")
	ErrUnknownClient  = errors.New("cliente não possui vendas")
	ErrNothingPending = errors.New("cliente não possui vendas em aberto")
)

// SaleStore é a visão do estoque de vendas que o alocador precisa
type SaleStore interface {
	// ListByClient lista todas as vendas de um cliente, da mais antiga
	// para a mais recente, sem filtrar por status. Canceladas e quitadas
	// são descartadas pelo próprio alocador, que precisa da lista
	// completa para distinguir cliente desconhecido de cliente sem
	// vendas em aberto.
	ListByClient(ctx context.Context, clientPhone string) ([]*sale.Sale, error)

	// UpdatePaid grava o valor pago recalculado de uma venda
	UpdatePaid(ctx context.Context, saleID string, paid decimal.Decimal) error
}

// PaymentStore é a visão do estoque de pagamentos que o alocador precisa
type PaymentStore interface {
	// Insert grava um novo pagamento
	Insert(ctx context.Context, p *Payment) error

	// ListBySale lista os pagamentos de uma venda
	ListBySale(ctx context.Context, saleID string) ([]*Payment, error)
}

// StorageError indica uma falha na camada de armazenamento durante a
// alocação. PartialWrite sinaliza que pagamentos já podem ter sido
// gravados quando a falha ocorreu, exigindo reconciliação manual.
type StorageError struct {
	Op           string
	PartialWrite bool
	Err          error
}

func (e *StorageError) Error() string {
	if e.PartialWrite {
		return fmt.Sprintf("falha ao %s (pagamentos parcialmente gravados): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("falha ao %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// AllocationRequest representa um pagamento de cliente a distribuir
type AllocationRequest struct {
	ClientPhone string
	Amount      decimal.Decimal
	Method      Method
	Date        time.Time
	Note        string
}

// Validate verifica os dados da requisição antes de qualquer acesso ao
// armazenamento
func (r AllocationRequest) Validate() error {
	if r.ClientPhone == "" {
		return ErrEmptyClient
	}

	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if _, ok := ParseMethod(string(r.Method)); !ok {
		return ErrInvalidMethod
	}

	return nil
}

// AffectedSale registra uma venda tocada pela alocação e seu novo total pago
type AffectedSale struct {
	SaleID string          `json:"sale_id"`
	Paid   decimal.Decimal `json:"paid"`
}

// RecomputeFailure registra uma venda cujo recálculo falhou. O pagamento
// já foi gravado; basta repetir o recálculo para a venda indicada.
type RecomputeFailure struct {
	SaleID string `json:"sale_id"`
	Reason string `json:"reason"`
}

// AllocationResult é o resultado da distribuição de um pagamento
type AllocationResult struct {
	Offered           decimal.Decimal    `json:"offered"`
	Distributed       decimal.Decimal    `json:"distributed"`
	Remainder         decimal.Decimal    `json:"remainder"`
	AffectedSales     []AffectedSale     `json:"affected_sales"`
	PaymentsCreated   int                `json:"payments_created"`
	RecomputeFailures []RecomputeFailure `json:"recompute_failures,omitempty"`
}

// Allocator distribui um pagamento de cliente entre suas vendas em aberto,
// da mais antiga para a mais recente, e recalcula o valor pago de cada
// venda tocada a partir do conjunto completo de seus pagamentos.
type Allocator struct {
	sales    SaleStore
	payments PaymentStore
	logger   logger.Logger
}

// NewAllocator cria uma nova instância de Allocator
func NewAllocator(sales SaleStore, payments PaymentStore, log logger.Logger) *Allocator {
	return &Allocator{
		sales:    sales,
		payments: payments,
		logger:   log,
	}
}

// Allocate distribui o valor informado entre as vendas em aberto do
// cliente. Dívidas mais antigas são quitadas primeiro. O valor que
// sobrar depois de cobrir todas as vendas é devolvido em Remainder e
// deve ser tratado fora do sistema; nenhum crédito é gerado.
func (a *Allocator) Allocate(ctx context.Context, req AllocationRequest) (*AllocationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sales, err := a.sales.ListByClient(ctx, req.ClientPhone)
	if err != nil {
		return nil, &StorageError{Op: "listar vendas do cliente", Err: err}
	}

	if len(sales) == 0 {
		return nil, ErrUnknownClient
	}

	// Filtrar vendas com saldo em aberto, preservando a ordem
	outstanding := make([]*sale.Sale, 0, len(sales))
	for _, s := range sales {
		if s.IsCancelled() {
			continue
		}
		if !s.Outstanding().IsPositive() {
			continue
		}
		outstanding = append(outstanding, s)
	}

	if len(outstanding) == 0 {
		return nil, ErrNothingPending
	}

	// Distribuir o valor entre as vendas, da mais antiga para a mais recente
	remaining := req.Amount
	pending := make([]*Payment, 0, len(outstanding))
	for _, s := range outstanding {
		if !remaining.IsPositive() {
			break
		}

		take := decimal.Min(remaining, s.Outstanding())
		p, err := NewPayment(s.ID, take, req.Method, req.Date, req.Note)
		if err != nil {
			return nil, err
		}

		pending = append(pending, p)
		remaining = remaining.Sub(take)
	}

	// Gravar os pagamentos
	for i, p := range pending {
		if err := a.payments.Insert(ctx, p); err != nil {
			return nil, &StorageError{Op: "registrar pagamento", PartialWrite: i > 0, Err: err}
		}
	}

	result := &AllocationResult{
		Offered:         req.Amount,
		Distributed:     req.Amount.Sub(remaining),
		Remainder:       remaining,
		AffectedSales:   make([]AffectedSale, 0, len(pending)),
		PaymentsCreated: len(pending),
	}

	// Recalcular o valor pago de cada venda tocada. Falhas individuais
	// não desfazem os pagamentos já gravados; são reportadas para que o
	// recálculo seja repetido apenas para as vendas afetadas.
	for _, p := range pending {
		paid, err := a.RecomputePaid(ctx, p.SaleID)
		if err != nil {
			a.logger.Error("falha ao recalcular valor pago da venda",
				"sale_id", p.SaleID, "error", err)
			result.RecomputeFailures = append(result.RecomputeFailures, RecomputeFailure{
				SaleID: p.SaleID,
				Reason: err.Error(),
			})
			continue
		}
		result.AffectedSales = append(result.AffectedSales, AffectedSale{SaleID: p.SaleID, Paid: paid})
	}

	a.logger.Info("pagamento distribuído",
		"client_phone", req.ClientPhone,
		"offered", req.Amount.String(),
		"distributed", result.Distributed.String(),
		"remainder", result.Remainder.String(),
		"payments_created", result.PaymentsCreated)

	return result, nil
}

// RecomputePaid recarrega todos os pagamentos da venda, soma os valores e
// grava a soma como valor pago. A operação é idempotente: repetir o
// recálculo sem novos pagamentos converge sempre para o mesmo valor,
// pois a soma deriva do razão completo e não de um contador incremental.
func (a *Allocator) RecomputePaid(ctx context.Context, saleID string) (decimal.Decimal, error) {
	payments, err := a.payments.ListBySale(ctx, saleID)
	if err != nil {
		return decimal.Zero, &StorageError{Op: "listar pagamentos da venda", Err: err}
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	if err := a.sales.UpdatePaid(ctx, saleID, total); err != nil {
		return decimal.Zero, &StorageError{Op: "gravar valor pago da venda", Err: err}
	}

	return total, nil
}
