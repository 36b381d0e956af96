package dto

import (
	"time"

	"github.com/hugohenrick/gestor-vendas/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// AllocationRequest representa a requisição de distribuição de pagamento
// entre as vendas em aberto de um cliente
type AllocationRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Method      string `json:"method" binding:"required,oneof=cash card wire instant"`
	Date        string `json:"date"` // ISO 8601, opcional (padrão: agora)
	Note        string `json:"note"`
}

// PaymentRequest representa a requisição de pagamento avulso para uma venda
type PaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required,oneof=cash card wire instant"`
	Date   string `json:"date"`
	Note   string `json:"note"`
}

// PaymentResponse representa a resposta de pagamento
type PaymentResponse struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    payment.Method  `json:"method"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// AffectedSaleResponse representa uma venda tocada pela alocação
type AffectedSaleResponse struct {
	SaleID string          `json:"sale_id"`
	Paid   decimal.Decimal `json:"paid"`
}

// RecomputeFailureResponse representa uma venda cujo recálculo falhou
type RecomputeFailureResponse struct {
	SaleID string `json:"sale_id"`
	Reason string `json:"reason"`
}

// AllocationResponse representa o resultado da distribuição de um pagamento
type AllocationResponse struct {
	Offered           decimal.Decimal            `json:"offered"`
	Distributed       decimal.Decimal            `json:"distributed"`
	Remainder         decimal.Decimal            `json:"remainder"`
	AffectedSales     []AffectedSaleResponse     `json:"affected_sales"`
	PaymentsCreated   int                        `json:"payments_created"`
	RecomputeFailures []RecomputeFailureResponse `json:"recompute_failures,omitempty"`
}

// RecomputeResponse representa o resultado do recálculo do valor pago
type RecomputeResponse struct {
	SaleID string          `json:"sale_id"`
	Paid   decimal.Decimal `json:"paid"`
}

// ToPaymentResponse converte um pagamento para o formato de resposta
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		SaleID:    p.SaleID,
		Amount:    p.Amount,
		Method:    p.Method,
		Date:      p.Date,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
}

// ToPaymentListResponse converte uma lista de pagamentos para o formato de resposta
func ToPaymentListResponse(payments []*payment.Payment) []PaymentResponse {
	items := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, ToPaymentResponse(p))
	}
	return items
}

// ToAllocationResponse converte o resultado da alocação para o formato de resposta
func ToAllocationResponse(result *payment.AllocationResult) AllocationResponse {
	affected := make([]AffectedSaleResponse, 0, len(result.AffectedSales))
	for _, a := range result.AffectedSales {
		affected = append(affected, AffectedSaleResponse{SaleID: a.SaleID, Paid: a.Paid})
	}

	var failures []RecomputeFailureResponse
	for _, f := range result.RecomputeFailures {
		failures = append(failures, RecomputeFailureResponse{SaleID: f.SaleID, Reason: f.Reason})
	}

	return AllocationResponse{
		Offered:           result.Offered,
		Distributed:       result.Distributed,
		Remainder:         result.Remainder,
		AffectedSales:     affected,
		PaymentsCreated:   result.PaymentsCreated,
		RecomputeFailures: failures,
	}
}
