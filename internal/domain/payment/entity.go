package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptySale     = errors.New("venda não informada")
	ErrInvalidAmount = errors.New("valor do pagamento deve ser maior que zero")
	ErrInvalidMethod = errors.New("forma de pagamento inválida")
)

// Method representa a forma de pagamento
type Method string

const (
	MethodCash    Method = "cash"    // Dinheiro
	MethodCard    Method = "card"    // Cartão
	MethodWire    Method = "wire"    // Transferência bancária
	MethodInstant Method = "instant" // Transferência instantânea
)

// ParseMethod converte uma string em Method
func ParseMethod(s string) (Method, bool) {
	switch Method(s) {
	case MethodCash, MethodCard, MethodWire, MethodInstant:
		return Method(s), true
	}
	return "", false
}

// Payment representa um pagamento registrado para uma venda.
// Pagamentos são fatos imutáveis: uma vez gravados, nunca são editados;
// o valor pago da venda é sempre recalculado a partir deles.
type Payment struct {
	ID        string          `json:"id"`         // ID do Pagamento
	SaleID    string          `json:"sale_id"`    // ID da Venda
	Amount    decimal.Decimal `json:"amount"`     // Valor
	Method    Method          `json:"method"`     // Forma de Pagamento
	Date      time.Time       `json:"date"`       // Data do Pagamento
	Note      string          `json:"note"`       // Observação
	CreatedAt time.Time       `json:"created_at"` // Data de Criação
}

// NewPayment cria um novo pagamento
func NewPayment(saleID string, amount decimal.Decimal, method Method, date time.Time, note string) (*Payment, error) {
	if saleID == "" {
		return nil, ErrEmptySale
	}

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if _, ok := ParseMethod(string(method)); !ok {
		return nil, ErrInvalidMethod
	}

	if date.IsZero() {
		date = time.Now()
	}

	return &Payment{
		ID:        uuid.New().String(),
		SaleID:    saleID,
		Amount:    amount,
		Method:    method,
		Date:      date,
		Note:      note,
		CreatedAt: time.Now(),
	}, nil
}
