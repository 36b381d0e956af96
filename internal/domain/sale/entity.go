package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyClient       = errors.New("cliente não informado")
	ErrNoItems           = errors.New("venda deve possuir ao menos um item")
	ErrInvalidQuantity   = errors.New("quantidade deve ser maior que zero")
	ErrInvalidUnitPrice  = errors.New("preço unitário não pode ser negativo")
	ErrInvalidTransition = errors.New("transição de status inválida")
	ErrAlreadyCancelled  = errors.New("venda já está cancelada")
)

// Status representa o estado da venda
type Status string

const (
	StatusPending    Status = "pending"    // Em aberto
	StatusDispatched Status = "dispatched" // Despachada
	StatusDelivered  Status = "delivered"  // Entregue
	StatusCancelled  Status = "cancelled"  // Cancelada
)

// ParseStatus converte uma string em Status
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusDispatched, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Item representa um item da venda. Nome e preço são um retrato do
// produto no momento da venda.
type Item struct {
	ProductID string          `json:"product_id"` // ID do Produto
	Name      string          `json:"name"`       // Nome do Produto
	Quantity  int             `json:"quantity"`   // Quantidade
	UnitPrice decimal.Decimal `json:"unit_price"` // Preço Unitário
}

// Total retorna o total do item
func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale representa uma venda no sistema.
// O campo Paid é derivado: sempre recalculado a partir dos pagamentos
// registrados, nunca incrementado diretamente.
type Sale struct {
	ID          string          `json:"id"`          // ID da Venda
	ClientPhone string          `json:"client_phone"` // Telefone do Cliente
	Items       []Item          `json:"items"`       // Itens da Venda
	Total       decimal.Decimal `json:"total"`       // Valor Total
	Paid        decimal.Decimal `json:"paid"`        // Valor Pago (derivado)
	Status      Status          `json:"status"`      // Status da Venda
	CreatedAt   time.Time       `json:"created_at"`  // Data de Criação
	UpdatedAt   time.Time       `json:"updated_at"`  // Data de Atualização
}

// NewSale cria uma nova venda com pagamento zerado
func NewSale(clientPhone string, items []Item) (*Sale, error) {
	if clientPhone == "" {
		return nil, ErrEmptyClient
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, ErrInvalidUnitPrice
		}
		total = total.Add(item.Total())
	}

	now := time.Now()
	return &Sale{
		ID:          uuid.New().String(),
		ClientPhone: clientPhone,
		Items:       items,
		Total:       total,
		Paid:        decimal.Zero,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Outstanding retorna o saldo em aberto da venda, nunca negativo
func (s *Sale) Outstanding() decimal.Decimal {
	balance := s.Total.Sub(s.Paid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// IsCancelled verifica se a venda está cancelada
func (s *Sale) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// IsSettled verifica se a venda está totalmente paga
func (s *Sale) IsSettled() bool {
	return s.Outstanding().IsZero()
}

// ChangeStatus avança o status da venda.
// Transições permitidas: pending -> dispatched -> delivered.
// Cancelamento é feito por Cancel.
func (s *Sale) ChangeStatus(next Status) error {
	allowed := map[Status]Status{
		StatusPending:    StatusDispatched,
		StatusDispatched: StatusDelivered,
	}

	if allowed[s.Status] != next {
		return ErrInvalidTransition
	}

	s.Status = next
	s.UpdatedAt = time.Now()

	return nil
}

// Cancel cancela a venda. Apenas vendas pendentes podem ser canceladas.
func (s *Sale) Cancel() error {
	if s.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	if s.Status != StatusPending {
		return ErrInvalidTransition
	}

	s.Status = StatusCancelled
	s.UpdatedAt = time.Now()

	return nil
}
