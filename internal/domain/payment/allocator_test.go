package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type saleStoreStub struct {
	sales       []*sale.Sale
	paid        map[string]decimal.Decimal
	listCalls   int
	updateCalls int
	listErr     error
	updateErr   map[string]error
}

func (s *saleStoreStub) ListByClient(_ context.Context, clientPhone string) ([]*sale.Sale, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	result := make([]*sale.Sale, 0, len(s.sales))
	for _, v := range s.sales {
		if v.ClientPhone == clientPhone {
			result = append(result, v)
		}
	}
	return result, nil
}

func (s *saleStoreStub) UpdatePaid(_ context.Context, saleID string, paid decimal.Decimal) error {
	s.updateCalls++
	if err := s.updateErr[saleID]; err != nil {
		return err
	}
	if s.paid == nil {
		s.paid = map[string]decimal.Decimal{}
	}
	s.paid[saleID] = paid
	for _, v := range s.sales {
		if v.ID == saleID {
			v.Paid = paid
		}
	}
	return nil
}

type paymentStoreStub struct {
	bySale      map[string][]*Payment
	insertCalls int
	listCalls   int
	failOn      int // falha no n-ésimo insert (1-based), 0 desliga
	listErr     error
}

func (s *paymentStoreStub) Insert(_ context.Context, p *Payment) error {
	s.insertCalls++
	if s.failOn > 0 && s.insertCalls == s.failOn {
		return errors.New("conexão perdida")
	}
	if s.bySale == nil {
		s.bySale = map[string][]*Payment{}
	}
	s.bySale[p.SaleID] = append(s.bySale[p.SaleID], p)
	return nil
}

func (s *paymentStoreStub) ListBySale(_ context.Context, saleID string) ([]*Payment, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.bySale[saleID], nil
}

func testSale(t *testing.T, id, phone string, total, paid float64, createdAt time.Time, status sale.Status) *sale.Sale {
	t.Helper()
	return &sale.Sale{
		ID:          id,
		ClientPhone: phone,
		Total:       decimal.NewFromFloat(total),
		Paid:        decimal.NewFromFloat(paid),
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func newTestAllocator(t *testing.T, sales *saleStoreStub, payments *paymentStoreStub) *Allocator {
	t.Helper()
	return NewAllocator(sales, payments, logger.NewZapLogger(zaptest.NewLogger(t)))
}

// Três vendas em aberto de 30, 50 e 20, criadas nessa ordem
func threeOpenSales(t *testing.T) *saleStoreStub {
	t.Helper()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &saleStoreStub{sales: []*sale.Sale{
		testSale(t, "v1", "5511999990001", 30, 0, base, sale.StatusPending),
		testSale(t, "v2", "5511999990001", 50, 0, base.Add(time.Hour), sale.StatusPending),
		testSale(t, "v3", "5511999990001", 20, 0, base.Add(2*time.Hour), sale.StatusPending),
	}}
}

func allocationRequest(amount float64) AllocationRequest {
	return AllocationRequest{
		ClientPhone: "5511999990001",
		Amount:      decimal.NewFromFloat(amount),
		Method:      MethodCash,
		Date:        time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestAllocateConservesAmount(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	result, err := allocator.Allocate(context.Background(), allocationRequest(60))
	require.NoError(t, err)

	assert.True(t, result.Distributed.Add(result.Remainder).Equal(result.Offered),
		"distribuído + sobra deve ser igual ao valor ofertado")
	assert.True(t, result.Remainder.IsZero(), "não deve sobrar valor quando a dívida cobre o pagamento")
	assert.True(t, result.Distributed.Equal(decimal.NewFromInt(60)))
}

func TestAllocateOldestFirst(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	result, err := allocator.Allocate(context.Background(), allocationRequest(40))
	require.NoError(t, err)

	require.Len(t, result.AffectedSales, 2)
	assert.Equal(t, "v1", result.AffectedSales[0].SaleID)
	assert.Equal(t, "v2", result.AffectedSales[1].SaleID)
	assert.True(t, result.AffectedSales[0].Paid.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.AffectedSales[1].Paid.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.Remainder.IsZero())
	assert.Equal(t, 2, result.PaymentsCreated)

	// A venda mais recente não pode ter sido tocada
	assert.Empty(t, payments.bySale["v3"])
	_, touched := sales.paid["v3"]
	assert.False(t, touched)
}

func TestAllocateOverpayment(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	result, err := allocator.Allocate(context.Background(), allocationRequest(200))
	require.NoError(t, err)

	assert.True(t, result.Distributed.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.Remainder.Equal(decimal.NewFromInt(100)), "o excedente deve ser reportado, não descartado")
	require.Len(t, result.AffectedSales, 3)
	assert.True(t, sales.paid["v1"].Equal(decimal.NewFromInt(30)))
	assert.True(t, sales.paid["v2"].Equal(decimal.NewFromInt(50)))
	assert.True(t, sales.paid["v3"].Equal(decimal.NewFromInt(20)))
}

func TestRecomputePaidIsIdempotent(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	_, err := allocator.Allocate(context.Background(), allocationRequest(40))
	require.NoError(t, err)

	first, err := allocator.RecomputePaid(context.Background(), "v1")
	require.NoError(t, err)
	second, err := allocator.RecomputePaid(context.Background(), "v1")
	require.NoError(t, err)

	assert.True(t, first.Equal(second), "recalcular sem novos pagamentos deve convergir para o mesmo valor")
	assert.True(t, sales.paid["v1"].Equal(first))
}

func TestAllocateSkipsSettledSales(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sales := &saleStoreStub{sales: []*sale.Sale{
		testSale(t, "quitada", "5511999990001", 80, 80, base, sale.StatusDelivered),
		testSale(t, "aberta", "5511999990001", 40, 0, base.Add(time.Hour), sale.StatusPending),
	}}
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	result, err := allocator.Allocate(context.Background(), allocationRequest(500))
	require.NoError(t, err)

	require.Len(t, result.AffectedSales, 1)
	assert.Equal(t, "aberta", result.AffectedSales[0].SaleID)
	assert.Empty(t, payments.bySale["quitada"])
}

func TestAllocateSkipsCancelledSales(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sales := &saleStoreStub{sales: []*sale.Sale{
		testSale(t, "cancelada", "5511999990001", 100, 0, base, sale.StatusCancelled),
		testSale(t, "aberta", "5511999990001", 40, 0, base.Add(time.Hour), sale.StatusPending),
	}}
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	result, err := allocator.Allocate(context.Background(), allocationRequest(500))
	require.NoError(t, err)

	require.Len(t, result.AffectedSales, 1)
	assert.Equal(t, "aberta", result.AffectedSales[0].SaleID)
	assert.Empty(t, payments.bySale["cancelada"], "venda cancelada nunca recebe alocação")
}

func TestAllocateRejectsInvalidAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
	}{
		{"zero", 0},
		{"negativo", -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sales := threeOpenSales(t)
			payments := &paymentStoreStub{}
			allocator := newTestAllocator(t, sales, payments)

			req := allocationRequest(tc.amount)
			result, err := allocator.Allocate(context.Background(), req)

			require.ErrorIs(t, err, ErrInvalidAmount)
			assert.Nil(t, result)
			assert.Zero(t, sales.listCalls, "requisição inválida não pode acessar o armazenamento")
			assert.Zero(t, payments.insertCalls)
		})
	}
}

func TestAllocateRejectsEmptyClient(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	req := allocationRequest(10)
	req.ClientPhone = ""
	_, err := allocator.Allocate(context.Background(), req)

	require.ErrorIs(t, err, ErrEmptyClient)
	assert.Zero(t, sales.listCalls)
}

func TestAllocateRejectsUnknownMethod(t *testing.T) {
	sales := threeOpenSales(t)
	allocator := newTestAllocator(t, sales, &paymentStoreStub{})

	req := allocationRequest(10)
	req.Method = Method("cheque")
	_, err := allocator.Allocate(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidMethod)
	assert.Zero(t, sales.listCalls)
}

func TestAllocateNothingPending(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sales := &saleStoreStub{sales: []*sale.Sale{
		testSale(t, "quitada", "5511999990001", 80, 80, base, sale.StatusDelivered),
		testSale(t, "cancelada", "5511999990001", 100, 0, base.Add(time.Hour), sale.StatusCancelled),
	}}
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	_, err := allocator.Allocate(context.Background(), allocationRequest(50))

	require.ErrorIs(t, err, ErrNothingPending)
	assert.Zero(t, payments.insertCalls, "nada pode ser gravado quando não há vendas em aberto")
}

func TestAllocateAllCancelledNothingPending(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sales := &saleStoreStub{sales: []*sale.Sale{
		testSale(t, "cancelada1", "5511999990001", 100, 0, base, sale.StatusCancelled),
		testSale(t, "cancelada2", "5511999990001", 60, 0, base.Add(time.Hour), sale.StatusCancelled),
	}}
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	_, err := allocator.Allocate(context.Background(), allocationRequest(50))

	// Cliente existe e tem vendas, só que nenhuma em aberto: não pode ser
	// confundido com cliente desconhecido
	require.ErrorIs(t, err, ErrNothingPending)
	assert.NotErrorIs(t, err, ErrUnknownClient)
	assert.Zero(t, payments.insertCalls)
}

func TestAllocateUnknownClient(t *testing.T) {
	sales := &saleStoreStub{}
	allocator := newTestAllocator(t, sales, &paymentStoreStub{})

	_, err := allocator.Allocate(context.Background(), allocationRequest(50))

	require.ErrorIs(t, err, ErrUnknownClient)
}

func TestAllocateReportsPartialWrite(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{failOn: 2}
	allocator := newTestAllocator(t, sales, payments)

	_, err := allocator.Allocate(context.Background(), allocationRequest(60))

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.True(t, storageErr.PartialWrite, "falha após o primeiro insert deve sinalizar gravação parcial")
}

func TestRecomputePaidFailureIsNotPartialWrite(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{listErr: errors.New("conexão perdida")}
	allocator := newTestAllocator(t, sales, payments)

	_, err := allocator.RecomputePaid(context.Background(), "v1")

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.False(t, storageErr.PartialWrite, "falha de leitura no recálculo não gravou nada")
	assert.Zero(t, sales.updateCalls)
}

func TestAllocateReportsRecomputeFailurePerSale(t *testing.T) {
	sales := threeOpenSales(t)
	sales.updateErr = map[string]error{"v1": errors.New("timeout")}
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	result, err := allocator.Allocate(context.Background(), allocationRequest(40))
	require.NoError(t, err, "falha de recálculo individual não derruba a alocação")

	require.Len(t, result.RecomputeFailures, 1)
	assert.Equal(t, "v1", result.RecomputeFailures[0].SaleID)
	require.Len(t, result.AffectedSales, 1)
	assert.Equal(t, "v2", result.AffectedSales[0].SaleID)
	assert.Equal(t, 2, result.PaymentsCreated, "os pagamentos já gravados permanecem")
}

func TestAllocatePartialPaymentAccumulates(t *testing.T) {
	sales := threeOpenSales(t)
	payments := &paymentStoreStub{}
	allocator := newTestAllocator(t, sales, payments)

	_, err := allocator.Allocate(context.Background(), allocationRequest(10))
	require.NoError(t, err)
	result, err := allocator.Allocate(context.Background(), allocationRequest(25))
	require.NoError(t, err)

	// 10 + 25 = 35: quita a primeira venda (30) e avança 5 na segunda
	require.Len(t, result.AffectedSales, 2)
	assert.True(t, sales.paid["v1"].Equal(decimal.NewFromInt(30)))
	assert.True(t, sales.paid["v2"].Equal(decimal.NewFromInt(5)))
	require.Len(t, payments.bySale["v1"], 2, "o valor pago deriva do razão completo, não de um contador")
}
