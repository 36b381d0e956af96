package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/repository"
	clientdomain "github.com/hugohenrick/gestor-vendas/internal/domain/client"
	productdomain "github.com/hugohenrick/gestor-vendas/internal/domain/product"
	saledomain "github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type clientRepoStub struct {
	exists bool
}

func (s *clientRepoStub) Create(context.Context, *clientdomain.Client) error { return nil }
func (s *clientRepoStub) FindByPhone(context.Context, string) (*clientdomain.Client, error) {
	return nil, repository.ErrClientNotFound
}
func (s *clientRepoStub) List(context.Context, int, int) ([]*clientdomain.Client, error) {
	return nil, nil
}
func (s *clientRepoStub) Update(context.Context, *clientdomain.Client) error { return nil }
func (s *clientRepoStub) Delete(context.Context, string) error               { return nil }
func (s *clientRepoStub) Count(context.Context) (int, error)                 { return 0, nil }
func (s *clientRepoStub) Exists(context.Context, string) (bool, error)      { return s.exists, nil }
func (s *clientRepoStub) FindByName(context.Context, string, int, int) ([]*clientdomain.Client, error) {
	return nil, nil
}

type productRepoStub struct {
	products         map[string]*productdomain.Product
	updateStockCalls int
}

func (s *productRepoStub) Create(context.Context, *productdomain.Product) error { return nil }
func (s *productRepoStub) FindByID(_ context.Context, id string) (*productdomain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrProductNotFound
}
func (s *productRepoStub) List(context.Context, int, int) ([]*productdomain.Product, error) {
	return nil, nil
}
func (s *productRepoStub) Update(context.Context, *productdomain.Product) error { return nil }
func (s *productRepoStub) Delete(context.Context, string) error                 { return nil }
func (s *productRepoStub) Count(context.Context) (int, error)                   { return 0, nil }
func (s *productRepoStub) FindByName(context.Context, string, int, int) ([]*productdomain.Product, error) {
	return nil, nil
}
func (s *productRepoStub) UpdateStock(context.Context, string, int) error {
	s.updateStockCalls++
	return nil
}

type saleRepoStub struct {
	byID              map[string]*saledomain.Sale
	createCalls       int
	createErr         error
	cancelCalls       int
	updateStatusCalls int
}

func (s *saleRepoStub) Create(_ context.Context, v *saledomain.Sale) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	if s.byID == nil {
		s.byID = map[string]*saledomain.Sale{}
	}
	s.byID[v.ID] = v
	return nil
}

func (s *saleRepoStub) CancelRestoringStock(_ context.Context, v *saledomain.Sale) error {
	s.cancelCalls++
	return nil
}

func (s *saleRepoStub) FindByID(_ context.Context, id string) (*saledomain.Sale, error) {
	if v, ok := s.byID[id]; ok {
		return v, nil
	}
	return nil, repository.ErrSaleNotFound
}

func (s *saleRepoStub) FindByClient(context.Context, string, int, int) ([]*saledomain.Sale, error) {
	return nil, nil
}
func (s *saleRepoStub) List(context.Context, int, int) ([]*saledomain.Sale, error) { return nil, nil }
func (s *saleRepoStub) UpdateStatus(context.Context, string, saledomain.Status) error {
	s.updateStatusCalls++
	return nil
}
func (s *saleRepoStub) UpdatePaid(context.Context, string, decimal.Decimal) error { return nil }
func (s *saleRepoStub) Count(context.Context) (int, error)                        { return 0, nil }
func (s *saleRepoStub) CountByClient(context.Context, string) (int, error)        { return 0, nil }

func testProduct(id string, stock int) *productdomain.Product {
	return &productdomain.Product{
		ID:        id,
		Name:      "Arroz 5kg",
		CostPrice: decimal.NewFromInt(20),
		SalePrice: decimal.NewFromFloat(25.50),
		Stock:     stock,
		Status:    productdomain.StatusActive,
	}
}

func newSaleRouter(t *testing.T, sales *saleRepoStub, clients *clientRepoStub, products *productRepoStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := NewSaleController(sales, clients, products, logger.NewZapLogger(zaptest.NewLogger(t)))

	r := gin.New()
	r.POST("/sales", ctrl.Create)
	r.PATCH("/sales/:id/status", ctrl.UpdateStatus)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSaleWritesStockWithTheSale(t *testing.T) {
	sales := &saleRepoStub{}
	clients := &clientRepoStub{exists: true}
	products := &productRepoStub{products: map[string]*productdomain.Product{
		"p1": testProduct("p1", 10),
	}}
	r := newSaleRouter(t, sales, clients, products)

	w := doJSON(t, r, http.MethodPost, "/sales", map[string]interface{}{
		"client_phone": "5511999990001",
		"items":        []map[string]interface{}{{"product_id": "p1", "quantity": 2}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, sales.createCalls)
	// A baixa de estoque acontece dentro da gravação da venda, nunca como
	// escrita separada que possa falhar sozinha
	assert.Zero(t, products.updateStockCalls)
}

func TestCreateSaleInsufficientStockAtWrite(t *testing.T) {
	sales := &saleRepoStub{
		createErr: fmt.Errorf("produto p1: %w", productdomain.ErrInsufficientStock),
	}
	clients := &clientRepoStub{exists: true}
	products := &productRepoStub{products: map[string]*productdomain.Product{
		"p1": testProduct("p1", 10),
	}}
	r := newSaleRouter(t, sales, clients, products)

	w := doJSON(t, r, http.MethodPost, "/sales", map[string]interface{}{
		"client_phone": "5511999990001",
		"items":        []map[string]interface{}{{"product_id": "p1", "quantity": 2}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, products.updateStockCalls)
}

func TestCancelSaleRestoresStockWithTheStatus(t *testing.T) {
	now := time.Now()
	sales := &saleRepoStub{byID: map[string]*saledomain.Sale{
		"v1": {
			ID:          "v1",
			ClientPhone: "5511999990001",
			Items: []saledomain.Item{
				{ProductID: "p1", Name: "Arroz 5kg", Quantity: 2, UnitPrice: decimal.NewFromFloat(25.50)},
			},
			Total:     decimal.NewFromInt(51),
			Paid:      decimal.Zero,
			Status:    saledomain.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}}
	clients := &clientRepoStub{exists: true}
	products := &productRepoStub{}
	r := newSaleRouter(t, sales, clients, products)

	w := doJSON(t, r, http.MethodPatch, "/sales/v1/status", map[string]string{"status": "cancelled"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, sales.cancelCalls)
	assert.Zero(t, sales.updateStatusCalls, "cancelamento passa pela gravação transacional")
	assert.Zero(t, products.updateStockCalls)
}
