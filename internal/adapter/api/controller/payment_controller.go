package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/repository"
	paymentdomain "github.com/hugohenrick/gestor-vendas/internal/domain/payment"
	saledomain "github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PaymentController gerencia as requisições relacionadas a pagamentos
type PaymentController struct {
	db          *pgxpool.Pool
	saleRepo    saledomain.Repository
	paymentRepo paymentdomain.Repository
	logger      logger.Logger
}

// NewPaymentController cria uma nova instância de PaymentController
func NewPaymentController(
	db *pgxpool.Pool,
	saleRepo saledomain.Repository,
	paymentRepo paymentdomain.Repository,
	logger logger.Logger,
) *PaymentController {
	return &PaymentController{
		db:          db,
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Allocate distribui um pagamento entre as vendas em aberto de um cliente
// @Summary Distribuir pagamento
// @Description Distribui um pagamento entre as vendas em aberto do cliente, da mais antiga para a mais recente. O valor excedente é devolvido em remainder.
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param allocation body dto.AllocationRequest true "Dados do pagamento"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments/allocate [post]
func (c *PaymentController) Allocate(ctx *gin.Context) {
	var req dto.AllocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "valor inválido", err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "data inválida", err.Error()))
		return
	}

	allocation := paymentdomain.AllocationRequest{
		ClientPhone: req.ClientPhone,
		Amount:      amount,
		Method:      paymentdomain.Method(req.Method),
		Date:        date,
		Note:        req.Note,
	}

	// Validar antes de abrir transação: requisição inválida não chega a
	// tocar o armazenamento
	if err := allocation.Validate(); err != nil {
		c.respondAllocationError(ctx, err)
		return
	}

	var result *paymentdomain.AllocationResult
	err = repository.WithClientLock(ctx, c.db, req.ClientPhone, func(stores *repository.AllocationStores) error {
		allocator := paymentdomain.NewAllocator(stores, stores, c.logger)
		var allocErr error
		result, allocErr = allocator.Allocate(ctx, allocation)
		return allocErr
	})
	if err != nil {
		c.respondAllocationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAllocationResponse(result))
}

// CreateForSale registra um pagamento avulso para uma venda específica
// @Summary Registrar pagamento em venda
// @Description Registra um pagamento para uma venda específica e recalcula o valor pago a partir de todos os pagamentos
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param payment body dto.PaymentRequest true "Dados do pagamento"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/payments [post]
func (c *PaymentController) CreateForSale(ctx *gin.Context) {
	saleID := ctx.Param("id")

	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "valor inválido", err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "data inválida", err.Error()))
		return
	}

	sale, err := c.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	if sale.IsCancelled() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "venda cancelada não recebe pagamentos", ""))
		return
	}

	p, err := paymentdomain.NewPayment(saleID, amount, paymentdomain.Method(req.Method), date, req.Note)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar pagamento", err.Error()))
		return
	}

	// Gravação e recálculo passam pelo mesmo lock por cliente usado na
	// alocação, para não competir com uma distribuição em andamento
	err = repository.WithClientLock(ctx, c.db, sale.ClientPhone, func(stores *repository.AllocationStores) error {
		if err := stores.Insert(ctx, p); err != nil {
			return err
		}
		allocator := paymentdomain.NewAllocator(stores, stores, c.logger)
		_, err := allocator.RecomputePaid(ctx, saleID)
		return err
	})
	if err != nil {
		c.logger.Error("erro ao registrar pagamento", "sale_id", saleID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar pagamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(p))
}

// ListBySale lista os pagamentos de uma venda
// @Summary Listar pagamentos da venda
// @Description Lista os pagamentos registrados para uma venda
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/payments [get]
func (c *PaymentController) ListBySale(ctx *gin.Context) {
	saleID := ctx.Param("id")

	if _, err := c.saleRepo.FindByID(ctx, saleID); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	payments, err := c.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		c.logger.Error("erro ao listar pagamentos", "sale_id", saleID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pagamentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(payments))
}

// Recompute recalcula o valor pago de uma venda a partir dos pagamentos
// @Summary Recalcular valor pago
// @Description Recalcula o valor pago de uma venda somando todos os seus pagamentos. Operação idempotente, usada para reconciliação.
// @Tags payments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.RecomputeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/recompute [post]
func (c *PaymentController) Recompute(ctx *gin.Context) {
	saleID := ctx.Param("id")

	sale, err := c.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	var paid decimal.Decimal
	err = repository.WithClientLock(ctx, c.db, sale.ClientPhone, func(stores *repository.AllocationStores) error {
		allocator := paymentdomain.NewAllocator(stores, stores, c.logger)
		var recErr error
		paid, recErr = allocator.RecomputePaid(ctx, saleID)
		return recErr
	})
	if err != nil {
		c.logger.Error("erro ao recalcular valor pago", "sale_id", saleID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao recalcular valor pago", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.RecomputeResponse{SaleID: saleID, Paid: paid})
}

func (c *PaymentController) respondAllocationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, paymentdomain.ErrEmptyClient),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidMethod):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "requisição inválida", err.Error()))
	case errors.Is(err, paymentdomain.ErrUnknownClient):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não possui vendas", err.Error()))
	case errors.Is(err, paymentdomain.ErrNothingPending):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "cliente não possui vendas em aberto", err.Error()))
	default:
		// A alocação roda em uma única transação: qualquer erro de
		// armazenamento desfaz os pagamentos gravados nela, então o
		// indicador de gravação parcial do alocador não se aplica aqui
		var storageErr *paymentdomain.StorageError
		if errors.As(err, &storageErr) {
			c.logger.Error("erro de armazenamento ao distribuir pagamento", "op", storageErr.Op, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError,
				"erro ao distribuir pagamento, nenhum pagamento foi gravado", err.Error()))
			return
		}
		c.logger.Error("erro ao distribuir pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao distribuir pagamento", err.Error()))
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", s)
}
