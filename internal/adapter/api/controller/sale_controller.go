package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/repository"
	clientdomain "github.com/hugohenrick/gestor-vendas/internal/domain/client"
	productdomain "github.com/hugohenrick/gestor-vendas/internal/domain/product"
	saledomain "github.com/hugohenrick/gestor-vendas/internal/domain/sale"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	saleRepo    saledomain.Repository
	clientRepo  clientdomain.Repository
	productRepo productdomain.Repository
	logger      logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(
	saleRepo saledomain.Repository,
	clientRepo clientdomain.Repository,
	productRepo productdomain.Repository,
	logger logger.Logger,
) *SaleController {
	return &SaleController{
		saleRepo:    saleRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create cria uma nova venda
// @Summary Criar venda
// @Description Cria uma nova venda para um cliente, baixando o estoque dos produtos
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	exists, err := c.clientRepo.Exists(ctx, req.ClientPhone)
	if err != nil {
		c.logger.Error("erro ao verificar cliente", "phone", req.ClientPhone, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao verificar cliente", err.Error()))
		return
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
		return
	}

	// Montar os itens a partir do catálogo, congelando nome e preço no
	// momento da venda
	items := make([]saledomain.Item, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := c.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", item.ProductID))
				return
			}
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
			return
		}

		if !product.IsActive() {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "produto inativo", product.Name))
			return
		}

		if product.Stock < item.Quantity {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "estoque insuficiente",
				fmt.Sprintf("produto %s possui %d unidades", product.Name, product.Stock)))
			return
		}

		items = append(items, saledomain.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.SalePrice,
		})
	}

	sale, err := saledomain.NewSale(req.ClientPhone, items)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar venda", err.Error()))
		return
	}

	// O repositório grava a venda e baixa o estoque na mesma transação;
	// o estoque pode ter mudado entre a verificação acima e a gravação
	if err := c.saleRepo.Create(ctx, sale); err != nil {
		if errors.Is(err, productdomain.ErrInsufficientStock) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "estoque insuficiente", err.Error()))
			return
		}
		c.logger.Error("erro ao criar venda no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Description Retorna os dados de uma venda pelo ID
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	sale, err := c.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		c.logger.Error("erro ao buscar venda", "id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// List lista as vendas com paginação
// @Summary Listar vendas
// @Description Lista as vendas com paginação, da mais recente para a mais antiga
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param size query int false "Itens por página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	offset := (pagination.Page - 1) * pagination.PageSize

	sales, err := c.saleRepo.List(ctx, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	total, err := c.saleRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar vendas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, total, pagination.Page, pagination.PageSize))
}

// ListByClient lista as vendas de um cliente
// @Summary Listar vendas do cliente
// @Description Lista as vendas de um cliente, da mais antiga para a mais recente
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param phone path string true "Telefone do cliente"
// @Param page query int false "Página"
// @Param size query int false "Itens por página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{phone}/sales [get]
func (c *SaleController) ListByClient(ctx *gin.Context) {
	phone := ctx.Param("phone")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	offset := (pagination.Page - 1) * pagination.PageSize

	sales, err := c.saleRepo.FindByClient(ctx, phone, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao listar vendas do cliente", "phone", phone, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	total, err := c.saleRepo.CountByClient(ctx, phone)
	if err != nil {
		c.logger.Error("erro ao contar vendas do cliente", "phone", phone, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar vendas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, total, pagination.Page, pagination.PageSize))
}

// UpdateStatus atualiza o status de uma venda
// @Summary Atualizar status da venda
// @Description Avança o status da venda (pending -> dispatched -> delivered) ou cancela uma venda pendente, devolvendo o estoque
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param status body dto.SaleStatusRequest true "Novo status"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/status [patch]
func (c *SaleController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.SaleStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	status, ok := saledomain.ParseStatus(req.Status)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", req.Status))
		return
	}

	sale, err := c.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	if status == saledomain.StatusCancelled {
		err = sale.Cancel()
	} else {
		err = sale.ChangeStatus(status)
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "transição de status inválida", err.Error()))
		return
	}

	// Cancelamento devolve o estoque dos itens na mesma transação que
	// grava o novo status
	if sale.Status == saledomain.StatusCancelled {
		err = c.saleRepo.CancelRestoringStock(ctx, sale)
	} else {
		err = c.saleRepo.UpdateStatus(ctx, id, sale.Status)
	}
	if err != nil {
		c.logger.Error("erro ao atualizar status da venda", "id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}
