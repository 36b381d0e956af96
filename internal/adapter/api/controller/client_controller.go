package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/repository"
	clientdomain "github.com/hugohenrick/gestor-vendas/internal/domain/client"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
)

// ClientController gerencia as requisições relacionadas a clientes
type ClientController struct {
	clientRepo clientdomain.Repository
	logger     logger.Logger
}

// NewClientController cria uma nova instância de ClientController
func NewClientController(clientRepo clientdomain.Repository, logger logger.Logger) *ClientController {
	return &ClientController{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente no sistema
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	client, err := clientdomain.NewClient(req.Phone, req.Name)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}

	if err := client.Update(req.Name, req.Address, req.Observations); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrClientDuplicateKey) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "cliente já cadastrado", err.Error()))
			return
		}
		c.logger.Error("erro ao criar cliente no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// Get retorna um cliente pelo telefone
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo telefone
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param phone path string true "Telefone do cliente"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{phone} [get]
func (c *ClientController) Get(ctx *gin.Context) {
	phone := ctx.Param("phone")

	client, err := c.clientRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar cliente", "phone", phone, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// List lista os clientes com paginação
// @Summary Listar clientes
// @Description Lista os clientes com paginação
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param size query int false "Itens por página"
// @Success 200 {object} dto.ClientListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	offset := (pagination.Page - 1) * pagination.PageSize

	clients, err := c.clientRepo.List(ctx, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao listar clientes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", err.Error()))
		return
	}

	total, err := c.clientRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar clientes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientListResponse(clients, total, pagination.Page, pagination.PageSize))
}

// Update atualiza os dados de um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados de um cliente existente
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param phone path string true "Telefone do cliente"
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{phone} [put]
func (c *ClientController) Update(ctx *gin.Context) {
	phone := ctx.Param("phone")

	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	client, err := c.clientRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	if err := client.Update(req.Name, req.Address, req.Observations); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar cliente", err.Error()))
		return
	}

	if err := c.clientRepo.Update(ctx, client); err != nil {
		c.logger.Error("erro ao atualizar cliente", "phone", phone, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// Delete remove um cliente
// @Summary Remover cliente
// @Description Remove um cliente do sistema
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param phone path string true "Telefone do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{phone} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	phone := ctx.Param("phone")

	if err := c.clientRepo.Delete(ctx, phone); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
			return
		}
		c.logger.Error("erro ao remover cliente", "phone", phone, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("cliente removido com sucesso", nil))
}

// FindByName busca clientes pelo nome
// @Summary Buscar clientes por nome
// @Description Busca clientes cujo nome contenha o termo informado
// @Tags clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param name query string true "Termo de busca"
// @Param page query int false "Página"
// @Param size query int false "Itens por página"
// @Success 200 {object} dto.ClientListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/search [get]
func (c *ClientController) FindByName(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "termo de busca não informado", ""))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	offset := (pagination.Page - 1) * pagination.PageSize

	clients, err := c.clientRepo.FindByName(ctx, name, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao buscar clientes por nome", "name", name, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientListResponse(clients, len(clients), pagination.Page, pagination.PageSize))
}
