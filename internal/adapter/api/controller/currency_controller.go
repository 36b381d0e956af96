package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/gestor-vendas/pkg/currency"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/shopspring/decimal"
)

// CurrencyController gerencia as requisições de cotação de moeda
type CurrencyController struct {
	quotes *currency.Client
	logger logger.Logger
}

// NewCurrencyController cria uma nova instância de CurrencyController
func NewCurrencyController(quotes *currency.Client, logger logger.Logger) *CurrencyController {
	return &CurrencyController{
		quotes: quotes,
		logger: logger,
	}
}

// GetQuote retorna a cotação atual do dólar
// @Summary Cotação do dólar
// @Description Retorna a cotação atual do dólar, com fallback para provedor secundário e cache
// @Tags currency
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.QuoteResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /currency/quote [get]
func (c *CurrencyController) GetQuote(ctx *gin.Context) {
	quote, err := c.quotes.GetQuote(ctx)
	if err != nil {
		if errors.Is(err, currency.ErrQuoteUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "cotação indisponível", ""))
			return
		}
		c.logger.Error("erro ao consultar cotação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao consultar cotação", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// Convert converte um valor em dólar para a moeda local pela cotação atual
// @Summary Converter valor em dólar
// @Description Converte um valor em dólar para a moeda local usando a cotação de venda atual
// @Tags currency
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param amount query string true "Valor em dólar"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /currency/convert [get]
func (c *CurrencyController) Convert(ctx *gin.Context) {
	amount, err := decimal.NewFromString(ctx.Query("amount"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "valor inválido", err.Error()))
		return
	}

	quote, err := c.quotes.GetQuote(ctx)
	if err != nil {
		if errors.Is(err, currency.ErrQuoteUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "cotação indisponível", ""))
			return
		}
		c.logger.Error("erro ao consultar cotação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao consultar cotação", err.Error()))
		return
	}

	converted, err := c.quotes.Convert(ctx, amount)
	if err != nil {
		c.logger.Error("erro ao converter valor", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao converter valor", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    amount,
		Converted: converted,
		Rate:      quote.Sell,
	})
}
