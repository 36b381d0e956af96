package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/controller"
)

// RegisterCurrencyRoutes registra as rotas de cotação de moeda
func RegisterCurrencyRoutes(r *gin.RouterGroup, currencyController *controller.CurrencyController) {
	currency := r.Group("/currency")
	{
		currency.GET("/quote", currencyController.GetQuote)
		currency.GET("/convert", currencyController.Convert)
	}
}
