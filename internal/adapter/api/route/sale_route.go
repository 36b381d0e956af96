package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas do módulo de vendas
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController, paymentController *controller.PaymentController) {
	sales := r.Group("/sales")
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
		sales.PATCH("/:id/status", saleController.UpdateStatus)
		sales.POST("/:id/payments", paymentController.CreateForSale)
		sales.GET("/:id/payments", paymentController.ListBySale)
		sales.POST("/:id/recompute", paymentController.Recompute)
	}
}
