package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/controller"
)

// RegisterPaymentRoutes registra as rotas do módulo de pagamentos
func RegisterPaymentRoutes(r *gin.RouterGroup, paymentController *controller.PaymentController) {
	payments := r.Group("/payments")
	{
		payments.POST("/allocate", paymentController.Allocate)
	}
}
