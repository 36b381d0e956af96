package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/controller"
)

// RegisterClientRoutes registra as rotas do módulo de clientes
func RegisterClientRoutes(r *gin.RouterGroup, clientController *controller.ClientController, saleController *controller.SaleController) {
	clients := r.Group("/clients")
	{
		clients.POST("", clientController.Create)
		clients.GET("", clientController.List)
		clients.GET("/search", clientController.FindByName)
		clients.GET("/:phone", clientController.Get)
		clients.PUT("/:phone", clientController.Update)
		clients.DELETE("/:phone", clientController.Delete)
		clients.GET("/:phone/sales", saleController.ListByClient)
	}
}
