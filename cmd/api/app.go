package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/controller"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/api/route"
	"github.com/hugohenrick/gestor-vendas/internal/adapter/repository"
	"github.com/hugohenrick/gestor-vendas/internal/infrastructure/database"
	"github.com/hugohenrick/gestor-vendas/pkg/currency"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/hugohenrick/gestor-vendas/pkg/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/gestor-vendas/docs"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	quotes *currency.Client
	logger logger.Logger
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Criar repositórios
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Cliente de cotações com provedor primário e fallback
	quotes := currency.NewClient(
		getEnv("CURRENCY_PRIMARY_URL", "https://economia.awesomeapi.com.br/json/last/USD-BRL"),
		os.Getenv("CURRENCY_FALLBACK_URL"),
		log,
	)

	// Criar controllers
	clientController := controller.NewClientController(clientRepo, log)
	productController := controller.NewProductController(productRepo, log)
	saleController := controller.NewSaleController(saleRepo, clientRepo, productRepo, log)
	paymentController := controller.NewPaymentController(db, saleRepo, paymentRepo, log)
	currencyController := controller.NewCurrencyController(quotes, log)

	// Configurar router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Documentação da API
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas autenticadas
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())

	route.RegisterClientRoutes(api, clientController, saleController)
	route.RegisterProductRoutes(api, productController)
	route.RegisterSaleRoutes(api, saleController, paymentController)
	route.RegisterPaymentRoutes(api, paymentController)
	route.RegisterCurrencyRoutes(api, currencyController)

	return &App{
		router: router,
		db:     db,
		quotes: quotes,
		logger: log,
	}, nil
}

// Run inicia o servidor HTTP
func (a *App) Run() error {
	port := getEnv("SERVER_PORT", "8080")
	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.quotes != nil {
		_ = a.quotes.Close()
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
