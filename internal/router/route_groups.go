package router

import (
	"github.com/tradewisearg/servitec-web/internal/authz"
	"github.com/tradewisearg/servitec-web/internal/handlers"
	"github.com/tradewisearg/servitec-web/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	productHandler *handlers.ProductHandler,
	movementHandler *handlers.MovementHandler,
	reportHandler *handlers.ReportHandler,
	importHandler *handlers.ImportHandler,
	catalogHandler *handlers.CatalogHandler,
) {
	// Public storefront; no authentication.
	public := r.Group("/api/v1")
	{
		public.GET("/catalog", catalogHandler.GetCatalog)
		public.GET("/catalog/:id", catalogHandler.GetCatalogItem)
		public.POST("/auth/login", authHandler.LoginUser)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		auth := api.Group("/auth")
		{
			auth.GET("/me", authHandler.GetCurrentUser)
			auth.POST("/register",
				middleware.RequirePermission(authz.OpManageAccounts),
				authHandler.RegisterUser)
		}

		products := api.Group("/products")
		{
			products.GET("",
				middleware.RequirePermission(authz.OpViewInventory),
				productHandler.GetProducts)
			products.GET("/:id",
				middleware.RequirePermission(authz.OpViewInventory),
				productHandler.GetProductByID)
			products.POST("",
				middleware.RequirePermission(authz.OpCreateProduct),
				productHandler.CreateProduct)
			products.PUT("/:id",
				middleware.RequirePermission(authz.OpUpdateProduct),
				productHandler.UpdateProduct)
			products.DELETE("/:id",
				middleware.RequirePermission(authz.OpDeleteProduct),
				productHandler.DeleteProduct)
		}

		api.POST("/sales",
			middleware.RequirePermission(authz.OpRecordSale),
			productHandler.RecordSale)

		api.GET("/movements",
			middleware.RequirePermission(authz.OpViewLedger),
			movementHandler.GetMovements)

		reports := api.Group("/reports")
		reports.Use(middleware.RequirePermission(authz.OpViewReports))
		{
			reports.GET("/finance", reportHandler.GetFinanceReport)
			reports.GET("/daily", reportHandler.GetDailySummaries)
			reports.GET("/daily/today", reportHandler.GetTodaySummary)
		}

		imports := api.Group("/import")
		imports.Use(middleware.RequirePermission(authz.OpImportCSV))
		{
			imports.POST("", importHandler.ImportCSV)
			imports.GET("/template", importHandler.GetTemplate)
		}
	}
}
