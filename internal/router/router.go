package router

import (
	"database/sql"

	"github.com/tradewisearg/servitec-web/internal/handlers"
	"github.com/tradewisearg/servitec-web/internal/repositories"
	"github.com/tradewisearg/servitec-web/internal/services"
	"github.com/tradewisearg/servitec-web/internal/storage"
	"github.com/tradewisearg/servitec-web/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers, and registers every
// route on the engine.
func Setup(r *gin.Engine, db *sql.DB) {
	productRepo := repositories.NewProductRepository(db)
	movementRepo := repositories.NewMovementRepository(db)
	summaryRepo := repositories.NewSummaryRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Object storage is optional; without it the API runs with image
	// uploads disabled.
	uploader, err := storage.NewGCSUploader()
	if err != nil {
		utils.LogWarn("Object storage not configured, image uploads disabled", map[string]interface{}{
			"reason": err.Error(),
		})
		uploader = nil
	}

	inventoryService := services.NewInventoryService(productRepo, movementRepo, summaryRepo, uploader, db)
	importService := services.NewImportService(productRepo, movementRepo, db)
	reportService := services.NewReportService(productRepo, movementRepo, summaryRepo)
	authService := services.NewAuthService(userRepo, db)

	registerRoutes(r,
		handlers.NewAuthHandler(authService),
		handlers.NewProductHandler(inventoryService),
		handlers.NewMovementHandler(inventoryService),
		handlers.NewReportHandler(reportService),
		handlers.NewImportHandler(importService),
		handlers.NewCatalogHandler(inventoryService),
	)
}
