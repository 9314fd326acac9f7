package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func SetupInventoryRoutes(app *fiber.App, db *gorm.DB) {
	inventoryController := controllers.NewInventoryController(db)
	api := app.Group(
		config.MAIN_ROUTES+"/inventory",
		middleware.AuthMiddleware,
	)

	api.Get("/", inventoryController.GetAll)
	api.Get("/transactions", inventoryController.GetTransactions)
	api.Get("/export", inventoryController.ExportExcel)
	api.Post("/adjust",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		inventoryController.Adjust)
}
