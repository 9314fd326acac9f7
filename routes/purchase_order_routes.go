package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func SetupPurchaseOrderRoutes(app *fiber.App, db *gorm.DB) {
	purchaseOrderController := controllers.NewPurchaseOrderController(db)
	api := app.Group(
		config.MAIN_ROUTES+"/purchase-orders",
		middleware.AuthMiddleware,
	)

	api.Get("/", purchaseOrderController.GetAll)
	api.Post("/:id/receive", purchaseOrderController.Receive)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	api.Post("/", manage, purchaseOrderController.Create)
}
