package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/services"
	"gorm.io/gorm"
)

func SetupOrderRoutes(app *fiber.App, db *gorm.DB, orderService *services.OrderService) {
	orderController := controllers.NewOrderController(db, orderService)
	api := app.Group(
		config.MAIN_ROUTES+"/orders",
		middleware.AuthMiddleware,
	)

	api.Post("/", orderController.Create)
	api.Get("/", orderController.GetAll)
	api.Get("/:id", orderController.GetDetail)
	api.Get("/:id/packing-detail", orderController.GetPackingDetail)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	api.Post("/:id/allocate", manage, orderController.Allocate)
	api.Post("/:id/packing-task", manage, orderController.CreatePackingTask)
}
