package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func SetupTransferRoutes(app *fiber.App, db *gorm.DB) {
	transferController := controllers.NewTransferController(db)
	api := app.Group(
		config.MAIN_ROUTES+"/transfers",
		middleware.AuthMiddleware,
	)

	api.Get("/", transferController.GetAll)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	api.Post("/", manage, transferController.Create)
	api.Post("/:id/execute", manage, transferController.Execute)
}
