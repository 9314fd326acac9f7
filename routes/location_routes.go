package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func SetupLocationRoutes(app *fiber.App, db *gorm.DB) {
	locationController := controllers.NewLocationController(db)
	api := app.Group(
		config.MAIN_ROUTES+"/locations",
		middleware.AuthMiddleware,
	)

	api.Get("/", locationController.GetAll)
	api.Get("/:id", locationController.GetByID)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	api.Post("/", manage, locationController.Create)
}
