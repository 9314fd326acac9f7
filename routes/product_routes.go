package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func SetupProductRoutes(app *fiber.App, db *gorm.DB) {
	productController := controllers.NewProductController(db)
	api := app.Group(
		config.MAIN_ROUTES+"/products",
		middleware.AuthMiddleware,
	)

	api.Get("/", productController.GetAll)
	api.Get("/:id", productController.GetByID)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	api.Post("/", manage, productController.Create)
	api.Put("/:id", manage, productController.Update)
	api.Delete("/:id", manage, productController.Delete)
}
