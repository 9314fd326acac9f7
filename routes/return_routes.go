package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"gorm.io/gorm"
)

func SetupReturnRoutes(app *fiber.App, db *gorm.DB) {
	returnController := controllers.NewReturnController(db)
	api := app.Group(
		config.MAIN_ROUTES+"/returns",
		middleware.AuthMiddleware,
	)

	api.Post("/", returnController.Create)
	api.Get("/", returnController.GetAll)
	api.Post("/:id/process", returnController.Process)
}
