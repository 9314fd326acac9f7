package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func SetupWorkUnitRoutes(app *fiber.App, db *gorm.DB) {
	workUnitController := controllers.NewWorkUnitController(db)
	api := app.Group(
		config.MAIN_ROUTES+"/work-units",
		middleware.AuthMiddleware,
	)

	api.Get("/", workUnitController.GetAll)
	api.Get("/:id", workUnitController.GetDetail)
	api.Post("/:id/items/:item_id/progress", workUnitController.RecordProgress)
	api.Post("/:id/cancel",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		workUnitController.Cancel)
}
