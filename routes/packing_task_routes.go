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

func SetupPackingTaskRoutes(app *fiber.App, db *gorm.DB, reassignment *services.ReassignmentService) {
	packingTaskController := controllers.NewPackingTaskController(db, reassignment)
	api := app.Group(
		config.MAIN_ROUTES+"/packing-tasks",
		middleware.AuthMiddleware,
	)

	api.Get("/", packingTaskController.GetAll)
	api.Post("/reassign",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		packingTaskController.ReassignBulk)
}
