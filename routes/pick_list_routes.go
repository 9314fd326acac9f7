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

func SetupPickListRoutes(app *fiber.App, db *gorm.DB, reassignment *services.ReassignmentService) {
	pickListController := controllers.NewPickListController(db, reassignment)
	api := app.Group(
		config.MAIN_ROUTES+"/pick-lists",
		middleware.AuthMiddleware,
	)

	api.Get("/", pickListController.GetAll)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	api.Post("/reassign", manage, pickListController.ReassignBulk)
	api.Post("/:id/reassign", manage, pickListController.Reassign)
}
