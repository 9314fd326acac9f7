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

func SetupCycleCountRoutes(app *fiber.App, db *gorm.DB, cycleCountService *services.CycleCountService) {
	cycleCountController := controllers.NewCycleCountController(db, cycleCountService)
	api := app.Group(
		config.MAIN_ROUTES+"/cycle-counts",
		middleware.AuthMiddleware,
	)

	api.Get("/", cycleCountController.GetAll)
	api.Get("/export", cycleCountController.ExportExcel)
	api.Post("/:id/count", cycleCountController.RecordCount)

	manage := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	api.Post("/", manage, cycleCountController.Create)
	api.Post("/:id/approve", manage, cycleCountController.Approve)
}
