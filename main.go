package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/idgen"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/database"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/routes"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/services"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Connect to database
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Setup CORS middleware
	config.SetupCORS(app)

	notifier := services.NewMailNotifier()
	workUnitRepo := repositories.NewWorkUnitRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)

	reassignmentService := services.NewReassignmentService(db, notifier)
	orderService := services.NewOrderService(db, workUnitRepo, inventoryRepo, notifier)
	cycleCountService := services.NewCycleCountService(db, inventoryRepo, config.VarianceTolerance)

	// Setup routes
	routes.SetupAuthRoutes(app, db)
	routes.SetupUserRoutes(app, db)
	routes.SetupProductRoutes(app, db)
	routes.SetupLocationRoutes(app, db)
	routes.SetupInventoryRoutes(app, db)
	routes.SetupOrderRoutes(app, db, orderService)
	routes.SetupPickListRoutes(app, db, reassignmentService)
	routes.SetupPackingTaskRoutes(app, db, reassignmentService)
	routes.SetupWorkUnitRoutes(app, db)
	routes.SetupCycleCountRoutes(app, db, cycleCountService)
	routes.SetupPurchaseOrderRoutes(app, db)
	routes.SetupReturnRoutes(app, db)
	routes.SetupTransferRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}

}
