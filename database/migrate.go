package database

import (
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.Product{},
		&models.Location{},
		&models.Inventory{},
		&models.InventoryTransaction{},
		&models.Order{},
		&models.OrderItem{},
		&models.WorkUnit{},
		&models.WorkUnitItem{},
		&models.AuditEvent{},
		&models.CycleCountTask{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.ReturnOrder{},
		&models.ReturnOrderItem{},
		&models.StockTransfer{},
	)
}
