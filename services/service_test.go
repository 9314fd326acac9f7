package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/idgen"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/database"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	idgenOnce sync.Once
	dbSeq     int64
	batchSeq  int64
)

// setupTestDB opens a fresh in-memory database per test. The shared cache
// keeps every connection in the pool on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	idgenOnce.Do(idgen.Init)

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@wms.local",
		Name:     username,
		Password: "secret",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, sku string) models.Product {
	t.Helper()
	product := models.Product{SKU: sku, Name: "Product " + sku}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedLocation(t *testing.T, db *gorm.DB, code string) models.Location {
	t.Helper()
	location := models.Location{Code: code, Zone: "A"}
	require.NoError(t, db.Create(&location).Error)
	return location
}

func seedInventory(t *testing.T, db *gorm.DB, productID, locationID uint, onHand int) models.Inventory {
	t.Helper()
	inv := models.Inventory{ProductID: productID, LocationID: locationID, QuantityOnHand: onHand}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func seedWorkUnit(t *testing.T, db *gorm.DB, assigneeID uint, kind string, items []models.WorkUnitItem) models.WorkUnit {
	t.Helper()
	unit := models.WorkUnit{
		BatchNumber:    fmt.Sprintf("PL%08d", atomic.AddInt64(&batchSeq, 1)),
		Kind:           kind,
		Status:         models.WorkUnitStatusAssigned,
		AssignedUserID: assigneeID,
		Items:          items,
	}
	require.NoError(t, db.Create(&unit).Error)
	require.NoError(t, db.Preload("Items").First(&unit, unit.ID).Error)
	return unit
}

func principalOf(user models.User) models.Principal {
	return models.Principal{UserID: user.ID, Role: user.Role}
}

// recorderNotifier captures notifications instead of sending mail.
type recorderNotifier struct {
	sent []recordedMail
}

type recordedMail struct {
	UserID  uint
	Subject string
}

func (r *recorderNotifier) Notify(user models.User, subject, body string) error {
	r.sent = append(r.sent, recordedMail{UserID: user.ID, Subject: subject})
	return nil
}

func eventsFor(t *testing.T, db *gorm.DB, workUnitID uint, eventType string) []models.AuditEvent {
	t.Helper()
	var events []models.AuditEvent
	require.NoError(t, db.Where("work_unit_id = ? AND event_type = ?", workUnitID, eventType).Find(&events).Error)
	return events
}
