package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	return NewOrderService(db, repositories.NewWorkUnitRepository(db), repositories.NewInventoryRepository(db), notifier)
}

func TestReconcileLine(t *testing.T) {
	cases := []struct {
		name      string
		item      models.OrderItem
		available int
		remaining int
		packable  int
		backOrder int
		shortPick bool
	}{
		{
			name:      "enough stock",
			item:      models.OrderItem{Quantity: 10, ShippedQty: 2, PackedQty: 3},
			available: 10,
			remaining: 5, packable: 5, backOrder: 0, shortPick: false,
		},
		{
			name:      "short stock",
			item:      models.OrderItem{Quantity: 10, ShippedQty: 2, PackedQty: 3},
			available: 4,
			remaining: 5, packable: 4, backOrder: 1, shortPick: true,
		},
		{
			name:      "no stock",
			item:      models.OrderItem{Quantity: 6},
			available: 0,
			remaining: 6, packable: 0, backOrder: 6, shortPick: true,
		},
		{
			name:      "fully shipped",
			item:      models.OrderItem{Quantity: 4, ShippedQty: 4},
			available: 9,
			remaining: 0, packable: 0, backOrder: 0, shortPick: false,
		},
		{
			name:      "over shipped clamps to zero",
			item:      models.OrderItem{Quantity: 4, ShippedQty: 3, PackedQty: 2},
			available: 9,
			remaining: 0, packable: 0, backOrder: 0, shortPick: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := ReconcileLine(tc.item, tc.available)
			assert.Equal(t, tc.remaining, line.Remaining)
			assert.Equal(t, tc.packable, line.PackableNow)
			assert.Equal(t, tc.backOrder, line.BackOrderQty)
			assert.Equal(t, tc.shortPick, line.ShortPick)
		})
	}
}

func TestAllocateSpreadsAcrossLocations(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	product := seedProduct(t, db, "SKU-100")
	locA := seedLocation(t, db, "A-02-01")
	locB := seedLocation(t, db, "A-02-02")
	invA := seedInventory(t, db, product.ID, locA.ID, 6)
	invB := seedInventory(t, db, product.ID, locB.ID, 4)

	order := models.Order{OrderNo: "SO-ALLOC-1", CustomerName: "Acme", Status: models.OrderStatusPending,
		Items: []models.OrderItem{{ProductID: product.ID, Quantity: 8}}}
	require.NoError(t, db.Create(&order).Error)

	notifier := &recorderNotifier{}
	svc := newOrderService(db, notifier)

	unit, err := svc.Allocate(principalOf(manager), order.ID, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, models.WorkUnitKindPickList, unit.Kind)
	assert.Equal(t, alice.ID, unit.AssignedUserID)
	require.Len(t, unit.Items, 2)

	// Largest pocket of free stock drains first.
	assert.Equal(t, locA.ID, unit.Items[0].LocationID)
	assert.Equal(t, 6, unit.Items[0].QuantityRequired)
	assert.Equal(t, locB.ID, unit.Items[1].LocationID)
	assert.Equal(t, 2, unit.Items[1].QuantityRequired)

	// Both pick lines trace back to the order line they allocate.
	assert.Equal(t, order.Items[0].ID, unit.Items[0].OrderItemID)
	assert.Equal(t, order.Items[0].ID, unit.Items[1].OrderItemID)

	var reloadedA, reloadedB models.Inventory
	require.NoError(t, db.First(&reloadedA, invA.ID).Error)
	require.NoError(t, db.First(&reloadedB, invB.ID).Error)
	assert.Equal(t, 6, reloadedA.QuantityReserved)
	assert.Equal(t, 2, reloadedB.QuantityReserved)

	var reloadedOrder models.Order
	require.NoError(t, db.Preload("Items").First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, models.OrderStatusAllocated, reloadedOrder.Status)
	require.NotNil(t, reloadedOrder.AssignedStaffID)
	assert.Equal(t, alice.ID, *reloadedOrder.AssignedStaffID)
	assert.Equal(t, 0, reloadedOrder.Items[0].BackOrdered)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, alice.ID, notifier.sent[0].UserID)
}

func TestAllocateRecordsBackOrder(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	product := seedProduct(t, db, "SKU-101")
	location := seedLocation(t, db, "A-02-03")
	seedInventory(t, db, product.ID, location.ID, 10)

	order := models.Order{OrderNo: "SO-ALLOC-2", CustomerName: "Acme", Status: models.OrderStatusPending,
		Items: []models.OrderItem{{ProductID: product.ID, Quantity: 15}}}
	require.NoError(t, db.Create(&order).Error)

	svc := newOrderService(db, nil)
	unit, err := svc.Allocate(principalOf(manager), order.ID, alice.ID)
	require.NoError(t, err)

	require.Len(t, unit.Items, 1)
	assert.Equal(t, 10, unit.Items[0].QuantityRequired)

	var reloadedOrder models.Order
	require.NoError(t, db.Preload("Items").First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, 5, reloadedOrder.Items[0].BackOrdered)
}

func TestAllocateGuards(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	picker := seedUser(t, db, "picker", models.RolePicker)

	order := models.Order{OrderNo: "SO-ALLOC-3", Status: models.OrderStatusAllocated}
	require.NoError(t, db.Create(&order).Error)

	svc := newOrderService(db, nil)

	_, err := svc.Allocate(principalOf(picker), order.ID, picker.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Allocate(principalOf(manager), 9999, picker.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Allocate(principalOf(manager), order.ID, picker.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGetPackingDetail(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "SKU-102")
	location := seedLocation(t, db, "A-02-04")
	seedInventory(t, db, product.ID, location.ID, 4)

	order := models.Order{OrderNo: "SO-PACK-1", CustomerName: "Acme", Status: models.OrderStatusPicking,
		Items: []models.OrderItem{{ProductID: product.ID, Quantity: 10, ShippedQty: 2, PackedQty: 3}}}
	require.NoError(t, db.Create(&order).Error)

	svc := newOrderService(db, nil)
	detail, err := svc.GetPackingDetail(order.ID)
	require.NoError(t, err)

	require.Len(t, detail.Lines, 1)
	line := detail.Lines[0]
	assert.Equal(t, "SKU-102", line.SKU)
	assert.Equal(t, 5, line.Remaining)
	assert.Equal(t, 4, line.PackableNow)
	assert.Equal(t, 1, line.BackOrderQty)
	assert.True(t, line.ShortPick)
	assert.False(t, detail.FullyPackable)

	_, err = svc.GetPackingDetail(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePackingTask(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	packer := seedUser(t, db, "packer", models.RolePacker)
	product := seedProduct(t, db, "SKU-103")
	location := seedLocation(t, db, "A-02-05")
	seedInventory(t, db, product.ID, location.ID, 5)

	order := models.Order{OrderNo: "SO-PACK-2", CustomerName: "Acme", Status: models.OrderStatusPicking,
		Items: []models.OrderItem{{ProductID: product.ID, Quantity: 5}}}
	require.NoError(t, db.Create(&order).Error)

	notifier := &recorderNotifier{}
	svc := newOrderService(db, notifier)

	unit, err := svc.CreatePackingTask(principalOf(manager), order.ID, packer.ID)
	require.NoError(t, err)

	assert.Equal(t, models.WorkUnitKindPackingTask, unit.Kind)
	assert.Equal(t, packer.ID, unit.AssignedUserID)
	require.Len(t, unit.Items, 1)
	assert.Equal(t, 5, unit.Items[0].QuantityRequired)
	assert.Equal(t, order.Items[0].ID, unit.Items[0].OrderItemID)

	var reloadedOrder models.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, models.OrderStatusPacking, reloadedOrder.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, packer.ID, notifier.sent[0].UserID)
}

func TestCreatePackingTaskNothingPackable(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	packer := seedUser(t, db, "packer", models.RolePacker)
	product := seedProduct(t, db, "SKU-104")

	order := models.Order{OrderNo: "SO-PACK-3", CustomerName: "Acme", Status: models.OrderStatusPicking,
		Items: []models.OrderItem{{ProductID: product.ID, Quantity: 5}}}
	require.NoError(t, db.Create(&order).Error)

	svc := newOrderService(db, nil)
	_, err := svc.CreatePackingTask(principalOf(manager), order.ID, packer.ID)
	assert.ErrorIs(t, err, ErrValidation)

	// Shipped orders cannot grow new packing tasks.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusShipped).Error)
	_, err = svc.CreatePackingTask(principalOf(manager), order.ID, packer.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}
