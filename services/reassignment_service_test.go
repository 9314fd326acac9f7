package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

func TestParseStrategy(t *testing.T) {
	strategy, err := ParseStrategy("simple")
	require.NoError(t, err)
	assert.Equal(t, StrategySimple, strategy)

	strategy, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyAuto, strategy)

	_, err = ParseStrategy("partial")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPartitionItems(t *testing.T) {
	items := []models.WorkUnitItem{
		{QuantityRequired: 5, QuantityCompleted: 5},
		{QuantityRequired: 5, QuantityCompleted: 2},
		{QuantityRequired: 3, QuantityCompleted: 0},
	}

	p := PartitionItems(items)

	assert.Len(t, p.Complete, 1)
	assert.Len(t, p.Partial, 1)
	assert.Len(t, p.Untouched, 1)
	assert.True(t, p.HasProgress())

	p = PartitionItems([]models.WorkUnitItem{{QuantityRequired: 4}})
	assert.False(t, p.HasProgress())
	assert.Len(t, p.Untouched, 1)
}

func TestReassignSimple(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5, Status: models.WorkUnitItemStatusPending},
		{ProductID: 2, Sequence: 2, QuantityRequired: 3, Status: models.WorkUnitItemStatusPending},
	})

	notifier := &recorderNotifier{}
	svc := NewReassignmentService(db, notifier)

	res, err := svc.Reassign(principalOf(manager), unit.ID, ReassignRequest{
		TargetUserID: bob.ID,
		Strategy:     StrategySimple,
		Reason:       "shift change",
	})
	require.NoError(t, err)

	assert.Nil(t, res.Continuation)
	assert.Equal(t, bob.ID, res.Original.AssignedUserID)
	assert.Equal(t, models.WorkUnitStatusAssigned, res.Original.Status)
	assert.Equal(t, unit.Version+1, res.Original.Version)
	assert.Equal(t, StrategySimple, res.Summary.Strategy)
	assert.Equal(t, 2, res.Summary.UntouchedItems)

	events := eventsFor(t, db, unit.ID, models.EventReassigned)
	require.Len(t, events, 1)

	var meta models.ReassignedMetadata
	require.NoError(t, json.Unmarshal([]byte(events[0].Metadata), &meta))
	assert.Equal(t, alice.ID, meta.FromUserID)
	assert.Equal(t, bob.ID, meta.ToUserID)
	assert.Equal(t, "shift change", meta.Reason)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, bob.ID, notifier.sent[0].UserID)
}

func TestReassignSimpleKeepsProgressInFlight(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5, QuantityCompleted: 2, Status: models.WorkUnitItemStatusInProgress},
	})

	svc := NewReassignmentService(db, nil)
	res, err := svc.Reassign(principalOf(manager), unit.ID, ReassignRequest{
		TargetUserID: bob.ID,
		Strategy:     StrategySimple,
		Reason:       "sick leave",
	})
	require.NoError(t, err)

	assert.Equal(t, models.WorkUnitStatusInProgress, res.Original.Status)
	require.Len(t, res.Original.Items, 1)
	assert.Equal(t, 2, res.Original.Items[0].QuantityCompleted)
}

func TestReassignGuards(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	picker := seedUser(t, db, "picker", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, picker.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})

	svc := NewReassignmentService(db, nil)
	req := ReassignRequest{TargetUserID: bob.ID, Strategy: StrategySimple, Reason: "test"}

	_, err := svc.Reassign(principalOf(picker), unit.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Reassign(principalOf(manager), 9999, req)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Reassign(principalOf(manager), unit.ID, ReassignRequest{TargetUserID: 9999, Strategy: StrategySimple})
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).Update("is_active", false).Error)
	_, err = svc.Reassign(principalOf(manager), unit.ID, req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReassignTerminalUnit(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})
	require.NoError(t, db.Model(&models.WorkUnit{}).Where("id = ?", unit.ID).
		Update("status", models.WorkUnitStatusCancelled).Error)

	svc := NewReassignmentService(db, nil)
	_, err := svc.Reassign(principalOf(manager), unit.ID, ReassignRequest{
		TargetUserID: bob.ID, Strategy: StrategySimple, Reason: "test",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestReassignNothingToReassign(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5, QuantityCompleted: 5, Status: models.WorkUnitItemStatusCompleted},
		{ProductID: 2, Sequence: 2, QuantityRequired: 3, QuantityCompleted: 3, Status: models.WorkUnitItemStatusCompleted},
	})

	svc := NewReassignmentService(db, nil)
	_, err := svc.Reassign(principalOf(manager), unit.ID, ReassignRequest{
		TargetUserID: bob.ID, Strategy: StrategySimple, Reason: "test",
	})
	assert.ErrorIs(t, err, ErrNothingToReassign)

	empty := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, nil)
	_, err = svc.Reassign(principalOf(manager), empty.ID, ReassignRequest{
		TargetUserID: bob.ID, Strategy: StrategySimple, Reason: "test",
	})
	assert.ErrorIs(t, err, ErrNothingToReassign)
}

func TestReassignSplit(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	order := models.Order{OrderNo: "SO-TEST-1", CustomerName: "Acme", Status: models.OrderStatusPicking, AssignedStaffID: &alice.ID}
	require.NoError(t, db.Create(&order).Error)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{OrderID: order.ID, ProductID: 1, Sequence: 1, QuantityRequired: 5, QuantityCompleted: 5, Status: models.WorkUnitItemStatusCompleted},
		{OrderID: order.ID, ProductID: 2, Sequence: 2, QuantityRequired: 5, QuantityCompleted: 2, Status: models.WorkUnitItemStatusInProgress},
		{OrderID: order.ID, ProductID: 3, Sequence: 3, QuantityRequired: 3, Status: models.WorkUnitItemStatusPending},
	})

	notifier := &recorderNotifier{}
	svc := NewReassignmentService(db, notifier)

	res, err := svc.Reassign(principalOf(manager), unit.ID, ReassignRequest{
		TargetUserID: bob.ID,
		Strategy:     StrategySplit,
		Reason:       "end of shift",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Continuation)

	original := res.Original
	assert.Equal(t, models.WorkUnitStatusPartiallyCompleted, original.Status)
	assert.NotNil(t, original.CompletedAt)
	assert.Equal(t, alice.ID, original.AssignedUserID)
	assert.Contains(t, original.Notes, res.Continuation.BatchNumber)

	// Completed work stays frozen on the original: the full item intact,
	// the partial clamped down to what was actually done.
	require.Len(t, original.Items, 2)
	totalRequired := 0
	for _, item := range original.Items {
		totalRequired += item.QuantityRequired
		assert.Equal(t, models.WorkUnitItemStatusCompleted, item.Status)
		assert.Equal(t, item.QuantityRequired, item.QuantityCompleted)
	}
	assert.Equal(t, 7, totalRequired)

	continuation := res.Continuation
	assert.Equal(t, unit.BatchNumber+"-CONT", continuation.BatchNumber)
	assert.Equal(t, bob.ID, continuation.AssignedUserID)
	assert.Equal(t, unit.Priority+1, continuation.Priority)
	require.NotNil(t, continuation.ParentWorkUnitID)
	assert.Equal(t, unit.ID, *continuation.ParentWorkUnitID)
	assert.Equal(t, models.WorkUnitStatusAssigned, continuation.Status)

	// Remainder of the partial plus the untouched item.
	require.Len(t, continuation.Items, 2)
	for _, item := range continuation.Items {
		totalRequired += item.QuantityRequired
		assert.Equal(t, models.WorkUnitItemStatusPending, item.Status)
		assert.Equal(t, 0, item.QuantityCompleted)
	}

	// No quantity is lost or duplicated across the split.
	assert.Equal(t, 13, totalRequired)

	splitEvents := eventsFor(t, db, unit.ID, models.EventSplit)
	require.Len(t, splitEvents, 1)
	var splitMeta models.SplitMetadata
	require.NoError(t, json.Unmarshal([]byte(splitEvents[0].Metadata), &splitMeta))
	assert.Equal(t, continuation.BatchNumber, splitMeta.ContinuationBatch)
	assert.Equal(t, 1, splitMeta.PartialItems)
	assert.Equal(t, 1, splitMeta.UntouchedItems)

	assignedEvents := eventsFor(t, db, continuation.ID, models.EventAssigned)
	require.Len(t, assignedEvents, 1)

	var reloadedOrder models.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	require.NotNil(t, reloadedOrder.AssignedStaffID)
	assert.Equal(t, bob.ID, *reloadedOrder.AssignedStaffID)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, bob.ID, notifier.sent[0].UserID)
	assert.Contains(t, notifier.sent[0].Subject, continuation.BatchNumber)
}

func TestReassignSplitRequiresProgress(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})

	svc := NewReassignmentService(db, nil)
	_, err := svc.Reassign(principalOf(manager), unit.ID, ReassignRequest{
		TargetUserID: bob.ID, Strategy: StrategySplit, Reason: "test",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReassignAutoStrategy(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	untouched := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})
	inFlight := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5, QuantityCompleted: 2, Status: models.WorkUnitItemStatusInProgress},
		{ProductID: 2, Sequence: 2, QuantityRequired: 3},
	})

	svc := NewReassignmentService(db, nil)

	res, err := svc.Reassign(principalOf(manager), untouched.ID, ReassignRequest{
		TargetUserID: bob.ID, Strategy: StrategyAuto, Reason: "test",
	})
	require.NoError(t, err)
	assert.Equal(t, StrategySimple, res.Summary.Strategy)
	assert.Nil(t, res.Continuation)

	res, err = svc.Reassign(principalOf(manager), inFlight.ID, ReassignRequest{
		TargetUserID: bob.ID, Strategy: StrategyAuto, Reason: "test",
	})
	require.NoError(t, err)
	assert.Equal(t, StrategySplit, res.Summary.Strategy)
	require.NotNil(t, res.Continuation)
}

func TestReassignVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})

	// Another writer bumps the version after our copy of the unit was read.
	require.NoError(t, db.Model(&models.WorkUnit{}).Where("id = ?", unit.ID).
		Update("version", gorm.Expr("version + ?", 1)).Error)

	svc := NewReassignmentService(db, nil)
	req := ReassignRequest{TargetUserID: bob.ID, Strategy: StrategySimple, Reason: "handover"}

	err := db.Transaction(func(tx *gorm.DB) error {
		var result ReassignResult
		return svc.reassignSimple(tx, principalOf(manager), &unit, PartitionItems(unit.Items), bob, req, &result)
	})
	assert.ErrorIs(t, err, ErrConflict)

	// The losing writer left no trace.
	var reloaded models.WorkUnit
	require.NoError(t, db.First(&reloaded, unit.ID).Error)
	assert.Equal(t, alice.ID, reloaded.AssignedUserID)
	assert.Equal(t, unit.Version+1, reloaded.Version)
	assert.Empty(t, eventsFor(t, db, unit.ID, models.EventReassigned))
}

func TestReassignSplitVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	unit := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5, QuantityCompleted: 2, Status: models.WorkUnitItemStatusInProgress},
		{ProductID: 2, Sequence: 2, QuantityRequired: 3},
	})

	require.NoError(t, db.Model(&models.WorkUnit{}).Where("id = ?", unit.ID).
		Update("version", gorm.Expr("version + ?", 1)).Error)

	svc := NewReassignmentService(db, nil)
	req := ReassignRequest{TargetUserID: bob.ID, Strategy: StrategySplit, Reason: "handover"}

	err := db.Transaction(func(tx *gorm.DB) error {
		var result ReassignResult
		return svc.reassignSplit(tx, principalOf(manager), &unit, PartitionItems(unit.Items), bob, req, &result)
	})
	assert.ErrorIs(t, err, ErrConflict)

	// The conflict rolled the whole split back: no continuation unit and
	// the items still at their pre-split quantities.
	var continuations int64
	require.NoError(t, db.Model(&models.WorkUnit{}).Where("parent_work_unit_id = ?", unit.ID).Count(&continuations).Error)
	assert.Equal(t, int64(0), continuations)

	var items []models.WorkUnitItem
	require.NoError(t, db.Where("work_unit_id = ?", unit.ID).Order("sequence").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].QuantityRequired)
	assert.Equal(t, 2, items[0].QuantityCompleted)
	assert.Empty(t, eventsFor(t, db, unit.ID, models.EventSplit))
}

func TestReassignBulkIsolatesFailures(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	alice := seedUser(t, db, "alice", models.RolePicker)
	bob := seedUser(t, db, "bob", models.RolePicker)

	good1 := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})
	terminal := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})
	require.NoError(t, db.Model(&models.WorkUnit{}).Where("id = ?", terminal.ID).
		Update("status", models.WorkUnitStatusCompleted).Error)
	good2 := seedWorkUnit(t, db, alice.ID, models.WorkUnitKindPickList, []models.WorkUnitItem{
		{ProductID: 1, Sequence: 1, QuantityRequired: 5},
	})

	svc := NewReassignmentService(db, nil)
	bulk, err := svc.ReassignBulk(principalOf(manager), []uint{good1.ID, terminal.ID, good2.ID}, ReassignRequest{
		TargetUserID: bob.ID, Strategy: StrategySimple, Reason: "rebalance",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, bulk.Summary.Total)
	assert.Equal(t, 2, bulk.Summary.Succeeded)
	assert.Equal(t, 1, bulk.Summary.Failed)
	require.Len(t, bulk.Errors, 1)
	assert.Equal(t, terminal.ID, bulk.Errors[0].WorkUnitID)
	require.Len(t, bulk.Results, 2)

	// The failure did not roll back the successes.
	var reloaded models.WorkUnit
	require.NoError(t, db.First(&reloaded, good2.ID).Error)
	assert.Equal(t, bob.ID, reloaded.AssignedUserID)
}

func TestReassignBulkValidation(t *testing.T) {
	db := setupTestDB(t)
	manager := seedUser(t, db, "manager", models.RoleManager)
	picker := seedUser(t, db, "picker", models.RolePicker)

	svc := NewReassignmentService(db, nil)

	_, err := svc.ReassignBulk(principalOf(picker), []uint{1}, ReassignRequest{TargetUserID: 1, Strategy: StrategySimple})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ReassignBulk(principalOf(manager), nil, ReassignRequest{TargetUserID: 1, Strategy: StrategySimple})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ReassignBulk(principalOf(manager), []uint{1}, ReassignRequest{Strategy: StrategySimple})
	assert.ErrorIs(t, err, ErrValidation)
}
