package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

// WorkUnitService performs the pick/pack progress mutations on a unit's
// items and drives the unit status from them.
type WorkUnitService struct {
	db *gorm.DB
}

func NewWorkUnitService(db *gorm.DB) *WorkUnitService {
	return &WorkUnitService{db: db}
}

// RecordItemProgress books completed quantity against one item. Completing
// the last outstanding item completes the whole unit.
func (s *WorkUnitService) RecordItemProgress(principal models.Principal, workUnitID, itemID uint, qty int) (*models.WorkUnit, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	var updated models.WorkUnit

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.WorkUnit
		if err := tx.Preload("Items").First(&unit, workUnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if unit.IsTerminal() {
			return ErrInvalidState
		}

		var item models.WorkUnitItem
		if err := tx.Where("id = ? AND work_unit_id = ?", itemID, workUnitID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if qty > item.Outstanding() {
			return fmt.Errorf("%w: quantity %d exceeds outstanding %d", ErrValidation, qty, item.Outstanding())
		}

		newCompleted := item.QuantityCompleted + qty
		itemStatus := models.WorkUnitItemStatusInProgress
		if newCompleted == item.QuantityRequired {
			itemStatus = models.WorkUnitItemStatusCompleted
		}

		if err := tx.Model(&models.WorkUnitItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"quantity_completed": newCompleted,
				"status":             itemStatus,
			}).Error; err != nil {
			return err
		}

		// Progress flows back to the originating order line so per-order
		// views stay accurate. Keyed on the line itself, not the product,
		// since an order may carry the same product on several lines.
		if item.OrderItemID != 0 {
			column := "picked_qty"
			if unit.Kind == models.WorkUnitKindPackingTask {
				column = "packed_qty"
			}
			if err := tx.Model(&models.OrderItem{}).
				Where("id = ?", item.OrderItemID).
				Update(column, gorm.Expr(column+" + ?", qty)).Error; err != nil {
				return err
			}
		}

		allDone := true
		for _, it := range unit.Items {
			completed := it.QuantityCompleted
			if it.ID == item.ID {
				completed = newCompleted
			}
			if completed < it.QuantityRequired {
				allDone = false
				break
			}
		}

		unitUpdates := map[string]interface{}{
			"status":     models.WorkUnitStatusInProgress,
			"version":    gorm.Expr("version + ?", 1),
			"updated_by": int(principal.UserID),
		}
		if allDone {
			unitUpdates["status"] = models.WorkUnitStatusCompleted
			unitUpdates["completed_at"] = time.Now()
		}
		if err := tx.Model(&models.WorkUnit{}).Where("id = ?", unit.ID).Updates(unitUpdates).Error; err != nil {
			return err
		}

		if allDone {
			event, err := models.NewWorkUnitEvent(unit.ID, models.EventCompleted, principal.UserID, models.CompletedMetadata{
				TotalItems: len(unit.Items),
			})
			if err != nil {
				return err
			}
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Items").First(&updated, unit.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel puts a unit into its terminal CANCELLED state.
func (s *WorkUnitService) Cancel(principal models.Principal, workUnitID uint, reason string) (*models.WorkUnit, error) {
	if !principal.CanManageWork() {
		return nil, ErrForbidden
	}

	var updated models.WorkUnit

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.WorkUnit
		if err := tx.First(&unit, workUnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if unit.IsTerminal() {
			return ErrInvalidState
		}

		if err := tx.Model(&models.WorkUnit{}).
			Where("id = ?", unit.ID).
			Updates(map[string]interface{}{
				"status":     models.WorkUnitStatusCancelled,
				"version":    gorm.Expr("version + ?", 1),
				"updated_by": int(principal.UserID),
			}).Error; err != nil {
			return err
		}

		event, err := models.NewWorkUnitEvent(unit.ID, models.EventCancelled, principal.UserID, models.CancelledMetadata{
			CancelledBy: principal.UserID,
			Reason:      reason,
		})
		if err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		return tx.Preload("Items").First(&updated, unit.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
