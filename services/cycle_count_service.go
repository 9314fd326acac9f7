package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"gorm.io/gorm"
)

// CycleCountService records physical counts against cycle count tasks and
// reconciles inventory with the counted reality.
type CycleCountService struct {
	db        *gorm.DB
	inventory *repositories.InventoryRepository
	// tolerance is the variance percentage above which a count needs
	// supervisor review before it is considered done.
	tolerance float64
}

func NewCycleCountService(db *gorm.DB, inventory *repositories.InventoryRepository, tolerance float64) *CycleCountService {
	return &CycleCountService{db: db, inventory: inventory, tolerance: tolerance}
}

// VarianceFor computes the variance and its percentage against the system
// quantity. A count against zero system stock is a full 100% variance.
func VarianceFor(systemQty, countedQty int) (variance int, percentage float64) {
	variance = countedQty - systemQty
	if systemQty == 0 {
		if countedQty > 0 {
			percentage = 100
		}
		return variance, percentage
	}
	percentage = math.Abs(float64(variance)) / float64(systemQty) * 100
	return variance, percentage
}

// CreateTask opens a count task snapshotting the current system quantity.
func (s *CycleCountService) CreateTask(principal models.Principal, productID, locationID uint, notes string) (*models.CycleCountTask, error) {
	var task models.CycleCountTask

	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.inventory.GetOrCreate(tx, productID, locationID)
		if err != nil {
			return err
		}

		code, err := s.generateCode(tx)
		if err != nil {
			return err
		}

		task = models.CycleCountTask{
			Code:           code,
			ProductID:      productID,
			LocationID:     locationID,
			Status:         models.CycleCountStatusPending,
			SystemQuantity: inv.QuantityOnHand,
			Notes:          notes,
			CreatedBy:      int(principal.UserID),
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// RecordCount books the physical count: inventory is adjusted by the
// variance unconditionally, and counts outside tolerance are parked in
// VARIANCE_REVIEW for supervisor approval.
func (s *CycleCountService) RecordCount(principal models.Principal, taskID uint, countedQty int, notes string) (*models.CycleCountTask, error) {
	if countedQty < 0 {
		return nil, fmt.Errorf("%w: counted quantity cannot be negative", ErrValidation)
	}

	var updated models.CycleCountTask

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.CycleCountTask
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if task.Status != models.CycleCountStatusPending {
			return ErrInvalidState
		}

		variance, percentage := VarianceFor(task.SystemQuantity, countedQty)
		requiresReview := percentage > s.tolerance

		status := models.CycleCountStatusCompleted
		if requiresReview {
			status = models.CycleCountStatusVarianceReview
		}

		// Even a zero variance gets a movement record so every count
		// leaves a trace in the inventory ledger.
		if _, err := s.inventory.Adjust(tx, task.ProductID, task.LocationID, variance,
			models.InventoryTxCycleCount, task.Code, notes, principal.UserID); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.CycleCountTask{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"status":              status,
				"counted_quantity":    countedQty,
				"variance":            variance,
				"variance_percentage": percentage,
				"requires_review":     requiresReview,
				"counted_by":          principal.UserID,
				"counted_at":          now,
				"updated_by":          int(principal.UserID),
			}).Error; err != nil {
			return err
		}

		event, err := models.NewCycleCountEvent(task.ID, models.EventCountRecorded, principal.UserID, models.CountRecordedMetadata{
			SystemQuantity:     task.SystemQuantity,
			CountedQuantity:    countedQty,
			Variance:           variance,
			VariancePercentage: percentage,
			RequiresReview:     requiresReview,
		})
		if err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		return tx.First(&updated, task.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ApproveVariance clears a VARIANCE_REVIEW task to COMPLETED. Supervisors
// only; the inventory adjustment already happened at count time.
func (s *CycleCountService) ApproveVariance(principal models.Principal, taskID uint, notes string) (*models.CycleCountTask, error) {
	if !principal.CanManageWork() {
		return nil, ErrForbidden
	}

	var updated models.CycleCountTask

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.CycleCountTask
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if task.Status != models.CycleCountStatusVarianceReview {
			return ErrInvalidState
		}

		now := time.Now()
		if err := tx.Model(&models.CycleCountTask{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"status":      models.CycleCountStatusCompleted,
				"approved_by": principal.UserID,
				"approved_at": now,
				"updated_by":  int(principal.UserID),
			}).Error; err != nil {
			return err
		}

		event, err := models.NewCycleCountEvent(task.ID, models.EventVarianceApproved, principal.UserID, models.VarianceApprovedMetadata{
			ApprovedBy: principal.UserID,
			Notes:      notes,
		})
		if err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		return tx.First(&updated, task.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CycleCountService) generateCode(tx *gorm.DB) (string, error) {
	var last models.CycleCountTask
	err := tx.Order("id DESC").First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	today := time.Now().Format("20060102")

	if last.Code == "" || len(last.Code) < 14 || last.Code[2:10] != today {
		return fmt.Sprintf("CC%s%04d", today, 1), nil
	}

	var lastSeq int
	if _, err := fmt.Sscanf(last.Code[10:14], "%d", &lastSeq); err != nil {
		return "", fmt.Errorf("invalid existing count code format: %s", last.Code)
	}
	return fmt.Sprintf("CC%s%04d", today, lastSeq+1), nil
}
