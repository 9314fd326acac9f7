package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

type WorkUnitRepository struct {
	db *gorm.DB
}

func NewWorkUnitRepository(db *gorm.DB) *WorkUnitRepository {
	return &WorkUnitRepository{db: db}
}

// GenerateBatchNumber builds the next batch number for the day, e.g.
// PL202609010001 for pick lists and PT202609010001 for packing tasks.
func (r *WorkUnitRepository) GenerateBatchNumber(tx *gorm.DB, kind string) (string, error) {
	prefix := "PL"
	if kind == models.WorkUnitKindPackingTask {
		prefix = "PT"
	}

	var last models.WorkUnit
	err := tx.Where("kind = ?", kind).Order("id DESC").First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	today := time.Now().Format("20060102")

	if last.BatchNumber == "" || len(last.BatchNumber) < 14 || last.BatchNumber[2:10] != today {
		return fmt.Sprintf("%s%s%04d", prefix, today, 1), nil
	}

	lastSeq, err := strconv.Atoi(last.BatchNumber[10:14])
	if err != nil {
		return "", fmt.Errorf("invalid existing batch number format: %s", last.BatchNumber)
	}
	return fmt.Sprintf("%s%s%04d", prefix, today, lastSeq+1), nil
}

type WorkUnitFilter struct {
	Kind           string
	Status         string
	AssignedUserID uint
}

func (r *WorkUnitRepository) List(filter WorkUnitFilter) ([]models.WorkUnit, error) {
	query := r.db.Preload("Items").Preload("AssignedUser")
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssignedUserID != 0 {
		query = query.Where("assigned_user_id = ?", filter.AssignedUserID)
	}

	var units []models.WorkUnit
	if err := query.Order("priority DESC, id ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *WorkUnitRepository) GetByID(id uint) (*models.WorkUnit, error) {
	var unit models.WorkUnit
	if err := r.db.Preload("Items").Preload("AssignedUser").First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetEvents returns the audit trail of a unit, oldest first.
func (r *WorkUnitRepository) GetEvents(workUnitID uint) ([]models.AuditEvent, error) {
	var events []models.AuditEvent
	if err := r.db.Where("work_unit_id = ?", workUnitID).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
