package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	WorkUnitKindPickList    = "PICK_LIST"
	WorkUnitKindPackingTask = "PACKING_TASK"
)

const (
	WorkUnitStatusAssigned           = "ASSIGNED"
	WorkUnitStatusInProgress         = "IN_PROGRESS"
	WorkUnitStatusPartiallyCompleted = "PARTIALLY_COMPLETED"
	WorkUnitStatusCompleted          = "COMPLETED"
	WorkUnitStatusCancelled          = "CANCELLED"
)

const (
	WorkUnitItemStatusPending    = "PENDING"
	WorkUnitItemStatusInProgress = "IN_PROGRESS"
	WorkUnitItemStatusCompleted  = "COMPLETED"
)

// WorkUnit is a batch of warehouse work (a pick list or a packing task)
// assigned to one user. A unit with ParentWorkUnitID set is a continuation
// carrying the outstanding portion of a split unit.
type WorkUnit struct {
	gorm.Model
	BatchNumber      string         `json:"batch_number" gorm:"unique"`
	Kind             string         `json:"kind" gorm:"index"`
	Status           string         `json:"status" gorm:"default:'ASSIGNED';index"`
	AssignedUserID   uint           `json:"assigned_user_id" gorm:"index"`
	AssignedUser     *User          `json:"assigned_user,omitempty" gorm:"foreignKey:AssignedUserID"`
	Priority         int            `json:"priority"`
	ParentWorkUnitID *uint          `json:"parent_work_unit_id"`
	Notes            string         `json:"notes"`
	Version          int            `json:"version" gorm:"default:1"`
	CompletedAt      *time.Time     `json:"completed_at"`
	Items            []WorkUnitItem `json:"items" gorm:"foreignKey:WorkUnitID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedBy        int            `json:"created_by"`
	UpdatedBy        int            `json:"updated_by"`
	DeletedBy        int            `json:"deleted_by"`
}

// IsTerminal reports whether the unit has reached a final state. Terminal
// units are never reassigned.
func (u *WorkUnit) IsTerminal() bool {
	return u.Status == WorkUnitStatusCompleted || u.Status == WorkUnitStatusCancelled
}

// WorkUnitItem is one line of work within a unit: one product at one
// location for one order.
type WorkUnitItem struct {
	gorm.Model
	WorkUnitID        uint   `json:"work_unit_id" gorm:"index"`
	OrderID           uint   `json:"order_id"`
	OrderItemID       uint   `json:"order_item_id"`
	ProductID         uint   `json:"product_id"`
	LocationID        uint   `json:"location_id"`
	Sequence          int    `json:"sequence"`
	QuantityRequired  int    `json:"quantity_required"`
	QuantityCompleted int    `json:"quantity_completed"`
	Status            string `json:"status" gorm:"default:'PENDING'"`
	Notes             string `json:"notes"`
}

// Outstanding is the quantity still to be picked or packed.
func (i WorkUnitItem) Outstanding() int {
	return i.QuantityRequired - i.QuantityCompleted
}
