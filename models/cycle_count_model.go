package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CycleCountStatusPending        = "PENDING"
	CycleCountStatusCompleted      = "COMPLETED"
	CycleCountStatusVarianceReview = "VARIANCE_REVIEW"
)

// CycleCountTask is one physical count of a product at a location, compared
// against the system quantity at the time the task was generated.
type CycleCountTask struct {
	gorm.Model
	Code               string     `json:"code" gorm:"unique"`
	ProductID          uint       `json:"product_id" gorm:"index"`
	LocationID         uint       `json:"location_id" gorm:"index"`
	Product            *Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Location           *Location  `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Status             string     `json:"status" gorm:"default:'PENDING';index"`
	SystemQuantity     int        `json:"system_quantity"`
	CountedQuantity    int        `json:"counted_quantity"`
	Variance           int        `json:"variance"`
	VariancePercentage float64    `json:"variance_percentage"`
	RequiresReview     bool       `json:"requires_review"`
	CountedBy          *uint      `json:"counted_by"`
	CountedAt          *time.Time `json:"counted_at"`
	ApprovedBy         *uint      `json:"approved_by"`
	ApprovedAt         *time.Time `json:"approved_at"`
	Notes              string     `json:"notes"`
	CreatedBy          int        `json:"created_by"`
	UpdatedBy          int        `json:"updated_by"`
	DeletedBy          int        `json:"deleted_by"`
}
