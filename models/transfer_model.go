package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TransferStatusPending   = "PENDING"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// StockTransfer moves a quantity of one product between two locations in a
// single transaction.
type StockTransfer struct {
	gorm.Model
	TransferNo     string     `json:"transfer_no" gorm:"unique"`
	ProductID      uint       `json:"product_id"`
	FromLocationID uint       `json:"from_location_id"`
	ToLocationID   uint       `json:"to_location_id"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status" gorm:"default:'PENDING';index"`
	Notes          string     `json:"notes"`
	ExecutedAt     *time.Time `json:"executed_at"`
	ExecutedBy     *uint      `json:"executed_by"`
	CreatedBy      int        `json:"created_by"`
	UpdatedBy      int        `json:"updated_by"`
	DeletedBy      int        `json:"deleted_by"`
}
