package models

import "gorm.io/gorm"

const (
	ReturnStatusPending   = "PENDING"
	ReturnStatusProcessed = "PROCESSED"
	ReturnStatusCancelled = "CANCELLED"
)

const (
	ReturnDispositionRestock = "RESTOCK"
	ReturnDispositionDiscard = "DISCARD"
)

type ReturnOrder struct {
	gorm.Model
	RMANumber string            `json:"rma_number" gorm:"unique"`
	OrderID   uint              `json:"order_id" gorm:"index"`
	Status    string            `json:"status" gorm:"default:'PENDING';index"`
	Reason    string            `json:"reason"`
	Notes     string            `json:"notes"`
	Items     []ReturnOrderItem `json:"items" gorm:"foreignKey:ReturnOrderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedBy int               `json:"created_by"`
	UpdatedBy int               `json:"updated_by"`
	DeletedBy int               `json:"deleted_by"`
}

type ReturnOrderItem struct {
	gorm.Model
	ReturnOrderID uint   `json:"return_order_id" gorm:"index"`
	ProductID     uint   `json:"product_id"`
	LocationID    uint   `json:"location_id"`
	Quantity      int    `json:"quantity"`
	Disposition   string `json:"disposition" gorm:"default:'RESTOCK'"`
}
