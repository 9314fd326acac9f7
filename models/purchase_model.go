package models

import "gorm.io/gorm"

const (
	PurchaseOrderStatusOpen              = "OPEN"
	PurchaseOrderStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          = "RECEIVED"
	PurchaseOrderStatusCancelled         = "CANCELLED"
)

type PurchaseOrder struct {
	gorm.Model
	PONumber     string              `json:"po_number" gorm:"unique"`
	SupplierName string              `json:"supplier_name"`
	Status       string              `json:"status" gorm:"default:'OPEN';index"`
	Notes        string              `json:"notes"`
	Items        []PurchaseOrderItem `json:"items" gorm:"foreignKey:PurchaseOrderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedBy    int                 `json:"created_by"`
	UpdatedBy    int                 `json:"updated_by"`
	DeletedBy    int                 `json:"deleted_by"`
}

type PurchaseOrderItem struct {
	gorm.Model
	PurchaseOrderID  uint     `json:"purchase_order_id" gorm:"index"`
	ProductID        uint     `json:"product_id"`
	Product          *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	LocationID       uint     `json:"location_id"`
	QuantityOrdered  int      `json:"quantity_ordered"`
	QuantityReceived int      `json:"quantity_received"`
}
