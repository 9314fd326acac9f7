package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusAllocated = "ALLOCATED"
	OrderStatusPicking   = "PICKING"
	OrderStatusPacking   = "PACKING"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	gorm.Model
	OrderNo         string      `json:"order_no" gorm:"unique"`
	CustomerName    string      `json:"customer_name"`
	Status          string      `json:"status" gorm:"default:'PENDING';index"`
	AssignedStaffID *uint       `json:"assigned_staff_id" gorm:"index"`
	AssignedStaff   *User       `json:"assigned_staff,omitempty" gorm:"foreignKey:AssignedStaffID"`
	Notes           string      `json:"notes"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedBy       int         `json:"created_by"`
	UpdatedBy       int         `json:"updated_by"`
	DeletedBy       int         `json:"deleted_by"`
}

type OrderItem struct {
	gorm.Model
	OrderID     uint     `json:"order_id" gorm:"index"`
	ProductID   uint     `json:"product_id"`
	Product     *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity    int      `json:"quantity"`
	PickedQty   int      `json:"picked_qty"`
	PackedQty   int      `json:"packed_qty"`
	ShippedQty  int      `json:"shipped_qty"`
	BackOrdered int      `json:"back_ordered"`
}

// Outstanding is the quantity still owed to the customer.
func (i OrderItem) Outstanding() int {
	return i.Quantity - i.ShippedQty
}
