package models

import (
	"time"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/idgen"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/types"
	"gorm.io/gorm"
)

const (
	InventoryTxAdjustment  = "ADJUSTMENT"
	InventoryTxCycleCount  = "CYCLE_COUNT"
	InventoryTxPOReceipt   = "PO_RECEIPT"
	InventoryTxReturn      = "RETURN"
	InventoryTxTransferIn  = "TRANSFER_IN"
	InventoryTxTransferOut = "TRANSFER_OUT"
	InventoryTxAllocation  = "ALLOCATION"
	InventoryTxShipment    = "SHIPMENT"
)

// Inventory is the on-hand stock of one product at one location.
type Inventory struct {
	gorm.Model
	ProductID        uint      `json:"product_id" gorm:"uniqueIndex:idx_product_location"`
	LocationID       uint      `json:"location_id" gorm:"uniqueIndex:idx_product_location"`
	Product          *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Location         *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	QuantityOnHand   int       `json:"quantity_on_hand"`
	QuantityReserved int       `json:"quantity_reserved"`
	CreatedBy        int       `json:"created_by"`
	UpdatedBy        int       `json:"updated_by"`
	DeletedBy        int       `json:"deleted_by"`
}

// Available is the quantity not yet reserved for outbound work.
func (i Inventory) Available() int {
	return i.QuantityOnHand - i.QuantityReserved
}

// InventoryTransaction is an append-only record of every stock movement,
// written in the same transaction as the movement itself.
type InventoryTransaction struct {
	ID             types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Type           string            `json:"type" gorm:"index"`
	ProductID      uint              `json:"product_id" gorm:"index"`
	LocationID     uint              `json:"location_id" gorm:"index"`
	QuantityChange int               `json:"quantity_change"`
	QuantityBefore int               `json:"quantity_before"`
	QuantityAfter  int               `json:"quantity_after"`
	RefNo          string            `json:"ref_no" gorm:"index"`
	Notes          string            `json:"notes"`
	CreatedBy      int               `json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (t *InventoryTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == 0 {
		t.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}
