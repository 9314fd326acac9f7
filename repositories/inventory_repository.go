package repositories

import (
	"errors"
	"fmt"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetAll(productID, locationID uint) ([]models.Inventory, error) {
	query := r.db.Preload("Product").Preload("Location")
	if productID != 0 {
		query = query.Where("product_id = ?", productID)
	}
	if locationID != 0 {
		query = query.Where("location_id = ?", locationID)
	}

	var rows []models.Inventory
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOrCreate returns the stock row for a product at a location, creating
// an empty one if none exists yet.
func (r *InventoryRepository) GetOrCreate(tx *gorm.DB, productID, locationID uint) (*models.Inventory, error) {
	var inv models.Inventory
	err := tx.Where("product_id = ? AND location_id = ?", productID, locationID).First(&inv).Error
	if err == nil {
		return &inv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inv = models.Inventory{ProductID: productID, LocationID: locationID}
	if err := tx.Create(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// Adjust applies a quantity delta to on-hand stock and writes the matching
// inventory transaction. Must run inside the caller's transaction so the
// movement and its record commit together.
func (r *InventoryRepository) Adjust(tx *gorm.DB, productID, locationID uint, delta int, txType, refNo, notes string, actor uint) (*models.InventoryTransaction, error) {
	inv, err := r.GetOrCreate(tx, productID, locationID)
	if err != nil {
		return nil, err
	}

	before := inv.QuantityOnHand
	after := before + delta
	if after < 0 {
		return nil, fmt.Errorf("stock for product %d at location %d would go negative (%d)", productID, locationID, after)
	}

	if err := tx.Model(&models.Inventory{}).
		Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"quantity_on_hand": after,
			"updated_by":       int(actor),
		}).Error; err != nil {
		return nil, err
	}

	record := models.InventoryTransaction{
		Type:           txType,
		ProductID:      productID,
		LocationID:     locationID,
		QuantityChange: delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		RefNo:          refNo,
		Notes:          notes,
		CreatedBy:      int(actor),
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Reserve holds available stock for outbound work. Fails when not enough
// is free.
func (r *InventoryRepository) Reserve(tx *gorm.DB, inventoryID uint, qty int) error {
	res := tx.Model(&models.Inventory{}).
		Where("id = ? AND quantity_on_hand - quantity_reserved >= ?", inventoryID, qty).
		Update("quantity_reserved", gorm.Expr("quantity_reserved + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("not enough available stock on inventory %d to reserve %d", inventoryID, qty)
	}
	return nil
}

// Release gives a reservation back, e.g. when an order is cancelled.
func (r *InventoryRepository) Release(tx *gorm.DB, inventoryID uint, qty int) error {
	return tx.Model(&models.Inventory{}).
		Where("id = ?", inventoryID).
		Update("quantity_reserved", gorm.Expr("quantity_reserved - ?", qty)).Error
}

func (r *InventoryRepository) GetTransactions(productID uint, refNo string, limit int) ([]models.InventoryTransaction, error) {
	query := r.db.Order("created_at DESC")
	if productID != 0 {
		query = query.Where("product_id = ?", productID)
	}
	if refNo != "" {
		query = query.Where("ref_no = ?", refNo)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.InventoryTransaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
