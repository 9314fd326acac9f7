package services

import (
	"errors"
	"fmt"

	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"gorm.io/gorm"
)

// OrderService turns incoming orders into warehouse work: allocating stock
// onto pick lists and reconciling what is packable against what must wait
// on back order.
type OrderService struct {
	db        *gorm.DB
	workUnits *repositories.WorkUnitRepository
	inventory *repositories.InventoryRepository
	notifier  Notifier
}

func NewOrderService(db *gorm.DB, workUnits *repositories.WorkUnitRepository, inventory *repositories.InventoryRepository, notifier Notifier) *OrderService {
	return &OrderService{db: db, workUnits: workUnits, inventory: inventory, notifier: notifier}
}

// Allocate reserves stock for a pending order and creates the pick list
// work unit for it. Demand that cannot be covered is recorded as back
// order on the order line.
func (s *OrderService) Allocate(principal models.Principal, orderID, assignUserID uint) (*models.WorkUnit, error) {
	if !principal.CanManageWork() {
		return nil, ErrForbidden
	}

	var (
		unit     models.WorkUnit
		assignee models.User
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status != models.OrderStatusPending {
			return ErrInvalidState
		}

		if err := tx.First(&assignee, assignUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !assignee.IsActive {
			return ErrUserNotFound
		}

		batchNumber, err := s.workUnits.GenerateBatchNumber(tx, models.WorkUnitKindPickList)
		if err != nil {
			return err
		}

		unit = models.WorkUnit{
			BatchNumber:    batchNumber,
			Kind:           models.WorkUnitKindPickList,
			Status:         models.WorkUnitStatusAssigned,
			AssignedUserID: assignee.ID,
			Notes:          fmt.Sprintf("Pick list for order %s", order.OrderNo),
			CreatedBy:      int(principal.UserID),
		}
		if err := tx.Create(&unit).Error; err != nil {
			return err
		}

		sequence := 1
		for i := range order.Items {
			item := &order.Items[i]
			needed := item.Quantity

			var stock []models.Inventory
			if err := tx.Where("product_id = ? AND quantity_on_hand - quantity_reserved > 0", item.ProductID).
				Order("quantity_on_hand - quantity_reserved DESC").
				Find(&stock).Error; err != nil {
				return err
			}

			for _, inv := range stock {
				if needed == 0 {
					break
				}
				take := inv.Available()
				if take > needed {
					take = needed
				}
				if err := s.inventory.Reserve(tx, inv.ID, take); err != nil {
					return fmt.Errorf("%w: %v", ErrInsufficientStock, err)
				}

				line := models.WorkUnitItem{
					WorkUnitID:       unit.ID,
					OrderID:          order.ID,
					OrderItemID:      item.ID,
					ProductID:        item.ProductID,
					LocationID:       inv.LocationID,
					Sequence:         sequence,
					QuantityRequired: take,
					Status:           models.WorkUnitItemStatusPending,
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
				sequence++
				needed -= take
			}

			// Whatever stock could not cover waits on back order.
			if err := tx.Model(&models.OrderItem{}).
				Where("id = ?", item.ID).
				Update("back_ordered", needed).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":            models.OrderStatusAllocated,
				"assigned_staff_id": assignee.ID,
				"updated_by":        int(principal.UserID),
			}).Error; err != nil {
			return err
		}

		event, err := models.NewWorkUnitEvent(unit.ID, models.EventCreated, principal.UserID, models.AssignedMetadata{
			ToUserID: assignee.ID,
		})
		if err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		return tx.Preload("Items").First(&unit, unit.ID).Error
	})
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Pick list %s assigned to you", unit.BatchNumber)
	body := fmt.Sprintf("You have been assigned pick list <b>%s</b>.", unit.BatchNumber)
	dispatchNotification(s.notifier, assignee, subject, body)

	return &unit, nil
}

// PackingLine is the per-line reconciliation of an order's demand against
// current stock: what already shipped, what sits packed, what can be packed
// right now and what has to wait on back order.
type PackingLine struct {
	OrderItemID  uint   `json:"order_item_id"`
	ProductID    uint   `json:"product_id"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	ShippedQty   int    `json:"shipped_qty"`
	PackedQty    int    `json:"packed_qty"`
	Remaining    int    `json:"remaining"`
	PackableNow  int    `json:"packable_now"`
	BackOrderQty int    `json:"back_order_qty"`
	ShortPick    bool   `json:"short_pick"`
}

type PackingDetail struct {
	Order         *models.Order `json:"order"`
	Lines         []PackingLine `json:"lines"`
	FullyPackable bool          `json:"fully_packable"`
}

// ReconcileLine decides how much of one line's demand is packable now. Pure
// math, shared by the endpoint and the packing task builder.
func ReconcileLine(item models.OrderItem, available int) PackingLine {
	remaining := item.Quantity - item.ShippedQty - item.PackedQty
	if remaining < 0 {
		remaining = 0
	}

	packable := remaining
	if available < packable {
		packable = available
	}
	if packable < 0 {
		packable = 0
	}

	return PackingLine{
		OrderItemID:  item.ID,
		ProductID:    item.ProductID,
		Quantity:     item.Quantity,
		ShippedQty:   item.ShippedQty,
		PackedQty:    item.PackedQty,
		Remaining:    remaining,
		PackableNow:  packable,
		BackOrderQty: remaining - packable,
		ShortPick:    packable < remaining,
	}
}

// GetPackingDetail computes the reconciliation for every line of an order.
func (s *OrderService) GetPackingDetail(orderID uint) (*PackingDetail, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &PackingDetail{Order: &order, FullyPackable: true}

	for _, item := range order.Items {
		available, err := s.availableFor(item.ProductID)
		if err != nil {
			return nil, err
		}

		line := ReconcileLine(item, available)
		if item.Product != nil {
			line.SKU = item.Product.SKU
		}
		if line.BackOrderQty > 0 {
			detail.FullyPackable = false
		}
		detail.Lines = append(detail.Lines, line)
	}

	return detail, nil
}

// CreatePackingTask turns the packable portion of an order into a packing
// task work unit for the given user.
func (s *OrderService) CreatePackingTask(principal models.Principal, orderID, assignUserID uint) (*models.WorkUnit, error) {
	if !principal.CanManageWork() {
		return nil, ErrForbidden
	}

	var (
		unit     models.WorkUnit
		assignee models.User
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status == models.OrderStatusShipped || order.Status == models.OrderStatusCancelled {
			return ErrInvalidState
		}

		if err := tx.First(&assignee, assignUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !assignee.IsActive {
			return ErrUserNotFound
		}

		batchNumber, err := s.workUnits.GenerateBatchNumber(tx, models.WorkUnitKindPackingTask)
		if err != nil {
			return err
		}

		unit = models.WorkUnit{
			BatchNumber:    batchNumber,
			Kind:           models.WorkUnitKindPackingTask,
			Status:         models.WorkUnitStatusAssigned,
			AssignedUserID: assignee.ID,
			Notes:          fmt.Sprintf("Packing task for order %s", order.OrderNo),
			CreatedBy:      int(principal.UserID),
		}
		if err := tx.Create(&unit).Error; err != nil {
			return err
		}

		sequence := 1
		staged := 0
		for _, item := range order.Items {
			available, err := s.availableForTx(tx, item.ProductID)
			if err != nil {
				return err
			}
			line := ReconcileLine(item, available)
			if line.PackableNow == 0 {
				continue
			}

			wi := models.WorkUnitItem{
				WorkUnitID:       unit.ID,
				OrderID:          order.ID,
				OrderItemID:      item.ID,
				ProductID:        item.ProductID,
				Sequence:         sequence,
				QuantityRequired: line.PackableNow,
				Status:           models.WorkUnitItemStatusPending,
			}
			if err := tx.Create(&wi).Error; err != nil {
				return err
			}
			sequence++
			staged++
		}

		if staged == 0 {
			return fmt.Errorf("%w: nothing packable on order %s", ErrValidation, order.OrderNo)
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":            models.OrderStatusPacking,
				"assigned_staff_id": assignee.ID,
				"updated_by":        int(principal.UserID),
			}).Error; err != nil {
			return err
		}

		event, err := models.NewWorkUnitEvent(unit.ID, models.EventCreated, principal.UserID, models.AssignedMetadata{
			ToUserID: assignee.ID,
		})
		if err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		return tx.Preload("Items").First(&unit, unit.ID).Error
	})
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Packing task %s assigned to you", unit.BatchNumber)
	body := fmt.Sprintf("You have been assigned packing task <b>%s</b>.", unit.BatchNumber)
	dispatchNotification(s.notifier, assignee, subject, body)

	return &unit, nil
}

func (s *OrderService) availableFor(productID uint) (int, error) {
	return s.availableForTx(s.db, productID)
}

func (s *OrderService) availableForTx(tx *gorm.DB, productID uint) (int, error) {
	var rows []models.Inventory
	if err := tx.Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		return 0, err
	}
	total := 0
	for _, inv := range rows {
		if inv.Available() > 0 {
			total += inv.Available()
		}
	}
	return total, nil
}
