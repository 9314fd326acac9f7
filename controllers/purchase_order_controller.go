package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"gorm.io/gorm"
)

type PurchaseOrderController struct {
	DB        *gorm.DB
	inventory *repositories.InventoryRepository
}

func NewPurchaseOrderController(DB *gorm.DB) *PurchaseOrderController {
	return &PurchaseOrderController{DB: DB, inventory: repositories.NewInventoryRepository(DB)}
}

func (c *PurchaseOrderController) generatePONumber() (string, error) {
	var last models.PurchaseOrder
	if err := c.DB.Order("id DESC").First(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	today := time.Now().Format("20060102")

	if last.PONumber == "" || len(last.PONumber) < 14 || last.PONumber[2:10] != today {
		return fmt.Sprintf("PO%s%04d", today, 1), nil
	}

	lastSeq, err := strconv.Atoi(last.PONumber[10:14])
	if err != nil {
		return "", fmt.Errorf("invalid existing PO number format: %s", last.PONumber)
	}
	return fmt.Sprintf("PO%s%04d", today, lastSeq+1), nil
}

func (c *PurchaseOrderController) Create(ctx *fiber.Ctx) error {
	var requestBody struct {
		SupplierName string `json:"supplier_name" validate:"required"`
		Notes        string `json:"notes"`
		Items        []struct {
			ProductID  uint `json:"product_id" validate:"required"`
			LocationID uint `json:"location_id" validate:"required"`
			Quantity   int  `json:"quantity" validate:"required,min=1"`
		} `json:"items" validate:"required,min=1,dive"`
	}
	if err := ctx.BodyParser(&requestBody); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	validate := validator.New()
	if err := validate.Struct(requestBody); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	}

	poNumber, err := c.generatePONumber()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	po := models.PurchaseOrder{
		PONumber:     poNumber,
		SupplierName: requestBody.SupplierName,
		Status:       models.PurchaseOrderStatusOpen,
		Notes:        requestBody.Notes,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}
	for _, item := range requestBody.Items {
		po.Items = append(po.Items, models.PurchaseOrderItem{
			ProductID:       item.ProductID,
			LocationID:      item.LocationID,
			QuantityOrdered: item.Quantity,
		})
	}

	if err := c.DB.Create(&po).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Purchase order created successfully",
		"data":    po,
	})
}

func (c *PurchaseOrderController) GetAll(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Items")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("id DESC").Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// Receive books received quantities against the PO lines and puts the
// stock away, all in one transaction.
func (c *PurchaseOrderController) Receive(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid purchase order ID",
		})
	}

	var requestBody struct {
		Lines []struct {
			ItemID   uint `json:"item_id" validate:"required"`
			Quantity int  `json:"quantity" validate:"required,min=1"`
		} `json:"lines" validate:"required,min=1,dive"`
	}
	if err := ctx.BodyParser(&requestBody); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	validate := validator.New()
	if err := validate.Struct(requestBody); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	}

	actor := uint(ctx.Locals("userID").(float64))

	var po models.PurchaseOrder
	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&po, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("purchase order not found")
			}
			return err
		}
		if po.Status == models.PurchaseOrderStatusReceived || po.Status == models.PurchaseOrderStatusCancelled {
			return fmt.Errorf("purchase order %s is already %s", po.PONumber, po.Status)
		}

		itemsByID := map[uint]*models.PurchaseOrderItem{}
		for i := range po.Items {
			itemsByID[po.Items[i].ID] = &po.Items[i]
		}

		for _, line := range requestBody.Lines {
			item, ok := itemsByID[line.ItemID]
			if !ok {
				return fmt.Errorf("item %d does not belong to purchase order %s", line.ItemID, po.PONumber)
			}
			outstanding := item.QuantityOrdered - item.QuantityReceived
			if line.Quantity > outstanding {
				return fmt.Errorf("received %d exceeds outstanding %d on item %d", line.Quantity, outstanding, line.ItemID)
			}

			if err := tx.Model(&models.PurchaseOrderItem{}).
				Where("id = ?", item.ID).
				Update("quantity_received", gorm.Expr("quantity_received + ?", line.Quantity)).Error; err != nil {
				return err
			}
			item.QuantityReceived += line.Quantity

			if _, err := c.inventory.Adjust(tx, item.ProductID, item.LocationID, line.Quantity,
				models.InventoryTxPOReceipt, po.PONumber, "", actor); err != nil {
				return err
			}
		}

		allReceived := true
		for _, item := range po.Items {
			if item.QuantityReceived < item.QuantityOrdered {
				allReceived = false
				break
			}
		}
		status := models.PurchaseOrderStatusPartiallyReceived
		if allReceived {
			status = models.PurchaseOrderStatusReceived
		}

		return tx.Model(&models.PurchaseOrder{}).
			Where("id = ?", po.ID).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_by": int(actor),
			}).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var updated models.PurchaseOrder
	if err := c.DB.Preload("Items").First(&updated, po.ID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Receipt booked",
		"data":    updated,
	})
}
