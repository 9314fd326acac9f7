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

type ReturnController struct {
	DB        *gorm.DB
	inventory *repositories.InventoryRepository
}

func NewReturnController(DB *gorm.DB) *ReturnController {
	return &ReturnController{DB: DB, inventory: repositories.NewInventoryRepository(DB)}
}

func (c *ReturnController) generateRMANumber() (string, error) {
	var last models.ReturnOrder
	if err := c.DB.Order("id DESC").First(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	today := time.Now().Format("20060102")

	if last.RMANumber == "" || len(last.RMANumber) < 15 || last.RMANumber[3:11] != today {
		return fmt.Sprintf("RMA%s%04d", today, 1), nil
	}

	lastSeq, err := strconv.Atoi(last.RMANumber[11:15])
	if err != nil {
		return "", fmt.Errorf("invalid existing RMA number format: %s", last.RMANumber)
	}
	return fmt.Sprintf("RMA%s%04d", today, lastSeq+1), nil
}

func (c *ReturnController) Create(ctx *fiber.Ctx) error {
	var requestBody struct {
		OrderID uint   `json:"order_id" validate:"required"`
		Reason  string `json:"reason" validate:"required"`
		Notes   string `json:"notes"`
		Items   []struct {
			ProductID   uint   `json:"product_id" validate:"required"`
			LocationID  uint   `json:"location_id" validate:"required"`
			Quantity    int    `json:"quantity" validate:"required,min=1"`
			Disposition string `json:"disposition" validate:"omitempty,oneof=RESTOCK DISCARD"`
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

	var order models.Order
	if err := c.DB.First(&order, requestBody.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rmaNumber, err := c.generateRMANumber()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ret := models.ReturnOrder{
		RMANumber: rmaNumber,
		OrderID:   order.ID,
		Status:    models.ReturnStatusPending,
		Reason:    requestBody.Reason,
		Notes:     requestBody.Notes,
		CreatedBy: int(ctx.Locals("userID").(float64)),
	}
	for _, item := range requestBody.Items {
		disposition := item.Disposition
		if disposition == "" {
			disposition = models.ReturnDispositionRestock
		}
		ret.Items = append(ret.Items, models.ReturnOrderItem{
			ProductID:   item.ProductID,
			LocationID:  item.LocationID,
			Quantity:    item.Quantity,
			Disposition: disposition,
		})
	}

	if err := c.DB.Create(&ret).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Return created successfully",
		"data":    ret,
	})
}

func (c *ReturnController) GetAll(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Items")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var returns []models.ReturnOrder
	if err := query.Order("id DESC").Find(&returns).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    returns,
	})
}

// Process puts RESTOCK lines back into inventory; DISCARD lines never
// touch stock. One transaction for the whole return.
func (c *ReturnController) Process(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid return ID",
		})
	}

	actor := uint(ctx.Locals("userID").(float64))

	var ret models.ReturnOrder
	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&ret, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("return not found")
			}
			return err
		}
		if ret.Status != models.ReturnStatusPending {
			return fmt.Errorf("return %s is already %s", ret.RMANumber, ret.Status)
		}

		for _, item := range ret.Items {
			if item.Disposition != models.ReturnDispositionRestock {
				continue
			}
			if _, err := c.inventory.Adjust(tx, item.ProductID, item.LocationID, item.Quantity,
				models.InventoryTxReturn, ret.RMANumber, "", actor); err != nil {
				return err
			}
		}

		return tx.Model(&models.ReturnOrder{}).
			Where("id = ?", ret.ID).
			Updates(map[string]interface{}{
				"status":     models.ReturnStatusProcessed,
				"updated_by": int(actor),
			}).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var updated models.ReturnOrder
	if err := c.DB.Preload("Items").First(&updated, ret.ID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Return processed",
		"data":    updated,
	})
}
