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

type TransferController struct {
	DB        *gorm.DB
	inventory *repositories.InventoryRepository
}

func NewTransferController(DB *gorm.DB) *TransferController {
	return &TransferController{DB: DB, inventory: repositories.NewInventoryRepository(DB)}
}

func (c *TransferController) generateTransferNo() (string, error) {
	var last models.StockTransfer
	if err := c.DB.Order("id DESC").First(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	today := time.Now().Format("20060102")

	if last.TransferNo == "" || len(last.TransferNo) < 14 || last.TransferNo[2:10] != today {
		return fmt.Sprintf("TR%s%04d", today, 1), nil
	}

	lastSeq, err := strconv.Atoi(last.TransferNo[10:14])
	if err != nil {
		return "", fmt.Errorf("invalid existing transfer number format: %s", last.TransferNo)
	}
	return fmt.Sprintf("TR%s%04d", today, lastSeq+1), nil
}

func (c *TransferController) Create(ctx *fiber.Ctx) error {
	var requestBody struct {
		ProductID      uint   `json:"product_id" validate:"required"`
		FromLocationID uint   `json:"from_location_id" validate:"required"`
		ToLocationID   uint   `json:"to_location_id" validate:"required"`
		Quantity       int    `json:"quantity" validate:"required,min=1"`
		Notes          string `json:"notes"`
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

	if requestBody.FromLocationID == requestBody.ToLocationID {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Source and destination locations must differ",
		})
	}

	transferNo, err := c.generateTransferNo()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	transfer := models.StockTransfer{
		TransferNo:     transferNo,
		ProductID:      requestBody.ProductID,
		FromLocationID: requestBody.FromLocationID,
		ToLocationID:   requestBody.ToLocationID,
		Quantity:       requestBody.Quantity,
		Status:         models.TransferStatusPending,
		Notes:          requestBody.Notes,
		CreatedBy:      int(ctx.Locals("userID").(float64)),
	}
	if err := c.DB.Create(&transfer).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Transfer created successfully",
		"data":    transfer,
	})
}

func (c *TransferController) GetAll(ctx *fiber.Ctx) error {
	query := c.DB.Order("id DESC")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var transfers []models.StockTransfer
	if err := query.Find(&transfers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    transfers,
	})
}

// Execute moves the stock: out of the source, into the destination, both
// movements and their transaction records in one database transaction.
func (c *TransferController) Execute(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid transfer ID",
		})
	}

	actor := uint(ctx.Locals("userID").(float64))

	var transfer models.StockTransfer
	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&transfer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("transfer not found")
			}
			return err
		}
		if transfer.Status != models.TransferStatusPending {
			return fmt.Errorf("transfer %s is already %s", transfer.TransferNo, transfer.Status)
		}

		if _, err := c.inventory.Adjust(tx, transfer.ProductID, transfer.FromLocationID, -transfer.Quantity,
			models.InventoryTxTransferOut, transfer.TransferNo, "", actor); err != nil {
			return err
		}
		if _, err := c.inventory.Adjust(tx, transfer.ProductID, transfer.ToLocationID, transfer.Quantity,
			models.InventoryTxTransferIn, transfer.TransferNo, "", actor); err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&models.StockTransfer{}).
			Where("id = ?", transfer.ID).
			Updates(map[string]interface{}{
				"status":      models.TransferStatusCompleted,
				"executed_at": now,
				"executed_by": actor,
				"updated_by":  int(actor),
			}).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var updated models.StockTransfer
	if err := c.DB.First(&updated, transfer.ID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Transfer executed",
		"data":    updated,
	})
}
