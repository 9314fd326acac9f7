package controllers

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB        *gorm.DB
	inventory *repositories.InventoryRepository
}

func NewInventoryController(DB *gorm.DB) *InventoryController {
	return &InventoryController{DB: DB, inventory: repositories.NewInventoryRepository(DB)}
}

func (c *InventoryController) GetAll(ctx *fiber.Ctx) error {
	productID := uint(ctx.QueryInt("product_id"))
	locationID := uint(ctx.QueryInt("location_id"))

	rows, err := c.inventory.GetAll(productID, locationID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// Adjust applies a manual stock correction and records the movement.
func (c *InventoryController) Adjust(ctx *fiber.Ctx) error {
	var requestBody struct {
		ProductID  uint   `json:"product_id" validate:"required"`
		LocationID uint   `json:"location_id" validate:"required"`
		Delta      int    `json:"delta" validate:"required"`
		Notes      string `json:"notes"`
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

	var record *models.InventoryTransaction
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		record, err = c.inventory.Adjust(tx, requestBody.ProductID, requestBody.LocationID,
			requestBody.Delta, models.InventoryTxAdjustment, "", requestBody.Notes, actor)
		return err
	})
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stock adjusted",
		"data":    record,
	})
}

func (c *InventoryController) GetTransactions(ctx *fiber.Ctx) error {
	productID := uint(ctx.QueryInt("product_id"))
	refNo := ctx.Query("ref_no")
	limit := ctx.QueryInt("limit", 100)

	rows, err := c.inventory.GetTransactions(productID, refNo, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// ExportExcel streams the current stock levels as an xlsx workbook.
func (c *InventoryController) ExportExcel(ctx *fiber.Ctx) error {
	rows, err := c.inventory.GetAll(0, 0)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	f := excelize.NewFile()
	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"SKU", "Product", "Location", "On Hand", "Reserved", "Available"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, inv := range rows {
		rowNum := i + 2
		sku, name, location := "", "", ""
		if inv.Product != nil {
			sku = inv.Product.SKU
			name = inv.Product.Name
		}
		if inv.Location != nil {
			location = inv.Location.Code
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), sku)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), location)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), inv.QuantityOnHand)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), inv.QuantityReserved)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), inv.Available())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	return ctx.Send(buf.Bytes())
}
