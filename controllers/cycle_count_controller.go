package controllers

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/helpers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/services"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type CycleCountController struct {
	DB      *gorm.DB
	service *services.CycleCountService
}

func NewCycleCountController(DB *gorm.DB, service *services.CycleCountService) *CycleCountController {
	return &CycleCountController{DB: DB, service: service}
}

func (c *CycleCountController) Create(ctx *fiber.Ctx) error {
	var requestBody struct {
		ProductID  uint   `json:"product_id" validate:"required"`
		LocationID uint   `json:"location_id" validate:"required"`
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

	task, err := c.service.CreateTask(middleware.GetPrincipal(ctx), requestBody.ProductID, requestBody.LocationID, requestBody.Notes)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Cycle count task created",
		"data":    task,
	})
}

func (c *CycleCountController) GetAll(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Product").Preload("Location")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []models.CycleCountTask
	if err := query.Order("id DESC").Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    tasks,
	})
}

// RecordCount books the physical count against the task. Inventory is
// adjusted by the variance even when the count lands in review.
func (c *CycleCountController) RecordCount(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var requestBody struct {
		CountedQty *int   `json:"counted_qty" validate:"required"`
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

	task, err := c.service.RecordCount(middleware.GetPrincipal(ctx), uint(id), *requestBody.CountedQty, requestBody.Notes)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

// Approve clears a variance-review task. Supervisors only.
func (c *CycleCountController) Approve(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var requestBody struct {
		Notes string `json:"notes"`
	}
	if err := ctx.BodyParser(&requestBody); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	task, err := c.service.ApproveVariance(middleware.GetPrincipal(ctx), uint(id), requestBody.Notes)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

// ExportExcel streams count results as an xlsx workbook.
func (c *CycleCountController) ExportExcel(ctx *fiber.Ctx) error {
	var tasks []models.CycleCountTask
	if err := c.DB.Preload("Product").Preload("Location").Order("id DESC").Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	f := excelize.NewFile()
	sheet := "CycleCounts"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Code", "SKU", "Location", "Status", "System Qty", "Counted Qty", "Variance", "Variance %", "Requires Review"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, task := range tasks {
		rowNum := i + 2
		sku, location := "", ""
		if task.Product != nil {
			sku = task.Product.SKU
		}
		if task.Location != nil {
			location = task.Location.Code
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), task.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), sku)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), location)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), task.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), task.SystemQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), task.CountedQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), task.Variance)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), task.VariancePercentage)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", rowNum), task.RequiresReview)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="cycle_counts.xlsx"`)
	return ctx.Send(buf.Bytes())
}
