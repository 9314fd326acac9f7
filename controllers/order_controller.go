package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/helpers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/services"
	"gorm.io/gorm"
)

type OrderController struct {
	DB      *gorm.DB
	service *services.OrderService
}

func NewOrderController(DB *gorm.DB, service *services.OrderService) *OrderController {
	return &OrderController{DB: DB, service: service}
}

func (c *OrderController) generateOrderNo() (string, error) {
	var last models.Order
	if err := c.DB.Order("id DESC").First(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	today := time.Now().Format("20060102")

	if last.OrderNo == "" || len(last.OrderNo) < 14 || last.OrderNo[2:10] != today {
		return fmt.Sprintf("SO%s%04d", today, 1), nil
	}

	lastSeq, err := strconv.Atoi(last.OrderNo[10:14])
	if err != nil {
		return "", fmt.Errorf("invalid existing order number format: %s", last.OrderNo)
	}
	return fmt.Sprintf("SO%s%04d", today, lastSeq+1), nil
}

// Create takes an order in. Items are stored as demand only; stock is not
// touched until allocation.
func (c *OrderController) Create(ctx *fiber.Ctx) error {
	var requestBody struct {
		CustomerName string `json:"customer_name" validate:"required"`
		Notes        string `json:"notes"`
		Items        []struct {
			ProductID uint `json:"product_id" validate:"required"`
			Quantity  int  `json:"quantity" validate:"required,min=1"`
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

	orderNo, err := c.generateOrderNo()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	order := models.Order{
		OrderNo:      orderNo,
		CustomerName: requestBody.CustomerName,
		Status:       models.OrderStatusPending,
		Notes:        requestBody.Notes,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}
	for _, item := range requestBody.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := c.DB.Create(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created successfully",
		"data":    order,
	})
}

func (c *OrderController) GetAll(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Items").Preload("AssignedStaff")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
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

func (c *OrderController) GetDetail(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var order models.Order
	if err := c.DB.Preload("Items").Preload("Items.Product").Preload("AssignedStaff").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// Allocate reserves stock for a pending order and creates its pick list.
func (c *OrderController) Allocate(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var requestBody struct {
		AssignUserID uint `json:"assign_user_id" validate:"required"`
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

	unit, err := c.service.Allocate(middleware.GetPrincipal(ctx), uint(id), requestBody.AssignUserID)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order allocated",
		"data":    unit,
	})
}

// GetPackingDetail reconciles the order's demand against current stock:
// per line, what can be packed now versus what stays on back order.
func (c *OrderController) GetPackingDetail(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	detail, err := c.service.GetPackingDetail(uint(id))
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    detail,
	})
}

// CreatePackingTask stages the packable portion of the order as a packing
// task for the given user.
func (c *OrderController) CreatePackingTask(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var requestBody struct {
		AssignUserID uint `json:"assign_user_id" validate:"required"`
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

	unit, err := c.service.CreatePackingTask(middleware.GetPrincipal(ctx), uint(id), requestBody.AssignUserID)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Packing task created",
		"data":    unit,
	})
}
