package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/helpers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/services"
	"gorm.io/gorm"
)

type WorkUnitController struct {
	DB        *gorm.DB
	workUnits *repositories.WorkUnitRepository
	service   *services.WorkUnitService
}

func NewWorkUnitController(DB *gorm.DB) *WorkUnitController {
	return &WorkUnitController{
		DB:        DB,
		workUnits: repositories.NewWorkUnitRepository(DB),
		service:   services.NewWorkUnitService(DB),
	}
}

func (c *WorkUnitController) GetAll(ctx *fiber.Ctx) error {
	filter := repositories.WorkUnitFilter{
		Kind:   ctx.Query("kind"),
		Status: ctx.Query("status"),
	}
	if assignedTo := ctx.QueryInt("assigned_to"); assignedTo > 0 {
		filter.AssignedUserID = uint(assignedTo)
	}

	units, err := c.workUnits.List(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    units,
	})
}

// GetDetail returns a unit with its items and full audit trail.
func (c *WorkUnitController) GetDetail(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid work unit ID",
		})
	}

	unit, err := c.workUnits.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Work unit not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	events, err := c.workUnits.GetEvents(unit.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    unit,
		"events":  events,
	})
}

// RecordProgress books picked or packed quantity against one item.
func (c *WorkUnitController) RecordProgress(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid work unit ID",
		})
	}
	itemID, err := ctx.ParamsInt("item_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	var requestBody struct {
		Qty int `json:"qty"`
	}
	if err := ctx.BodyParser(&requestBody); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	unit, err := c.service.RecordItemProgress(middleware.GetPrincipal(ctx), uint(id), uint(itemID), requestBody.Qty)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    unit,
	})
}

func (c *WorkUnitController) Cancel(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid work unit ID",
		})
	}

	var requestBody struct {
		Reason string `json:"reason"`
	}
	if err := ctx.BodyParser(&requestBody); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	unit, err := c.service.Cancel(middleware.GetPrincipal(ctx), uint(id), requestBody.Reason)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    unit,
	})
}
