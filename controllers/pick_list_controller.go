package controllers

import (
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/controllers/helpers"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/middleware"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/repositories"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/services"
	"gorm.io/gorm"
)

type PickListController struct {
	DB           *gorm.DB
	reassignment *services.ReassignmentService
	workUnits    *repositories.WorkUnitRepository
}

func NewPickListController(DB *gorm.DB, reassignment *services.ReassignmentService) *PickListController {
	return &PickListController{
		DB:           DB,
		reassignment: reassignment,
		workUnits:    repositories.NewWorkUnitRepository(DB),
	}
}

func (c *PickListController) GetAll(ctx *fiber.Ctx) error {
	filter := repositories.WorkUnitFilter{
		Kind:   models.WorkUnitKindPickList,
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

// Reassign hands one pick list over to another user, splitting it into a
// continuation when asked to.
func (c *PickListController) Reassign(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid pick list ID",
		})
	}

	var requestBody struct {
		NewStaffID uint   `json:"newStaffId" validate:"required"`
		Strategy   string `json:"strategy" validate:"required,oneof=simple split"`
		Reason     string `json:"reason" validate:"required"`
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

	strategy, err := services.ParseStrategy(requestBody.Strategy)
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	result, err := c.reassignment.Reassign(middleware.GetPrincipal(ctx), uint(id), services.ReassignRequest{
		TargetUserID: requestBody.NewStaffID,
		Strategy:     strategy,
		Reason:       requestBody.Reason,
		Notes:        requestBody.Notes,
	})
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"original":     result.Original,
		"continuation": result.Continuation,
		"summary":      result.Summary,
	})
}

// ReassignBulk transfers several pick lists in one call. Strategy is fixed
// to simple; per-list failures are reported without aborting the batch.
func (c *PickListController) ReassignBulk(ctx *fiber.Ctx) error {
	var requestBody struct {
		PickListIDs []uint `json:"pickListIds" validate:"required,min=1"`
		ToUserID    uint   `json:"toUserId" validate:"required"`
		Reason      string `json:"reason" validate:"required"`
		Notes       string `json:"notes"`
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

	result, err := c.reassignment.ReassignBulk(middleware.GetPrincipal(ctx), requestBody.PickListIDs, services.ReassignRequest{
		TargetUserID: requestBody.ToUserID,
		Strategy:     services.StrategySimple,
		Reason:       requestBody.Reason,
		Notes:        requestBody.Notes,
	})
	if err != nil {
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"results": result.Results,
		"errors":  result.Errors,
		"summary": result.Summary,
	})
}
