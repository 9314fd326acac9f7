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

type PackingTaskController struct {
	DB           *gorm.DB
	reassignment *services.ReassignmentService
	workUnits    *repositories.WorkUnitRepository
}

func NewPackingTaskController(DB *gorm.DB, reassignment *services.ReassignmentService) *PackingTaskController {
	return &PackingTaskController{
		DB:           DB,
		reassignment: reassignment,
		workUnits:    repositories.NewWorkUnitRepository(DB),
	}
}

func (c *PackingTaskController) GetAll(ctx *fiber.Ctx) error {
	filter := repositories.WorkUnitFilter{
		Kind:   models.WorkUnitKindPackingTask,
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

// ReassignBulk transfers several packing tasks. Unless a strategy is given,
// each task picks its own: split when work has been completed on it, simple
// otherwise.
func (c *PackingTaskController) ReassignBulk(ctx *fiber.Ctx) error {
	var requestBody struct {
		TaskIDs  []uint `json:"taskIds" validate:"required,min=1"`
		ToUserID uint   `json:"toUserId" validate:"required"`
		Strategy string `json:"strategy" validate:"omitempty,oneof=simple split auto"`
		Reason   string `json:"reason" validate:"required"`
		Notes    string `json:"notes"`
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

	result, err := c.reassignment.ReassignBulk(middleware.GetPrincipal(ctx), requestBody.TaskIDs, services.ReassignRequest{
		TargetUserID: requestBody.ToUserID,
		Strategy:     strategy,
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
