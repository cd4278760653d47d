package handlers

import (
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goalService *service.GoalService
	logger      *zap.Logger
}

func NewGoalHandler(goalService *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGoalRequest true "Goal"
// @Success 201 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	goal, err := h.goalService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Goal created", service.ToGoalResponse(goal, time.Now().UTC())))
}

// List godoc
// @Summary List goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.Envelope
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	goals, err := h.goalService.List(c.Context(), userID, c.Query("status"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	now := time.Now().UTC()
	items := make([]dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		items = append(items, service.ToGoalResponse(goal, now))
	}

	return c.JSON(dto.OK(items))
}

// Get godoc
// @Summary Get a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal id")
	}

	goal, err := h.goalService.Get(c.Context(), id, userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(service.ToGoalResponse(goal, time.Now().UTC())))
}

// Update godoc
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body dto.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal id")
	}

	var req dto.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	goal, err := h.goalService.Update(c.Context(), id, userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Goal updated", service.ToGoalResponse(goal, time.Now().UTC())))
}

// Delete godoc
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal id")
	}

	if err := h.goalService.Delete(c.Context(), id, userID); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Goal deleted", nil))
}

// Contribute godoc
// @Summary Add money to a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body dto.ContributeRequest true "Contribution"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /api/v1/goals/{id}/contribute [post]
func (h *GoalHandler) Contribute(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal id")
	}

	var req dto.ContributeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	goal, err := h.goalService.Contribute(c.Context(), id, userID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Contribution added", service.ToGoalResponse(goal, time.Now().UTC())))
}

// Milestones godoc
// @Summary Get goal reward milestones
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.Envelope
// @Router /api/v1/goals/{id}/milestones [get]
func (h *GoalHandler) Milestones(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal id")
	}

	milestones, err := h.goalService.GoalMilestones(c.Context(), id, userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(milestones))
}

// Analyze godoc
// @Summary Run the goal optimizer
// @Description Checks every active goal against saving capacity and applies at most one adjustment each
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/goals/analyze [post]
func (h *GoalHandler) Analyze(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	adjustments, err := h.goalService.AnalyzeProgress(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(adjustments))
}

// Suggestions godoc
// @Summary Suggest new goals from spending patterns
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/goals/suggestions [get]
func (h *GoalHandler) Suggestions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	suggestions, err := h.goalService.SuggestNewGoals(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(suggestions))
}
