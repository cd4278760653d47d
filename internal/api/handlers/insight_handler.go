package handlers

import (
	"neowealth/internal/dto"
	"neowealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InsightHandler struct {
	insightService  *service.InsightService
	decisionService *service.DecisionService
	logger          *zap.Logger
}

func NewInsightHandler(insightService *service.InsightService, decisionService *service.DecisionService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		insightService:  insightService,
		decisionService: decisionService,
		logger:          logger,
	}
}

// BehaviorAnalysis godoc
// @Summary Analyze spending behavior
// @Description 30-day profile: weekend split, impulse purchases, risk factors, habits and recommendations
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/insights/behavior [get]
func (h *InsightHandler) BehaviorAnalysis(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	analysis, err := h.insightService.AnalyzeBehavior(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(analysis))
}

// Nudges godoc
// @Summary Get behavioral nudges
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/insights/nudges [get]
func (h *InsightHandler) Nudges(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	nudges, err := h.insightService.Nudges(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(nudges))
}

// SpendingInsights godoc
// @Summary Period-over-period spending insights
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/insights/spending [get]
func (h *InsightHandler) SpendingInsights(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	insights, err := h.insightService.SpendingInsights(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(insights))
}

// FinancialHealth godoc
// @Summary Get the financial health score
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/insights/health [get]
func (h *InsightHandler) FinancialHealth(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	health, err := h.insightService.FinancialHealth(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(health))
}

// DispatchEvent godoc
// @Summary Dispatch a behavioral event
// @Description Analyzes the event, decides on actions and executes each in isolation
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventRequest true "Event"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /api/v1/insights/events [post]
func (h *InsightHandler) DispatchEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.EventType == "" {
		return badRequest(c, "Event type is required")
	}

	outcome, err := h.decisionService.Handle(c.Context(), userID, req.EventType, req.EventData)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(outcome))
}
