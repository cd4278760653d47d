package handlers

import (
	"neowealth/internal/dto"
	"neowealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type HiveHandler struct {
	hiveService *service.HiveService
	logger      *zap.Logger
}

func NewHiveHandler(hiveService *service.HiveService, logger *zap.Logger) *HiveHandler {
	return &HiveHandler{
		hiveService: hiveService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create a savings hive
// @Description The creator becomes the hive's admin member
// @Tags hives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHiveRequest true "Hive"
// @Success 201 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /api/v1/hives [post]
func (h *HiveHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateHiveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Name is required")
	}

	hive, err := h.hiveService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Hive created", service.ToHiveResponse(hive)))
}

// List godoc
// @Summary List active hives
// @Tags hives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/hives [get]
func (h *HiveHandler) List(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	hives, err := h.hiveService.ListActive(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	items := make([]dto.HiveResponse, 0, len(hives))
	for _, hive := range hives {
		items = append(items, service.ToHiveResponse(hive))
	}

	return c.JSON(dto.OK(items))
}

// Get godoc
// @Summary Get a hive
// @Tags hives
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hive ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/hives/{id} [get]
func (h *HiveHandler) Get(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid hive id")
	}

	hive, err := h.hiveService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(service.ToHiveResponse(hive)))
}

// Join godoc
// @Summary Join a hive
// @Tags hives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinHiveRequest true "Join request"
// @Success 200 {object} dto.Envelope
// @Failure 409 {object} dto.Envelope
// @Router /api/v1/hives/join [post]
func (h *HiveHandler) Join(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.JoinHiveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	hiveID, err := uuid.Parse(req.HiveID)
	if err != nil {
		return badRequest(c, "Invalid hive id")
	}

	member, err := h.hiveService.Join(c.Context(), userID, hiveID, decimal.NewFromFloat(req.MonthlyContribution))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Joined hive", service.ToMembershipResponse(member)))
}

// Leave godoc
// @Summary Leave the current hive
// @Tags hives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/hives/leave [post]
func (h *HiveHandler) Leave(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.hiveService.Leave(c.Context(), userID); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Left hive", nil))
}

// Membership godoc
// @Summary Get the current user's hive membership
// @Tags hives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/hives/membership [get]
func (h *HiveHandler) Membership(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	member, err := h.hiveService.Membership(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(service.ToMembershipResponse(member)))
}

// Progress godoc
// @Summary Get a hive's funding progress
// @Tags hives
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hive ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/hives/{id}/progress [get]
func (h *HiveHandler) Progress(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid hive id")
	}

	progress, err := h.hiveService.Progress(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(progress))
}

// Match godoc
// @Summary Find a matching hive
// @Description First active hive whose risk level and member incomes fit the user
// @Tags hives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/hives/match [get]
func (h *HiveHandler) Match(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	hive, err := h.hiveService.FindMatch(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if hive == nil {
		return c.JSON(dto.OKMessage("No matching hive found", nil))
	}

	return c.JSON(dto.OK(service.ToHiveResponse(hive)))
}
