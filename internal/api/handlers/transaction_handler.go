package handlers

import (
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/repository"
	"neowealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService  *service.TransactionService
	classifier *service.ClassifierService
	logger     *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, classifier *service.ClassifierService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService:  txService,
		classifier: classifier,
		logger:     logger,
	}
}

// Create godoc
// @Summary Record a transaction
// @Description Creates the transaction and applies cash balance and NeoCoin cashback in one unit
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.txService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Transaction recorded", service.ToTransactionResponse(record)))
}

// List godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param type query string false "Transaction type"
// @Param category query string false "Category"
// @Param start_date query string false "RFC3339 start date"
// @Param end_date query string false "RFC3339 end date"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.Envelope
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	filter := repository.TransactionFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", repository.DefaultPageSize),
	}
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "Invalid start_date")
		}
		filter.StartDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "Invalid end_date")
		}
		filter.EndDate = parsed
	}

	transactions, total, err := h.txService.List(c.Context(), userID, filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	items := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		items = append(items, service.ToTransactionResponse(tx))
	}

	return c.JSON(dto.OK(dto.TransactionListResponse{
		Transactions: items,
		Pagination:   paginationFor(total, filter.Page, filter.Limit),
	}))
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	record, err := h.txService.Get(c.Context(), id, userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(service.ToTransactionResponse(record)))
}

// Update godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.txService.Update(c.Context(), id, userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Transaction updated", service.ToTransactionResponse(record)))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	if err := h.txService.Delete(c.Context(), id, userID); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Transaction deleted", nil))
}

// Analytics godoc
// @Summary Transaction analytics for a period
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param period query string false "week, month or year" default(month)
// @Success 200 {object} dto.Envelope
// @Router /api/v1/transactions/analytics [get]
func (h *TransactionHandler) Analytics(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	analytics, err := h.txService.Analytics(c.Context(), userID, c.Query("period", "month"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(analytics))
}

// Classify godoc
// @Summary Classify a transaction description
// @Description Pattern-based categorization with confidence, risk level and tags
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClassifyRequest true "Text to classify"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /api/v1/transactions/classify [post]
func (h *TransactionHandler) Classify(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	classification, err := h.classifier.Classify(req.Description, decimal.NewFromFloat(req.Amount).Abs(), req.Sender)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(classification))
}
