package handlers

import (
	"errors"

	"neowealth/internal/dto"
	"neowealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookHandler receives bank SMS forwarded by an external gateway. The
// gateway authenticates with a shared key instead of a user JWT, so the
// payload carries the user id explicitly.
type WebhookHandler struct {
	txService *service.TransactionService
	apiKey    string
	logger    *zap.Logger
}

func NewWebhookHandler(txService *service.TransactionService, apiKey string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		txService: txService,
		apiKey:    apiKey,
		logger:    logger,
	}
}

// IngestSMS godoc
// @Summary Ingest a bank SMS
// @Description Parses the message and records the transaction it describes, if any
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param request body dto.IngestSMSRequest true "SMS payload"
// @Success 201 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 401 {object} dto.Envelope
// @Router /webhooks/sms [post]
func (h *WebhookHandler) IngestSMS(c *fiber.Ctx) error {
	if h.apiKey == "" || c.Get("X-API-Key") != h.apiKey {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Invalid API key"))
	}

	var req dto.IngestSMSRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	record, classification, err := h.txService.IngestFreeText(c.Context(), userID, req.SMSText, req.Sender)
	if err != nil {
		if errors.Is(err, service.ErrNoTransactionInText) {
			return c.JSON(dto.Envelope{Success: false, Message: "No transaction found in SMS"})
		}
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Transaction recorded from SMS", fiber.Map{
		"transaction":    service.ToTransactionResponse(record),
		"classification": classification,
	}))
}
