package handlers

import (
	"neowealth/internal/dto"
	"neowealth/internal/repository"
	"neowealth/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WalletHandler struct {
	walletService *service.WalletService
	txService     *service.TransactionService
	logger        *zap.Logger
}

func NewWalletHandler(walletService *service.WalletService, txService *service.TransactionService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		txService:     txService,
		logger:        logger,
	}
}

// GetWallet godoc
// @Summary Get the current user's wallet
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/wallet [get]
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	wallet, err := h.walletService.GetWallet(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(service.ToWalletResponse(wallet)))
}

// Earn godoc
// @Summary Credit NeoCoins to the wallet
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EarnRequest true "Earn request"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /api/v1/wallet/earn [post]
func (h *WalletHandler) Earn(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.EarnRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	wallet, err := h.walletService.Earn(c.Context(), userID, decimal.NewFromFloat(req.Amount), "NeoCoin reward: "+req.Reason)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Coins credited", service.ToWalletResponse(wallet)))
}

// Spend godoc
// @Summary Spend NeoCoins from the wallet
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SpendRequest true "Spend request"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Router /api/v1/wallet/spend [post]
func (h *WalletHandler) Spend(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SpendRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	wallet, err := h.walletService.Spend(c.Context(), userID, decimal.NewFromFloat(req.Amount), req.Description)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Coins spent", service.ToWalletResponse(wallet)))
}

// Transfer godoc
// @Summary Transfer NeoCoins to another user
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TransferRequest true "Transfer request"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Router /api/v1/wallet/transfer [post]
func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return badRequest(c, "Invalid recipient id")
	}

	sender, _, err := h.walletService.Transfer(c.Context(), userID, recipientID, decimal.NewFromFloat(req.Amount), req.Message)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OKMessage("Transfer complete", dto.TransferResponse{
		SenderBalance: sender.NeoCoins.InexactFloat64(),
		Transferred:   req.Amount,
	}))
}

// ClaimDailyReward godoc
// @Summary Claim the daily login reward
// @Description At most one reward per UTC day; streak activity raises the amount
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/wallet/daily-reward [post]
func (h *WalletHandler) ClaimDailyReward(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	amount, awarded, err := h.walletService.AwardDailyReward(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	resp := dto.DailyRewardResponse{
		Awarded: awarded,
		Amount:  amount.InexactFloat64(),
	}
	if awarded {
		if wallet, err := h.walletService.GetWallet(c.Context(), userID); err == nil {
			resp.NewBalance = wallet.NeoCoins.InexactFloat64()
		}
		return c.JSON(dto.OKMessage("Daily reward claimed", resp))
	}
	return c.JSON(dto.OKMessage("Daily reward already claimed today", resp))
}

// DailyRewardPreview godoc
// @Summary Preview today's daily reward without claiming it
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope
// @Router /api/v1/wallet/daily-reward [get]
func (h *WalletHandler) DailyRewardPreview(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	amount, err := h.walletService.CalculateDailyRewardFor(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.OK(dto.DailyRewardResponse{
		Awarded: false,
		Amount:  amount.InexactFloat64(),
	}))
}

// RewardHistory godoc
// @Summary List reward transactions
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.Envelope
// @Router /api/v1/wallet/rewards [get]
func (h *WalletHandler) RewardHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	rewards, total, err := h.txService.RewardHistory(c.Context(), userID, page, limit)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	items := make([]dto.TransactionResponse, 0, len(rewards))
	for _, tx := range rewards {
		items = append(items, service.ToTransactionResponse(tx))
	}

	return c.JSON(dto.OK(dto.TransactionListResponse{
		Transactions: items,
		Pagination:   paginationFor(total, page, limit),
	}))
}

func paginationFor(total, page, limit int) dto.Pagination {
	if limit <= 0 {
		limit = repository.DefaultPageSize
	}
	pages := (total + limit - 1) / limit
	return dto.Pagination{Total: total, Page: page, Pages: pages}
}
