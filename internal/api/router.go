package api

import (
	"neowealth/docs"
	"neowealth/internal/api/handlers"
	"neowealth/pkg/auth"
	"neowealth/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Wallet      *handlers.WalletHandler
	Transaction *handlers.TransactionHandler
	Goal        *handlers.GoalHandler
	Hive        *handlers.HiveHandler
	Insight     *handlers.InsightHandler
	Webhook     *handlers.WebhookHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Gateway webhook (API-key auth)
	app.Post("/webhooks/sms", h.Webhook.IngestSMS)

	// Protected routes
	protected := v1.Group("", middleware.AuthMiddleware(jwtManager, appLogger))

	users := protected.Group("/users")
	users.Get("/profile", h.User.Profile)
	users.Put("/profile", h.User.UpdateProfile)
	users.Get("/dashboard", h.User.Dashboard)

	wallet := protected.Group("/wallet")
	wallet.Get("", h.Wallet.GetWallet)
	wallet.Post("/earn", h.Wallet.Earn)
	wallet.Post("/spend", h.Wallet.Spend)
	wallet.Post("/transfer", h.Wallet.Transfer)
	wallet.Get("/daily-reward", h.Wallet.DailyRewardPreview)
	wallet.Post("/daily-reward", h.Wallet.ClaimDailyReward)
	wallet.Get("/rewards", h.Wallet.RewardHistory)

	transactions := protected.Group("/transactions")
	transactions.Post("", h.Transaction.Create)
	transactions.Get("", h.Transaction.List)
	transactions.Get("/analytics", h.Transaction.Analytics)
	transactions.Post("/classify", h.Transaction.Classify)
	transactions.Get("/:id", h.Transaction.Get)
	transactions.Put("/:id", h.Transaction.Update)
	transactions.Delete("/:id", h.Transaction.Delete)

	goals := protected.Group("/goals")
	goals.Post("", h.Goal.Create)
	goals.Get("", h.Goal.List)
	goals.Post("/analyze", h.Goal.Analyze)
	goals.Get("/suggestions", h.Goal.Suggestions)
	goals.Get("/:id", h.Goal.Get)
	goals.Put("/:id", h.Goal.Update)
	goals.Delete("/:id", h.Goal.Delete)
	goals.Post("/:id/contribute", h.Goal.Contribute)
	goals.Get("/:id/milestones", h.Goal.Milestones)

	hives := protected.Group("/hives")
	hives.Post("", h.Hive.Create)
	hives.Get("", h.Hive.List)
	hives.Post("/join", h.Hive.Join)
	hives.Post("/leave", h.Hive.Leave)
	hives.Get("/membership", h.Hive.Membership)
	hives.Get("/match", h.Hive.Match)
	hives.Get("/:id", h.Hive.Get)
	hives.Get("/:id/progress", h.Hive.Progress)

	insights := protected.Group("/insights")
	insights.Get("/behavior", h.Insight.BehaviorAnalysis)
	insights.Get("/nudges", h.Insight.Nudges)
	insights.Get("/spending", h.Insight.SpendingInsights)
	insights.Get("/health", h.Insight.FinancialHealth)
	insights.Post("/events", h.Insight.DispatchEvent)

	return app
}
