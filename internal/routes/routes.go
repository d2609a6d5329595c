package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/surveyscape/backend/internal/config"
	"github.com/surveyscape/backend/internal/handlers"
	"github.com/surveyscape/backend/internal/middleware"
	"github.com/surveyscape/backend/internal/models"
	"gorm.io/gorm"
)

// Setup wires every route. Path shapes predate this service and are frozen
// by the deployed frontend, so several write endpoints live at the top
// level instead of under /api.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	surveyHandler *handlers.SurveyHandler,
	voteHandler *handlers.VoteHandler,
	paymentHandler *handlers.PaymentHandler,
	commentHandler *handlers.CommentHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/api/health", healthHandler.Check)

	// Token issuance gets a stricter limit: 10 req/min per IP
	app.Post("/jwt", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), authHandler.IssueToken)

	// Public
	app.Post("/users", authHandler.Register)
	app.Get("/userRole", authHandler.UserRole)
	app.Get("/allsurveys", surveyHandler.Published)
	app.Get("/api/most-voted-surveys", surveyHandler.MostVoted)
	app.Get("/api/latest-surveys", surveyHandler.Latest)
	app.Get("/comments", commentHandler.BySurvey)
	app.Post("/create-payment-intent", paymentHandler.CreateIntent)

	jwt := middleware.JWTProtected(cfg)
	surveyor := middleware.RoleRequired(db, cfg, models.RoleSurveyor)
	proUser := middleware.RoleRequired(db, cfg, models.RoleProUser)
	admin := middleware.RoleRequired(db, cfg, models.RoleAdmin)

	// Authenticated users
	app.Get("/detail", jwt, surveyHandler.Detail)
	app.Post("/submitVote", jwt, voteHandler.Submit)
	app.Post("/payment", jwt, paymentHandler.Record)
	app.Post("/report", jwt, reportHandler.Create)
	app.Get("/reports", jwt, reportHandler.Mine)

	// Commenting is a pro-user feature
	app.Post("/comment", jwt, proUser, commentHandler.Create)
	app.Get("/user/comments", jwt, proUser, commentHandler.ByName)

	// Surveyor
	app.Post("/surveyor/create", jwt, surveyor, surveyHandler.Create)
	app.Get("/surveyor/survey", jwt, surveyor, surveyHandler.Get)
	app.Post("/surveyor/update", jwt, surveyor, surveyHandler.Update)
	app.Get("/surveyor/allSurvey", jwt, surveyor, surveyHandler.Owned)

	// Publication control needs at least surveyor rank
	app.Get("/unpublished", jwt, surveyor, surveyHandler.Unpublished)
	app.Post("/handleSurveys", jwt, surveyor, surveyHandler.SetStatus)

	// Admin panel
	adminGroup := app.Group("/admin", jwt, admin)
	adminGroup.Get("/allUsers", adminHandler.AllUsers)
	adminGroup.Get("/votesAndPayments", adminHandler.VotesAndPayments)
	adminGroup.Post("/role", adminHandler.SetRole)
	adminGroup.Get("/reports", reportHandler.All)
	adminGroup.Put("/reports/:id", reportHandler.Action)
}
