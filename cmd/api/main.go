package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-cafe-pos/internal/handler"
	"go-cafe-pos/internal/middleware"
	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"
	"go-cafe-pos/internal/service"
	"go-cafe-pos/internal/ws"
	"go-cafe-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool once the schema settles)
	db.AutoMigrate(&model.User{}, &model.Session{}, &model.MenuItem{}, &model.Sale{}, &model.SaleItem{}, &model.Expense{})

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	menuRepo := repository.NewMenuItemRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo, sessionRepo)
	catalogService := service.NewCatalogService(menuRepo, db, wsHub)
	ledgerService := service.NewLedgerService(saleRepo, menuRepo, db, wsHub)
	expenseService := service.NewExpenseService(expenseRepo, wsHub)
	reportService := service.NewReportService(reportRepo, saleRepo)

	authHandler := handler.NewAuthHandler(authService)
	menuHandler := handler.NewMenuHandler(catalogService)
	saleHandler := handler.NewSaleHandler(ledgerService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Cafe POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("CORS_ORIGIN"),
		AllowCredentials: true,
	}))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/session", authHandler.Session)

	// ============ PROTECTED ROUTES ============
	// All routes below require a valid session cookie
	protected := api.Group("", middleware.RequireSession(authService))

	// Menu Catalog (shared across users)
	protected.Get("/menu-items", menuHandler.GetMenuItems)
	protected.Post("/menu-items", menuHandler.CreateMenuItem)
	protected.Put("/menu-items/:id", menuHandler.UpdateMenuItem)
	protected.Delete("/menu-items/:id", menuHandler.DeleteMenuItem)

	// Sale Ledger (user-scoped)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Put("/sales/:id", saleHandler.UpdateSale)
	protected.Patch("/sales/:id", saleHandler.SetPaidStatus)
	protected.Delete("/sales/:id", saleHandler.DeleteSale)
	protected.Get("/sale-items", saleHandler.GetSaleItems)

	// Expenses (user-scoped)
	protected.Get("/expenses", expenseHandler.GetExpenses)
	protected.Post("/expenses", expenseHandler.CreateExpense)
	protected.Put("/expenses/:id", expenseHandler.UpdateExpense)
	protected.Delete("/expenses/:id", expenseHandler.DeleteExpense)

	// Account self-service
	protected.Put("/user/details", authHandler.UpdateDetails)

	// Dashboard & report export
	protected.Get("/dashboard/summary", reportHandler.GetDashboardSummary)
	protected.Get("/reports/export/xlsx", reportHandler.ExportExcel)
	protected.Get("/reports/export/pdf", reportHandler.ExportPDF)

	// WebSocket Route (live dashboard feed). Broadcasts carry full sale
	// payloads, so the upgrade sits behind the same session gate as the API.
	app.Use("/ws", middleware.RequireSession(authService), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}

// seedAdmin creates the default admin account if it doesn't exist yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@gmail.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	admin := &model.User{
		Email: email,
		Name:  "Admin",
		Role:  "admin",
	}
	if err := admin.SetPassword(password); err != nil {
		logrus.WithError(err).Warn("failed to hash admin password")
		return
	}

	if err := userRepo.Create(admin); err != nil {
		logrus.WithError(err).Warn("failed to create admin user")
		return
	}
	logrus.WithField("email", email).Info("admin user created")
}
