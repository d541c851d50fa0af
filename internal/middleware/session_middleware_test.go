package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cafe-pos/internal/middleware"
	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"
	"go-cafe-pos/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSessionApp wires RequireSession in front of a plain API route and the
// websocket upgrade path, the same shape cmd/api uses. Returns a valid
// session token for the seeded user.
func newSessionApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Session{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	user := &model.User{Email: "owner@test.local", Name: "Test", Role: "admin"}
	if err := user.SetPassword("secret"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	authService := service.NewAuthService(repository.NewUserRepo(db), repository.NewSessionRepo(db))
	result, err := authService.Login("owner@test.local", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	app := fiber.New()
	app.Get("/api/v1/protected", middleware.RequireSession(authService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	app.Use("/ws", middleware.RequireSession(authService), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})

	return app, result.Token
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func TestRequireSession_NoCookie(t *testing.T) {
	app, _ := newSessionApp(t)

	req := httptest.NewRequest("GET", "/api/v1/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 without cookie, got %d", resp.StatusCode)
	}
}

func TestRequireSession_UnknownToken(t *testing.T) {
	app, _ := newSessionApp(t)

	req := httptest.NewRequest("GET", "/api/v1/protected", nil)
	req.AddCookie(sessionCookie("not-a-real-token"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 for unknown token, got %d", resp.StatusCode)
	}
}

func TestRequireSession_ValidCookie(t *testing.T) {
	app, token := newSessionApp(t)

	req := httptest.NewRequest("GET", "/api/v1/protected", nil)
	req.AddCookie(sessionCookie(token))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 with valid session, got %d", resp.StatusCode)
	}
}

// The websocket path carries the same broadcasts the API gates, so an
// anonymous client must be rejected before the upgrade check even runs.
func TestWebsocketPath_RequiresSession(t *testing.T) {
	app, token := newSessionApp(t)

	req := httptest.NewRequest("GET", "/ws", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}

	// With a session but no upgrade headers the gate passes and the
	// upgrade check answers instead
	req = httptest.NewRequest("GET", "/ws", nil)
	req.AddCookie(sessionCookie(token))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected %d past the session gate, got %d", fiber.StatusUpgradeRequired, resp.StatusCode)
	}
}
