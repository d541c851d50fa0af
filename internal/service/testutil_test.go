package service_test

import (
	"testing"
	"time"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"
	"go-cafe-pos/internal/service"
	"go-cafe-pos/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps the memory store alive for the test's lifetime.
func newTestDB(t *testing.T) *gorm.DB {
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

	if err := db.AutoMigrate(
		&model.User{}, &model.Session{}, &model.MenuItem{},
		&model.Sale{}, &model.SaleItem{}, &model.Expense{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type testEnv struct {
	db      *gorm.DB
	hub     *ws.Hub
	catalog service.CatalogService
	ledger  service.LedgerService
	expense service.ExpenseService
	report  service.ReportService
	auth    service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	hub := ws.NewHub()
	go hub.Run()

	menuRepo := repository.NewMenuItemRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	return &testEnv{
		db:      db,
		hub:     hub,
		catalog: service.NewCatalogService(menuRepo, db, hub),
		ledger:  service.NewLedgerService(saleRepo, menuRepo, db, hub),
		expense: service.NewExpenseService(expenseRepo, hub),
		report:  service.NewReportService(reportRepo, saleRepo),
		auth:    service.NewAuthService(userRepo, sessionRepo),
	}
}

func (e *testEnv) mustUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: "Test", Role: "admin"}
	if err := user.SetPassword("secret"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) mustMenuItem(t *testing.T, title string, price string) *model.MenuItem {
	t.Helper()
	item, err := e.catalog.CreateMenuItem(&service.MenuItemRequest{
		Title: title,
		Price: mustDecimal(t, price),
	})
	if err != nil {
		t.Fatalf("create menu item %q: %v", title, err)
	}
	return item
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(mustDecimal(t, want)) {
		t.Fatalf("expected %s, got %s", want, got.String())
	}
}

func backdate(days int) *time.Time {
	ts := time.Now().AddDate(0, 0, -days)
	return &ts
}
