package service_test

import (
	"errors"
	"testing"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/service"

	"github.com/google/uuid"
)

func TestCreateMenuItem_Validation(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.catalog.CreateMenuItem(&service.MenuItemRequest{Title: "", Price: mustDecimal(t, "10")}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := env.catalog.CreateMenuItem(&service.MenuItemRequest{Title: "Tea", Price: mustDecimal(t, "-1")}); err == nil {
		t.Fatal("expected error for negative price")
	}

	var count int64
	env.db.Model(&model.MenuItem{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing persisted, got %d items", count)
	}
}

func TestUpdateMenuItem_DoesNotTouchPastSales(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "owner@test.local")
	tea := env.mustMenuItem(t, "Milk Tea", "100")

	sale, err := env.ledger.CreateSale(user.ID, &service.CreateSaleRequest{
		TableNumber: "1",
		Space:       model.SpaceInside,
		Items:       []service.SaleItemInput{{MenuItemID: tea.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if _, err := env.catalog.UpdateMenuItem(tea.ID, &service.MenuItemRequest{
		Title: "Milk Tea",
		Price: mustDecimal(t, "120"),
	}); err != nil {
		t.Fatalf("UpdateMenuItem: %v", err)
	}

	var reloaded model.Sale
	if err := env.db.First(&reloaded, "id = ?", sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	assertDecimal(t, reloaded.Total, "200") // price change is not retroactive
}

func TestDeleteMenuItem_NotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.catalog.DeleteMenuItem(uuid.New()); !errors.Is(err, service.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}

// The full cascade scenario: a sale of A x2 + B x1 (total 250). Deleting B
// keeps the sale alive with total 200; deleting A then removes the sale.
func TestDeleteMenuItem_CascadeScenario(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "owner@test.local")
	itemA := env.mustMenuItem(t, "Item A", "100")
	itemB := env.mustMenuItem(t, "Item B", "50")

	sale, err := env.ledger.CreateSale(user.ID, &service.CreateSaleRequest{
		TableNumber: "7",
		Space:       model.SpaceInside,
		Items: []service.SaleItemInput{
			{MenuItemID: itemA.ID, Quantity: 2},
			{MenuItemID: itemB.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	assertDecimal(t, sale.Total, "250")

	// Delete B: the sale survives with one item and a recomputed total
	if _, err := env.catalog.DeleteMenuItem(itemB.ID); err != nil {
		t.Fatalf("DeleteMenuItem(B): %v", err)
	}

	var reloaded model.Sale
	if err := env.db.Preload("Items").First(&reloaded, "id = ?", sale.ID).Error; err != nil {
		t.Fatalf("expected sale to survive: %v", err)
	}
	assertDecimal(t, reloaded.Total, "200")
	if len(reloaded.Items) != 1 || reloaded.Items[0].MenuItemID != itemA.ID {
		t.Fatalf("expected only the A line to remain")
	}
	var menuCount int64
	env.db.Model(&model.MenuItem{}).Where("id = ?", itemB.ID).Count(&menuCount)
	if menuCount != 0 {
		t.Fatal("expected menu item B removed")
	}

	// Delete A: the sale is now empty and must go with it
	if _, err := env.catalog.DeleteMenuItem(itemA.ID); err != nil {
		t.Fatalf("DeleteMenuItem(A): %v", err)
	}

	var sales, items, menu int64
	env.db.Model(&model.Sale{}).Count(&sales)
	env.db.Model(&model.SaleItem{}).Count(&items)
	env.db.Model(&model.MenuItem{}).Count(&menu)
	if sales != 0 || items != 0 || menu != 0 {
		t.Fatalf("expected empty ledger and catalog, got %d/%d/%d", sales, items, menu)
	}
}

// Two sales reference the same item: one becomes empty and is deleted, the
// other keeps its remaining line with a recomputed total.
func TestDeleteMenuItem_CascadeAcrossSales(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "owner@test.local")
	coffee := env.mustMenuItem(t, "Coffee", "80")
	cake := env.mustMenuItem(t, "Cake", "120")

	onlyCoffee, err := env.ledger.CreateSale(user.ID, &service.CreateSaleRequest{
		TableNumber: "1",
		Space:       model.SpaceInside,
		Items:       []service.SaleItemInput{{MenuItemID: coffee.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	mixed, err := env.ledger.CreateSale(user.ID, &service.CreateSaleRequest{
		TableNumber: "2",
		Space:       model.SpaceOutside,
		Items: []service.SaleItemInput{
			{MenuItemID: coffee.ID, Quantity: 1},
			{MenuItemID: cake.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if _, err := env.catalog.DeleteMenuItem(coffee.ID); err != nil {
		t.Fatalf("DeleteMenuItem: %v", err)
	}

	var gone int64
	env.db.Model(&model.Sale{}).Where("id = ?", onlyCoffee.ID).Count(&gone)
	if gone != 0 {
		t.Fatal("expected the coffee-only sale removed")
	}

	var survivor model.Sale
	if err := env.db.Preload("Items").First(&survivor, "id = ?", mixed.ID).Error; err != nil {
		t.Fatalf("expected mixed sale to survive: %v", err)
	}
	assertDecimal(t, survivor.Total, "240")
	if len(survivor.Items) != 1 || survivor.Items[0].MenuItemID != cake.ID {
		t.Fatal("expected only the cake line to remain")
	}
}

// No orphans in any reachable state: after a cascade, every surviving sale
// item resolves to a live menu item and every sale still has items.
func TestDeleteMenuItem_NoOrphans(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "owner@test.local")
	itemA := env.mustMenuItem(t, "Item A", "10")
	itemB := env.mustMenuItem(t, "Item B", "20")

	for i := 0; i < 3; i++ {
		_, err := env.ledger.CreateSale(user.ID, &service.CreateSaleRequest{
			TableNumber: "1",
			Space:       model.SpaceInside,
			Items: []service.SaleItemInput{
				{MenuItemID: itemA.ID, Quantity: 1},
				{MenuItemID: itemB.ID, Quantity: 1},
			},
		})
		if err != nil {
			t.Fatalf("CreateSale: %v", err)
		}
	}

	if _, err := env.catalog.DeleteMenuItem(itemA.ID); err != nil {
		t.Fatalf("DeleteMenuItem: %v", err)
	}

	var orphanItems int64
	env.db.Model(&model.SaleItem{}).
		Joins("LEFT JOIN menu_items ON menu_items.id = sale_items.menu_item_id AND menu_items.deleted_at IS NULL").
		Where("menu_items.id IS NULL").
		Count(&orphanItems)
	if orphanItems != 0 {
		t.Fatalf("found %d sale items referencing a missing menu item", orphanItems)
	}

	var emptySales int64
	env.db.Model(&model.Sale{}).
		Where("NOT EXISTS (SELECT 1 FROM sale_items WHERE sale_items.sale_id = sales.id AND sale_items.deleted_at IS NULL)").
		Count(&emptySales)
	if emptySales != 0 {
		t.Fatalf("found %d sales with zero items", emptySales)
	}
}
