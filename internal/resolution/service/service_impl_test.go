package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gwak2837/shabangnet-sub003/internal/events"
	manufacturerrepo "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/repository"
	orderrepo "github.com/gwak2837/shabangnet-sub003/internal/order/repository"
	resolutiondomain "github.com/gwak2837/shabangnet-sub003/internal/resolution/domain"
	resolutionrepo "github.com/gwak2837/shabangnet-sub003/internal/resolution/repository"
)

func TestResolveOptionMappingWinsOverProduct(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	insertManufacturer(t, db, 100, "Acme")
	insertManufacturer(t, db, 200, "Beta")

	if _, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode:    "SKU-1",
		ManufacturerID: idPtr(100),
	}); err != nil {
		t.Fatalf("link product: %v", err)
	}
	if err := svc.LinkOption(context.Background(), resolutiondomain.LinkOptionRequest{
		ProductCode:    "SKU-1",
		OptionName:     "Red / Large",
		ManufacturerID: 200,
	}); err != nil {
		t.Fatalf("link option: %v", err)
	}

	got, err := svc.Resolve(context.Background(), "SKU-1", "Red  /  Large [2]")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || *got != 200 {
		t.Fatalf("expected option mapping to win with 200, got %v", got)
	}

	got, err = svc.Resolve(context.Background(), "SKU-1", "Blue / Small")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || *got != 100 {
		t.Fatalf("expected product fallback to 100, got %v", got)
	}
}

func TestResolveUnknownCodeReturnsNil(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	got, err := svc.Resolve(context.Background(), "NOPE", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected unresolved, got %v", *got)
	}
}

func TestResolveBlankCodeRejected(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Resolve(context.Background(), "   ", "anything")
	if !errors.Is(err, resolutiondomain.ErrInvalidProductCode) {
		t.Fatalf("expected invalid product code, got %v", err)
	}
}

func TestLinkProductBackfillsEligibleOrders(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	insertManufacturer(t, db, 100, "Acme")
	insertOrder(t, db, testOrder{id: 1, orderNo: "A-1", productCode: "SKU-1", status: "pending"})
	insertOrder(t, db, testOrder{id: 2, orderNo: "A-2", productCode: "  sku-1 ", status: "processing"})
	insertOrder(t, db, testOrder{id: 3, orderNo: "A-3", productCode: "SKU-1", status: "completed"})
	insertOrder(t, db, testOrder{id: 4, orderNo: "A-4", productCode: "SKU-1", status: "pending", excluded: true})
	insertOrder(t, db, testOrder{id: 5, orderNo: "A-5", productCode: "OTHER", status: "pending"})

	resp, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode:    "SKU-1",
		ManufacturerID: idPtr(100),
	})
	if err != nil {
		t.Fatalf("link product: %v", err)
	}
	if resp.UpdatedOrderCount != 2 {
		t.Fatalf("expected 2 backfilled orders, got %d", resp.UpdatedOrderCount)
	}

	assertOrderManufacturer(t, db, 1, idPtr(100), "Acme")
	assertOrderManufacturer(t, db, 2, idPtr(100), "Acme")
	assertOrderManufacturer(t, db, 3, nil, "")
	assertOrderManufacturer(t, db, 4, nil, "")
	assertOrderManufacturer(t, db, 5, nil, "")
}

func TestLinkProductSecondRunTouchesNothing(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	insertManufacturer(t, db, 100, "Acme")
	insertOrder(t, db, testOrder{id: 1, orderNo: "A-1", productCode: "SKU-1", status: "pending"})

	first, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode:    "SKU-1",
		ManufacturerID: idPtr(100),
	})
	if err != nil {
		t.Fatalf("first link: %v", err)
	}
	if first.UpdatedOrderCount != 1 {
		t.Fatalf("expected 1 backfilled order, got %d", first.UpdatedOrderCount)
	}

	second, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode:    "SKU-1",
		ManufacturerID: idPtr(100),
	})
	if err != nil {
		t.Fatalf("second link: %v", err)
	}
	if second.UpdatedOrderCount != 0 {
		t.Fatalf("expected idempotent rerun, got %d", second.UpdatedOrderCount)
	}
}

func TestLinkProductUnknownManufacturer(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode:    "SKU-1",
		ManufacturerID: idPtr(999),
	})
	if !errors.Is(err, resolutiondomain.ErrManufacturerNotFound) {
		t.Fatalf("expected manufacturer not found, got %v", err)
	}
}

func TestUnlinkProductLeavesOrdersAssigned(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	insertManufacturer(t, db, 100, "Acme")
	insertOrder(t, db, testOrder{id: 1, orderNo: "A-1", productCode: "SKU-1", status: "pending"})

	if _, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode:    "SKU-1",
		ManufacturerID: idPtr(100),
	}); err != nil {
		t.Fatalf("link product: %v", err)
	}

	resp, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode: "SKU-1",
	})
	if err != nil {
		t.Fatalf("unlink product: %v", err)
	}
	if resp.UpdatedOrderCount != 0 {
		t.Fatalf("unlink must not touch orders, got %d", resp.UpdatedOrderCount)
	}

	assertOrderManufacturer(t, db, 1, idPtr(100), "Acme")

	got, err := svc.Resolve(context.Background(), "SKU-1", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected unresolved after unlink, got %v", *got)
	}

	var unlinked int64
	err = db.Raw(`SELECT COUNT(1) FROM outbox_events WHERE event_type = 'product.unlinked'`).Scan(&unlinked).Error
	if err != nil {
		t.Fatalf("count outbox events: %v", err)
	}
	if unlinked != 1 {
		t.Fatalf("expected one product.unlinked event, got %d", unlinked)
	}
}

func TestUnlinkUnknownProductCreatesNoRow(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	resp, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode: "NEVER-SEEN",
	})
	if err != nil {
		t.Fatalf("unlink unknown product: %v", err)
	}
	if resp.UpdatedOrderCount != 0 {
		t.Fatalf("expected no order updates, got %d", resp.UpdatedOrderCount)
	}

	var products int64
	if err := db.Raw(`SELECT COUNT(1) FROM products`).Scan(&products).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if products != 0 {
		t.Fatalf("unlink must not create a product row, got %d", products)
	}

	var published int64
	if err := db.Raw(`SELECT COUNT(1) FROM outbox_events`).Scan(&published).Error; err != nil {
		t.Fatalf("count outbox events: %v", err)
	}
	if published != 0 {
		t.Fatalf("unlink of an unknown code must not publish, got %d events", published)
	}
}

func TestUnlinkOptionRemovesOnlyTheMapping(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	insertManufacturer(t, db, 100, "Acme")
	insertManufacturer(t, db, 200, "Beta")

	if _, err := svc.LinkProduct(context.Background(), resolutiondomain.LinkProductRequest{
		ProductCode:    "SKU-1",
		ManufacturerID: idPtr(100),
	}); err != nil {
		t.Fatalf("link product: %v", err)
	}
	if err := svc.LinkOption(context.Background(), resolutiondomain.LinkOptionRequest{
		ProductCode:    "SKU-1",
		OptionName:     "Red / Large",
		ManufacturerID: 200,
	}); err != nil {
		t.Fatalf("link option: %v", err)
	}

	if err := svc.UnlinkOption(context.Background(), "SKU-1", "Red / Large [3]"); err != nil {
		t.Fatalf("unlink option: %v", err)
	}

	got, err := svc.Resolve(context.Background(), "SKU-1", "Red / Large")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || *got != 100 {
		t.Fatalf("expected product fallback after unlink, got %v", got)
	}
}

func TestLinkOptionUnknownManufacturer(t *testing.T) {
	db := setupResolutionTestDB(t)
	svc := newTestService(t, db)

	err := svc.LinkOption(context.Background(), resolutiondomain.LinkOptionRequest{
		ProductCode:    "SKU-1",
		OptionName:     "Red",
		ManufacturerID: 999,
	})
	if !errors.Is(err, resolutiondomain.ErrManufacturerNotFound) {
		t.Fatalf("expected manufacturer not found, got %v", err)
	}
}

type testOrder struct {
	id          int64
	orderNo     string
	productCode string
	status      string
	excluded    bool
}

func newTestService(t *testing.T, db *gorm.DB) resolutiondomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return &Service{
		db:               db,
		log:              zap.NewNop(),
		genID:            node,
		repo:             resolutionrepo.Provide(),
		orderRepo:        orderrepo.Provide(),
		manufacturerRepo: manufacturerrepo.Provide(),
		outbox:           events.NewOutbox(db, node),
	}
}

func setupResolutionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS manufacturers (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			order_count BIGINT NOT NULL DEFAULT 0,
			last_order_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			manufacturer_id BIGINT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS option_mappings (
			id INTEGER PRIMARY KEY,
			product_code TEXT NOT NULL,
			option_name TEXT NOT NULL,
			manufacturer_id BIGINT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (product_code, option_name)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY,
			order_no TEXT NOT NULL UNIQUE,
			product_code TEXT NOT NULL,
			product_name TEXT NOT NULL DEFAULT '',
			option_name TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 1,
			payment_amount BIGINT NOT NULL DEFAULT 0,
			manufacturer_id BIGINT,
			manufacturer_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			fulfillment_type TEXT NOT NULL DEFAULT '',
			is_excluded BOOLEAN NOT NULL DEFAULT FALSE,
			exclusion_reason TEXT,
			courier_code TEXT,
			tracking_no TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id INTEGER PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload TEXT,
			dedupe_key TEXT,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_outbox_events_dedupe_key
			ON outbox_events (dedupe_key) WHERE dedupe_key IS NOT NULL`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("ddl: %v", err)
		}
	}
	return db
}

func insertManufacturer(t *testing.T, db *gorm.DB, id int64, name string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO manufacturers (id, name) VALUES (?, ?)`,
		id,
		name,
	).Error; err != nil {
		t.Fatalf("insert manufacturer: %v", err)
	}
}

func insertOrder(t *testing.T, db *gorm.DB, o testOrder) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO orders (id, order_no, product_code, status, is_excluded)
		 VALUES (?, ?, ?, ?, ?)`,
		o.id,
		o.orderNo,
		o.productCode,
		o.status,
		o.excluded,
	).Error; err != nil {
		t.Fatalf("insert order: %v", err)
	}
}

func assertOrderManufacturer(t *testing.T, db *gorm.DB, orderID int64, wantID *snowflake.ID, wantName string) {
	t.Helper()
	var row struct {
		ManufacturerID   *snowflake.ID
		ManufacturerName string
	}
	if err := db.Raw(
		`SELECT manufacturer_id, manufacturer_name FROM orders WHERE id = ?`,
		orderID,
	).Scan(&row).Error; err != nil {
		t.Fatalf("read order %d: %v", orderID, err)
	}
	if (row.ManufacturerID == nil) != (wantID == nil) {
		t.Fatalf("order %d manufacturer_id = %v, want %v", orderID, row.ManufacturerID, wantID)
	}
	if wantID != nil && *row.ManufacturerID != *wantID {
		t.Fatalf("order %d manufacturer_id = %v, want %v", orderID, *row.ManufacturerID, *wantID)
	}
	if row.ManufacturerName != wantName {
		t.Fatalf("order %d manufacturer_name = %q, want %q", orderID, row.ManufacturerName, wantName)
	}
}

func idPtr(v int64) *snowflake.ID {
	id := snowflake.ID(v)
	return &id
}
