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

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
	courierrepo "github.com/gwak2837/shabangnet-sub003/internal/courier/repository"
	courierservice "github.com/gwak2837/shabangnet-sub003/internal/courier/service"
	"github.com/gwak2837/shabangnet-sub003/internal/events"
	manufacturerrepo "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/repository"
	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
	orderrepo "github.com/gwak2837/shabangnet-sub003/internal/order/repository"
	reconciliationdomain "github.com/gwak2837/shabangnet-sub003/internal/reconciliation/domain"
)

func TestReconcileMixedOutcomes(t *testing.T) {
	db := setupReconcileTestDB(t)
	svc := newTestService(t, db, orderrepo.Provide())

	insertManufacturer(t, db, 100, "Acme")
	insertCourier(t, db, 10, "CJGLS", "CJ대한통운", `["CJ택배"]`)
	insertOrder(t, db, 1, "A-1")
	insertOrder(t, db, 2, "A-2")

	resp, err := svc.Reconcile(context.Background(), reconciliationdomain.ReconcileRequest{
		ManufacturerID: 100,
		Rows: []reconciliationdomain.InvoiceRow{
			{OrderNo: " A-1 ", CourierName: "cj택배", TrackingNo: " 123456 "},
			{OrderNo: "MISSING", CourierName: "CJ대한통운", TrackingNo: "222"},
			{OrderNo: "A-2", CourierName: "어디택배", TrackingNo: "333"},
		},
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if resp.AppliedCount != 1 {
		t.Fatalf("expected 1 applied row, got %d", resp.AppliedCount)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 row results, got %d", len(resp.Results))
	}

	if resp.Results[0].Outcome != reconciliationdomain.RowOutcomeSuccess {
		t.Fatalf("row 0: expected success, got %s", resp.Results[0].Outcome)
	}
	if resp.Results[0].CourierCode != "CJGLS" {
		t.Fatalf("row 0: expected CJGLS, got %q", resp.Results[0].CourierCode)
	}
	if resp.Results[1].Outcome != reconciliationdomain.RowOutcomeOrderNotFound {
		t.Fatalf("row 1: expected order_not_found, got %s", resp.Results[1].Outcome)
	}
	if resp.Results[2].Outcome != reconciliationdomain.RowOutcomeCourierError {
		t.Fatalf("row 2: expected courier_error, got %s", resp.Results[2].Outcome)
	}
	if resp.Results[2].UnrecognizedCourier != "어디택배" {
		t.Fatalf("row 2: expected original courier text, got %q", resp.Results[2].UnrecognizedCourier)
	}

	assertTracking(t, db, 1, strPtr("CJGLS"), strPtr("123456"))
	assertTracking(t, db, 2, nil, nil)
}

func TestReconcileIsRepeatable(t *testing.T) {
	db := setupReconcileTestDB(t)
	svc := newTestService(t, db, orderrepo.Provide())

	insertManufacturer(t, db, 100, "Acme")
	insertCourier(t, db, 10, "HANJIN", "한진택배", `[]`)
	insertOrder(t, db, 1, "A-1")

	req := reconciliationdomain.ReconcileRequest{
		ManufacturerID: 100,
		Rows: []reconciliationdomain.InvoiceRow{
			{OrderNo: "A-1", CourierName: "한진택배", TrackingNo: "999"},
		},
	}

	for run := 0; run < 2; run++ {
		resp, err := svc.Reconcile(context.Background(), req)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if resp.AppliedCount != 1 {
			t.Fatalf("run %d: expected 1 applied row, got %d", run, resp.AppliedCount)
		}
		assertTracking(t, db, 1, strPtr("HANJIN"), strPtr("999"))
	}
}

func TestReconcileUnknownManufacturer(t *testing.T) {
	db := setupReconcileTestDB(t)
	svc := newTestService(t, db, orderrepo.Provide())

	_, err := svc.Reconcile(context.Background(), reconciliationdomain.ReconcileRequest{
		ManufacturerID: 404,
	})
	if !errors.Is(err, reconciliationdomain.ErrManufacturerNotFound) {
		t.Fatalf("expected manufacturer not found, got %v", err)
	}
}

func TestReconcileZeroManufacturer(t *testing.T) {
	db := setupReconcileTestDB(t)
	svc := newTestService(t, db, orderrepo.Provide())

	_, err := svc.Reconcile(context.Background(), reconciliationdomain.ReconcileRequest{})
	if !errors.Is(err, reconciliationdomain.ErrInvalidManufacturer) {
		t.Fatalf("expected invalid manufacturer, got %v", err)
	}
}

func TestReconcileFailedBatchAppliesNothing(t *testing.T) {
	db := setupReconcileTestDB(t)
	svc := newTestService(t, db, &failingOrderRepo{Repository: orderrepo.Provide()})

	insertManufacturer(t, db, 100, "Acme")
	insertCourier(t, db, 10, "HANJIN", "한진택배", `[]`)
	insertOrder(t, db, 1, "A-1")

	_, err := svc.Reconcile(context.Background(), reconciliationdomain.ReconcileRequest{
		ManufacturerID: 100,
		Rows: []reconciliationdomain.InvoiceRow{
			{OrderNo: "A-1", CourierName: "한진택배", TrackingNo: "999"},
		},
	})
	if err == nil {
		t.Fatal("expected batch failure to surface")
	}

	assertTracking(t, db, 1, nil, nil)
}

// failingOrderRepo forces the tracking batch to fail mid-transaction.
type failingOrderRepo struct {
	orderdomain.Repository
}

func (r *failingOrderRepo) BulkAssignTracking(ctx context.Context, db *gorm.DB, updates []orderdomain.TrackingUpdate) error {
	return errors.New("forced failure")
}

func newTestService(t *testing.T, db *gorm.DB, orders orderdomain.Repository) reconciliationdomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return &Service{
		db:               db,
		log:              zap.NewNop(),
		orderRepo:        orders,
		manufacturerRepo: manufacturerrepo.Provide(),
		courierSvc:       newCourierService(db, node),
		outbox:           events.NewOutbox(db, node),
	}
}

func newCourierService(db *gorm.DB, node *snowflake.Node) courierdomain.Service {
	return courierservice.NewService(courierservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  courierrepo.Provide(),
	})
}

func setupReconcileTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS courier_mappings (
			id INTEGER PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			aliases TEXT,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY,
			order_no TEXT NOT NULL UNIQUE,
			product_code TEXT NOT NULL DEFAULT '',
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

func insertCourier(t *testing.T, db *gorm.DB, id int64, code, name, aliases string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO courier_mappings (id, code, name, aliases) VALUES (?, ?, ?, ?)`,
		id,
		code,
		name,
		aliases,
	).Error; err != nil {
		t.Fatalf("insert courier: %v", err)
	}
}

func insertOrder(t *testing.T, db *gorm.DB, id int64, orderNo string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO orders (id, order_no) VALUES (?, ?)`,
		id,
		orderNo,
	).Error; err != nil {
		t.Fatalf("insert order: %v", err)
	}
}

func assertTracking(t *testing.T, db *gorm.DB, orderID int64, wantCourier, wantTracking *string) {
	t.Helper()
	var row struct {
		CourierCode *string
		TrackingNo  *string
	}
	if err := db.Raw(
		`SELECT courier_code, tracking_no FROM orders WHERE id = ?`,
		orderID,
	).Scan(&row).Error; err != nil {
		t.Fatalf("read order %d: %v", orderID, err)
	}
	if !strPtrEqual(row.CourierCode, wantCourier) {
		t.Fatalf("order %d courier_code = %v, want %v", orderID, strPtrText(row.CourierCode), strPtrText(wantCourier))
	}
	if !strPtrEqual(row.TrackingNo, wantTracking) {
		t.Fatalf("order %d tracking_no = %v, want %v", orderID, strPtrText(row.TrackingNo), strPtrText(wantTracking))
	}
}

func strPtr(v string) *string { return &v }

func strPtrEqual(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func strPtrText(v *string) string {
	if v == nil {
		return "<nil>"
	}
	return *v
}
