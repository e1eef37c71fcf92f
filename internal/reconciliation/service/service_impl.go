package service

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
	"github.com/gwak2837/shabangnet-sub003/internal/events"
	manufacturerdomain "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/domain"
	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
	reconciliationdomain "github.com/gwak2837/shabangnet-sub003/internal/reconciliation/domain"
)

type Params struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	OrderRepo        orderdomain.Repository
	ManufacturerRepo manufacturerdomain.Repository
	CourierSvc       courierdomain.Service
	Outbox           *events.Outbox
}

type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	orderRepo        orderdomain.Repository
	manufacturerRepo manufacturerdomain.Repository
	courierSvc       courierdomain.Service
	outbox           *events.Outbox
}

func NewService(p Params) reconciliationdomain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("reconciliation.service"),
		orderRepo:        p.OrderRepo,
		manufacturerRepo: p.ManufacturerRepo,
		courierSvc:       p.CourierSvc,
		outbox:           p.Outbox,
	}
}

func (s *Service) Reconcile(ctx context.Context, req reconciliationdomain.ReconcileRequest) (*reconciliationdomain.ReconcileResponse, error) {
	if req.ManufacturerID == 0 {
		return nil, reconciliationdomain.ErrInvalidManufacturer
	}
	exists, err := s.manufacturerRepo.Exists(ctx, s.db, req.ManufacturerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, reconciliationdomain.ErrManufacturerNotFound
	}

	mappings, err := s.courierSvc.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	lookup := reconciliationdomain.BuildCourierLookup(mappings)

	orders, err := s.fetchOrders(ctx, req.Rows)
	if err != nil {
		return nil, err
	}

	results := make([]reconciliationdomain.RowResult, 0, len(req.Rows))
	updates := make([]orderdomain.TrackingUpdate, 0, len(req.Rows))
	for _, row := range req.Rows {
		result := classifyRow(row, orders, lookup)
		results = append(results, result)
		if result.Outcome == reconciliationdomain.RowOutcomeSuccess {
			updates = append(updates, orderdomain.TrackingUpdate{
				OrderID:     *result.OrderID,
				CourierCode: result.CourierCode,
				TrackingNo:  strings.TrimSpace(row.TrackingNo),
			})
		}
	}

	if len(updates) > 0 {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.orderRepo.BulkAssignTracking(ctx, tx, updates); err != nil {
				return err
			}
			return s.outbox.PublishTx(ctx, tx, events.Event{
				Type: events.EventInvoiceReconciled,
				Payload: events.InvoiceReconciledPayload{
					ManufacturerID: req.ManufacturerID.String(),
					RowCount:       len(req.Rows),
					AppliedCount:   len(updates),
				}.ToMap(),
			})
		})
		if err != nil {
			return nil, err
		}
	}

	s.log.Info("invoice reconciled",
		zap.String("manufacturer_id", req.ManufacturerID.String()),
		zap.Int("rows", len(req.Rows)),
		zap.Int("applied", len(updates)),
	)
	return &reconciliationdomain.ReconcileResponse{
		Results:      results,
		AppliedCount: len(updates),
	}, nil
}

func (s *Service) fetchOrders(ctx context.Context, rows []reconciliationdomain.InvoiceRow) (map[string]orderdomain.Order, error) {
	seen := make(map[string]struct{}, len(rows))
	orderNos := make([]string, 0, len(rows))
	for _, row := range rows {
		orderNo := strings.TrimSpace(row.OrderNo)
		if orderNo == "" {
			continue
		}
		if _, ok := seen[orderNo]; ok {
			continue
		}
		seen[orderNo] = struct{}{}
		orderNos = append(orderNos, orderNo)
	}

	orders, err := s.orderRepo.FindByOrderNos(ctx, s.db, orderNos)
	if err != nil {
		return nil, err
	}

	byOrderNo := make(map[string]orderdomain.Order, len(orders))
	for _, order := range orders {
		byOrderNo[order.OrderNo] = order
	}
	return byOrderNo, nil
}

func classifyRow(
	row reconciliationdomain.InvoiceRow,
	orders map[string]orderdomain.Order,
	lookup map[string]string,
) reconciliationdomain.RowResult {
	order, found := orders[strings.TrimSpace(row.OrderNo)]
	if !found {
		return reconciliationdomain.RowResult{
			Row:     row,
			Outcome: reconciliationdomain.RowOutcomeOrderNotFound,
		}
	}

	code, ok := reconciliationdomain.ResolveCourier(lookup, row.CourierName)
	if !ok {
		return reconciliationdomain.RowResult{
			Row:                 row,
			Outcome:             reconciliationdomain.RowOutcomeCourierError,
			OrderID:             &order.ID,
			UnrecognizedCourier: row.CourierName,
		}
	}

	return reconciliationdomain.RowResult{
		Row:         row,
		Outcome:     reconciliationdomain.RowOutcomeSuccess,
		OrderID:     &order.ID,
		CourierCode: code,
	}
}
