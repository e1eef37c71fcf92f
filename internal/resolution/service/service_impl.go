package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gwak2837/shabangnet-sub003/internal/events"
	manufacturerdomain "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/domain"
	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
	resolutiondomain "github.com/gwak2837/shabangnet-sub003/internal/resolution/domain"
)

type Params struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	GenID            *snowflake.Node
	Repo             resolutiondomain.Repository
	OrderRepo        orderdomain.Repository
	ManufacturerRepo manufacturerdomain.Repository
	Outbox           *events.Outbox
}

type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	genID            *snowflake.Node
	repo             resolutiondomain.Repository
	orderRepo        orderdomain.Repository
	manufacturerRepo manufacturerdomain.Repository
	outbox           *events.Outbox
}

func NewService(p Params) resolutiondomain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("resolution.service"),
		genID:            p.GenID,
		repo:             p.Repo,
		orderRepo:        p.OrderRepo,
		manufacturerRepo: p.ManufacturerRepo,
		outbox:           p.Outbox,
	}
}

func (s *Service) Resolve(ctx context.Context, productCode, optionName string) (*snowflake.ID, error) {
	code := resolutiondomain.NormalizeProductCode(productCode)
	if code == "" {
		return nil, resolutiondomain.ErrInvalidProductCode
	}

	option := resolutiondomain.NormalizeOptionName(optionName)
	mapping, err := s.repo.FindOptionMapping(ctx, s.db, code, option)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		id := mapping.ManufacturerID
		return &id, nil
	}

	product, err := s.repo.FindProductByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if product != nil && product.ManufacturerID != nil {
		id := *product.ManufacturerID
		return &id, nil
	}
	return nil, nil
}

func (s *Service) LinkProduct(ctx context.Context, req resolutiondomain.LinkProductRequest) (*resolutiondomain.LinkProductResponse, error) {
	code := resolutiondomain.NormalizeProductCode(req.ProductCode)
	if code == "" {
		return nil, resolutiondomain.ErrInvalidProductCode
	}

	if req.ManufacturerID == nil {
		return s.unlinkProduct(ctx, code)
	}

	manufacturer, err := s.manufacturerRepo.FindByID(ctx, s.db, *req.ManufacturerID)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, resolutiondomain.ErrManufacturerNotFound
	}

	name, err := s.productName(ctx, code, req.NameHint)
	if err != nil {
		return nil, err
	}

	manufacturerID := *req.ManufacturerID
	var updated int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := s.repo.UpsertProduct(ctx, tx, &resolutiondomain.Product{
			ID:             s.genID.Generate(),
			Code:           code,
			Name:           name,
			ManufacturerID: &manufacturerID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}); err != nil {
			return err
		}

		count, err := s.orderRepo.BackfillManufacturer(ctx, tx, code, manufacturerID, manufacturer.Name)
		if err != nil {
			return err
		}
		updated = count

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventProductLinked,
			Payload: events.ProductLinkedPayload{
				ProductCode:       code,
				ManufacturerID:    manufacturerID.String(),
				UpdatedOrderCount: count,
			}.ToMap(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product linked",
		zap.String("product_code", code),
		zap.String("manufacturer_id", manufacturerID.String()),
		zap.Int64("updated_orders", updated),
	)
	return &resolutiondomain.LinkProductResponse{UpdatedOrderCount: updated}, nil
}

// unlinkProduct clears the product-level mapping. Orders already assigned
// keep their manufacturer, and codes with no product row are left untouched.
func (s *Service) unlinkProduct(ctx context.Context, code string) (*resolutiondomain.LinkProductResponse, error) {
	var cleared int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.repo.ClearProductManufacturer(ctx, tx, code)
		if err != nil {
			return err
		}
		cleared = count
		if cleared == 0 {
			return nil
		}

		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventProductUnlinked,
			Payload: events.ProductLinkedPayload{
				ProductCode: code,
			}.ToMap(),
		})
	})
	if err != nil {
		return nil, err
	}

	if cleared > 0 {
		s.log.Info("product unlinked", zap.String("product_code", code))
	}
	return &resolutiondomain.LinkProductResponse{UpdatedOrderCount: 0}, nil
}

func (s *Service) LinkOption(ctx context.Context, req resolutiondomain.LinkOptionRequest) error {
	code := resolutiondomain.NormalizeProductCode(req.ProductCode)
	if code == "" {
		return resolutiondomain.ErrInvalidProductCode
	}
	option := resolutiondomain.NormalizeOptionName(req.OptionName)
	if option == "" {
		return resolutiondomain.ErrInvalidOptionName
	}
	if req.ManufacturerID == 0 {
		return resolutiondomain.ErrInvalidManufacturer
	}

	exists, err := s.manufacturerRepo.Exists(ctx, s.db, req.ManufacturerID)
	if err != nil {
		return err
	}
	if !exists {
		return resolutiondomain.ErrManufacturerNotFound
	}

	now := time.Now().UTC()
	if err := s.repo.UpsertOptionMapping(ctx, s.db, &resolutiondomain.OptionMapping{
		ID:             s.genID.Generate(),
		ProductCode:    code,
		OptionName:     option,
		ManufacturerID: req.ManufacturerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}); err != nil {
		return err
	}

	return s.outbox.Publish(ctx, events.Event{
		Type: events.EventOptionLinked,
		Payload: map[string]any{
			"product_code":    code,
			"option_name":     option,
			"manufacturer_id": req.ManufacturerID.String(),
		},
	})
}

func (s *Service) UnlinkOption(ctx context.Context, productCode, optionName string) error {
	code := resolutiondomain.NormalizeProductCode(productCode)
	if code == "" {
		return resolutiondomain.ErrInvalidProductCode
	}
	option := resolutiondomain.NormalizeOptionName(optionName)
	if option == "" {
		return resolutiondomain.ErrInvalidOptionName
	}
	return s.repo.DeleteOptionMapping(ctx, s.db, code, option)
}

func (s *Service) productName(ctx context.Context, code, nameHint string) (string, error) {
	if name := resolutiondomain.NormalizeProductCode(nameHint); name != "" {
		return name, nil
	}
	name, err := s.orderRepo.FirstProductName(ctx, s.db, code)
	if err != nil {
		return "", err
	}
	if name != "" {
		return name, nil
	}
	return code, nil
}
