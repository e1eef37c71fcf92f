package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	manufacturerdomain "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/domain"
	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      manufacturerdomain.Repository
	OrderRepo orderdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      manufacturerdomain.Repository
	orderRepo orderdomain.Repository
}

func NewService(p Params) manufacturerdomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("manufacturer.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		orderRepo: p.OrderRepo,
	}
}

func (s *Service) Create(ctx context.Context, req manufacturerdomain.CreateRequest) (*manufacturerdomain.Manufacturer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, manufacturerdomain.ErrInvalidName
	}

	now := time.Now().UTC()
	record := &manufacturerdomain.Manufacturer{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context) ([]manufacturerdomain.Manufacturer, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*manufacturerdomain.Manufacturer, error) {
	record, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, manufacturerdomain.ErrNotFound
	}
	return record, nil
}

func (s *Service) RefreshStats(ctx context.Context, id snowflake.ID) (*manufacturerdomain.Manufacturer, error) {
	record, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, manufacturerdomain.ErrNotFound
	}

	stats, err := s.orderRepo.StatsByManufacturer(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	record.OrderCount = stats.OrderCount
	record.LastOrderAt = stats.LastOrderAt
	record.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}
