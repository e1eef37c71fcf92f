package service

import (
	"context"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	exclusiondomain "github.com/gwak2837/shabangnet-sub003/internal/exclusion/domain"
	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  exclusiondomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  exclusiondomain.Repository
}

func NewService(p Params) exclusiondomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("exclusion.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) IsExcluded(ctx context.Context, fulfillmentType string) (bool, error) {
	matched, err := s.match(ctx, fulfillmentType)
	if err != nil {
		return false, err
	}
	return matched != nil, nil
}

func (s *Service) Reason(ctx context.Context, fulfillmentType string) (*string, error) {
	matched, err := s.match(ctx, fulfillmentType)
	if err != nil {
		return nil, err
	}
	if matched == nil {
		return nil, nil
	}
	reason := matched.ReasonText()
	return &reason, nil
}

func (s *Service) match(ctx context.Context, fulfillmentType string) (*exclusiondomain.ExclusionPattern, error) {
	toggle, err := s.Toggle(ctx)
	if err != nil {
		return nil, err
	}
	if !toggle.Enabled() {
		return nil, nil
	}

	patterns, err := s.repo.ListPatterns(ctx, s.db, true)
	if err != nil {
		return nil, err
	}
	return exclusiondomain.Match(patterns, fulfillmentType), nil
}

func (s *Service) ExcludedOrders(ctx context.Context) ([]orderdomain.Order, error) {
	toggle, err := s.Toggle(ctx)
	if err != nil {
		return nil, err
	}
	if !toggle.Enabled() {
		return nil, nil
	}
	return s.repo.ExcludedOrders(ctx, s.db)
}

func (s *Service) CreatePattern(ctx context.Context, req exclusiondomain.CreatePatternRequest) (*exclusiondomain.ExclusionPattern, error) {
	if req.Pattern == "" {
		return nil, exclusiondomain.ErrInvalidPattern
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	record := &exclusiondomain.ExclusionPattern{
		ID:          s.genID.Generate(),
		Pattern:     req.Pattern,
		Description: req.Description,
		Enabled:     enabled,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.InsertPattern(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) ListPatterns(ctx context.Context) ([]exclusiondomain.ExclusionPattern, error) {
	return s.repo.ListPatterns(ctx, s.db, false)
}

func (s *Service) SetPatternEnabled(ctx context.Context, id snowflake.ID, enabled bool) error {
	updated, err := s.repo.SetPatternEnabled(ctx, s.db, id, enabled)
	if err != nil {
		return err
	}
	if !updated {
		return exclusiondomain.ErrPatternNotFound
	}
	return nil
}

func (s *Service) Toggle(ctx context.Context) (exclusiondomain.Toggle, error) {
	value, found, err := s.repo.GetSetting(ctx, s.db, exclusiondomain.SettingKeyExclusionEnabled)
	if err != nil {
		return exclusiondomain.ToggleUnset, err
	}
	if !found {
		return exclusiondomain.ToggleUnset, nil
	}
	return exclusiondomain.ParseToggle(value), nil
}

func (s *Service) SetToggle(ctx context.Context, enabled bool) error {
	err := s.repo.PutSetting(ctx, s.db, exclusiondomain.SettingKeyExclusionEnabled, strconv.FormatBool(enabled))
	if err != nil {
		return err
	}
	s.log.Info("exclusion toggle updated", zap.Bool("enabled", enabled))
	return nil
}
