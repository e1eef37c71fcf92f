package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gwak2837/shabangnet-sub003/internal/cache"
	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
)

const (
	enabledCacheKey = "courier_mappings.enabled"
	enabledCacheTTL = 30 * time.Second
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  courierdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  courierdomain.Repository

	enabledCache *cache.TTLCache[string, []courierdomain.CourierMapping]
}

func NewService(p Params) courierdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("courier.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		enabledCache: cache.NewTTLCache[string, []courierdomain.CourierMapping](),
	}
}

func (s *Service) Create(ctx context.Context, req courierdomain.CreateRequest) (*courierdomain.CourierMapping, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, courierdomain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, courierdomain.ErrInvalidName
	}

	now := time.Now().UTC()
	record := &courierdomain.CourierMapping{
		ID:        s.genID.Generate(),
		Code:      code,
		Name:      name,
		Aliases:   datatypes.NewJSONSlice(trimAliases(req.Aliases)),
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.enabledCache.Delete(enabledCacheKey)
	return record, nil
}

func (s *Service) Update(ctx context.Context, req courierdomain.UpdateRequest) (*courierdomain.CourierMapping, error) {
	record, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, courierdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, courierdomain.ErrInvalidName
		}
		record.Name = name
	}
	if req.Aliases != nil {
		record.Aliases = datatypes.NewJSONSlice(trimAliases(req.Aliases))
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.enabledCache.Delete(enabledCacheKey)
	return record, nil
}

func (s *Service) List(ctx context.Context) ([]courierdomain.CourierMapping, error) {
	return s.repo.List(ctx, s.db, false)
}

func (s *Service) SetEnabled(ctx context.Context, id snowflake.ID, enabled bool) error {
	updated, err := s.repo.SetEnabled(ctx, s.db, id, enabled)
	if err != nil {
		return err
	}
	if !updated {
		return courierdomain.ErrNotFound
	}
	s.enabledCache.Delete(enabledCacheKey)
	return nil
}

func (s *Service) ListEnabled(ctx context.Context) ([]courierdomain.CourierMapping, error) {
	if cached, ok := s.enabledCache.Get(enabledCacheKey); ok {
		return cached, nil
	}

	mappings, err := s.repo.List(ctx, s.db, true)
	if err != nil {
		return nil, err
	}
	s.enabledCache.Set(enabledCacheKey, mappings, enabledCacheTTL)
	return mappings, nil
}

func trimAliases(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		out = append(out, alias)
	}
	return out
}
