package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditdomain "github.com/gwak2837/shabangnet-sub003/internal/audit/domain"
	"github.com/gwak2837/shabangnet-sub003/internal/config"
	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
	exclusiondomain "github.com/gwak2837/shabangnet-sub003/internal/exclusion/domain"
	manufacturerdomain "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/domain"
	"github.com/gwak2837/shabangnet-sub003/internal/observability/logger"
	"github.com/gwak2837/shabangnet-sub003/internal/observability/metrics"
	"github.com/gwak2837/shabangnet-sub003/internal/observability/tracing"
	orderdomain "github.com/gwak2837/shabangnet-sub003/internal/order/domain"
	reconciliationdomain "github.com/gwak2837/shabangnet-sub003/internal/reconciliation/domain"
	resolutiondomain "github.com/gwak2837/shabangnet-sub003/internal/resolution/domain"
)

type Params struct {
	fx.In

	Cfg               config.Config
	DB                *gorm.DB
	Log               *zap.Logger
	Engine            *gin.Engine
	ManufacturerSvc   manufacturerdomain.Service
	ResolutionSvc     resolutiondomain.Service
	ExclusionSvc      exclusiondomain.Service
	CourierSvc        courierdomain.Service
	ReconciliationSvc reconciliationdomain.Service
	OrderRepo         orderdomain.Repository
	AuditSvc          auditdomain.Service  `optional:"true"`
	Registry          *prometheus.Registry `optional:"true"`
}

type Server struct {
	cfg               config.Config
	db                *gorm.DB
	log               *zap.Logger
	engine            *gin.Engine
	manufacturerSvc   manufacturerdomain.Service
	resolutionSvc     resolutiondomain.Service
	exclusionSvc      exclusiondomain.Service
	courierSvc        courierdomain.Service
	reconciliationSvc reconciliationdomain.Service
	orderRepo         orderdomain.Repository
	auditSvc          auditdomain.Service
	registry          *prometheus.Registry
}

func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(tracing.GinMiddleware(cfg.ServiceName))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:               p.Cfg,
		db:                p.DB,
		log:               p.Log.Named("server"),
		engine:            p.Engine,
		manufacturerSvc:   p.ManufacturerSvc,
		resolutionSvc:     p.ResolutionSvc,
		exclusionSvc:      p.ExclusionSvc,
		courierSvc:        p.CourierSvc,
		reconciliationSvc: p.ReconciliationSvc,
		orderRepo:         p.OrderRepo,
		auditSvc:          p.AuditSvc,
		registry:          p.Registry,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.registry != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	api := s.engine.Group("/api")

	api.GET("/manufacturers", s.ListManufacturers)
	api.POST("/manufacturers", s.CreateManufacturer)
	api.GET("/manufacturers/:id", s.GetManufacturer)
	api.POST("/manufacturers/:id/refresh-stats", s.RefreshManufacturerStats)

	api.GET("/resolve", s.ResolveOrderLine)
	api.POST("/products/link", s.LinkProduct)
	api.POST("/options/link", s.LinkOption)
	api.DELETE("/options/link", s.UnlinkOption)

	api.GET("/exclusions", s.ListExclusionPatterns)
	api.POST("/exclusions", s.CreateExclusionPattern)
	api.PATCH("/exclusions/:id", s.SetExclusionPatternEnabled)
	api.GET("/exclusions/toggle", s.GetExclusionToggle)
	api.PUT("/exclusions/toggle", s.SetExclusionToggle)
	api.GET("/exclusions/check", s.CheckExclusion)

	api.GET("/couriers", s.ListCouriers)
	api.POST("/couriers", s.CreateCourier)
	api.PATCH("/couriers/:id", s.UpdateCourier)

	api.POST("/invoices/reconcile", s.ReconcileInvoice)

	api.GET("/orders", s.ListOrders)
	api.GET("/orders/excluded", s.ListExcludedOrders)
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)
