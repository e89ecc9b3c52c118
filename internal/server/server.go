package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billfold/billfold/internal/config"
	customerdomain "github.com/billfold/billfold/internal/customer/domain"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(New),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	invoiceSvc  invoicedomain.Service
	customerSvc customerdomain.Service
}

type Params struct {
	fx.In

	Engine      *gin.Engine
	Cfg         config.Config
	InvoiceSvc  invoicedomain.Service
	CustomerSvc customerdomain.Service
}

func New(p Params) *Server {
	return &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		invoiceSvc:  p.InvoiceSvc,
		customerSvc: p.CustomerSvc,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/invoices", s.ListInvoices)
	s.engine.POST("/invoices", s.CreateInvoice)
	s.engine.PUT("/invoices/:id", s.UpdateInvoice)
	s.engine.DELETE("/invoices/:id", s.DeleteInvoice)

	s.engine.GET("/customers", s.ListCustomers)
	s.engine.POST("/customers", s.CreateCustomer)
	s.engine.GET("/customers/:id", s.GetCustomerByID)
}
