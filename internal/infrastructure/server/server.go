package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/hildon-home/internal/api/http"
	"github.com/GriffinCanCode/hildon-home/internal/api/middleware"
	"github.com/GriffinCanCode/hildon-home/internal/dbus"
	"github.com/GriffinCanCode/hildon-home/internal/domain/views"
	"github.com/GriffinCanCode/hildon-home/internal/home"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/config"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/logging"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hildon-home/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Options overrides collaborators that are normally built from the config
type Options struct {
	Logger *logging.Logger
	Dial   func() (dbus.Conn, error)
	Menu   home.MenuOptions
}

// Server is the home daemon: the views store, the D-Bus service, the crash
// stamp and the optional status listener.
type Server struct {
	config  *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
	store   store.Backend
	views   *views.Service
	stamp   *home.Stamp
	bus     *dbus.Service

	httpServer *http.Server
	listener   net.Listener
	errs       chan error
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = newLogger(cfg)
	}

	logger.Info("Initializing home daemon",
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("store_path", cfg.Store.Path),
		zap.Bool("dbus", cfg.Home.DBusEnabled),
		zap.String("status_addr", cfg.Status.Addr),
	)

	metrics := monitoring.NewMetrics()

	backend, err := store.Open(ctx, cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open views store: %w", err)
	}

	service := views.NewService(views.ServiceConfig{
		Store:        backend,
		CurrentTheme: cfg.Theme.Current,
		DefaultTheme: cfg.Theme.Default,
		Logger:       logger.Component("views"),
		Metrics:      metrics,
	})

	s := &Server{
		config:  cfg,
		logger:  logger,
		metrics: metrics,
		store:   backend,
		views:   service,
		stamp:   home.NewStamp(cfg.Home.StampFile, logger.Component("stamp")),
		errs:    make(chan error, 1),
	}

	if cfg.Home.DBusEnabled {
		s.bus = dbus.New(dbus.Options{
			Dial:    opts.Dial,
			Menu:    opts.Menu,
			Logger:  logger.Component("dbus"),
			Metrics: metrics,
		})
	}

	if cfg.Status.Addr != "" {
		if !cfg.Logging.Development {
			gin.SetMode(gin.ReleaseMode)
		}
		var owner func() bool
		if s.bus != nil {
			owner = s.bus.Owner
		}
		handlers := apihttp.NewHandlers(service, owner, logger.Component("http"))
		router := apihttp.NewRouter(handlers, apihttp.RouterConfig{
			CORS: middleware.CORSConfig{AllowOrigins: cfg.Status.AllowOrigins, MaxAge: time.Hour},
			RateLimit: middleware.RateLimitConfig{
				RequestsPerSecond: cfg.Status.RequestsPerSecond,
				Burst:             cfg.Status.Burst,
			},
			Metrics: metrics,
		})
		s.httpServer = &http.Server{Handler: router, ReadHeaderTimeout: 5 * time.Second}
	}

	logger.Info("Home daemon initialized")
	return s, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return logging.NewDefault()
	}
	return logger
}

// Start writes the stamp file, claims the bus name and starts the status
// listener. A missing session bus is logged and otherwise ignored.
func (s *Server) Start(ctx context.Context) error {
	if _, err := s.stamp.Init(); err != nil {
		s.logger.Warn("Failed to write stamp file", zap.String("path", s.stamp.Path()), zap.Error(err))
	}

	if s.bus != nil {
		if err := s.bus.Start(ctx); err != nil {
			s.logger.Warn("D-Bus service unavailable", zap.Error(err))
		}
	}

	if s.httpServer != nil {
		ln, err := net.Listen("tcp", s.config.Status.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.config.Status.Addr, err)
		}
		s.listener = ln
		s.logger.Info("Starting status server", zap.String("addr", ln.Addr().String()))

		go func() {
			if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.errs <- fmt.Errorf("status server: %w", err)
			}
		}()
	}
	return nil
}

// Addr returns the status listener address, or "" when it is disabled
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Errors delivers fatal errors from background listeners
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Views returns the picker session factory
func (s *Server) Views() *views.Service {
	return s.views
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down home daemon...")
	var errs []error

	if s.httpServer != nil && s.listener != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop status server: %w", err))
		}
		cancel()
	}

	if s.bus != nil {
		if err := s.bus.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop D-Bus service: %w", err))
		}
	}

	if err := s.stamp.Finalize(); err != nil {
		errs = append(errs, err)
	}

	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close views store: %w", err))
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Error("Shutdown finished with errors", zap.Error(err))
	}
	_ = s.logger.Sync()
	return err
}
