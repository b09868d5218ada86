package views

import (
	"context"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/hildon-home/internal/domain/background"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hildon-home/internal/store"
)

// ServiceConfig holds the dependencies shared by every picker session
type ServiceConfig struct {
	Store        store.Store
	Decoder      background.Decoder
	CurrentTheme string
	DefaultTheme string
	Logger       *zap.Logger
	Metrics      *monitoring.Metrics
}

// Service creates picker sessions. Each session gets a fresh Resolver so
// theme descriptors are re-read once per session and never across sessions.
type Service struct {
	cfg    ServiceConfig
	logger *zap.Logger
}

// NewService creates a session factory
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, logger: logger}
}

// NewSession starts an uninitialized session that will fill picker
func (s *Service) NewSession(picker Picker) *Session {
	resolver := background.NewResolver(s.cfg.Store, s.cfg.Decoder, background.Options{
		CurrentTheme: s.cfg.CurrentTheme,
		DefaultTheme: s.cfg.DefaultTheme,
		Logger:       s.logger.Named("background"),
		Metrics:      s.cfg.Metrics,
	})
	return NewSession(s.cfg.Store, resolver, picker, Options{
		Logger:  s.logger.Named("views"),
		Metrics: s.cfg.Metrics,
	})
}

// Open creates a session and populates picker in one step
func (s *Service) Open(ctx context.Context, picker Picker) (*Session, error) {
	session := s.NewSession(picker)
	if err := session.Populate(ctx); err != nil {
		return nil, err
	}
	return session, nil
}
