package dbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	godbus "github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hildon-home/internal/home"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
)

const (
	ServiceName      = "com.nokia.HildonHome"
	ServicePath      = godbus.ObjectPath("/com/nokia/HildonHome")
	ServiceInterface = "com.nokia.HildonHome"
)

var ErrNotStarted = errors.New("dbus service not started")

const introspectXML = `
<node>
	<interface name="` + ServiceInterface + `">
		<method name="ShowEditMenu">
			<arg name="current_view" direction="in" type="u"/>
		</method>
		<method name="ActivateMenuItem">
			<arg name="action" direction="in" type="s"/>
			<arg name="current_view" direction="in" type="u"/>
		</method>
	</interface>` + introspect.IntrospectDataString + `</node>`

// Conn is the subset of a bus connection the service uses
type Conn interface {
	RequestName(name string, flags godbus.RequestNameFlags) (godbus.RequestNameReply, error)
	ReleaseName(name string) (godbus.ReleaseNameReply, error)
	Export(v interface{}, path godbus.ObjectPath, iface string) error
	Object(dest string, path godbus.ObjectPath) godbus.BusObject
	Close() error
}

// Options configures a Service
type Options struct {
	// Dial opens the bus connection; defaults to the session bus
	Dial    func() (Conn, error)
	Menu    home.MenuOptions
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// Service owns com.nokia.HildonHome on the session bus and exposes the edit
// menu. When another process already owns the name the service stays
// passive: Start succeeds but nothing is exported.
type Service struct {
	opts   Options
	logger *zap.Logger

	mu      sync.Mutex
	ctx     context.Context
	conn    Conn
	owner   bool
	desktop *Desktop
	menu    *home.Menu
}

// New creates a stopped service
func New(opts Options) *Service {
	if opts.Dial == nil {
		opts.Dial = dialSession
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{opts: opts, logger: logger}
}

func dialSession() (Conn, error) {
	return godbus.ConnectSessionBus()
}

// Start connects to the bus, requests the service name and exports the
// home object if the name was granted. ctx scopes the incoming calls.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil
	}

	conn, err := s.opts.Dial()
	if err != nil {
		return fmt.Errorf("connect to session bus: %w", err)
	}

	reply, err := conn.RequestName(ServiceName, godbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("request name %s: %w", ServiceName, err)
	}

	s.ctx = ctx
	s.conn = conn

	if reply != godbus.RequestNameReplyPrimaryOwner {
		s.logger.Info("Service name already taken, staying passive", zap.String("name", ServiceName))
		return nil
	}

	s.desktop = NewDesktop(conn.Object(DesktopName, DesktopPath), s.logger.Named("desktop"), s.opts.Metrics)
	menuOpts := s.opts.Menu
	if menuOpts.Logger == nil {
		menuOpts.Logger = s.logger.Named("menu")
	}
	s.menu = home.NewMenu(s.desktop, menuOpts)

	if err := conn.Export(&homeObject{svc: s}, ServicePath, ServiceInterface); err != nil {
		s.reset()
		return fmt.Errorf("export %s: %w", ServicePath, err)
	}
	if err := conn.Export(introspect.Introspectable(introspectXML), ServicePath, "org.freedesktop.DBus.Introspectable"); err != nil {
		s.reset()
		return fmt.Errorf("export introspection: %w", err)
	}

	s.owner = true
	s.logger.Info("Registered on session bus", zap.String("name", ServiceName), zap.String("path", string(ServicePath)))
	return nil
}

// Stop releases the name and closes the connection. It is safe to call
// on a stopped service.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	var errs []error
	if s.owner {
		if _, err := s.conn.ReleaseName(ServiceName); err != nil {
			errs = append(errs, fmt.Errorf("release name: %w", err))
		}
	}
	if err := s.reset(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// reset closes the connection and clears all started state; callers hold mu
func (s *Service) reset() error {
	err := s.conn.Close()
	s.conn = nil
	s.owner = false
	s.desktop = nil
	s.menu = nil
	s.ctx = nil
	if err != nil {
		return fmt.Errorf("close bus connection: %w", err)
	}
	return nil
}

// Owner reports whether this process owns the service name
func (s *Service) Owner() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Desktop returns the desktop proxy, or nil while not the name owner
func (s *Service) Desktop() *Desktop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desktop
}

// ShowEditMenu shows the edit menu for currentView
func (s *Service) ShowEditMenu(currentView uint32) error {
	ctx, menu, err := s.active()
	if err != nil {
		return err
	}
	return menu.Show(ctx, currentView)
}

// ActivateMenuItem runs one edit menu action by name
func (s *Service) ActivateMenuItem(name string, currentView uint32) error {
	ctx, menu, err := s.active()
	if err != nil {
		return err
	}
	action, err := home.ParseAction(name)
	if err != nil {
		return err
	}
	return menu.Activate(ctx, action, currentView)
}

func (s *Service) active() (context.Context, *home.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.menu == nil {
		return nil, nil, ErrNotStarted
	}
	return s.ctx, s.menu, nil
}

// homeObject is the value exported at ServicePath
type homeObject struct {
	svc *Service
}

func (o *homeObject) ShowEditMenu(currentView uint32) *godbus.Error {
	if err := o.svc.ShowEditMenu(currentView); err != nil {
		o.svc.logger.Warn("ShowEditMenu failed", zap.Error(err))
		return godbus.MakeFailedError(err)
	}
	return nil
}

func (o *homeObject) ActivateMenuItem(action string, currentView uint32) *godbus.Error {
	if err := o.svc.ActivateMenuItem(action, currentView); err != nil {
		o.svc.logger.Warn("ActivateMenuItem failed", zap.String("action", action), zap.Error(err))
		return godbus.MakeFailedError(err)
	}
	return nil
}
