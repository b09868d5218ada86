package dbus

import (
	"context"
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hildon-home/internal/home"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
)

const (
	DesktopName = "com.nokia.HildonDesktop.Home"
	DesktopPath = godbus.ObjectPath("/com/nokia/HildonDesktop/Home")

	methodGrabPointer             = "GrabPointer"
	methodShowActivateViewsDialog = "ShowActivateViewsDialog"
)

// Desktop is the proxy for the desktop compositor's home object. Calls are
// sent without waiting for a reply.
type Desktop struct {
	obj     godbus.BusObject
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewDesktop wraps the desktop's bus object
func NewDesktop(obj godbus.BusObject, logger *zap.Logger, metrics *monitoring.Metrics) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desktop{obj: obj, logger: logger, metrics: metrics}
}

func (d *Desktop) GrabPointer(ctx context.Context) error {
	return d.call(ctx, methodGrabPointer)
}

func (d *Desktop) ShowActivateViewsDialog(ctx context.Context) error {
	return d.call(ctx, methodShowActivateViewsDialog)
}

func (d *Desktop) call(ctx context.Context, method string) error {
	call := d.obj.CallWithContext(ctx, DesktopName+"."+method, godbus.FlagNoReplyExpected)
	err := call.Err
	d.metrics.ObserveNotification(method, err)
	if err != nil {
		d.logger.Warn("Desktop call failed", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("call %s: %w", method, err)
	}
	d.logger.Debug("Desktop call sent", zap.String("method", method))
	return nil
}

var _ home.Notifier = (*Desktop)(nil)
