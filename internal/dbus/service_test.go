package dbus

import (
	"context"
	"errors"
	"testing"

	godbus "github.com/godbus/dbus/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/hildon-home/internal/home"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
)

type fakeObject struct {
	godbus.BusObject
	calls []string
	flags []godbus.Flags
	err   error
}

func (o *fakeObject) CallWithContext(_ context.Context, method string, flags godbus.Flags, _ ...interface{}) *godbus.Call {
	o.calls = append(o.calls, method)
	o.flags = append(o.flags, flags)
	return &godbus.Call{Method: method, Err: o.err}
}

type fakeConn struct {
	reply    godbus.RequestNameReply
	nameErr  error
	exported map[string]interface{}
	released []string
	closed   int
	desktop  *fakeObject
}

func newFakeConn(reply godbus.RequestNameReply) *fakeConn {
	return &fakeConn{reply: reply, exported: map[string]interface{}{}, desktop: &fakeObject{}}
}

func (c *fakeConn) RequestName(name string, flags godbus.RequestNameFlags) (godbus.RequestNameReply, error) {
	if flags != godbus.NameFlagDoNotQueue {
		return 0, errors.New("unexpected flags")
	}
	return c.reply, c.nameErr
}

func (c *fakeConn) ReleaseName(name string) (godbus.ReleaseNameReply, error) {
	c.released = append(c.released, name)
	return godbus.ReleaseNameReplyReleased, nil
}

func (c *fakeConn) Export(v interface{}, path godbus.ObjectPath, iface string) error {
	c.exported[string(path)+" "+iface] = v
	return nil
}

func (c *fakeConn) Object(dest string, path godbus.ObjectPath) godbus.BusObject {
	return c.desktop
}

func (c *fakeConn) Close() error {
	c.closed++
	return nil
}

func dialer(c *fakeConn) func() (Conn, error) {
	return func() (Conn, error) { return c, nil }
}

func TestStartAsOwnerExportsHomeObject(t *testing.T) {
	conn := newFakeConn(godbus.RequestNameReplyPrimaryOwner)
	svc := New(Options{Dial: dialer(conn)})

	require.NoError(t, svc.Start(context.Background()))
	assert.True(t, svc.Owner())
	assert.NotNil(t, svc.Desktop())
	assert.Contains(t, conn.exported, "/com/nokia/HildonHome com.nokia.HildonHome")
	assert.Contains(t, conn.exported, "/com/nokia/HildonHome org.freedesktop.DBus.Introspectable")

	require.NoError(t, svc.Stop())
	assert.Equal(t, []string{ServiceName}, conn.released)
	assert.Equal(t, 1, conn.closed)
	assert.False(t, svc.Owner())

	// stopping twice is harmless
	require.NoError(t, svc.Stop())
	assert.Equal(t, 1, conn.closed)
}

func TestStartPassiveWhenNameTaken(t *testing.T) {
	conn := newFakeConn(godbus.RequestNameReplyExists)
	svc := New(Options{Dial: dialer(conn)})

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, svc.Owner())
	assert.Nil(t, svc.Desktop())
	assert.Empty(t, conn.exported)
	assert.ErrorIs(t, svc.ShowEditMenu(1), ErrNotStarted)

	require.NoError(t, svc.Stop())
	assert.Empty(t, conn.released)
	assert.Equal(t, 1, conn.closed)
}

func TestStartErrors(t *testing.T) {
	dialErr := errors.New("no bus")
	svc := New(Options{Dial: func() (Conn, error) { return nil, dialErr }})
	assert.ErrorIs(t, svc.Start(context.Background()), dialErr)

	conn := newFakeConn(0)
	conn.nameErr = errors.New("denied")
	svc = New(Options{Dial: dialer(conn)})
	assert.ErrorIs(t, svc.Start(context.Background()), conn.nameErr)
	assert.Equal(t, 1, conn.closed)
	assert.False(t, svc.Owner())
}

func TestExportedMenuCallsDesktop(t *testing.T) {
	conn := newFakeConn(godbus.RequestNameReplyPrimaryOwner)
	metrics := monitoring.NewMetrics()
	var dialogView uint32
	svc := New(Options{
		Dial:    dialer(conn),
		Metrics: metrics,
		Menu: home.MenuOptions{Dialogs: map[home.Action]home.Dialog{
			home.ActionChangeBackground: func(_ context.Context, v uint32) error {
				dialogView = v
				return nil
			},
		}},
	})
	require.NoError(t, svc.Start(context.Background()))

	obj, ok := conn.exported["/com/nokia/HildonHome com.nokia.HildonHome"].(*homeObject)
	require.True(t, ok)

	assert.Nil(t, obj.ActivateMenuItem("change-background", 3))
	assert.Nil(t, obj.ActivateMenuItem("manage-views", 3))
	assert.NotNil(t, obj.ActivateMenuItem("bogus", 3))

	assert.Equal(t, uint32(3), dialogView)
	assert.Equal(t, []string{
		"com.nokia.HildonDesktop.Home.GrabPointer",
		"com.nokia.HildonDesktop.Home.ShowActivateViewsDialog",
	}, conn.desktop.calls)
	for _, f := range conn.desktop.flags {
		assert.Equal(t, godbus.FlagNoReplyExpected, f)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Notifications.WithLabelValues("GrabPointer", "ok")))

	// no presenter configured: the menu logs and returns
	assert.Nil(t, obj.ShowEditMenu(2))
}

func TestDesktopCallFailure(t *testing.T) {
	obj := &fakeObject{err: errors.New("disconnected")}
	metrics := monitoring.NewMetrics()
	d := NewDesktop(obj, nil, metrics)

	err := d.GrabPointer(context.Background())
	assert.ErrorIs(t, err, obj.err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Notifications.WithLabelValues("GrabPointer", "error")))
}
