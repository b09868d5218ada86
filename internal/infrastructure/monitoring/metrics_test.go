package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveResolution(t *testing.T) {
	m := NewMetrics()
	m.ObserveResolution("override")
	m.ObserveResolution("override")
	m.ObserveResolution("placeholder")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("override")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("placeholder")))
}

func TestObserveCommit(t *testing.T) {
	m := NewMetrics()
	m.ObserveCommit(2, nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveViews))

	m.ObserveCommit(3, errors.New("read-only"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommitErrors))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveViews))
}

func TestObserveNotification(t *testing.T) {
	m := NewMetrics()
	m.ObserveNotification("GrabPointer", nil)
	m.ObserveNotification("GrabPointer", errors.New("no bus"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("GrabPointer", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("GrabPointer", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveResolution("override")
		m.IncDecodeErrors()
		m.IncRepairs()
		m.IncConfigReadErrors("active")
		m.ObserveSession("committed")
		m.ObserveCommit(1, nil)
		m.ObserveNotification("GrabPointer", nil)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.IncRepairs()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "home_views_repairs_total 1"))
}
