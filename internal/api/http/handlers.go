package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hildon-home/internal/domain/views"
	"github.com/GriffinCanCode/hildon-home/internal/picker"
	"github.com/GriffinCanCode/hildon-home/internal/shared/paths"
)

// ViewStatus is one view as reported by the status API
type ViewStatus struct {
	View   int    `json:"view"`
	Active bool   `json:"active"`
	Source string `json:"source"`
	Path   string `json:"path,omitempty"`
}

// ViewsResponse is the body of GET /views
type ViewsResponse struct {
	Session     string       `json:"session"`
	Views       []ViewStatus `json:"views"`
	Active      []int        `json:"active"`
	Repaired    bool         `json:"repaired"`
	Diagnostics []string     `json:"diagnostics,omitempty"`
}

// SetActiveRequest is the body of PUT /views/active
type SetActiveRequest struct {
	Active []int `json:"active"`
}

// Handlers serves the status API
type Handlers struct {
	views   *views.Service
	owner   func() bool
	started time.Time
	logger  *zap.Logger
}

// NewHandlers creates status handlers. owner reports D-Bus name ownership
// and may be nil when the bus is disabled.
func NewHandlers(service *views.Service, owner func() bool, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		views:   service,
		owner:   owner,
		started: time.Now(),
		logger:  logger,
	}
}

// Health reports liveness
func (h *Handlers) Health(c *gin.Context) {
	dbus := gin.H{"enabled": h.owner != nil}
	if h.owner != nil {
		dbus["owner"] = h.owner()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(h.started).Round(time.Second).String(),
		"dbus":   dbus,
	})
}

// ListViews resolves every view and returns the active set without writing
func (h *Handlers) ListViews(c *gin.Context) {
	list := picker.NewList()
	session, err := h.views.Open(c.Request.Context(), list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer session.Discard()

	resp := ViewsResponse{
		Session:  session.ID(),
		Views:    make([]ViewStatus, 0, list.Len()),
		Active:   session.Active(),
		Repaired: session.Repaired(),
	}
	for pos := 0; pos < list.Len(); pos++ {
		item := list.Item(pos)
		resp.Views = append(resp.Views, ViewStatus{
			View:   item.View,
			Active: item.Selected,
			Source: string(item.Source),
			Path:   item.Path,
		})
	}
	for _, d := range session.Diagnostics() {
		resp.Diagnostics = append(resp.Diagnostics, d.Error())
	}

	c.JSON(http.StatusOK, resp)
}

// SetActive commits a new active set through a picker session
func (h *Handlers) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	for _, v := range req.Active {
		if !paths.ValidView(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("view %d out of range 1..%d", v, paths.MaxViews)})
			return
		}
	}

	list := picker.NewList()
	session, err := h.views.Open(c.Request.Context(), list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	list.SelectViews(req.Active...)

	written, err := session.Commit(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, views.ErrWrite) {
			status = http.StatusBadGateway
		}
		h.logger.Warn("Failed to store active views", zap.String("session", session.ID()), zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session.ID(),
		"active":  written,
	})
}
