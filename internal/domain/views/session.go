package views

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hildon-home/internal/domain/background"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hildon-home/internal/shared/paths"
	"github.com/GriffinCanCode/hildon-home/internal/store"
)

var (
	// ErrInvalidTransition is returned when an operation does not apply to the session's state
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrWrite wraps a failed write of the active views
	ErrWrite = errors.New("could not store active views")
)

// State is a session's lifecycle position
type State int

const (
	StateUninitialized State = iota
	StatePopulated
	StateCommitted
	StateDiscarded
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePopulated:
		return "populated"
	case StateCommitted:
		return "committed"
	case StateDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Outcome is how the user closed the picker
type Outcome int

const (
	OutcomeConfirmed Outcome = iota
	OutcomeDismissed
)

// ActiveStore reads and writes the active view list
type ActiveStore interface {
	GetIntList(ctx context.Context, key string) ([]int, error)
	SetIntList(ctx context.Context, key string, values []int) error
}

// Resolver produces the thumbnail of one view
type Resolver interface {
	Resolve(ctx context.Context, view int) background.Result
}

// Item is one entry shown by the picker
type Item struct {
	View      int
	Thumbnail image.Image
	Source    background.Source
	Path      string
	Selected  bool
}

// Picker is a multi-select list of thumbnails. Positions are 0-based and
// follow insertion order; the session reads selection back in that order.
type Picker interface {
	Append(item Item)
	Len() int
	Selected(pos int) bool
}

// Options configures a Session
type Options struct {
	// Views defaults to paths.MaxViews
	Views   int
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// Session drives one run of the view picker:
// Uninitialized -> Populated -> Committed | Discarded.
// Only Commit writes configuration.
type Session struct {
	id       string
	config   ActiveStore
	resolver Resolver
	picker   Picker
	views    int
	logger   *zap.Logger
	metrics  *monitoring.Metrics

	state       State
	initialized bool
	active      []bool
	repaired    bool
	diagnostics []error
}

// NewSession creates an uninitialized session
func NewSession(config ActiveStore, resolver Resolver, picker Picker, opts Options) *Session {
	n := opts.Views
	if n <= 0 {
		n = paths.MaxViews
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()

	return &Session{
		id:       id,
		config:   config,
		resolver: resolver,
		picker:   picker,
		views:    n,
		logger:   logger.With(zap.String("session", id)),
		metrics:  opts.Metrics,
		state:    StateUninitialized,
		active:   make([]bool, n),
	}
}

// ID returns the session identifier used in logs
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state
func (s *Session) State() State {
	return s.state
}

// Repaired reports whether no stored view was active and the first view was substituted
func (s *Session) Repaired() bool {
	return s.repaired
}

// Diagnostics returns the non-fatal problems met so far
func (s *Session) Diagnostics() []error {
	out := make([]error, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// Active returns the 1-based views currently marked active in memory, ascending
func (s *Session) Active() []int {
	var out []int
	for i, on := range s.active {
		if on {
			out = append(out, i+1)
		}
	}
	return out
}

// Initialize reads the active views from configuration.
// Out-of-range entries are skipped. When nothing is active the first view is
// marked active for this session only; the repair is not written back.
func (s *Session) Initialize(ctx context.Context) error {
	if s.state != StateUninitialized || s.initialized {
		return fmt.Errorf("%w: initialize in state %s", ErrInvalidTransition, s.state)
	}
	s.initialized = true

	list, err := s.config.GetIntList(ctx, paths.ActiveViewsKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		list = nil
	case err != nil:
		s.metrics.IncConfigReadErrors("active")
		s.diagnose(fmt.Errorf("read active views: %w", err))
		s.logger.Warn("Error reading active views", zap.Error(err))
		list = nil
	}

	noneActive := true
	for _, id := range list {
		if id < 1 || id > s.views {
			s.logger.Debug("Ignoring out of range view", zap.Int("view", id))
			continue
		}
		s.active[id-1] = true
		noneActive = false
	}

	if noneActive {
		s.repaired = true
		s.active[0] = true
		s.metrics.IncRepairs()
		s.diagnose(errors.New("no active views, first view made active"))
		s.logger.Warn("No active views. Make first view active")
	}
	return nil
}

// Populate resolves every view in ascending order and fills the picker,
// selecting the active ones. It initializes the session first if needed.
func (s *Session) Populate(ctx context.Context) error {
	if s.state != StateUninitialized {
		return fmt.Errorf("%w: populate in state %s", ErrInvalidTransition, s.state)
	}
	if !s.initialized {
		if err := s.Initialize(ctx); err != nil {
			return err
		}
	}

	for view := 1; view <= s.views; view++ {
		res := s.resolver.Resolve(ctx, view)
		s.diagnostics = append(s.diagnostics, res.Diagnostics...)
		s.picker.Append(Item{
			View:      view,
			Thumbnail: res.Image,
			Source:    res.Source,
			Path:      res.Path,
			Selected:  s.active[view-1],
		})
	}

	s.state = StatePopulated
	s.logger.Debug("Populated view picker", zap.Ints("active", s.Active()))
	return nil
}

// Commit reads the picker's selection in display order and stores it as the
// new active list in a single write. The session is committed even when the
// write fails; the returned list is what was written.
func (s *Session) Commit(ctx context.Context) ([]int, error) {
	if s.state != StatePopulated {
		return nil, fmt.Errorf("%w: commit in state %s", ErrInvalidTransition, s.state)
	}

	selected := make([]int, 0, s.picker.Len())
	for pos := 0; pos < s.picker.Len(); pos++ {
		if s.picker.Selected(pos) {
			selected = append(selected, pos+1)
		}
	}

	s.state = StateCommitted
	s.metrics.ObserveSession(StateCommitted.String())

	err := s.config.SetIntList(ctx, paths.ActiveViewsKey, selected)
	s.metrics.ObserveCommit(len(selected), err)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrWrite, err)
		s.diagnose(err)
		s.logger.Warn("Could not activate/deactivate view", zap.Error(err))
		return selected, err
	}

	if len(selected) == 0 {
		s.logger.Warn("Stored an empty active view list; the next session will activate the first view")
	}
	s.logger.Info("Stored active views", zap.Ints("active", selected))
	return selected, nil
}

// Discard closes the session without touching configuration
func (s *Session) Discard() error {
	if s.state != StateUninitialized && s.state != StatePopulated {
		return fmt.Errorf("%w: discard in state %s", ErrInvalidTransition, s.state)
	}
	s.state = StateDiscarded
	s.metrics.ObserveSession(StateDiscarded.String())
	s.logger.Debug("Discarded view picker")
	return nil
}

// Finish applies the user's decision: confirmation commits, dismissal discards
func (s *Session) Finish(ctx context.Context, outcome Outcome) ([]int, error) {
	switch outcome {
	case OutcomeConfirmed:
		return s.Commit(ctx)
	case OutcomeDismissed:
		return nil, s.Discard()
	default:
		return nil, fmt.Errorf("%w: unknown outcome %d", ErrInvalidTransition, outcome)
	}
}

func (s *Session) diagnose(err error) {
	s.diagnostics = append(s.diagnostics, err)
}
