package home

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnknownAction is returned for menu actions outside the edit menu
var ErrUnknownAction = errors.New("unknown menu action")

// Action is one entry of the home edit menu
type Action int

const (
	ActionSelectApplets Action = iota
	ActionSelectShortcuts
	ActionSelectBookmarks
	ActionChangeBackground
	ActionSelectContacts
	ActionManageViews
)

var actionNames = [...]string{
	ActionSelectApplets:    "select-applets",
	ActionSelectShortcuts:  "select-shortcuts",
	ActionSelectBookmarks:  "select-bookmarks",
	ActionChangeBackground: "change-background",
	ActionSelectContacts:   "select-contacts",
	ActionManageViews:      "manage-views",
}

// message ids looked up in the translation catalogue by the presenter
var actionLabels = [...]string{
	ActionSelectApplets:    "home_me_select_applets",
	ActionSelectShortcuts:  "home_me_select_shortcuts",
	ActionSelectBookmarks:  "home_me_select_bookmarks",
	ActionChangeBackground: "home_me_change_background",
	ActionSelectContacts:   "home_me_select_contacts",
	ActionManageViews:      "home_me_manage_views",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Label returns the message id of the action's button text
func (a Action) Label() string {
	if a < 0 || int(a) >= len(actionLabels) {
		return ""
	}
	return actionLabels[a]
}

// ParseAction maps an action name back to its Action
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Actions returns the menu entries in display order
func Actions() []Action {
	out := make([]Action, len(actionNames))
	for i := range actionNames {
		out[i] = Action(i)
	}
	return out
}

// Dialog runs a modal dialog for the given view and returns when it closes
type Dialog func(ctx context.Context, currentView uint32) error

// Presenter shows the menu and reports the chosen action. ok is false when
// the menu was dismissed without a choice.
type Presenter interface {
	Present(ctx context.Context, currentView uint32, actions []Action) (choice Action, ok bool, err error)
}

// MenuOptions configures a Menu
type MenuOptions struct {
	Presenter Presenter
	Dialogs   map[Action]Dialog
	Logger    *zap.Logger
}

// Menu is the home edit menu. Every action except ManageViews runs its
// dialog and then hands the pointer back to the desktop.
type Menu struct {
	notifier  Notifier
	presenter Presenter
	dialogs   map[Action]Dialog
	logger    *zap.Logger
}

// NewMenu creates an edit menu that talks to the desktop through notifier
func NewMenu(notifier Notifier, opts MenuOptions) *Menu {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dialogs := make(map[Action]Dialog, len(opts.Dialogs))
	for a, d := range opts.Dialogs {
		dialogs[a] = d
	}
	return &Menu{
		notifier:  notifier,
		presenter: opts.Presenter,
		dialogs:   dialogs,
		logger:    logger,
	}
}

// Show presents the menu for currentView and activates the chosen entry
func (m *Menu) Show(ctx context.Context, currentView uint32) error {
	m.logger.Debug("Show edit menu", zap.Uint32("current_view", currentView))

	if m.presenter == nil {
		m.logger.Debug("No menu presenter configured")
		return nil
	}

	choice, ok, err := m.presenter.Present(ctx, currentView, Actions())
	if err != nil {
		return fmt.Errorf("present edit menu: %w", err)
	}
	if !ok {
		return nil
	}
	return m.Activate(ctx, choice, currentView)
}

// Activate runs a single menu action
func (m *Menu) Activate(ctx context.Context, action Action, currentView uint32) error {
	if action.Label() == "" {
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}
	log := m.logger.With(zap.Stringer("action", action), zap.Uint32("current_view", currentView))
	log.Debug("Menu action activated")

	if action == ActionManageViews {
		return m.notifier.ShowActivateViewsDialog(ctx)
	}

	if dialog := m.dialogs[action]; dialog != nil {
		if err := dialog(ctx, currentView); err != nil {
			log.Warn("Dialog failed", zap.Error(err))
		}
	} else {
		log.Debug("Dialog not implemented")
	}

	return m.notifier.GrabPointer(ctx)
}
