package navigator

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrAdvanceDisabled is returned when the current step's form is not complete.
// The navigator state is left untouched.
var ErrAdvanceDisabled = errors.New("advance disabled: step is incomplete")

// Completer reports whether a step's form satisfies its required-field predicate.
type Completer interface {
	Complete() bool
}

// PositioningVariant selects how the cervix positioning guide is presented.
type PositioningVariant int

const (
	// PositioningModal shows the guide as a dialog on the live exam screen.
	PositioningModal PositioningVariant = iota
	// PositioningRoute inserts the /cervix-positioning page before the live exam.
	PositioningRoute
)

// String returns the configuration name of the variant.
func (v PositioningVariant) String() string {
	if v == PositioningRoute {
		return "route"
	}
	return "modal"
}

// ParsePositioningVariant parses "modal" or "route".
func ParsePositioningVariant(s string) (PositioningVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "modal":
		return PositioningModal, nil
	case "route":
		return PositioningRoute, nil
	default:
		return PositioningModal, fmt.Errorf("invalid positioning variant: %s (valid: modal, route)", s)
	}
}

// CanAdvance reports whether the step may move forward. Steps without a form
// (nil completer) always may.
func CanAdvance(r Route, form Completer) bool {
	if form == nil {
		return true
	}
	return form.Complete()
}

// NextRoute returns the route that follows r using the modal positioning variant.
func NextRoute(r Route) Route {
	return nextRoute(r, PositioningModal)
}

func nextRoute(r Route, v PositioningVariant) Route {
	switch r {
	case RouteLogin:
		return RoutePatientSelection
	case RoutePatientSelection:
		return RoutePatientInfoEntry
	case RoutePatientInfoEntry:
		return RouteMedicalHistory
	case RouteMedicalHistory:
		return RoutePatientOverview
	case RoutePatientOverview:
		if v == PositioningRoute {
			return RouteCervixPositioning
		}
		return RouteLiveExam
	case RouteCervixPositioning:
		return RouteLiveExam
	case RouteLiveExam:
		return RouteExamSummary
	case RouteExamSummary:
		return RoutePatientOverview
	default:
		return RouteLogin
	}
}

// PrevRoute returns the route reached by the step's Back action.
func PrevRoute(r Route) Route {
	switch r {
	case RoutePatientInfoEntry:
		return RoutePatientSelection
	case RouteMedicalHistory:
		return RoutePatientInfoEntry
	case RoutePatientOverview:
		return RouteMedicalHistory
	case RouteCervixPositioning, RouteLiveExam:
		return RoutePatientOverview
	case RouteExamSummary:
		return RouteLiveExam
	default:
		return RouteLogin
	}
}

// Navigator tracks the active route of one session.
type Navigator struct {
	current Route
	variant PositioningVariant
	history []Route
	log     *zap.Logger
}

// New creates a navigator positioned on start.
func New(start Route, variant PositioningVariant, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{current: start, variant: variant, log: log}
}

// Current returns the active route.
func (n *Navigator) Current() Route { return n.current }

// Variant returns the positioning variant in use.
func (n *Navigator) Variant() PositioningVariant { return n.variant }

// History returns the routes visited before the current one, oldest first.
func (n *Navigator) History() []Route {
	out := make([]Route, len(n.history))
	copy(out, n.history)
	return out
}

// Next returns the route Advance would move to.
func (n *Navigator) Next() Route {
	return nextRoute(n.current, n.variant)
}

// Advance moves to the next route when the current step is complete.
func (n *Navigator) Advance(form Completer) (Route, error) {
	if !CanAdvance(n.current, form) {
		n.log.Debug("advance refused", zap.String("route", n.current.Path()))
		return n.current, ErrAdvanceDisabled
	}
	n.move(n.Next())
	return n.current, nil
}

// Back moves to the previous step of the workflow.
func (n *Navigator) Back() Route {
	n.move(PrevRoute(n.current))
	return n.current
}

// Jump moves directly to r, as the sidebar does.
func (n *Navigator) Jump(r Route) Route {
	n.move(r)
	return n.current
}

// JumpPath resolves path and moves to it. Unknown paths land on RouteNotFound.
func (n *Navigator) JumpPath(path string) Route {
	return n.Jump(Resolve(path))
}

func (n *Navigator) move(to Route) {
	n.log.Info("navigate",
		zap.String("from", n.current.Path()),
		zap.String("to", to.Path()),
		zap.String("page", to.String()))
	n.history = append(n.history, n.current)
	n.current = to
}
