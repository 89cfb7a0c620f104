// Package navigator maps workflow steps to routes and decides when a step may advance.
package navigator

import "strings"

// Route identifies one page of the exam workflow.
type Route int

const (
	RouteLogin Route = iota
	RoutePatientSelection
	RoutePatientInfoEntry
	RouteMedicalHistory
	RoutePatientOverview
	RouteCervixPositioning
	RouteLiveExam
	RouteExamSummary
	RouteNotFound
)

var routePaths = map[Route]string{
	RouteLogin:             "/",
	RoutePatientSelection:  "/patient-selection",
	RoutePatientInfoEntry:  "/patient-info-entry",
	RouteMedicalHistory:    "/medical-history",
	RoutePatientOverview:   "/patient-overview",
	RouteCervixPositioning: "/cervix-positioning",
	RouteLiveExam:          "/live-exam",
	RouteExamSummary:       "/exam-summary",
}

var routeTitles = map[Route]string{
	RouteLogin:             "Sign In",
	RoutePatientSelection:  "Patient Selection",
	RoutePatientInfoEntry:  "Patient Info Entry",
	RouteMedicalHistory:    "Medical History",
	RoutePatientOverview:   "Patient Overview",
	RouteCervixPositioning: "Cervix Positioning",
	RouteLiveExam:          "Live Exam",
	RouteExamSummary:       "Exam Summary",
	RouteNotFound:          "Not Found",
}

// Path returns the path the route is registered under. RouteNotFound has no path.
func (r Route) Path() string {
	return routePaths[r]
}

// String returns the human readable page title.
func (r Route) String() string {
	if t, ok := routeTitles[r]; ok {
		return t
	}
	return routeTitles[RouteNotFound]
}

// Resolve maps a path to its route. Unknown paths resolve to RouteNotFound.
func Resolve(path string) Route {
	p := strings.TrimSpace(path)
	if p == "" {
		return RouteLogin
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	for r, rp := range routePaths {
		if rp == p {
			return r
		}
	}
	return RouteNotFound
}

// SidebarRoutes lists the routes offered by the sidebar, in display order.
func SidebarRoutes() []Route {
	return []Route{
		RoutePatientSelection,
		RoutePatientInfoEntry,
		RouteMedicalHistory,
		RoutePatientOverview,
		RouteLiveExam,
		RouteExamSummary,
	}
}
