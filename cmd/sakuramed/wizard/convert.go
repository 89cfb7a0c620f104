package wizard

import (
	"fmt"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/navigator"
	"github.com/mrsinham/sakuramed/internal/session"
)

// toSessionOptions converts the configuration into session options.
func toSessionOptions(env types.Env, prefill *intake.Patient) (session.Options, error) {
	cfg := env.Config
	variant, err := navigator.ParsePositioningVariant(cfg.Exam.Positioning)
	if err != nil {
		return session.Options{}, fmt.Errorf("invalid positioning variant: %w", err)
	}

	start := navigator.Resolve(cfg.UI.StartRoute)
	if start == navigator.RouteCervixPositioning && variant != navigator.PositioningRoute {
		start = navigator.RouteLiveExam
	}

	return session.Options{
		Start:       start,
		Variant:     variant,
		Clock:       env.Clock,
		SignInDelay: cfg.Auth.Delay,
		Examiner:    cfg.Exam.Examiner,
		Log:         env.Log.Named("session"),
		Prefill:     prefill,
	}, nil
}
