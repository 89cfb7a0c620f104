package exam

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ErrBiopsyNotTaken is returned by RecordBiopsy while the "biopsy taken" toggle is off.
var ErrBiopsyNotTaken = errors.New("biopsy not taken")

// DefaultExaminer is the author stamped on new annotations.
const DefaultExaminer = "Dr. Smith"

// ViewState is the state of one mounted live exam screen. It starts fresh
// on every entry and is dropped when the screen is left.
type ViewState struct {
	Settings *Settings
	Opacity  *Slider

	settingsOpen    bool
	positioningOpen bool
	aiSuggestions   bool
	tab             Tab
	tool            ShapeTool
	annotationType  string

	annotations []AnnotationRecord
	biopsyTaken bool
	biopsies    []BiopsyRecord
	Biopsy      BiopsyDraft
	Diagnosis   Diagnosis

	examiner string
	clock    clockwork.Clock
	log      *zap.Logger
}

// Option configures a ViewState.
type Option func(*ViewState)

// WithClock sets the clock used to timestamp records.
func WithClock(c clockwork.Clock) Option {
	return func(v *ViewState) { v.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *ViewState) {
		if l != nil {
			v.log = l
		}
	}
}

// WithExaminer sets the author of new annotations.
func WithExaminer(name string) Option {
	return func(v *ViewState) {
		if strings.TrimSpace(name) != "" {
			v.examiner = name
		}
	}
}

// NewViewState returns the state of a freshly entered live exam: settings
// panel closed, positioning guide open, annotate tab active.
func NewViewState(opts ...Option) *ViewState {
	v := &ViewState{
		Settings:        NewSettings(),
		Opacity:         NewSlider("Opacity", "%", OpacityRange, 50),
		positioningOpen: true,
		tab:             TabAnnotate,
		tool:            ToolCircle,
		annotationType:  DefaultAnnotationType,
		examiner:        DefaultExaminer,
		clock:           clockwork.NewRealClock(),
		log:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SettingsOpen reports whether the camera settings panel is shown.
func (v *ViewState) SettingsOpen() bool { return v.settingsOpen }

// ToggleSettings opens or closes the camera settings panel.
func (v *ViewState) ToggleSettings() { v.settingsOpen = !v.settingsOpen }

// PositioningOpen reports whether the positioning guide is shown.
func (v *ViewState) PositioningOpen() bool { return v.positioningOpen }

// DismissPositioning closes the positioning guide.
func (v *ViewState) DismissPositioning() { v.positioningOpen = false }

// ShowPositioning reopens the positioning guide from the help button.
func (v *ViewState) ShowPositioning() { v.positioningOpen = true }

// Tab returns the active side panel tab.
func (v *ViewState) Tab() Tab { return v.tab }

// SetTab activates t.
func (v *ViewState) SetTab(t Tab) { v.tab = t }

// AISuggestions reports whether AI suggestions are on.
func (v *ViewState) AISuggestions() bool { return v.aiSuggestions }

// ToggleAISuggestions flips the AI suggestions switch.
func (v *ViewState) ToggleAISuggestions() { v.aiSuggestions = !v.aiSuggestions }

// Tool returns the selected shape tool.
func (v *ViewState) Tool() ShapeTool { return v.tool }

// SetTool selects a shape tool.
func (v *ViewState) SetTool(t ShapeTool) { v.tool = t }

// AnnotationType returns the selected annotation type.
func (v *ViewState) AnnotationType() string { return v.annotationType }

// SetAnnotationType selects one of AnnotationTypes. Unknown types are ignored.
func (v *ViewState) SetAnnotationType(t string) bool {
	for _, at := range AnnotationTypes {
		if at == t || Slug(at) == t {
			v.annotationType = at
			return true
		}
	}
	return false
}

// AddAnnotation appends an annotation of the selected type, tool and
// opacity to the in-memory list.
func (v *ViewState) AddAnnotation(label string) AnnotationRecord {
	rec := AnnotationRecord{
		ID:        uuid.NewString(),
		Type:      v.annotationType,
		Label:     strings.TrimSpace(label),
		Tool:      v.tool,
		Opacity:   v.Opacity.Value(),
		Timestamp: v.clock.Now(),
		Author:    v.examiner,
	}
	v.annotations = append(v.annotations, rec)
	v.log.Info("annotation added",
		zap.String("id", rec.ID),
		zap.String("type", rec.Type),
		zap.String("tool", rec.Tool.String()),
		zap.Float64("opacity", rec.Opacity))
	return rec
}

// Annotations returns the annotations added on this screen, oldest first.
func (v *ViewState) Annotations() []AnnotationRecord {
	out := make([]AnnotationRecord, len(v.annotations))
	copy(out, v.annotations)
	return out
}

// AnnotationCount returns the number of annotations added on this screen.
func (v *ViewState) AnnotationCount() int { return len(v.annotations) }

// BiopsyTaken reports the "Was a biopsy taken?" toggle.
func (v *ViewState) BiopsyTaken() bool { return v.biopsyTaken }

// SetBiopsyTaken sets the toggle.
func (v *ViewState) SetBiopsyTaken(on bool) { v.biopsyTaken = on }

// RecordBiopsy appends the current biopsy draft. Missing marked fields do
// not block recording; see MissingBiopsyFields.
func (v *ViewState) RecordBiopsy() (BiopsyRecord, error) {
	if !v.biopsyTaken {
		return BiopsyRecord{}, ErrBiopsyNotTaken
	}
	rec := BiopsyRecord{
		ID:           uuid.NewString(),
		Site:         v.Biopsy.Site,
		Method:       v.Biopsy.Method,
		Hemostasis:   v.Biopsy.Hemostasis,
		Observations: strings.TrimSpace(v.Biopsy.Observations),
		Timestamp:    v.clock.Now(),
	}
	v.biopsies = append(v.biopsies, rec)
	v.log.Info("biopsy recorded",
		zap.String("id", rec.ID),
		zap.String("site", rec.Site),
		zap.Int("count", len(v.biopsies)),
		zap.Strings("missing", MissingBiopsyFields(v.Biopsy)))
	return rec, nil
}

// Biopsies returns the recorded biopsies, oldest first.
func (v *ViewState) Biopsies() []BiopsyRecord {
	out := make([]BiopsyRecord, len(v.biopsies))
	copy(out, v.biopsies)
	return out
}

// BiopsyCount returns the number of recorded biopsies.
func (v *ViewState) BiopsyCount() int { return len(v.biopsies) }
