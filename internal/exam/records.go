package exam

import (
	"fmt"
	"strings"
	"time"
)

// AnnotationTypes lists the annotation types offered by the annotate tab.
var AnnotationTypes = []string{
	"Lesion",
	"Acetowhite Area",
	"Mosaicism",
	"Punctation",
	"Friable Tissue",
	"Cervical Polyp",
	"Erosion",
	"Vaginal Discharge",
	"Suspicious Vessels",
	"Nodule",
}

// DefaultAnnotationType is preselected when the annotate tab opens.
const DefaultAnnotationType = "Cervical Polyp"

// Biopsy form options.
var (
	BiopsySites       = []string{"Anterior lip", "Posterior lip", "Lateral wall", "Posterior fornix", "Anterior fornix", "Cervical canal"}
	BiopsyMethods     = []string{"Forceps", "Curettage", "Brush", "Punch biopsy"}
	HemostasisMethods = []string{"Silver nitrate", "Direct pressure", "Monsel's solution", "Electrocautery"}
)

// Slug turns a display label into its identifier, e.g. "Cervical Polyp" → "cervical-polyp".
func Slug(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "-")
}

// AnnotationRecord is one marker placed on the live view.
type AnnotationRecord struct {
	ID        string
	Type      string
	Label     string
	Tool      ShapeTool
	Opacity   float64
	Timestamp time.Time
	Author    string
}

// Clock returns the HH:MM time shown in the annotation list.
func (a AnnotationRecord) Clock() string {
	return a.Timestamp.Format("15:04")
}

// RecentAnnotation is an entry of the read-only recent annotations list.
type RecentAnnotation struct {
	Type      string
	Timestamp string
	Author    string
}

// MockRecentAnnotations returns the annotations already on file for the exam.
func MockRecentAnnotations() []RecentAnnotation {
	return []RecentAnnotation{
		{Type: "Cervical Polyp", Timestamp: "14:32", Author: "Dr. Smith"},
		{Type: "Acetowhite Area", Timestamp: "14:28", Author: "Dr. Smith"},
	}
}

// BiopsyDraft is the content of the biopsy tab.
type BiopsyDraft struct {
	Site         string
	Method       string
	Hemostasis   string
	Observations string
}

// BiopsyRecord is a recorded tissue sample.
type BiopsyRecord struct {
	ID           string
	Site         string
	Method       string
	Hemostasis   string
	Observations string
	Timestamp    time.Time
}

// MissingBiopsyFields returns the labels of the marked (*) fields left empty.
func MissingBiopsyFields(d BiopsyDraft) []string {
	var missing []string
	if strings.TrimSpace(d.Site) == "" {
		missing = append(missing, "Biopsy Site")
	}
	if strings.TrimSpace(d.Method) == "" {
		missing = append(missing, "Biopsy Method")
	}
	if strings.TrimSpace(d.Hemostasis) == "" {
		missing = append(missing, "Hemostasis Method")
	}
	return missing
}

// BiopsyCountLabel renders the running count, e.g. "1 biopsy taken".
func BiopsyCountLabel(n int) string {
	if n == 1 {
		return "1 biopsy taken"
	}
	return fmt.Sprintf("%d biopsies taken", n)
}

// Diagnosis select options.
var (
	HPVStatuses    = []Choice{{"positive", "Positive"}, {"negative", "Negative"}, {"unknown", "Unknown"}}
	SeverityLevels = []Choice{{"low", "Low"}, {"moderate", "Moderate"}, {"high", "High"}}
	FollowUpPlans  = []Choice{{"repeat-pap-1yr", "Repeat Pap in 1 year"}, {"colposcopy", "Colposcopy"}, {"biopsy", "Biopsy"}, {"routine-screening", "Routine screening"}}
)

// Choice is a value/label pair of a select.
type Choice struct {
	Value string
	Label string
}

// ChoiceLabel returns the label of value among choices, or value when absent.
func ChoiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// Diagnosis is the draft of the diagnosis tab.
type Diagnosis struct {
	HPVStatus string
	Severity  string
	FollowUp  string
	Notes     string
}

// Pattern is one pattern recognition score.
type Pattern struct {
	Name       string
	Percentage int
}

// MockPatterns returns the pattern recognition scores shown on the diagnosis tab.
func MockPatterns() []Pattern {
	return []Pattern{
		{Name: "Acetowhite", Percentage: 85},
		{Name: "Mosaicism", Percentage: 62},
		{Name: "Punctation", Percentage: 43},
	}
}

// PatientHeader is the patient strip at the top of the live exam.
type PatientHeader struct {
	Name      string
	DOB       string
	MRN       string
	Reason    string
	Allergies string
}

// MockPatientHeader returns the header of the mock exam.
func MockPatientHeader() PatientHeader {
	return PatientHeader{
		Name:      "Sarah Johnson",
		DOB:       "March 15, 1985",
		MRN:       "MRN12345",
		Reason:    "Annual Pap Screening",
		Allergies: "NKDA",
	}
}

// Guide is the cervix positioning checklist shown before imaging.
type Guide struct {
	Title string
	Intro string
	Do    []string
	Avoid []string
}

// PositioningGuide returns the positioning checklist.
func PositioningGuide() Guide {
	return Guide{
		Title: "Please ensure the full cervix is in view",
		Intro: "Before proceeding with the examination, make sure the cervix is clearly visible " +
			"and centered in the frame. This ensures accurate imaging and proper documentation.",
		Do:    []string{"Cervix centered in frame", "Full cervix visible", "Clear focus and lighting", "Minimal reflection"},
		Avoid: []string{"Partial cervix view", "Off-center positioning", "Blurry or dark images", "Excessive glare"},
	}
}
