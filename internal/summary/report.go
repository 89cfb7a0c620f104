package summary

import "github.com/mrsinham/sakuramed/internal/exam"

// Patient is the patient block of the report.
type Patient struct {
	Name     string
	DOB      string
	MRN      string
	ExamDate string
}

// Finding is an AI-detected abnormality.
type Finding struct {
	Type      string
	Severity  Severity
	Location  string
	Timestamp string
	Author    string
}

// Annotation is an annotation listed in the report.
type Annotation struct {
	Type      string
	Location  string
	Timestamp string
	Author    string
}

// Details is the exam details block.
type Details struct {
	HPVStatus   string
	Severity    string
	BiopsyTaken bool
}

// Requisition is the pathology requisition panel.
type Requisition struct {
	Location     string
	Procedure    string
	ClinicalInfo string
	ICDCodes     []string
}

// Signature is the electronic signature block.
type Signature struct {
	SignedBy string
	SignedAt string
}

// Report is the full summary result set.
type Report struct {
	Patient       Patient
	Abnormalities []Finding
	Annotations   []Annotation
	Patterns      []exam.Pattern
	Details       Details
	Requisition   Requisition
	FollowUp      string
	Signature     Signature
}

// SeverityGroup is the findings sharing one severity.
type SeverityGroup struct {
	Severity Severity
	Color    Color
	Findings []Finding
}

var groupOrder = []Severity{SeverityHigh, SeverityModerate, SeverityLow, SeverityUnknown}

// GroupBySeverity groups the abnormalities, high first. Empty groups are
// omitted and findings keep their report order.
func (r Report) GroupBySeverity() []SeverityGroup {
	var groups []SeverityGroup
	for _, sev := range groupOrder {
		var fs []Finding
		for _, f := range r.Abnormalities {
			if f.Severity == sev {
				fs = append(fs, f)
			}
		}
		if len(fs) > 0 {
			groups = append(groups, SeverityGroup{Severity: sev, Color: ColorOf(sev), Findings: fs})
		}
	}
	return groups
}

// BiopsyLabel returns "Yes" or "No".
func (d Details) BiopsyLabel() string {
	if d.BiopsyTaken {
		return "Yes"
	}
	return "No"
}

// MockReport returns the hard-coded report of the summary screen.
func MockReport() Report {
	return Report{
		Patient: Patient{
			Name:     "Sarah Johnson",
			DOB:      "March 15, 1985",
			MRN:      "MRN12345",
			ExamDate: "January 6, 2025",
		},
		Abnormalities: []Finding{
			{Type: "Cervical Polyp", Severity: ParseSeverity("low"), Location: "Posterior lip", Timestamp: "14:32", Author: "Dr. Smith"},
			{Type: "Acetowhite Area", Severity: ParseSeverity("moderate"), Location: "6 o'clock position", Timestamp: "14:28", Author: "Dr. Smith"},
		},
		Annotations: []Annotation{
			{Type: "Cervical Polyp", Location: "Posterior lip", Timestamp: "14:32", Author: "Dr. Smith"},
			{Type: "Acetowhite Area", Location: "6 o'clock position", Timestamp: "14:28", Author: "Dr. Smith"},
			{Type: "Normal epithelium", Location: "Anterior lip", Timestamp: "14:25", Author: "Dr. Smith"},
		},
		Patterns: exam.MockPatterns(),
		Details: Details{
			HPVStatus: "Pending",
			Severity:  "Moderate",
		},
		Requisition: Requisition{
			Location:     "Cervical canal, posterior lip",
			Procedure:    "Pap smear + HPV co-test",
			ClinicalInfo: "Normal uterus morphology, no contraceptive implant",
			ICDCodes: []string{
				"Z01.419 - Encounter for gynecological examination",
				"Z12.3 - Encounter for screening for malignant neoplasm of cervix",
			},
		},
		FollowUp: "Recommend follow-up colposcopy in 6 months to monitor acetowhite area progression. " +
			"Consider HPV testing if not already completed. Patient education provided regarding " +
			"findings and importance of regular screening.",
		Signature: Signature{
			SignedBy: "Dr. Sarah Smith, MD",
			SignedAt: "January 6, 2025 at 3:45 PM EST",
		},
	}
}
