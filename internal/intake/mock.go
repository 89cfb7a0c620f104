package intake

import "time"

// Patient is the intake record shown on the patient overview.
type Patient struct {
	FirstName       string
	LastName        string
	DateOfBirth     string
	Gender          string
	HomePhone       string
	CellPhone       string
	ReasonForVisit  string
	BirthControl    string
	MenstrualCycle  string
	VisitTypes      []string
	Allergies       []string
	Medications     []string
	AdditionalNotes string
	MRN             string
	RecentVisits    []Visit
	// Images is the number of past imaging studies on file.
	Images int
}

// Visit is one line of the recent visits list.
type Visit struct {
	Kind string
	Date string
}

// FullName returns "First Last".
func (p Patient) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Age returns the patient's age on today. ok is false when the birth date
// is missing, unparsable or out of range.
func (p Patient) Age(today time.Time) (age int, ok bool) {
	dob, err := CheckBirthDate(p.DateOfBirth, today)
	if err != nil {
		return 0, false
	}
	return Age(dob, today), true
}

// MockPatient returns the hard-coded overview record.
func MockPatient() Patient {
	return Patient{
		FirstName:       "Sarah",
		LastName:        "Johnson",
		DateOfBirth:     "1985-03-15",
		Gender:          "Female",
		HomePhone:       "(555) 123-4567",
		CellPhone:       "(555) 987-6543",
		ReasonForVisit:  "Well Woman (40–49)",
		BirthControl:    "Yes",
		MenstrualCycle:  "Regular",
		VisitTypes:      []string{"Routine Checkup"},
		Allergies:       []string{"Latex", "Penicillin"},
		Medications:     []string{"Birth Control Pills"},
		AdditionalNotes: "Patient reports no unusual symptoms. Regular menstrual cycle.",
		MRN:             "MRN12345",
		RecentVisits: []Visit{
			{Kind: "Annual Checkup", Date: "2024-02-15"},
			{Kind: "Follow-up Visit", Date: "2023-11-22"},
		},
		Images: 4,
	}
}

// PrefillPatientInfo writes p's demographics into a patient info form.
// Fields that do not fit the schema are skipped.
func PrefillPatientInfo(f *Form, p Patient) {
	_ = f.SetField(FieldFirstName, p.FirstName)
	_ = f.SetField(FieldLastName, p.LastName)
	_ = f.SetField(FieldDateOfBirth, p.DateOfBirth)
	_ = f.SetField(FieldHomePhone, p.HomePhone)
	_ = f.SetField(FieldCellPhone, p.CellPhone)
	if p.Gender != "" {
		_ = f.SetField(FieldGender, genderValue(p.Gender))
	}
}

func genderValue(s string) string {
	switch s {
	case "F", "Female", "female":
		return "female"
	case "M", "Male", "male":
		return "male"
	default:
		return ""
	}
}
