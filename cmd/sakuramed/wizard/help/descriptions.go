package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// OtherSuffix is appended to a field key to name its "Other" companion input.
const OtherSuffix = "Other"

// Texts contains help information for all form fields, keyed by field name
var Texts = map[string]HelpText{
	"firstName": {
		Title:       "FIRST NAME",
		Description: "Patient's given name as it appears on their ID.",
		Details:     "Required.",
	},
	"lastName": {
		Title:       "LAST NAME",
		Description: "Patient's family name.",
		Details:     "Required.",
	},
	"dateOfBirth": {
		Title:       "DATE OF BIRTH",
		Description: "Used to compute the age shown on the patient overview.",
		Details:     "Format: YYYY-MM-DD, between 1900-01-01 and today. Required.",
	},
	"gender": {
		Title:       "GENDER",
		Description: "Gender the patient identifies with.",
		Details:     "Optional. On the medical history step an Other answer can be typed in free text.",
	},
	"genderOther": {
		Title:       "GENDER (OTHER)",
		Description: "Free-text gender, enabled when Other is selected.",
	},
	"homePhone": {
		Title:       "HOME PHONE",
		Description: "Landline number.",
		Details:     "Optional. Example: (555) 123-4567",
	},
	"cellPhone": {
		Title:       "CELL PHONE",
		Description: "Mobile number used for appointment reminders.",
		Details:     "Optional. Example: (555) 987-6543",
	},
	"reasonForVisit": {
		Title:       "REASON FOR VISIT",
		Description: "Main complaint that brought the patient in.",
		Details: `Top complaints are listed first, followed by other complaints.
Choose Other to describe the reason in free text.`,
	},
	"reasonForVisitOther": {
		Title:       "REASON FOR VISIT (OTHER)",
		Description: "Free-text reason, enabled when Other is selected.",
	},
	"birthControl": {
		Title:       "BIRTH CONTROL",
		Description: "Whether the patient currently uses birth control.",
		Details:     "Yes, No or Prefer not to say. Required.",
	},
	"menstrualCycle": {
		Title:       "MENSTRUAL CYCLE",
		Description: "Regularity of the patient's cycle.",
		Details:     "Optional. Choose Other to describe it in free text.",
	},
	"menstrualCycleOther": {
		Title:       "MENSTRUAL CYCLE (OTHER)",
		Description: "Free-text description, enabled when Other is selected.",
	},
	"visitTypes": {
		Title:       "VISIT TYPE",
		Description: "Kinds of visit this appointment covers.",
		Details:     "Several may be selected with space or x.",
	},
	"visitTypesOther": {
		Title:       "VISIT TYPE (OTHER)",
		Description: "Free-text visit type, enabled when Other is selected.",
	},
	"allergies": {
		Title:       "ALLERGIES",
		Description: "Known allergies relevant to the exam.",
		Details:     "Latex and iodine matter for speculum and staining.",
	},
	"allergiesOther": {
		Title:       "ALLERGIES (OTHER)",
		Description: "Free-text allergies, enabled when Other is selected.",
	},
	"medications": {
		Title:       "CURRENT MEDICATIONS",
		Description: "Medication the patient is taking.",
		Details:     "Several may be selected.",
	},
	"medicationsOther": {
		Title:       "CURRENT MEDICATIONS (OTHER)",
		Description: "Free-text medication list, enabled when Other is selected.",
	},
	"additionalNotes": {
		Title:       "ADDITIONAL NOTES",
		Description: "Anything else the examiner should know.",
	},
	"examTypes": {
		Title:       "EXAM TYPE",
		Description: "Exams performed during this visit.",
		Details:     "Select at least one to start the exam.",
	},
	"biopsySite": {
		Title:       "BIOPSY SITE",
		Description: "Clock position or area the sample was taken from.",
	},
	"biopsyMethod": {
		Title:       "BIOPSY METHOD",
		Description: "Instrument or technique used.",
	},
	"hemostasis": {
		Title:       "HEMOSTASIS METHOD",
		Description: "How bleeding was controlled after sampling.",
	},
	"biopsyTaken": {
		Title:       "BIOPSY TAKEN",
		Description: "A sample is only recorded when this is on.",
	},
	"hpvStatus": {
		Title:       "HPV STATUS",
		Description: "Result of the HPV test, when known.",
	},
	"severity": {
		Title:       "SEVERITY",
		Description: "Overall severity of the findings.",
	},
	"followUp": {
		Title:       "FOLLOW-UP PLAN",
		Description: "Next step recommended to the patient.",
	},
	"diagnosisNotes": {
		Title:       "DIAGNOSIS NOTES",
		Description: "Free-text clinical impression.",
	},
}
