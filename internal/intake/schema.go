package intake

// Field names a form field.
type Field string

// Field names shared by the intake schemas.
const (
	FieldUsername       Field = "username"
	FieldPassword       Field = "password"
	FieldFirstName      Field = "firstName"
	FieldLastName       Field = "lastName"
	FieldDateOfBirth    Field = "dateOfBirth"
	FieldGender         Field = "gender"
	FieldHomePhone      Field = "homePhone"
	FieldCellPhone      Field = "cellPhone"
	FieldReasonForVisit Field = "reasonForVisit"
	FieldBirthControl   Field = "birthControl"
	FieldMenstrualCycle Field = "menstrualCycle"
	FieldVisitTypes     Field = "visitTypes"
	FieldAllergies      Field = "allergies"
	FieldMedications    Field = "medications"
	FieldNotes          Field = "additionalNotes"
	FieldExamTypes      Field = "examTypes"
)

// Kind is the input kind of a field.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindChoice
	KindMulti
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindChoice:
		return "choice"
	case KindMulti:
		return "multi"
	default:
		return "text"
	}
}

// Option is one selectable value of a choice or multi field.
type Option struct {
	Value string
	Label string
	// Group is an optional heading the option is listed under.
	Group string
}

// FieldSpec declares one field of a schema.
type FieldSpec struct {
	Name        Field
	Label       string
	Kind        Kind
	Required    bool
	Options     []Option
	Placeholder string
	// Secret masks the value when displayed.
	Secret bool
}

// HasOption reports whether value is one of the field's options.
func (s FieldSpec) HasOption(value string) bool {
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the label of value, or value itself when unknown.
func (s FieldSpec) OptionLabel(value string) string {
	for _, o := range s.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// HasOther reports whether the field offers an "Other" companion input.
func (s FieldSpec) HasOther() bool { return s.HasOption(Other) }

// Schema is the ordered field list of one step.
type Schema struct {
	Name   string
	Fields []FieldSpec
}

// Spec returns the declaration of name.
func (s Schema) Spec(name Field) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Required returns the names of the required fields in order.
func (s Schema) Required() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

func opts(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

var otherOption = Option{Value: Other, Label: "Other"}

var genderOptions = []Option{
	{Value: "female", Label: "Female"},
	{Value: "male", Label: "Male"},
	{Value: "non-binary", Label: "Non-binary"},
	{Value: "prefer-not-to-say", Label: "Prefer not to say"},
}

// ReasonOptions lists the reasons for visit, grouped as on the intake page.
var ReasonOptions = []Option{
	{Value: "cosmetic", Label: "Cosmetic", Group: "Top Complaints"},
	{Value: "well-woman-40-49", Label: "Well Woman (40–49)", Group: "Top Complaints"},
	{Value: "gyn-pregnancy-counseling", Label: "GYN Pregnancy Counseling", Group: "Top Complaints"},
	{Value: "vaginal-discharge", Label: "Vaginal Discharge", Group: "Top Complaints"},
	{Value: "postmenopausal-bleeding", Label: "Postmenopausal Bleeding", Group: "Top Complaints"},
	{Value: "prepregnancy-counseling", Label: "Prepregnancy Counseling", Group: "Top Complaints"},
	{Value: "incidental-finding", Label: "Incidental Finding", Group: "Top Complaints"},
	{Value: "sti-check", Label: "STI Check", Group: "Other Complaints"},
	{Value: "pap-smear-follow-up", Label: "Pap Smear Follow-up", Group: "Other Complaints"},
	{Value: "irregular-bleeding", Label: "Irregular Bleeding", Group: "Other Complaints"},
	{Value: "pelvic-pain", Label: "Pelvic Pain", Group: "Other Complaints"},
	{Value: "unusual-discharge", Label: "Unusual Discharge", Group: "Other Complaints"},
	{Value: Other, Label: "Other", Group: "Other Complaints"},
}

// LoginSchema is the sign-in form.
func LoginSchema() Schema {
	return Schema{
		Name: "login",
		Fields: []FieldSpec{
			{Name: FieldUsername, Label: "Username", Kind: KindText, Required: true, Placeholder: "Enter your username"},
			{Name: FieldPassword, Label: "Password", Kind: KindText, Required: true, Placeholder: "Enter your password", Secret: true},
		},
	}
}

// PatientInfoSchema is step 1 of patient intake.
func PatientInfoSchema() Schema {
	return Schema{
		Name: "patient-info",
		Fields: []FieldSpec{
			{Name: FieldFirstName, Label: "First Name", Kind: KindText, Required: true, Placeholder: "First name"},
			{Name: FieldLastName, Label: "Last Name", Kind: KindText, Required: true, Placeholder: "Last name"},
			{Name: FieldDateOfBirth, Label: "Date of Birth", Kind: KindDate, Required: true, Placeholder: DateLayoutHint},
			{Name: FieldGender, Label: "Gender", Kind: KindChoice, Options: genderOptions},
			{Name: FieldHomePhone, Label: "Home Phone", Kind: KindText, Placeholder: "(555) 123-4567"},
			{Name: FieldCellPhone, Label: "Cell Phone", Kind: KindText, Placeholder: "(555) 987-6543"},
			{Name: FieldReasonForVisit, Label: "Reason for Visit", Kind: KindChoice, Options: ReasonOptions},
		},
	}
}

// MedicalHistorySchema is step 2 of patient intake.
func MedicalHistorySchema() Schema {
	return Schema{
		Name: "medical-history",
		Fields: []FieldSpec{
			{Name: FieldBirthControl, Label: "Birth Control", Kind: KindChoice, Required: true, Options: []Option{
				{Value: "yes", Label: "Yes"},
				{Value: "no", Label: "No"},
				{Value: "prefer-not-to-say", Label: "Prefer not to say"},
			}},
			{Name: FieldMenstrualCycle, Label: "Menstrual Cycle", Kind: KindChoice, Options: []Option{
				{Value: "regular", Label: "Regular"},
				{Value: "irregular", Label: "Irregular"},
				{Value: "menopausal", Label: "Menopausal"},
				{Value: "not-applicable", Label: "Not applicable"},
				otherOption,
			}},
			{Name: FieldVisitTypes, Label: "Visit Type", Kind: KindMulti,
				Options: append(opts("Routine Checkup", "Emergency/Urgent", "Follow-Up Visit", "Second Opinion"), otherOption)},
			{Name: FieldAllergies, Label: "Allergies", Kind: KindMulti,
				Options: append(opts("Latex", "Penicillin", "Iodine", "Adhesive", "No Known Allergies"), otherOption)},
			{Name: FieldMedications, Label: "Current Medications", Kind: KindMulti,
				Options: append(opts("Birth Control Pills", "Hormone Replacement Therapy", "Antibiotics (UTI)", "Antifungal (yeast infections)"), otherOption)},
			{Name: FieldNotes, Label: "Additional Notes", Kind: KindText, Placeholder: "Anything else the examiner should know"},
			{Name: FieldHomePhone, Label: "Home Phone", Kind: KindText, Placeholder: "(555) 123-4567"},
			{Name: FieldCellPhone, Label: "Cell Phone", Kind: KindText, Placeholder: "(555) 987-6543"},
			{Name: FieldGender, Label: "Gender", Kind: KindChoice, Options: append(append([]Option{}, genderOptions...), otherOption)},
		},
	}
}

// ExamTypeSchema is the exam-type dialog of the patient overview.
func ExamTypeSchema() Schema {
	return Schema{
		Name: "exam-type",
		Fields: []FieldSpec{
			{Name: FieldExamTypes, Label: "Exam Type", Kind: KindMulti, Required: true,
				Options: opts("GYN Pelvic and Abdominal Exam", "GYN Focused Exam", "GYN Breast Exam", "GYN Counseling")},
		},
	}
}
