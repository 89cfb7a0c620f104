// Package intake holds the per-step form state of patient intake: field
// values, "Other" companion inputs and required-field validation.
package intake

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"
)

// Messages shown inline next to a field.
const (
	MsgRequired    = "Required field"
	MsgInvalidDate = "Invalid date, use YYYY-MM-DD"
)

var (
	// ErrUnknownField is returned for a field name the form's schema does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownOption is returned when toggling an option the field does not offer.
	ErrUnknownOption = errors.New("unknown option")
	// ErrWrongKind is returned when an operation does not apply to the field's kind.
	ErrWrongKind = errors.New("operation does not apply to field kind")
	// ErrOtherDisabled is returned when writing companion text while Other is unselected.
	ErrOtherDisabled = errors.New("other input is disabled")
)

// Form is the state of one intake step. It is created empty when the step
// is entered and discarded when the step is left.
type Form struct {
	schema     Schema
	values     map[Field]string
	selections map[Field]*Selection
	errors     map[Field]string
	now        func() time.Time
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithNow sets the clock used to bound date fields. Defaults to time.Now.
func WithNow(now func() time.Time) FormOption {
	return func(f *Form) { f.now = now }
}

// NewForm creates an empty form for schema.
func NewForm(schema Schema, opts ...FormOption) *Form {
	f := &Form{
		schema:     schema,
		values:     make(map[Field]string),
		selections: make(map[Field]*Selection),
		errors:     make(map[Field]string),
		now:        time.Now,
	}
	for _, spec := range schema.Fields {
		switch spec.Kind {
		case KindChoice:
			f.selections[spec.Name] = NewSelection(false)
		case KindMulti:
			f.selections[spec.Name] = NewSelection(true)
		}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() Schema { return f.schema }

// SetField sets a text or date field, or the single value of a choice field,
// and clears that field's error.
func (f *Form) SetField(name Field, value string) error {
	spec, ok := f.schema.Spec(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	switch spec.Kind {
	case KindText, KindDate:
		f.values[name] = value
	case KindChoice:
		sel := f.selections[name]
		if value == "" {
			sel.Replace(nil)
			break
		}
		if !spec.HasOption(value) {
			return fmt.Errorf("%w: %s for %s", ErrUnknownOption, value, name)
		}
		sel.Set(value, true)
	default:
		return fmt.Errorf("%w: set %s", ErrWrongKind, name)
	}
	delete(f.errors, name)
	return nil
}

// Toggle selects or deselects option of a choice or multi field and clears
// the field's error.
func (f *Form) Toggle(name Field, option string, on bool) error {
	sel, spec, err := f.selection(name)
	if err != nil {
		return err
	}
	if !spec.HasOption(option) {
		return fmt.Errorf("%w: %s for %s", ErrUnknownOption, option, name)
	}
	sel.Set(option, on)
	delete(f.errors, name)
	return nil
}

// SetSelected replaces the selection of a choice or multi field.
func (f *Form) SetSelected(name Field, options []string) error {
	sel, spec, err := f.selection(name)
	if err != nil {
		return err
	}
	for _, o := range options {
		if !spec.HasOption(o) {
			return fmt.Errorf("%w: %s for %s", ErrUnknownOption, o, name)
		}
	}
	sel.Replace(options)
	delete(f.errors, name)
	return nil
}

// SetOtherText writes the companion text of name's "Other" option.
func (f *Form) SetOtherText(name Field, text string) error {
	sel, _, err := f.selection(name)
	if err != nil {
		return err
	}
	if err := sel.SetOtherText(text); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	delete(f.errors, name)
	return nil
}

// Selection returns the selection backing a choice or multi field.
func (f *Form) Selection(name Field) (*Selection, bool) {
	sel, ok := f.selections[name]
	return sel, ok
}

// Value returns a text/date value or the first selected option.
func (f *Form) Value(name Field) string {
	if sel, ok := f.selections[name]; ok {
		return sel.Value()
	}
	return f.values[name]
}

// Values returns the selected options of a choice or multi field.
func (f *Form) Values(name Field) []string {
	if sel, ok := f.selections[name]; ok {
		return sel.Values()
	}
	return nil
}

// OtherEnabled reports whether name's companion input is enabled.
func (f *Form) OtherEnabled(name Field) bool {
	sel, ok := f.selections[name]
	return ok && sel.OtherEnabled()
}

// Validate checks every field, records the error flags and returns them
// keyed by field.
func (f *Form) Validate() map[Field]string {
	f.errors = f.check()
	return maps.Clone(f.errors)
}

// Errors returns the error flags recorded by the last Validate, minus the
// fields edited since.
func (f *Form) Errors() map[Field]string {
	return maps.Clone(f.errors)
}

// Error returns the recorded message for name.
func (f *Form) Error(name Field) string {
	return f.errors[name]
}

// SetError flags name with msg until the field is edited again.
func (f *Form) SetError(name Field, msg string) error {
	if _, ok := f.schema.Spec(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.errors[name] = msg
	return nil
}

// Complete reports whether every required field is satisfied. Unlike
// Validate it leaves the error flags alone.
func (f *Form) Complete() bool {
	return len(f.check()) == 0
}

// Missing returns the labels of the fields that currently fail, in schema order.
func (f *Form) Missing() []string {
	errs := f.check()
	var out []string
	for _, spec := range f.schema.Fields {
		if _, bad := errs[spec.Name]; bad {
			out = append(out, spec.Label)
		}
	}
	return out
}

// CheckField returns the message name would get from Validate, or "".
func (f *Form) CheckField(name Field) string {
	spec, ok := f.schema.Spec(name)
	if !ok {
		return ""
	}
	return f.checkField(spec)
}

func (f *Form) check() map[Field]string {
	errs := make(map[Field]string)
	for _, spec := range f.schema.Fields {
		if msg := f.checkField(spec); msg != "" {
			errs[spec.Name] = msg
		}
	}
	return errs
}

func (f *Form) checkField(spec FieldSpec) string {
	switch spec.Kind {
	case KindChoice, KindMulti:
		if spec.Required && f.selections[spec.Name].Empty() {
			return MsgRequired
		}
	case KindDate:
		v := strings.TrimSpace(f.values[spec.Name])
		if v == "" {
			if spec.Required {
				return MsgRequired
			}
			return ""
		}
		if _, err := CheckBirthDate(v, f.now()); err != nil {
			return MsgInvalidDate
		}
	default:
		if spec.Required && strings.TrimSpace(f.values[spec.Name]) == "" {
			return MsgRequired
		}
	}
	return ""
}

func (f *Form) selection(name Field) (*Selection, FieldSpec, error) {
	spec, ok := f.schema.Spec(name)
	if !ok {
		return nil, FieldSpec{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	sel, ok := f.selections[name]
	if !ok {
		return nil, spec, fmt.Errorf("%w: %s is not a choice field", ErrWrongKind, name)
	}
	return sel, spec, nil
}
