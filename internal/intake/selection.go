package intake

import "slices"

// Other is the option value that enables a group's free-text companion field.
const Other = "other"

// Selection holds the chosen options of a radio/select or checkbox group
// together with the free text of its "Other" companion input.
//
// The companion is enabled exactly when Other is selected. Deselecting Other
// disables the companion but keeps whatever text was typed.
type Selection struct {
	multiple  bool
	selected  []string
	otherText string
}

// NewSelection creates an empty selection. multiple selects checkbox
// semantics; otherwise a new choice replaces the previous one.
func NewSelection(multiple bool) *Selection {
	return &Selection{multiple: multiple}
}

// Multiple reports whether several options may be selected at once.
func (s *Selection) Multiple() bool { return s.multiple }

// Set selects or deselects option.
func (s *Selection) Set(option string, on bool) {
	if !on {
		s.selected = slices.DeleteFunc(s.selected, func(v string) bool { return v == option })
		return
	}
	if s.Has(option) {
		return
	}
	if s.multiple {
		s.selected = append(s.selected, option)
		return
	}
	s.selected = []string{option}
}

// Replace sets the selection to exactly values, keeping their order.
func (s *Selection) Replace(values []string) {
	s.selected = s.selected[:0]
	for _, v := range values {
		s.Set(v, true)
	}
}

// Has reports whether option is selected.
func (s *Selection) Has(option string) bool {
	return slices.Contains(s.selected, option)
}

// Values returns the selected options in selection order.
func (s *Selection) Values() []string {
	return slices.Clone(s.selected)
}

// Value returns the first selected option, or "" when nothing is selected.
func (s *Selection) Value() string {
	if len(s.selected) == 0 {
		return ""
	}
	return s.selected[0]
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool { return len(s.selected) == 0 }

// OtherEnabled reports whether the companion input accepts text.
func (s *Selection) OtherEnabled() bool { return s.Has(Other) }

// OtherText returns the companion text, whether or not it is enabled.
func (s *Selection) OtherText() string { return s.otherText }

// SetOtherText updates the companion text. It fails with ErrOtherDisabled,
// leaving the text unchanged, while Other is not selected.
func (s *Selection) SetOtherText(text string) error {
	if !s.OtherEnabled() {
		return ErrOtherDisabled
	}
	s.otherText = text
	return nil
}
