// Package dicomimport reads patient demographics out of a DICOM file so the
// intake form can be prefilled from an imaging record.
package dicomimport

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/sakuramed/internal/intake"
)

const (
	explicitVRLittleEndian = "1.2.840.10008.1.2.1"
	// VL Photographic Image Storage, the SOP class colposcopes export.
	vlPhotographicImageStorage = "1.2.840.10008.5.1.4.1.1.77.1.4"
	daLayout                   = "20060102"
)

// ErrNoPatientName is returned when the file carries no usable patient name.
var ErrNoPatientName = errors.New("dicom file has no patient name")

// Demographics is the patient identity carried by a DICOM file.
type Demographics struct {
	PatientID  string
	FamilyName string
	GivenName  string
	// BirthDate is YYYY-MM-DD, empty when absent or unparsable.
	BirthDate string
	// Sex is the DICOM code: F, M or O.
	Sex string
}

// Patient converts the demographics into an intake record.
func (d Demographics) Patient() intake.Patient {
	p := intake.Patient{
		FirstName:   d.GivenName,
		LastName:    d.FamilyName,
		DateOfBirth: d.BirthDate,
		MRN:         d.PatientID,
	}
	switch d.Sex {
	case "F":
		p.Gender = "Female"
	case "M":
		p.Gender = "Male"
	}
	return p
}

// Read parses path with pixel data skipped and extracts the demographics.
func Read(path string) (Demographics, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return Demographics{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	family, given := ParsePersonName(stringValue(ds, tag.PatientName))
	if family == "" && given == "" {
		return Demographics{}, fmt.Errorf("%s: %w", path, ErrNoPatientName)
	}
	d := Demographics{
		PatientID:  stringValue(ds, tag.PatientID),
		FamilyName: family,
		GivenName:  given,
		Sex:        strings.ToUpper(stringValue(ds, tag.PatientSex)),
	}
	if bd, err := ParseDA(stringValue(ds, tag.PatientBirthDate)); err == nil {
		d.BirthDate = bd
	}
	return d, nil
}

// Write stores d as a minimal VL photographic instance without pixel data.
func Write(path string, d Demographics) error {
	elems := []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittleEndian}),
		mustNewElement(tag.MediaStorageSOPClassUID, []string{vlPhotographicImageStorage}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{newUID()}),
		mustNewElement(tag.SOPClassUID, []string{vlPhotographicImageStorage}),
		mustNewElement(tag.SOPInstanceUID, []string{newUID()}),
		mustNewElement(tag.Modality, []string{"XC"}),
		mustNewElement(tag.PatientName, []string{FormatPersonName(d.FamilyName, d.GivenName)}),
		mustNewElement(tag.PatientID, []string{d.PatientID}),
		mustNewElement(tag.PatientSex, []string{d.Sex}),
	}
	if d.BirthDate != "" {
		t, err := intake.ParseDate(d.BirthDate)
		if err != nil {
			return err
		}
		elems = append(elems, mustNewElement(tag.PatientBirthDate, []string{t.Format(daLayout)}))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := dicom.Write(f, dicom.Dataset{Elements: elems}); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ParsePersonName splits a DICOM PN value "FAMILY^Given^Middle" into a
// title-cased family and given name.
func ParsePersonName(pn string) (family, given string) {
	// only the alphabetic representation, before any ideographic group
	if i := strings.IndexByte(pn, '='); i >= 0 {
		pn = pn[:i]
	}
	parts := strings.Split(pn, "^")
	family = titleCase(parts[0])
	if len(parts) > 1 {
		given = titleCase(parts[1])
	}
	return family, given
}

// FormatPersonName builds a PN value from its components.
func FormatPersonName(family, given string) string {
	if given == "" {
		return strings.ToUpper(family)
	}
	return strings.ToUpper(family) + "^" + given
}

// ParseDA converts a DICOM date (YYYYMMDD) to YYYY-MM-DD.
func ParseDA(da string) (string, error) {
	t, err := time.Parse(daLayout, strings.TrimSpace(da))
	if err != nil {
		return "", fmt.Errorf("invalid DICOM date %q: %w", da, err)
	}
	return t.Format(intake.DateLayout), nil
}

// stringValue extracts a string element, "" when missing.
func stringValue(ds dicom.Dataset, t tag.Tag) string {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(elem.Value.String(), " []"))
}

func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		w = strings.ToLower(w)
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// newUID derives a UID under the 2.25 root from a random UUID.
func newUID() string {
	u := uuid.New()
	return "2.25." + new(big.Int).SetBytes(u[:]).String()
}

func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}
