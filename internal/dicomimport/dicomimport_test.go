package dicomimport

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsinham/sakuramed/internal/intake"
)

func TestParsePersonName(t *testing.T) {
	tests := []struct {
		pn, family, given string
	}{
		{"JOHNSON^SARAH", "Johnson", "Sarah"},
		{"JOHNSON^SARAH^ANNE^^", "Johnson", "Sarah"},
		{"VAN DER BERG^eva", "Van Der Berg", "Eva"},
		{"DOE", "Doe", ""},
		{"YAMADA^TARO=山田^太郎", "Yamada", "Taro"},
		{"", "", ""},
	}
	for _, tc := range tests {
		family, given := ParsePersonName(tc.pn)
		assert.Equal(t, tc.family, family, tc.pn)
		assert.Equal(t, tc.given, given, tc.pn)
	}
}

func TestParseDA(t *testing.T) {
	got, err := ParseDA("19850315")
	require.NoError(t, err)
	assert.Equal(t, "1985-03-15", got)

	_, err = ParseDA("1985-03-15")
	assert.Error(t, err)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exam.dcm")
	want := Demographics{
		PatientID:  "MRN12345",
		FamilyName: "Johnson",
		GivenName:  "Sarah",
		BirthDate:  "1985-03-15",
		Sex:        "F",
	}
	require.NoError(t, Write(path, want))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	p := got.Patient()
	assert.Equal(t, "Sarah Johnson", p.FullName())
	assert.Equal(t, "Female", p.Gender)

	f := intake.NewForm(intake.PatientInfoSchema(), intake.WithNow(func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	}))
	intake.PrefillPatientInfo(f, p)
	assert.True(t, f.Complete())
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.dcm"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "anon.dcm")
	require.NoError(t, Write(path, Demographics{PatientID: "X"}))
	_, err = Read(path)
	assert.ErrorIs(t, err, ErrNoPatientName)
}

func TestNewUID(t *testing.T) {
	uid := newUID()
	assert.True(t, strings.HasPrefix(uid, "2.25."))
	assert.LessOrEqual(t, len(uid), 64)
	assert.NotEqual(t, uid, newUID())
}
