package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "testdata/specialties.json"

func loadFixture(t *testing.T) *Content {
	t.Helper()
	c, err := Load(fixturePath)
	require.NoError(t, err)
	return c
}

func TestLoadFixture(t *testing.T) {
	c := loadFixture(t)

	assert.Equal(t, "Applied Mathematics for Artificial Intelligence and Data Science", c.Specialty)
	assert.Equal(t, Text("180"), c.TotalCredits, "numeric scalars decode into Text")
	assert.Equal(t, Text("25"), c.Overview.WeeklyHours)
	assert.Len(t, c.Curriculum, SemesterCount)

	sem1, err := c.Semester(1)
	require.NoError(t, err)
	assert.Len(t, sem1.Courses, 6)
	assert.Equal(t, "F111", sem1.Courses[0].Code)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"university": `), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json")
}

func TestParseRejectsMissingSemester(t *testing.T) {
	raw, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	// Renaming the key keeps the document well-formed but drops semester6.
	broken := strings.Replace(string(raw), `"semester6"`, `"semester7"`, 1)

	_, err = Parse([]byte(broken), FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "semester6")
}

func TestParseRejectsCourseWithoutCode(t *testing.T) {
	raw, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	broken := strings.Replace(string(raw), `"code": "F211"`, `"code": ""`, 1)

	_, err = Parse([]byte(broken), FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "code")
}

func TestParseYAML(t *testing.T) {
	src := `
university: Test University
specialty: Testing
duration: 3
academic_year: "2025/2026"
program_overview:
  weekly_hours: 24.5
material_resources:
  laboratory: Lab
  equipment: []
curriculum:
`
	for n := 1; n <= SemesterCount; n++ {
		src += "  " + SemesterKey(n) + ":\n    total_credits: 30\n    courses:\n      - code: C1\n        name: Course\n"
	}

	c, err := Parse([]byte(src), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Text("3"), c.Duration)
	assert.Equal(t, Text("24.5"), c.Overview.WeeklyHours)
	assert.Equal(t, Text("2025/2026"), c.AcademicYear)

	course, err := c.Course(6, 0)
	require.NoError(t, err)
	assert.Equal(t, "C1", course.Code)
	assert.Nil(t, course.Evaluation)
}

func TestTextRejectsObjects(t *testing.T) {
	var tx Text
	assert.Error(t, tx.UnmarshalJSON([]byte(`{"a":1}`)))
	assert.NoError(t, tx.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, Text(""), tx)
}

func TestLookupNotFound(t *testing.T) {
	c := loadFixture(t)

	_, err := c.Semester(7)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Course(1, 6)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "course", nf.Kind)
	assert.Equal(t, "semester1[6]", nf.Key)

	_, err = c.Course(1, -1)
	assert.ErrorIs(t, err, ErrNotFound)

	course, err := c.Course(1, 5)
	require.NoError(t, err)
	assert.Equal(t, "T116", course.Code)
}

func TestContactHoursIsDerived(t *testing.T) {
	c := loadFixture(t)
	stats := c.Statistics
	assert.Equal(t, Number(810+472.5+337.5), stats.ContactHours())

	stats.LectureHours = 1
	assert.Equal(t, Number(1+472.5+337.5), stats.ContactHours())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("data/program.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("program.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("specialties.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("specialties"))
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "6", Number(6).String())
	assert.Equal(t, "1620", Number(1620).String())
	assert.Equal(t, "3", Number(3.0).String())
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.Equal(t, "66.67", Number(66.67).String())
}
