package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudentAcademicProfileValidation(t *testing.T) {
	subjects := []SubjectSelection{
		{CourseID: "math-aa", Level: LevelHL, Grade: 6},
		{CourseID: "physics", Level: LevelHL, Grade: 5},
	}

	profile, err := NewStudentAcademicProfile(subjects, "A", "B", nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, profile.Subjects, 2)

	_, err = NewStudentAcademicProfile([]SubjectSelection{
		{CourseID: "math-aa", Level: LevelHL, Grade: 6},
		{CourseID: "math-aa", Level: LevelSL, Grade: 5},
	}, "", "", nil, nil, nil)
	assert.Error(t, err, "duplicate course must be rejected")

	_, err = NewStudentAcademicProfile([]SubjectSelection{
		{CourseID: "math-aa", Level: LevelHL, Grade: 8},
	}, "", "", nil, nil, nil)
	assert.Error(t, err, "grade above 7 must be rejected")

	_, err = NewStudentAcademicProfile(nil, "F", "", nil, nil, nil)
	assert.Error(t, err, "unknown TOK grade must be rejected")

	points := 50
	_, err = NewStudentAcademicProfile(nil, "", "", &points, nil, nil)
	assert.Error(t, err, "total above 45 must be rejected")
}

func TestFingerprintIgnoresOrdering(t *testing.T) {
	a := &StudentAcademicProfile{
		Subjects: []SubjectSelection{
			{CourseID: "math-aa", Level: LevelHL, Grade: 6},
			{CourseID: "physics", Level: LevelHL, Grade: 5},
		},
		PreferredFieldIDs:   []string{"cs", "engineering"},
		PreferredCountryIDs: []string{"nl", "de"},
	}
	b := &StudentAcademicProfile{
		Subjects: []SubjectSelection{
			{CourseID: "physics", Level: LevelHL, Grade: 5},
			{CourseID: "math-aa", Level: LevelHL, Grade: 6},
		},
		PreferredFieldIDs:   []string{"engineering", "cs"},
		PreferredCountryIDs: []string{"de", "nl"},
	}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintChangesWithGrades(t *testing.T) {
	a := &StudentAcademicProfile{Subjects: []SubjectSelection{{CourseID: "math-aa", Level: LevelHL, Grade: 6}}}
	b := &StudentAcademicProfile{Subjects: []SubjectSelection{{CourseID: "math-aa", Level: LevelHL, Grade: 7}}}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestLevelSatisfies(t *testing.T) {
	assert.True(t, LevelHL.Satisfies(LevelHL))
	assert.True(t, LevelHL.Satisfies(LevelSL))
	assert.True(t, LevelSL.Satisfies(LevelSL))
	assert.False(t, LevelSL.Satisfies(LevelHL))
}

func TestSubjectPointsSum(t *testing.T) {
	profile := &StudentAcademicProfile{Subjects: []SubjectSelection{
		{CourseID: "a", Level: LevelHL, Grade: 6},
		{CourseID: "b", Level: LevelSL, Grade: 5},
	}}
	assert.Equal(t, 11, profile.SubjectPointsSum())
}
