package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibpath/ibpath-api/internal/models"
)

func checkSubjects(grades [6]int) []SubjectInput {
	levels := [6]string{"HL", "HL", "HL", "SL", "SL", "SL"}
	names := [6]string{"Mathematics AA", "Physics", "Chemistry", "English A", "Spanish B", "History"}
	subjects := make([]SubjectInput, 0, 6)
	for i, grade := range grades {
		subjects = append(subjects, SubjectInput{CourseID: names[i], CourseName: names[i], Level: levels[i], Grade: grade})
	}
	return subjects
}

func TestDiplomaCheckDerivesTotalFromGrades(t *testing.T) {
	svc := NewDiplomaService("matrix", nil, nil, nil)

	result, err := svc.Check(context.Background(), DiplomaCheckRequest{
		Subjects: checkSubjects([6]int{6, 5, 5, 6, 5, 5}),
		TOKGrade: "A",
		EEGrade:  "B",
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, 32, result.SubjectPoints)
	assert.Equal(t, 3, result.BonusPoints)
	assert.Equal(t, 35, result.TotalPoints)
}

func TestDiplomaCheckHonoursStoredTotalOverride(t *testing.T) {
	svc := NewDiplomaService("matrix", nil, nil, nil)
	total := 24

	result, err := svc.Check(context.Background(), DiplomaCheckRequest{
		Subjects:      checkSubjects([6]int{4, 4, 4, 4, 4, 4}),
		TOKGrade:      "D",
		EEGrade:       "D",
		TotalIBPoints: &total,
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, 24, result.TotalPoints)
	assert.Equal(t, 24, result.SubjectPoints)
	assert.Equal(t, 0, result.BonusPoints)
}

func TestDiplomaCheckBonusStrategySelection(t *testing.T) {
	// B/B: the letter map gives 3, the matrix gives 2.
	req := DiplomaCheckRequest{
		Subjects: checkSubjects([6]int{6, 5, 5, 6, 5, 5}),
		TOKGrade: "B",
		EEGrade:  "B",
	}

	simple, err := NewDiplomaService("simple", nil, nil, nil).Check(context.Background(), req)
	require.NoError(t, err)
	matrix, err := NewDiplomaService("matrix", nil, nil, nil).Check(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, simple.BonusPoints)
	assert.Equal(t, 2, matrix.BonusPoints)
}

func TestDiplomaCheckIncompleteDataIsValid(t *testing.T) {
	svc := NewDiplomaService("matrix", nil, nil, nil)

	result, err := svc.Check(context.Background(), DiplomaCheckRequest{
		Subjects: checkSubjects([6]int{1, 1, 1, 1, 1, 1})[:4],
		TOKGrade: "E",
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.FailingReasons)
}

func TestDiplomaCheckRejectsBadPayload(t *testing.T) {
	svc := NewDiplomaService("matrix", nil, nil, nil)

	_, err := svc.Check(context.Background(), DiplomaCheckRequest{
		Subjects: []SubjectInput{{CourseID: "math", Level: "XL", Grade: 5}},
	})
	assert.Error(t, err)

	_, err = svc.Check(context.Background(), DiplomaCheckRequest{TOKGrade: "F"})
	assert.Error(t, err)
}

func TestDiplomaCheckFailingProfile(t *testing.T) {
	svc := NewDiplomaService("matrix", NewMetricsService(), nil, nil)

	result, err := svc.Check(context.Background(), DiplomaCheckRequest{
		Subjects: checkSubjects([6]int{1, 5, 5, 6, 5, 5}),
		TOKGrade: "B",
		EEGrade:  "B",
	})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.FailingReasons)
	assert.Contains(t, result.FailingReasons[0], "Mathematics AA")
}

func TestEvaluateUsesProfileTotal(t *testing.T) {
	svc := NewDiplomaService("simple", nil, nil, nil)
	total := 40
	profile := &models.StudentAcademicProfile{TotalIBPoints: &total}

	result := svc.Evaluate(context.Background(), profile)
	assert.Equal(t, 40, result.TotalPoints)
	assert.True(t, result.IsValid)
}
