package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibpath/ibpath-api/internal/models"
)

func intPtr(v int) *int { return &v }

func strongProfile() *models.StudentAcademicProfile {
	return &models.StudentAcademicProfile{
		Subjects: []models.SubjectSelection{
			{CourseID: "math-aa", CourseName: "Mathematics AA", Level: models.LevelHL, Grade: 6},
			{CourseID: "physics", CourseName: "Physics", Level: models.LevelHL, Grade: 6},
			{CourseID: "chemistry", CourseName: "Chemistry", Level: models.LevelHL, Grade: 5},
			{CourseID: "english-a", CourseName: "English A", Level: models.LevelSL, Grade: 6},
			{CourseID: "spanish-b", CourseName: "Spanish B", Level: models.LevelSL, Grade: 5},
			{CourseID: "history", CourseName: "History", Level: models.LevelSL, Grade: 5},
		},
		TOKGrade:      "B",
		EEGrade:       "B",
		TotalIBPoints: intPtr(36),
	}
}

func TestScoreFullCreditEverywhere(t *testing.T) {
	profile := strongProfile()
	program := models.ProgramMatchInput{
		ProgramID:   "prog-1",
		MinIBPoints: intPtr(30),
		Requirements: []models.CourseRequirement{
			{CourseID: "math-aa", RequiredLevel: models.LevelHL, MinGrade: 5},
		},
		FieldOfStudyID: "engineering",
		CountryID:      "nl",
	}

	result := Score(profile, program, "")
	assert.InDelta(t, 1.0, result.OverallScore, 1e-9)
	assert.Equal(t, models.CategorySafety, result.Category)
	assert.Equal(t, models.ScoreModeBalanced, result.Mode)
	assert.True(t, result.Location.NoPreferences)
	assert.True(t, result.Field.NoPreferences)
}

func TestScoreDeterministic(t *testing.T) {
	profile := strongProfile()
	profile.PreferredCountryIDs = []string{"nl", "de"}
	program := models.ProgramMatchInput{
		ProgramID:   "prog-1",
		MinIBPoints: intPtr(38),
		CountryID:   "uk",
	}
	first := Score(profile, program, "balanced")
	second := Score(profile, program, "balanced")
	assert.Equal(t, first, second)
}

func TestScoreWeights(t *testing.T) {
	// Academic full credit, location miss, field match: 0.6 + 0 + 0.1.
	profile := strongProfile()
	profile.PreferredCountryIDs = []string{"nl"}
	profile.PreferredFieldIDs = []string{"engineering"}
	program := models.ProgramMatchInput{
		ProgramID:      "prog-1",
		FieldOfStudyID: "engineering",
		CountryID:      "uk",
	}
	result := Score(profile, program, "")
	assert.InDelta(t, 0.7, result.OverallScore, 1e-9)
	assert.False(t, result.Location.IsMatch)
	assert.True(t, result.Field.IsMatch)
}

func TestPointsScoreShortfallDecay(t *testing.T) {
	profile := strongProfile()
	profile.TotalIBPoints = intPtr(36)

	// Exactly at the minimum: full credit.
	at := Score(profile, models.ProgramMatchInput{MinIBPoints: intPtr(36)}, "")
	assert.InDelta(t, 1.0, at.Academic.PointsScore, 1e-9)

	// Four points short: halfway down the decay span.
	short := Score(profile, models.ProgramMatchInput{MinIBPoints: intPtr(40)}, "")
	assert.InDelta(t, 0.5, short.Academic.PointsScore, 1e-9)

	// Far below: clamped at zero.
	profile.TotalIBPoints = intPtr(24)
	floor := Score(profile, models.ProgramMatchInput{MinIBPoints: intPtr(40)}, "")
	assert.InDelta(t, 0.0, floor.Academic.PointsScore, 1e-9)
}

func TestPointsScoreMonotonic(t *testing.T) {
	program := models.ProgramMatchInput{MinIBPoints: intPtr(40)}
	previous := -1.0
	for total := 30; total <= 45; total++ {
		profile := strongProfile()
		profile.TotalIBPoints = intPtr(total)
		score := Score(profile, program, "").Academic.PointsScore
		assert.GreaterOrEqual(t, score, previous, "total %d", total)
		previous = score
	}
}

func TestPointsScoreAbsentConstraints(t *testing.T) {
	// Program without a minimum: full credit regardless of the student.
	profile := strongProfile()
	profile.TotalIBPoints = nil
	noMin := Score(profile, models.ProgramMatchInput{}, "")
	assert.InDelta(t, 1.0, noMin.Academic.PointsScore, 1e-9)

	// Student without a total against a stated minimum: treated as zero.
	withMin := Score(profile, models.ProgramMatchInput{MinIBPoints: intPtr(4)}, "")
	assert.InDelta(t, 0.5, withMin.Academic.PointsScore, 1e-9)
}

func TestRequirementLevelAndGrade(t *testing.T) {
	profile := strongProfile()

	// HL subject satisfies an SL requirement.
	hlForSL := Score(profile, models.ProgramMatchInput{Requirements: []models.CourseRequirement{
		{CourseID: "math-aa", RequiredLevel: models.LevelSL, MinGrade: 5},
	}}, "")
	assert.Equal(t, 1, hlForSL.Academic.RequirementsMet)

	// SL subject never satisfies an HL requirement.
	slForHL := Score(profile, models.ProgramMatchInput{Requirements: []models.CourseRequirement{
		{CourseID: "english-a", RequiredLevel: models.LevelHL, MinGrade: 5},
	}}, "")
	assert.Equal(t, 0, slForHL.Academic.RequirementsMet)

	// Grade below the requirement minimum.
	lowGrade := Score(profile, models.ProgramMatchInput{Requirements: []models.CourseRequirement{
		{CourseID: "chemistry", RequiredLevel: models.LevelHL, MinGrade: 6},
	}}, "")
	assert.Equal(t, 0, lowGrade.Academic.RequirementsMet)
}

func TestOrGroupSatisfiedByAnyMember(t *testing.T) {
	profile := strongProfile()
	program := models.ProgramMatchInput{Requirements: []models.CourseRequirement{
		{CourseID: "biology", OrGroupID: "science", RequiredLevel: models.LevelHL, MinGrade: 5},
		{CourseID: "physics", OrGroupID: "science", RequiredLevel: models.LevelHL, MinGrade: 5},
	}}

	result := Score(profile, program, "")
	assert.Equal(t, 1, result.Academic.RequirementsTotal)
	assert.Equal(t, 1, result.Academic.RequirementsMet)
	assert.InDelta(t, 1.0, result.Academic.RequirementScore, 1e-9)
}

func TestCriticalMissCapsAcademicScore(t *testing.T) {
	profile := strongProfile()
	program := models.ProgramMatchInput{
		ProgramID:   "prog-1",
		MinIBPoints: intPtr(30),
		Requirements: []models.CourseRequirement{
			{CourseID: "biology", CourseName: "Biology", RequiredLevel: models.LevelHL, MinGrade: 5, Critical: true},
			{CourseID: "math-aa", RequiredLevel: models.LevelHL, MinGrade: 5},
			{CourseID: "physics", RequiredLevel: models.LevelHL, MinGrade: 5},
			{CourseID: "chemistry", RequiredLevel: models.LevelHL, MinGrade: 5},
		},
	}

	result := Score(profile, program, "")
	// Uncapped the academic score would be 0.5*1.0 + 0.5*0.75 = 0.875.
	assert.InDelta(t, 0.4, result.Academic.Score, 1e-9)
	require.Len(t, result.Academic.MissingCritical, 1)
	assert.Equal(t, "Biology", result.Academic.MissingCritical[0])
}

func TestCriticalMissInsideSatisfiedOrGroupDoesNotCap(t *testing.T) {
	profile := strongProfile()
	program := models.ProgramMatchInput{Requirements: []models.CourseRequirement{
		{CourseID: "biology", OrGroupID: "science", RequiredLevel: models.LevelHL, MinGrade: 5, Critical: true},
		{CourseID: "physics", OrGroupID: "science", RequiredLevel: models.LevelHL, MinGrade: 5},
	}}

	result := Score(profile, program, "")
	assert.Empty(t, result.Academic.MissingCritical)
	assert.InDelta(t, 1.0, result.Academic.Score, 1e-9)
}

func TestCategorizeBoundaries(t *testing.T) {
	assert.Equal(t, models.CategorySafety, Categorize(0.75))
	assert.Equal(t, models.CategoryMatch, Categorize(0.6))
	assert.Equal(t, models.CategoryMatch, Categorize(0.7499))
	assert.Equal(t, models.CategoryReach, Categorize(0.4))
	assert.Equal(t, models.CategoryReach, Categorize(0.5999))
	assert.Equal(t, models.CategoryUnlikely, Categorize(0.3999))
	assert.Equal(t, models.CategoryUnlikely, Categorize(0))
}

func TestRatingLabel(t *testing.T) {
	assert.Equal(t, "Excellent Match", RatingLabel(0.95))
	assert.Equal(t, "Strong Match", RatingLabel(0.8))
	assert.Equal(t, "Good Match", RatingLabel(0.65))
	assert.Equal(t, "Fair Match", RatingLabel(0.45))
	assert.Equal(t, "Weak Match", RatingLabel(0.1))
}

func TestScoreAllOrdering(t *testing.T) {
	profile := strongProfile()
	profile.PreferredCountryIDs = []string{"nl"}
	programs := []models.ProgramMatchInput{
		{ProgramID: "abroad", CountryID: "uk"},
		{ProgramID: "home", CountryID: "nl"},
		{ProgramID: "abroad-too", CountryID: "de"},
	}

	results := ScoreAll(profile, programs, "")
	require.Len(t, results, 3)
	assert.Equal(t, "home", results[0].ProgramID)
	// Stable sort keeps the input order for tied scores.
	assert.Equal(t, "abroad", results[1].ProgramID)
	assert.Equal(t, "abroad-too", results[2].ProgramID)
}
