// Package scoring implements the three-factor program compatibility scorer:
// academic fit, location fit and field fit, combined into a weighted overall
// score in [0,1]. All functions are pure and safe to call concurrently, one
// invocation per candidate program.
package scoring

import (
	"sort"
	"strings"

	"github.com/ibpath/ibpath-api/internal/models"
)

// Weights for the BALANCED mode, as documented in the product UI.
const (
	weightAcademic = 0.6
	weightLocation = 0.3
	weightField    = 0.1

	// pointsSignalWeight splits the academic sub-score between the total
	// points signal and the course-requirement signal.
	pointsSignalWeight = 0.5

	// pointsShortfallSpan is the shortfall, in IB points below a program's
	// minimum, at which the points signal linearly decays to zero.
	pointsShortfallSpan = 8.0

	// criticalMissCeiling caps the academic sub-score when any critical
	// requirement is unmet. A student missing a must-have never shows a
	// strong academic fit, however comfortable their point total.
	criticalMissCeiling = 0.4

	// preferenceMissScore is the credit for a program outside a stated
	// preference set. Strictly below the 1.0 match value; an empty
	// preference set is exempt and scores full credit instead.
	preferenceMissScore = 0.0
)

// Category thresholds on the overall score, lower bounds inclusive.
const (
	safetyThreshold = 0.75
	matchThreshold  = 0.6
	reachThreshold  = 0.4
)

// Score computes the compatibility of one student profile with one program.
// Absent constraints (nil minimum points, no requirements, no stated
// preferences) count as automatically satisfied, never as errors or zeros.
func Score(profile *models.StudentAcademicProfile, program models.ProgramMatchInput, mode models.ScoreMode) models.MatchResult {
	mode = normalizeMode(mode)

	academic := academicMatch(profile, program)
	location := preferenceMatch(profile.PreferredCountryIDs, program.CountryID)
	field := preferenceMatch(profile.PreferredFieldIDs, program.FieldOfStudyID)

	overall := weightAcademic*academic.Score + weightLocation*location.Score + weightField*field.Score

	return models.MatchResult{
		ProgramID:    program.ProgramID,
		Mode:         mode,
		OverallScore: overall,
		Academic:     academic,
		Location:     location,
		Field:        field,
		Category:     Categorize(overall),
	}
}

// ScoreAll scores the profile against every program and returns the results
// ordered by descending overall score. The sort is stable so equal scores
// keep the caller's program order.
func ScoreAll(profile *models.StudentAcademicProfile, programs []models.ProgramMatchInput, mode models.ScoreMode) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(programs))
	for _, program := range programs {
		results = append(results, Score(profile, program, mode))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	return results
}

// Categorize maps an overall score onto the four-tier admission-likelihood
// category. Boundaries are inclusive on the upper tier: 0.75 is SAFETY.
func Categorize(overall float64) models.MatchCategory {
	switch {
	case overall >= safetyThreshold:
		return models.CategorySafety
	case overall >= matchThreshold:
		return models.CategoryMatch
	case overall >= reachThreshold:
		return models.CategoryReach
	default:
		return models.CategoryUnlikely
	}
}

// RatingLabel is the five-tier presentation mapping shown on program detail
// pages. It is intentionally separate from Categorize: the category drives
// list grouping, the label is display copy over the raw score.
func RatingLabel(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent Match"
	case score >= 0.75:
		return "Strong Match"
	case score >= 0.6:
		return "Good Match"
	case score >= 0.4:
		return "Fair Match"
	default:
		return "Weak Match"
	}
}

func normalizeMode(mode models.ScoreMode) models.ScoreMode {
	// Only the balanced weighting ships today; unknown modes fall back to
	// it rather than erroring so the parameter stays forward compatible.
	if mode == "" {
		return models.ScoreModeBalanced
	}
	return models.ScoreMode(strings.ToUpper(string(mode)))
}

func academicMatch(profile *models.StudentAcademicProfile, program models.ProgramMatchInput) models.AcademicMatch {
	points := pointsScore(profile.TotalIBPoints, program.MinIBPoints)
	requirements, met, total, missingCritical := requirementScore(profile, program.Requirements)

	score := pointsSignalWeight*points + (1-pointsSignalWeight)*requirements
	if len(missingCritical) > 0 && score > criticalMissCeiling {
		score = criticalMissCeiling
	}

	return models.AcademicMatch{
		Score:             score,
		PointsScore:       points,
		RequirementScore:  requirements,
		RequirementsMet:   met,
		RequirementsTotal: total,
		MissingCritical:   missingCritical,
	}
}

// pointsScore compares the student's total against the program minimum.
// No stated minimum means full credit; a shortfall decays the credit
// linearly, reaching zero pointsShortfallSpan points below the minimum.
func pointsScore(totalPoints, minPoints *int) float64 {
	if minPoints == nil {
		return 1.0
	}
	total := 0
	if totalPoints != nil {
		total = *totalPoints
	}
	shortfall := float64(*minPoints - total)
	if shortfall <= 0 {
		return 1.0
	}
	score := 1.0 - shortfall/pointsShortfallSpan
	if score < 0 {
		return 0
	}
	return score
}

// requirementGroup is one atomic requirement unit: either a standalone
// requirement or all members of an OR-group.
type requirementGroup struct {
	members  []models.CourseRequirement
	critical bool
}

func requirementScore(profile *models.StudentAcademicProfile, requirements []models.CourseRequirement) (score float64, met, total int, missingCritical []string) {
	groups := groupRequirements(requirements)
	total = len(groups)
	if total == 0 {
		return 1.0, 0, 0, nil
	}

	for _, group := range groups {
		if groupSatisfied(profile, group) {
			met++
			continue
		}
		if group.critical {
			missingCritical = append(missingCritical, groupLabel(group))
		}
	}
	return float64(met) / float64(total), met, total, missingCritical
}

// groupRequirements collapses requirements sharing an OrGroupID into one
// group, preserving first-appearance order. A group containing any critical
// member is critical as a whole.
func groupRequirements(requirements []models.CourseRequirement) []requirementGroup {
	var groups []requirementGroup
	groupIndex := make(map[string]int)
	for _, requirement := range requirements {
		if requirement.OrGroupID == "" {
			groups = append(groups, requirementGroup{
				members:  []models.CourseRequirement{requirement},
				critical: requirement.Critical,
			})
			continue
		}
		idx, ok := groupIndex[requirement.OrGroupID]
		if !ok {
			groupIndex[requirement.OrGroupID] = len(groups)
			groups = append(groups, requirementGroup{
				members:  []models.CourseRequirement{requirement},
				critical: requirement.Critical,
			})
			continue
		}
		groups[idx].members = append(groups[idx].members, requirement)
		groups[idx].critical = groups[idx].critical || requirement.Critical
	}
	return groups
}

func groupSatisfied(profile *models.StudentAcademicProfile, group requirementGroup) bool {
	for _, requirement := range group.members {
		subject, ok := profile.SubjectByCourse(requirement.CourseID)
		if !ok {
			continue
		}
		if subject.Level.Satisfies(requirement.RequiredLevel) && subject.Grade >= requirement.MinGrade {
			return true
		}
	}
	return false
}

func groupLabel(group requirementGroup) string {
	names := make([]string, 0, len(group.members))
	for _, requirement := range group.members {
		if requirement.CourseName != "" {
			names = append(names, requirement.CourseName)
		} else {
			names = append(names, requirement.CourseID)
		}
	}
	return strings.Join(names, " / ")
}

func preferenceMatch(preferredIDs []string, id string) models.PreferenceMatch {
	if len(preferredIDs) == 0 {
		return models.PreferenceMatch{Score: 1.0, NoPreferences: true}
	}
	for _, preferred := range preferredIDs {
		if preferred == id {
			return models.PreferenceMatch{Score: 1.0, IsMatch: true}
		}
	}
	return models.PreferenceMatch{Score: preferenceMissScore}
}
