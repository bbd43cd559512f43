// Package diploma implements the IB Diploma award-rule checker. It is a
// pure leaf component: no I/O, no shared state, safe for concurrent use.
package diploma

import (
	"fmt"
	"strings"

	"github.com/ibpath/ibpath-api/internal/models"
)

const (
	gradeE = models.CoreGrade("E")

	maxGradeTwoCount     = 2
	maxGradeThreeOrBelow = 3
	minHLPointsSum       = 12
	minSLPointsSum       = 9
	minTotalPoints       = 24
)

// Validate applies the IB Diploma award rules to a full set of entered
// grades. Rules are evaluated in a fixed order and every violated rule
// contributes a reason; the checker never stops at the first failure so the
// grade-entry screen can show all problems at once.
//
// With fewer than six subjects or an unset TOK/EE grade the diploma question
// is not yet answerable, so the result is valid with no reasons.
func Validate(subjects []models.SubjectSelection, tok, ee models.CoreGrade, totalPoints int) models.DiplomaValidationResult {
	if len(subjects) < models.MaxSubjects || !tok.IsSet() || !ee.IsSet() {
		return models.DiplomaValidationResult{IsValid: true}
	}

	var reasons []string

	if tok == gradeE {
		reasons = append(reasons, "grade E in Theory of Knowledge is an automatic fail")
	}
	if ee == gradeE {
		reasons = append(reasons, "grade E in the Extended Essay is an automatic fail")
	}

	var gradeOnes []string
	gradeTwos := 0
	threeOrBelow := 0
	hlSum := 0
	slSum := 0
	for _, subject := range subjects {
		if subject.Grade == 1 {
			gradeOnes = append(gradeOnes, subject.DisplayName())
		}
		if subject.Grade == 2 {
			gradeTwos++
		}
		if subject.Grade <= 3 {
			threeOrBelow++
		}
		if subject.Level == models.LevelHL {
			hlSum += subject.Grade
		} else {
			slSum += subject.Grade
		}
	}

	if len(gradeOnes) > 0 {
		reasons = append(reasons, fmt.Sprintf("grade 1 awarded in %s", strings.Join(gradeOnes, ", ")))
	}
	if gradeTwos > maxGradeTwoCount {
		reasons = append(reasons, fmt.Sprintf("%d subjects graded 2, at most %d allowed", gradeTwos, maxGradeTwoCount))
	}
	if threeOrBelow > maxGradeThreeOrBelow {
		reasons = append(reasons, fmt.Sprintf("%d subjects graded 3 or below, at most %d allowed", threeOrBelow, maxGradeThreeOrBelow))
	}
	if hlSum < minHLPointsSum {
		reasons = append(reasons, fmt.Sprintf("HL subjects total %d points, minimum %d required", hlSum, minHLPointsSum))
	}
	if slSum < minSLPointsSum {
		reasons = append(reasons, fmt.Sprintf("SL subjects total %d points, minimum %d required", slSum, minSLPointsSum))
	}
	if totalPoints < minTotalPoints {
		reasons = append(reasons, fmt.Sprintf("total of %d points is below the %d-point diploma threshold", totalPoints, minTotalPoints))
	}

	return models.DiplomaValidationResult{IsValid: len(reasons) == 0, FailingReasons: reasons}
}
