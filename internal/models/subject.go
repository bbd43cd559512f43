package models

import (
	"fmt"
	"strings"

	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
)

// Level is the depth tier of an IB subject.
type Level string

const (
	LevelHL Level = "HL"
	LevelSL Level = "SL"
)

// Valid reports whether the level is one of the two IB tiers.
func (l Level) Valid() bool {
	return l == LevelHL || l == LevelSL
}

// Satisfies reports whether a subject taken at this level meets a
// requirement asking for the given level. HL always covers an SL
// requirement; SL never covers HL.
func (l Level) Satisfies(required Level) bool {
	if l == LevelHL {
		return true
	}
	return required == LevelSL
}

// CoreGrade is a TOK or EE letter grade (A best, E worst). The zero value
// means the grade has not been entered yet.
type CoreGrade string

const coreGradeScale = "ABCDE"

// IsSet reports whether a grade has been entered.
func (g CoreGrade) IsSet() bool {
	return g != ""
}

// Valid reports whether the grade is a known letter. Unset grades are valid.
func (g CoreGrade) Valid() bool {
	if !g.IsSet() {
		return true
	}
	return len(g) == 1 && strings.Contains(coreGradeScale, string(g))
}

// Index returns the position of the grade on the A–E scale (A=0 … E=4),
// or -1 when unset.
func (g CoreGrade) Index() int {
	if !g.IsSet() {
		return -1
	}
	return strings.Index(coreGradeScale, string(g))
}

const (
	// MinSubjectGrade and MaxSubjectGrade bound the 1–7 IB subject scale.
	MinSubjectGrade = 1
	MaxSubjectGrade = 7
)

// SubjectSelection is one IB course taken by a student.
type SubjectSelection struct {
	CourseID   string `db:"course_id" json:"course_id"`
	CourseName string `db:"course_name" json:"course_name"`
	Level      Level  `db:"level" json:"level"`
	Grade      int    `db:"grade" json:"grade"`
}

// NewSubjectSelection builds a selection, rejecting out-of-range grades and
// unknown levels.
func NewSubjectSelection(courseID, courseName string, level Level, grade int) (SubjectSelection, error) {
	if courseID == "" {
		return SubjectSelection{}, appErrors.Clone(appErrors.ErrValidation, "course id required")
	}
	if !level.Valid() {
		return SubjectSelection{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q for course %s", string(level), courseID))
	}
	if grade < MinSubjectGrade || grade > MaxSubjectGrade {
		return SubjectSelection{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("grade %d out of range for course %s", grade, courseID))
	}
	return SubjectSelection{CourseID: courseID, CourseName: courseName, Level: level, Grade: grade}, nil
}

// DisplayName returns the course name, falling back to the id.
func (s SubjectSelection) DisplayName() string {
	if s.CourseName != "" {
		return s.CourseName
	}
	return s.CourseID
}
