package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
)

// MaxSubjects is the number of subjects a full IB Diploma candidate takes.
const MaxSubjects = 6

// StudentAcademicProfile aggregates the diploma data the matching and
// validation calculators operate on. Instances are plain values; the
// calculators never mutate them.
type StudentAcademicProfile struct {
	Subjects            []SubjectSelection `json:"subjects"`
	TOKGrade            CoreGrade          `json:"tok_grade"`
	EEGrade             CoreGrade          `json:"ee_grade"`
	TotalIBPoints       *int               `json:"total_ib_points,omitempty"`
	PreferredFieldIDs   []string           `json:"preferred_field_ids"`
	PreferredCountryIDs []string           `json:"preferred_country_ids"`
}

// NewStudentAcademicProfile validates the aggregate invariants: at most six
// subjects, one selection per course, valid core grades.
func NewStudentAcademicProfile(subjects []SubjectSelection, tok, ee CoreGrade, totalPoints *int, fieldIDs, countryIDs []string) (*StudentAcademicProfile, error) {
	profile := &StudentAcademicProfile{
		Subjects:            subjects,
		TOKGrade:            tok,
		EEGrade:             ee,
		TotalIBPoints:       totalPoints,
		PreferredFieldIDs:   fieldIDs,
		PreferredCountryIDs: countryIDs,
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Validate checks the profile invariants without evaluating diploma rules.
func (p *StudentAcademicProfile) Validate() error {
	if len(p.Subjects) > MaxSubjects {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d subjects allowed, got %d", MaxSubjects, len(p.Subjects)))
	}
	seen := make(map[string]bool, len(p.Subjects))
	for _, subject := range p.Subjects {
		if _, err := NewSubjectSelection(subject.CourseID, subject.CourseName, subject.Level, subject.Grade); err != nil {
			return err
		}
		if seen[subject.CourseID] {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate selection for course %s", subject.CourseID))
		}
		seen[subject.CourseID] = true
	}
	if !p.TOKGrade.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown TOK grade %q", string(p.TOKGrade)))
	}
	if !p.EEGrade.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown EE grade %q", string(p.EEGrade)))
	}
	if p.TotalIBPoints != nil && (*p.TotalIBPoints < 0 || *p.TotalIBPoints > 45) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("total points %d out of range", *p.TotalIBPoints))
	}
	return nil
}

// SubjectByCourse returns the selection for the given course, if present.
func (p *StudentAcademicProfile) SubjectByCourse(courseID string) (SubjectSelection, bool) {
	for _, subject := range p.Subjects {
		if subject.CourseID == courseID {
			return subject, true
		}
	}
	return SubjectSelection{}, false
}

// SubjectPointsSum returns the sum of the six subject grades entered so far.
func (p *StudentAcademicProfile) SubjectPointsSum() int {
	sum := 0
	for _, subject := range p.Subjects {
		sum += subject.Grade
	}
	return sum
}

// Fingerprint returns a stable hash of the scoring-relevant profile fields,
// used as a cache key component so stale match lists are never served after
// a grade or preference edit.
func (p *StudentAcademicProfile) Fingerprint() string {
	canonical := *p
	canonical.Subjects = append([]SubjectSelection(nil), p.Subjects...)
	sort.Slice(canonical.Subjects, func(i, j int) bool {
		return canonical.Subjects[i].CourseID < canonical.Subjects[j].CourseID
	})
	canonical.PreferredFieldIDs = sortedCopy(p.PreferredFieldIDs)
	canonical.PreferredCountryIDs = sortedCopy(p.PreferredCountryIDs)

	payload, err := json.Marshal(canonical)
	if err != nil {
		return "unhashable"
	}
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:])
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
