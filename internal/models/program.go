package models

import "time"

// Program represents a university program in the curated catalog.
type Program struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	UniversityName string    `db:"university_name" json:"university_name"`
	CountryID      string    `db:"country_id" json:"country_id"`
	FieldOfStudyID string    `db:"field_of_study_id" json:"field_of_study_id"`
	MinIBPoints    *int      `db:"min_ib_points" json:"min_ib_points,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// CourseRequirement is one subject requirement a program imposes.
// Requirements sharing a non-empty OrGroupID are mutually substitutable:
// satisfying any member satisfies the whole group.
type CourseRequirement struct {
	CourseID      string `db:"course_id" json:"course_id"`
	CourseName    string `db:"course_name" json:"course_name"`
	OrGroupID     string `db:"or_group_id" json:"or_group_id,omitempty"`
	RequiredLevel Level  `db:"required_level" json:"required_level"`
	MinGrade      int    `db:"min_grade" json:"min_grade"`
	Critical      bool   `db:"is_critical" json:"is_critical"`
}

// ProgramDetail bundles a program with its course requirements.
type ProgramDetail struct {
	Program
	Requirements []CourseRequirement `json:"requirements"`
}

// ProgramMatchInput is the subset of program data the scorer consumes.
type ProgramMatchInput struct {
	ProgramID      string              `json:"program_id"`
	MinIBPoints    *int                `json:"min_ib_points,omitempty"`
	Requirements   []CourseRequirement `json:"requirements"`
	FieldOfStudyID string              `json:"field_of_study_id"`
	CountryID      string              `json:"country_id"`
}

// MatchInput projects the detail into the scorer's input shape.
func (d ProgramDetail) MatchInput() ProgramMatchInput {
	return ProgramMatchInput{
		ProgramID:      d.ID,
		MinIBPoints:    d.MinIBPoints,
		Requirements:   d.Requirements,
		FieldOfStudyID: d.FieldOfStudyID,
		CountryID:      d.CountryID,
	}
}

// ProgramFilter encapsulates allowed search parameters for listing programs.
type ProgramFilter struct {
	Search    string
	FieldID   string
	CountryID string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
