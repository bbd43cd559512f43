package models

// ScoreMode selects the weighting profile for match scoring. BALANCED is the
// only weighting shipped today; unknown modes fall back to it so the field
// can evolve without breaking callers.
type ScoreMode string

// ScoreModeBalanced weighs academics 60%, location 30%, field 10%.
const ScoreModeBalanced ScoreMode = "BALANCED"

// MatchCategory is the four-tier admission-likelihood label derived from the
// overall score.
type MatchCategory string

const (
	CategorySafety   MatchCategory = "SAFETY"
	CategoryMatch    MatchCategory = "MATCH"
	CategoryReach    MatchCategory = "REACH"
	CategoryUnlikely MatchCategory = "UNLIKELY"
)

// PreferenceMatch reports how a program relates to one preference axis
// (country or field of study).
type PreferenceMatch struct {
	Score float64 `json:"score"`
	// IsMatch is true when the program's value is among the student's
	// stated preferences.
	IsMatch bool `json:"is_match"`
	// NoPreferences is true when the student stated none; the axis then
	// scores full credit rather than penalizing every program.
	NoPreferences bool `json:"no_preferences"`
}

// AcademicMatch carries the academic sub-score and its contributing signals.
type AcademicMatch struct {
	Score            float64 `json:"score"`
	PointsScore      float64 `json:"points_score"`
	RequirementScore float64 `json:"requirement_score"`
	RequirementsMet  int     `json:"requirements_met"`
	RequirementsTotal int    `json:"requirements_total"`
	// MissingCritical lists the unmet must-have requirements (OR-group
	// members joined with " / "). Non-empty means the academic score was
	// capped.
	MissingCritical []string `json:"missing_critical,omitempty"`
}

// MatchResult is the scorer's output for one (student, program) pair. It is
// a pure function output: recomputed whenever profile or program data
// changes, never persisted by the core.
type MatchResult struct {
	ProgramID    string          `json:"program_id"`
	Mode         ScoreMode       `json:"mode"`
	OverallScore float64         `json:"overall_score"`
	Academic     AcademicMatch   `json:"academic_match"`
	Location     PreferenceMatch `json:"location_match"`
	Field        PreferenceMatch `json:"field_match"`
	Category     MatchCategory   `json:"category"`
}
