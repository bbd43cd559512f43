package models

// DiplomaValidationResult is the award-rule checker's output. A profile with
// fewer than six subjects or missing core grades is reported as valid with no
// reasons: incomplete data is "not yet applicable", never "failing".
type DiplomaValidationResult struct {
	IsValid        bool     `json:"is_valid"`
	FailingReasons []string `json:"failing_reasons"`
}
