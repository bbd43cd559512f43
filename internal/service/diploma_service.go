package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ibpath/ibpath-api/internal/diploma"
	"github.com/ibpath/ibpath-api/internal/models"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
)

// SubjectInput is one subject row on the diploma check form.
type SubjectInput struct {
	CourseID   string `json:"course_id" validate:"required"`
	CourseName string `json:"course_name"`
	Level      string `json:"level" validate:"required,oneof=HL SL"`
	Grade      int    `json:"grade" validate:"required,min=1,max=7"`
}

// DiplomaCheckRequest is the ad-hoc diploma validation payload. It carries a
// full grade set without requiring a stored student profile.
type DiplomaCheckRequest struct {
	Subjects      []SubjectInput `json:"subjects" validate:"dive"`
	TOKGrade      string         `json:"tok_grade" validate:"omitempty,oneof=A B C D E"`
	EEGrade       string         `json:"ee_grade" validate:"omitempty,oneof=A B C D E"`
	TotalIBPoints *int           `json:"total_ib_points" validate:"omitempty,min=0,max=45"`
}

// DiplomaCheckResult pairs the rule verdict with the derived point totals so
// the grade-entry screen can show both at once.
type DiplomaCheckResult struct {
	models.DiplomaValidationResult
	SubjectPoints int `json:"subject_points"`
	BonusPoints   int `json:"bonus_points"`
	TotalPoints   int `json:"total_points"`
}

// DiplomaService evaluates IB award rules against stored or ad-hoc profiles.
type DiplomaService struct {
	strategy  diploma.BonusStrategy
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDiplomaService constructs a DiplomaService using the configured bonus
// strategy name.
func NewDiplomaService(bonusStrategy string, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *DiplomaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiplomaService{
		strategy:  diploma.ParseBonusStrategy(bonusStrategy),
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Check validates the request payload, builds a transient profile and runs
// the award rules against it.
func (s *DiplomaService) Check(ctx context.Context, req DiplomaCheckRequest) (*DiplomaCheckResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid diploma check payload")
	}

	subjects := make([]models.SubjectSelection, 0, len(req.Subjects))
	for _, input := range req.Subjects {
		subject, err := models.NewSubjectSelection(input.CourseID, input.CourseName, models.Level(input.Level), input.Grade)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	profile, err := models.NewStudentAcademicProfile(subjects, models.CoreGrade(req.TOKGrade), models.CoreGrade(req.EEGrade), req.TotalIBPoints, nil, nil)
	if err != nil {
		return nil, err
	}

	result := s.Evaluate(ctx, profile)
	return result, nil
}

// Evaluate runs the award rules against a profile. The total used for the
// 24-point rule is the stored total when present, otherwise the sum of
// subject grades plus the TOK/EE bonus under the configured strategy.
func (s *DiplomaService) Evaluate(ctx context.Context, profile *models.StudentAcademicProfile) *DiplomaCheckResult {
	subjectPoints := profile.SubjectPointsSum()
	bonus := diploma.BonusPoints(s.strategy, profile.TOKGrade, profile.EEGrade)

	total := subjectPoints + bonus
	if profile.TotalIBPoints != nil {
		total = *profile.TotalIBPoints
	}

	verdict := diploma.Validate(profile.Subjects, profile.TOKGrade, profile.EEGrade, total)
	if s.metrics != nil && len(profile.Subjects) >= models.MaxSubjects {
		s.metrics.RecordDiplomaCheck(verdict.IsValid)
	}
	if !verdict.IsValid {
		s.logger.Debug("diploma rules violated",
			zap.Int("total_points", total),
			zap.Strings("reasons", verdict.FailingReasons))
	}

	return &DiplomaCheckResult{
		DiplomaValidationResult: verdict,
		SubjectPoints:           subjectPoints,
		BonusPoints:             bonus,
		TotalPoints:             total,
	}
}
