package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ibpath/ibpath-api/internal/models"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
)

type studentProfileRepo interface {
	GetProfile(ctx context.Context, studentID string) (*models.StudentAcademicProfile, error)
	SaveProfile(ctx context.Context, studentID string, profile *models.StudentAcademicProfile) error
}

// ProfileUpdateRequest is the grade-entry payload. The subject set replaces
// the stored selection wholesale.
type ProfileUpdateRequest struct {
	Subjects            []SubjectInput `json:"subjects" validate:"max=6,dive"`
	TOKGrade            string         `json:"tok_grade" validate:"omitempty,oneof=A B C D E"`
	EEGrade             string         `json:"ee_grade" validate:"omitempty,oneof=A B C D E"`
	TotalIBPoints       *int           `json:"total_ib_points" validate:"omitempty,min=0,max=45"`
	PreferredFieldIDs   []string       `json:"preferred_field_ids"`
	PreferredCountryIDs []string       `json:"preferred_country_ids"`
}

// ProfileView is the profile read model returned to clients, including the
// current diploma verdict so the UI never recomputes rules client-side.
type ProfileView struct {
	models.StudentAcademicProfile
	Diploma DiplomaCheckResult `json:"diploma"`
}

// ProfileService reads and writes student academic profiles and keeps the
// derived state (diploma verdict, cached match lists) consistent with them.
type ProfileService struct {
	students  studentProfileRepo
	diploma   *DiplomaService
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(students studentProfileRepo, diplomaSvc *DiplomaService, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{students: students, diploma: diplomaSvc, cache: cache, validator: validate, logger: logger}
}

// Get loads a student's profile with its diploma verdict.
func (s *ProfileService) Get(ctx context.Context, studentID string) (*ProfileView, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	profile, err := s.students.GetProfile(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load profile")
	}
	return &ProfileView{
		StudentAcademicProfile: *profile,
		Diploma:                *s.diploma.Evaluate(ctx, profile),
	}, nil
}

// Put replaces the student's profile, re-evaluates the diploma rules and
// drops every cached match list for the student so stale scores are never
// served after an edit.
func (s *ProfileService) Put(ctx context.Context, studentID string, req ProfileUpdateRequest) (*ProfileView, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	subjects := make([]models.SubjectSelection, 0, len(req.Subjects))
	for _, input := range req.Subjects {
		subject, err := models.NewSubjectSelection(input.CourseID, input.CourseName, models.Level(input.Level), input.Grade)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	profile, err := models.NewStudentAcademicProfile(subjects, models.CoreGrade(req.TOKGrade), models.CoreGrade(req.EEGrade), req.TotalIBPoints, req.PreferredFieldIDs, req.PreferredCountryIDs)
	if err != nil {
		return nil, err
	}

	if err := s.students.SaveProfile(ctx, studentID, profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "save profile")
	}

	if err := s.cache.Invalidate(ctx, fmt.Sprintf("matches:%s:*", studentID)); err != nil {
		// The profile write already committed; a failed invalidation only
		// delays freshness until the TTL expires.
		s.logger.Warn("match cache invalidation failed", zap.String("student_id", studentID), zap.Error(err))
	}

	return &ProfileView{
		StudentAcademicProfile: *profile,
		Diploma:                *s.diploma.Evaluate(ctx, profile),
	}, nil
}
