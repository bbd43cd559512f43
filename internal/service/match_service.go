package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ibpath/ibpath-api/internal/models"
	"github.com/ibpath/ibpath-api/internal/scoring"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
)

type profileLoader interface {
	GetProfile(ctx context.Context, studentID string) (*models.StudentAcademicProfile, error)
}

type programMatchLister interface {
	ListForMatching(ctx context.Context, filter models.ProgramFilter) ([]models.ProgramDetail, error)
}

// MatchItem is one scored program in a match list, enriched with catalog
// display fields and the five-tier rating label.
type MatchItem struct {
	models.MatchResult
	ProgramName    string `json:"program_name"`
	UniversityName string `json:"university_name"`
	RatingLabel    string `json:"rating_label"`
}

// MatchQuery narrows and pages a student's match list.
type MatchQuery struct {
	Mode     string
	Category string
	MinScore float64
	Page     int
	PageSize int
}

// MatchList is the paged match response.
type MatchList struct {
	Items      []MatchItem       `json:"items"`
	Mode       models.ScoreMode  `json:"mode"`
	Cached     bool              `json:"cached"`
	Pagination models.Pagination `json:"-"`
}

// MatchPreviewRequest scores an ad-hoc profile against the catalog without
// touching stored data, for the "what if my grades were..." flow.
type MatchPreviewRequest struct {
	ProfileUpdateRequest
	Mode string `json:"mode"`
	// ProgramID narrows the preview to one program; empty scores the whole
	// catalog.
	ProgramID string `json:"program_id"`
}

// MatchConfig tunes list sizing and cache behaviour.
type MatchConfig struct {
	CacheTTL        time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

// MatchService computes, caches and pages program match lists.
type MatchService struct {
	profiles  profileLoader
	programs  programMatchLister
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       MatchConfig
}

// NewMatchService constructs a MatchService.
func NewMatchService(profiles profileLoader, programs programMatchLister, cache *CacheService, metrics *MetricsService, cfg MatchConfig, validate *validator.Validate, logger *zap.Logger) *MatchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &MatchService{
		profiles:  profiles,
		programs:  programs,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Matches returns the student's scored match list, paged and optionally
// filtered by category or a minimum overall score. Full lists are cached per
// (student, profile fingerprint, mode); filtering and paging happen after the
// cache so every query shape shares one computed list.
func (s *MatchService) Matches(ctx context.Context, studentID string, query MatchQuery) (*MatchList, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}

	profile, err := s.profiles.GetProfile(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load profile")
	}

	mode := normalizeModeName(query.Mode)
	key := fmt.Sprintf("matches:%s:%s:%s", studentID, profile.Fingerprint(), mode)

	var items []MatchItem
	cached, err := s.cache.Get(ctx, key, &items)
	if err != nil {
		// Treat a broken cache as a miss; matching must not depend on Redis.
		cached = false
	}
	if cached {
		s.metrics.ObserveMatchComputation("cached", 0)
	} else {
		start := time.Now()
		items, err = s.computeAll(ctx, profile, mode)
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveMatchComputation("computed", time.Since(start))
		if err := s.cache.Set(ctx, key, items, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("match cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	filtered := filterMatches(items, query)
	page, pagination := s.paginate(filtered, query.Page, query.PageSize)

	return &MatchList{Items: page, Mode: mode, Cached: cached, Pagination: pagination}, nil
}

// Preview scores a transient profile without reading or writing stored state.
// Results are never cached: the profile has no identity to key on.
func (s *MatchService) Preview(ctx context.Context, req MatchPreviewRequest) (*MatchList, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload")
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

	mode := normalizeModeName(req.Mode)
	start := time.Now()
	items, err := s.computeAll(ctx, profile, mode)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveMatchComputation("computed", time.Since(start))

	if req.ProgramID != "" {
		narrowed := items[:0:0]
		for _, item := range items {
			if item.ProgramID == req.ProgramID {
				narrowed = append(narrowed, item)
			}
		}
		if len(narrowed) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		items = narrowed
	}

	return &MatchList{
		Items:      items,
		Mode:       mode,
		Pagination: models.Pagination{Page: 1, PageSize: len(items), TotalCount: len(items)},
	}, nil
}

// AllMatches returns the full unpaged match list for a student, for export.
func (s *MatchService) AllMatches(ctx context.Context, studentID, mode string) ([]MatchItem, error) {
	list, err := s.Matches(ctx, studentID, MatchQuery{Mode: mode, Page: 1, PageSize: s.cfg.MaxPageSize})
	if err != nil {
		return nil, err
	}
	if list.Pagination.TotalCount <= len(list.Items) {
		return list.Items, nil
	}
	// More than one max-size page; refetch page by page.
	items := append([]MatchItem(nil), list.Items...)
	for page := 2; len(items) < list.Pagination.TotalCount; page++ {
		next, err := s.Matches(ctx, studentID, MatchQuery{Mode: mode, Page: page, PageSize: s.cfg.MaxPageSize})
		if err != nil {
			return nil, err
		}
		if len(next.Items) == 0 {
			break
		}
		items = append(items, next.Items...)
	}
	return items, nil
}

func (s *MatchService) computeAll(ctx context.Context, profile *models.StudentAcademicProfile, mode models.ScoreMode) ([]MatchItem, error) {
	details, err := s.programs.ListForMatching(ctx, models.ProgramFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load programs")
	}

	inputs := make([]models.ProgramMatchInput, 0, len(details))
	catalog := make(map[string]models.Program, len(details))
	for _, detail := range details {
		inputs = append(inputs, detail.MatchInput())
		catalog[detail.ID] = detail.Program
	}

	results := scoring.ScoreAll(profile, inputs, mode)
	items := make([]MatchItem, 0, len(results))
	for _, result := range results {
		program := catalog[result.ProgramID]
		items = append(items, MatchItem{
			MatchResult:    result,
			ProgramName:    program.Name,
			UniversityName: program.UniversityName,
			RatingLabel:    scoring.RatingLabel(result.OverallScore),
		})
	}
	return items, nil
}

func (s *MatchService) paginate(items []MatchItem, page, size int) ([]MatchItem, models.Pagination) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = s.cfg.DefaultPageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	pagination := models.Pagination{Page: page, PageSize: size, TotalCount: len(items)}
	start := (page - 1) * size
	if start >= len(items) {
		return []MatchItem{}, pagination
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pagination
}

func filterMatches(items []MatchItem, query MatchQuery) []MatchItem {
	category := models.MatchCategory(strings.ToUpper(query.Category))
	filtered := make([]MatchItem, 0, len(items))
	for _, item := range items {
		if query.MinScore > 0 && item.OverallScore < query.MinScore {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func normalizeModeName(raw string) models.ScoreMode {
	if raw == "" {
		return models.ScoreModeBalanced
	}
	return models.ScoreMode(strings.ToUpper(raw))
}
