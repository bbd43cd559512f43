package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ibpath/ibpath-api/internal/models"
)

// ProgramRepository manages persistence for the curated program catalog.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs a ProgramRepository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// List returns catalog programs matching the provided filters, paginated.
func (r *ProgramRepository) List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, int, error) {
	base := "FROM programs p"
	args := []interface{}{}
	conditions := []string{"p.active = true"}

	if filter.FieldID != "" {
		conditions = append(conditions, fmt.Sprintf("p.field_of_study_id = $%d", len(args)+1))
		args = append(args, filter.FieldID)
	}
	if filter.CountryID != "" {
		conditions = append(conditions, fmt.Sprintf("p.country_id = $%d", len(args)+1))
		args = append(args, filter.CountryID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(p.name) LIKE $%d OR LOWER(p.university_name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	allowedSorts := map[string]string{
		"name":          "p.name",
		"university":    "p.university_name",
		"min_ib_points": "p.min_ib_points",
		"created_at":    "p.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "p.name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT p.id, p.name, p.university_name, p.country_id, p.field_of_study_id, p.min_ib_points, p.active, p.created_at, p.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var programs []models.Program
	if err := r.db.SelectContext(ctx, &programs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list programs: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count programs: %w", err)
	}
	return programs, total, nil
}

type programRequirementRow struct {
	models.Program
	ReqCourseID   *string `db:"req_course_id"`
	ReqCourseName *string `db:"req_course_name"`
	ReqOrGroupID  *string `db:"req_or_group_id"`
	ReqLevel      *string `db:"req_level"`
	ReqMinGrade   *int    `db:"req_min_grade"`
	ReqCritical   *bool   `db:"req_is_critical"`
}

// ListForMatching returns every active program with its course requirements,
// optionally narrowed by field and country, in a single joined query.
func (r *ProgramRepository) ListForMatching(ctx context.Context, filter models.ProgramFilter) ([]models.ProgramDetail, error) {
	args := []interface{}{}
	conditions := []string{"p.active = true"}
	if filter.FieldID != "" {
		conditions = append(conditions, fmt.Sprintf("p.field_of_study_id = $%d", len(args)+1))
		args = append(args, filter.FieldID)
	}
	if filter.CountryID != "" {
		conditions = append(conditions, fmt.Sprintf("p.country_id = $%d", len(args)+1))
		args = append(args, filter.CountryID)
	}

	query := fmt.Sprintf(`SELECT p.id, p.name, p.university_name, p.country_id, p.field_of_study_id, p.min_ib_points, p.active, p.created_at, p.updated_at,
        cr.course_id AS req_course_id, c.name AS req_course_name, cr.or_group_id AS req_or_group_id,
        cr.required_level AS req_level, cr.min_grade AS req_min_grade, cr.is_critical AS req_is_critical
        FROM programs p
        LEFT JOIN course_requirements cr ON cr.program_id = p.id
        LEFT JOIN ib_courses c ON c.id = cr.course_id
        WHERE %s
        ORDER BY p.name, cr.or_group_id NULLS FIRST, cr.course_id`, strings.Join(conditions, " AND "))

	var rows []programRequirementRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list programs for matching: %w", err)
	}

	var details []models.ProgramDetail
	index := make(map[string]int)
	for _, row := range rows {
		idx, ok := index[row.ID]
		if !ok {
			index[row.ID] = len(details)
			details = append(details, models.ProgramDetail{Program: row.Program})
			idx = len(details) - 1
		}
		if row.ReqCourseID == nil {
			continue
		}
		requirement := models.CourseRequirement{
			CourseID: *row.ReqCourseID,
			MinGrade: 4,
		}
		if row.ReqCourseName != nil {
			requirement.CourseName = *row.ReqCourseName
		}
		if row.ReqOrGroupID != nil {
			requirement.OrGroupID = *row.ReqOrGroupID
		}
		if row.ReqLevel != nil {
			requirement.RequiredLevel = models.Level(*row.ReqLevel)
		}
		if row.ReqMinGrade != nil {
			requirement.MinGrade = *row.ReqMinGrade
		}
		if row.ReqCritical != nil {
			requirement.Critical = *row.ReqCritical
		}
		details[idx].Requirements = append(details[idx].Requirements, requirement)
	}
	return details, nil
}
