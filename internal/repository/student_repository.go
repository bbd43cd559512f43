package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ibpath/ibpath-api/internal/models"
)

// StudentRepository manages persistence for student academic profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentCoreRow struct {
	TOKGrade      *string `db:"tok_grade"`
	EEGrade       *string `db:"ee_grade"`
	TotalIBPoints *int    `db:"total_ib_points"`
}

// GetProfile assembles the academic profile for a student: core grades,
// subject selections and stated preferences. Returns sql.ErrNoRows when the
// student does not exist.
func (r *StudentRepository) GetProfile(ctx context.Context, studentID string) (*models.StudentAcademicProfile, error) {
	var core studentCoreRow
	const coreQuery = `SELECT tok_grade, ee_grade, total_ib_points FROM students WHERE id = $1`
	if err := r.db.GetContext(ctx, &core, coreQuery, studentID); err != nil {
		return nil, err
	}

	var subjects []models.SubjectSelection
	const subjectsQuery = `SELECT ss.course_id, c.name AS course_name, ss.level, ss.grade
        FROM subject_selections ss
        JOIN ib_courses c ON c.id = ss.course_id
        WHERE ss.student_id = $1
        ORDER BY c.name`
	if err := r.db.SelectContext(ctx, &subjects, subjectsQuery, studentID); err != nil {
		return nil, fmt.Errorf("load subject selections: %w", err)
	}

	var fieldIDs []string
	if err := r.db.SelectContext(ctx, &fieldIDs, `SELECT field_id FROM student_field_preferences WHERE student_id = $1 ORDER BY field_id`, studentID); err != nil {
		return nil, fmt.Errorf("load field preferences: %w", err)
	}

	var countryIDs []string
	if err := r.db.SelectContext(ctx, &countryIDs, `SELECT country_id FROM student_country_preferences WHERE student_id = $1 ORDER BY country_id`, studentID); err != nil {
		return nil, fmt.Errorf("load country preferences: %w", err)
	}

	profile := &models.StudentAcademicProfile{
		Subjects:            subjects,
		TotalIBPoints:       core.TotalIBPoints,
		PreferredFieldIDs:   fieldIDs,
		PreferredCountryIDs: countryIDs,
	}
	if core.TOKGrade != nil {
		profile.TOKGrade = models.CoreGrade(*core.TOKGrade)
	}
	if core.EEGrade != nil {
		profile.EEGrade = models.CoreGrade(*core.EEGrade)
	}
	return profile, nil
}

// SaveProfile replaces the student's grade entry and preferences in one
// transaction. The subject set is rewritten wholesale; the grade-entry form
// always submits the complete selection.
func (r *StudentRepository) SaveProfile(ctx context.Context, studentID string, profile *models.StudentAcademicProfile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save profile: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const updateStudent = `UPDATE students
        SET tok_grade = $2, ee_grade = $3, total_ib_points = $4, updated_at = $5
        WHERE id = $1`
	result, err := tx.ExecContext(ctx, updateStudent, studentID, nullableGrade(profile.TOKGrade), nullableGrade(profile.EEGrade), profile.TotalIBPoints, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update student core grades: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM subject_selections WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("clear subject selections: %w", err)
	}
	const insertSubject = `INSERT INTO subject_selections (id, student_id, course_id, level, grade)
        VALUES ($1, $2, $3, $4, $5)`
	for _, subject := range profile.Subjects {
		if _, err := tx.ExecContext(ctx, insertSubject, uuid.NewString(), studentID, subject.CourseID, string(subject.Level), subject.Grade); err != nil {
			return fmt.Errorf("insert subject selection %s: %w", subject.CourseID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM student_field_preferences WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("clear field preferences: %w", err)
	}
	for _, fieldID := range profile.PreferredFieldIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO student_field_preferences (student_id, field_id) VALUES ($1, $2)`, studentID, fieldID); err != nil {
			return fmt.Errorf("insert field preference %s: %w", fieldID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM student_country_preferences WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("clear country preferences: %w", err)
	}
	for _, countryID := range profile.PreferredCountryIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO student_country_preferences (student_id, country_id) VALUES ($1, $2)`, studentID, countryID); err != nil {
			return fmt.Errorf("insert country preference %s: %w", countryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save profile: %w", err)
	}
	return nil
}

func nullableGrade(grade models.CoreGrade) *string {
	if !grade.IsSet() {
		return nil
	}
	s := string(grade)
	return &s
}
