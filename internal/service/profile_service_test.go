package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibpath/ibpath-api/internal/models"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
)

type mockStudentRepo struct {
	profiles map[string]*models.StudentAcademicProfile
	saved    map[string]*models.StudentAcademicProfile
}

func (m *mockStudentRepo) GetProfile(ctx context.Context, studentID string) (*models.StudentAcademicProfile, error) {
	profile, ok := m.profiles[studentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return profile, nil
}

func (m *mockStudentRepo) SaveProfile(ctx context.Context, studentID string, profile *models.StudentAcademicProfile) error {
	if _, ok := m.profiles[studentID]; !ok {
		return sql.ErrNoRows
	}
	if m.saved == nil {
		m.saved = make(map[string]*models.StudentAcademicProfile)
	}
	m.saved[studentID] = profile
	m.profiles[studentID] = profile
	return nil
}

type mockCacheRepo struct {
	store       map[string][]byte
	invalidated []string
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	m.store[key] = nil
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	return nil
}

func newProfileService(repo *mockStudentRepo, cacheRepo *mockCacheRepo) *ProfileService {
	diplomaSvc := NewDiplomaService("matrix", nil, nil, nil)
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	return NewProfileService(repo, diplomaSvc, cacheSvc, nil, nil)
}

func TestProfileGetIncludesDiplomaVerdict(t *testing.T) {
	total := 35
	repo := &mockStudentRepo{profiles: map[string]*models.StudentAcademicProfile{
		"student-1": {
			Subjects: []models.SubjectSelection{
				{CourseID: "math-aa", Level: models.LevelHL, Grade: 6},
			},
			TOKGrade:      "B",
			EEGrade:       "B",
			TotalIBPoints: &total,
		},
	}}
	svc := newProfileService(repo, &mockCacheRepo{})

	view, err := svc.Get(context.Background(), "student-1")
	require.NoError(t, err)
	assert.True(t, view.Diploma.IsValid)
	assert.Equal(t, 35, view.Diploma.TotalPoints)
}

func TestProfileGetNotFound(t *testing.T) {
	svc := newProfileService(&mockStudentRepo{}, &mockCacheRepo{})

	_, err := svc.Get(context.Background(), "missing")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestProfilePutSavesAndInvalidatesCache(t *testing.T) {
	repo := &mockStudentRepo{profiles: map[string]*models.StudentAcademicProfile{
		"student-1": {},
	}}
	cacheRepo := &mockCacheRepo{}
	svc := newProfileService(repo, cacheRepo)

	view, err := svc.Put(context.Background(), "student-1", ProfileUpdateRequest{
		Subjects: []SubjectInput{
			{CourseID: "math-aa", CourseName: "Mathematics AA", Level: "HL", Grade: 6},
			{CourseID: "physics", CourseName: "Physics", Level: "HL", Grade: 5},
		},
		TOKGrade:            "A",
		EEGrade:             "B",
		PreferredCountryIDs: []string{"nl"},
	})
	require.NoError(t, err)
	assert.Len(t, view.Subjects, 2)
	assert.True(t, view.Diploma.IsValid, "incomplete subject set is not yet applicable")

	require.NotNil(t, repo.saved["student-1"])
	require.Len(t, cacheRepo.invalidated, 1)
	assert.Equal(t, "matches:student-1:*", cacheRepo.invalidated[0])
}

func TestProfilePutRejectsSevenSubjects(t *testing.T) {
	repo := &mockStudentRepo{profiles: map[string]*models.StudentAcademicProfile{"student-1": {}}}
	svc := newProfileService(repo, &mockCacheRepo{})

	subjects := make([]SubjectInput, 7)
	for i := range subjects {
		subjects[i] = SubjectInput{CourseID: string(rune('a' + i)), Level: "SL", Grade: 4}
	}
	_, err := svc.Put(context.Background(), "student-1", ProfileUpdateRequest{Subjects: subjects})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.saved)
}

func TestProfilePutUnknownStudent(t *testing.T) {
	svc := newProfileService(&mockStudentRepo{}, &mockCacheRepo{})

	_, err := svc.Put(context.Background(), "missing", ProfileUpdateRequest{})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
