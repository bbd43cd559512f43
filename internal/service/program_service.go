package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ibpath/ibpath-api/internal/models"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
)

type programLister interface {
	List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, int, error)
}

// ProgramService exposes the curated program catalog.
type ProgramService struct {
	programs programLister
	logger   *zap.Logger
}

// NewProgramService constructs a ProgramService.
func NewProgramService(programs programLister, logger *zap.Logger) *ProgramService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{programs: programs, logger: logger}
}

// List returns catalog programs with pagination metadata.
func (s *ProgramService) List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, *models.Pagination, error) {
	programs, total, err := s.programs.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list programs")
	}
	if programs == nil {
		programs = []models.Program{}
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return programs, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
