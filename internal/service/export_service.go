package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
	"github.com/ibpath/ibpath-api/pkg/export"
)

type matchProvider interface {
	AllMatches(ctx context.Context, studentID, mode string) ([]MatchItem, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title, subtitle string) ([]byte, error)
}

// ExportFormat names a supported match-list download format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders a student's match list into downloadable files.
type ExportService struct {
	matches matchProvider
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(matches matchProvider, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{matches: matches, csv: csv, pdf: pdf, logger: logger}
}

var matchExportHeaders = []string{"Program", "University", "Overall", "Academic", "Location", "Field", "Category", "Rating"}

// MatchList renders the full match list for the student in the requested
// format.
func (s *ExportService) MatchList(ctx context.Context, studentID, mode string, format ExportFormat) (*ExportFile, error) {
	items, err := s.matches.AllMatches(ctx, studentID, mode)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: matchExportHeaders, Rows: make([]map[string]string, 0, len(items))}
	for _, item := range items {
		data.Rows = append(data.Rows, map[string]string{
			"Program":    item.ProgramName,
			"University": item.UniversityName,
			"Overall":    formatScore(item.OverallScore),
			"Academic":   formatScore(item.Academic.Score),
			"Location":   formatScore(item.Location.Score),
			"Field":      formatScore(item.Field.Score),
			"Category":   string(item.Category),
			"Rating":     item.RatingLabel,
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case ExportFormatCSV:
		body, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("matches-%s-%s.csv", studentID, stamp),
			ContentType: "text/csv",
			Body:        body,
		}, nil
	case ExportFormatPDF:
		subtitle := fmt.Sprintf("%d programs, generated %s", len(items), time.Now().UTC().Format("2 Jan 2006"))
		body, err := s.pdf.Render(data, "Program Matches", subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("matches-%s-%s.pdf", studentID, stamp),
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", string(format)))
	}
}

// ParseExportFormat normalises a format query value.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(raw) {
	case "", "csv":
		return ExportFormatCSV, nil
	case "pdf":
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw))
	}
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
