package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibpath/ibpath-api/internal/models"
)

type mockMatchProvider struct {
	items []MatchItem
	err   error
}

func (m *mockMatchProvider) AllMatches(ctx context.Context, studentID, mode string) ([]MatchItem, error) {
	return m.items, m.err
}

func exportItems() []MatchItem {
	return []MatchItem{
		{
			MatchResult: models.MatchResult{
				ProgramID:    "prog-1",
				OverallScore: 0.92,
				Academic:     models.AcademicMatch{Score: 0.9},
				Location:     models.PreferenceMatch{Score: 1.0},
				Field:        models.PreferenceMatch{Score: 1.0},
				Category:     models.CategorySafety,
			},
			ProgramName:    "Computer Science",
			UniversityName: "TU Delft",
			RatingLabel:    "Excellent Match",
		},
	}
}

func TestExportMatchListCSV(t *testing.T) {
	svc := NewExportService(&mockMatchProvider{items: exportItems()}, nil, nil, nil)

	file, err := svc.MatchList(context.Background(), "student-1", "", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "matches-student-1-"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Body)
	assert.Contains(t, body, "Program,University,Overall,Academic,Location,Field,Category,Rating")
	assert.Contains(t, body, "Computer Science,TU Delft,0.92,0.90,1.00,1.00,SAFETY,Excellent Match")
}

func TestExportMatchListPDF(t *testing.T) {
	svc := NewExportService(&mockMatchProvider{items: exportItems()}, nil, nil, nil)

	file, err := svc.MatchList(context.Background(), "student-1", "", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&mockMatchProvider{}, nil, nil, nil)

	_, err := svc.MatchList(context.Background(), "student-1", "", ExportFormat("xlsx"))
	assert.Error(t, err)
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, format)

	format, err = ParseExportFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, format)

	_, err = ParseExportFormat("doc")
	assert.Error(t, err)
}
