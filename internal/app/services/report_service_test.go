package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/repositories"
)

type fakeExportStore struct {
	rows []repositories.InternshipExportRow
}

func (f *fakeExportStore) ListInternshipsForExport(_ context.Context) ([]repositories.InternshipExportRow, error) {
	return f.rows, nil
}

type fakeStatsStore struct {
	stats []models.DepartmentInternshipStat
}

func (f *fakeStatsStore) CountByDepartment(_ context.Context) ([]models.DepartmentInternshipStat, error) {
	return f.stats, nil
}

func TestExportInternships(t *testing.T) {
	ctx := context.Background()
	exports := &fakeExportStore{rows: []repositories.InternshipExportRow{
		{
			StudentName:    "Dupont",
			StudentEmail:   "dupont@etu.test",
			Department:     "Computer Science",
			EnterpriseName: "Acme",
			OfferTitle:     "Backend internship",
			Domain:         "Computer Science",
			StartDate:      "2026-02-01",
			EndDate:        "2026-07-31",
			State:          models.ApplicationApproved,
		},
	}}
	service := NewReportService(exports, &fakeStatsStore{}, zerolog.Nop())

	data, err := service.ExportInternships(ctx)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Internships")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{
		"Dupont", "dupont@etu.test", "Computer Science", "Acme",
		"Backend internship", "Computer Science", "2026-02-01", "2026-07-31", "APPROVED",
	}, rows[1])
}

func TestExportInternshipsEmpty(t *testing.T) {
	service := NewReportService(&fakeExportStore{}, &fakeStatsStore{}, zerolog.Nop())

	data, err := service.ExportInternships(context.Background())
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Internships")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestGetInternshipStats(t *testing.T) {
	stats := &fakeStatsStore{stats: []models.DepartmentInternshipStat{
		{Department: "Computer Science", StudentCount: 40, OnInternship: 15},
		{Department: "Biology", StudentCount: 20, OnInternship: 0},
	}}
	service := NewReportService(&fakeExportStore{}, stats, zerolog.Nop())

	result, err := service.GetInternshipStats(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Computer Science", result[0].Department)
	assert.Equal(t, int64(25), result[0].OffInternship)
	assert.Equal(t, int64(20), result[1].OffInternship)
}
