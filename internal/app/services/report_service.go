package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/repositories"
)

type exportStore interface {
	ListInternshipsForExport(ctx context.Context) ([]repositories.InternshipExportRow, error)
}

type statsStore interface {
	CountByDepartment(ctx context.Context) ([]models.DepartmentInternshipStat, error)
}

var (
	_ exportStore = (*repositories.ApplicationRepository)(nil)
	_ statsStore  = (*repositories.StudentRepository)(nil)
)

// ReportService builds the administrative exports and the department charts
type ReportService struct {
	exports exportStore
	stats   statsStore
	logger  zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(exports exportStore, stats statsStore, logger zerolog.Logger) *ReportService {
	return &ReportService{
		exports: exports,
		stats:   stats,
		logger:  logger,
	}
}

var exportHeaders = []string{
	"Student", "Email", "Department", "Enterprise", "Offer", "Domain", "Start", "End", "State",
}

// ExportInternships renders the running internships as an XLSX workbook
func (s *ReportService) ExportInternships(ctx context.Context) ([]byte, error) {
	rows, err := s.exports.ListInternshipsForExport(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Internships"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.StudentName, row.StudentEmail, row.Department, row.EnterpriseName,
			row.OfferTitle, row.Domain, row.StartDate, row.EndDate, string(row.State),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}

	s.logger.Info().Int("rows", len(rows)).Msg("Internship export generated")

	return buf.Bytes(), nil
}

// GetInternshipStats returns the per-department internship counts
func (s *ReportService) GetInternshipStats(ctx context.Context) ([]dto.InternshipStatResponse, error) {
	stats, err := s.stats.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.InternshipStatResponse, 0, len(stats))
	for _, stat := range stats {
		result = append(result, dto.InternshipStatResponse{
			Department:    stat.Department,
			StudentCount:  stat.StudentCount,
			OnInternship:  stat.OnInternship,
			OffInternship: stat.StudentCount - stat.OnInternship,
		})
	}

	return result, nil
}
