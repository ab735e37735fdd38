package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/apperror"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// exportColumns is the fixed column order of job exports.
var exportColumns = []struct {
	header string
	value  func(j domain.Job) interface{}
}{
	{"JOB TITLE", func(j domain.Job) interface{} { return j.JobTitle }},
	{"COMPANY", func(j domain.Job) interface{} { return deref(j.CompanyName) }},
	{"LOCATION", func(j domain.Job) interface{} { return deref(j.Location) }},
	{"STATUS", func(j domain.Job) interface{} { return string(j.Status) }},
	{"JOB TYPE", func(j domain.Job) interface{} { return string(j.JobType) }},
	{"REMOTE", func(j domain.Job) interface{} { return j.IsRemote }},
	{"SALARY", func(j domain.Job) interface{} { return deref(j.Salary) }},
	{"SOURCE", func(j domain.Job) interface{} { return j.Source }},
	{"URL", func(j domain.Job) interface{} { return j.JobURL }},
	{"NOTES", func(j domain.Job) interface{} { return deref(j.Notes) }},
	{"CREATED AT", func(j domain.Job) interface{} { return j.CreatedAt.UTC().Format(time.RFC3339) }},
	{"UPDATED AT", func(j domain.Job) interface{} { return j.UpdatedAt.UTC().Format(time.RFC3339) }},
}

type exportUsecase struct {
	jobs domain.JobUsecase
	now  func() time.Time
}

// NewExportUsecase renders tracked jobs as spreadsheets. Listing goes through
// jobs so filters are validated the same way as the list endpoint.
func NewExportUsecase(jobs domain.JobUsecase) domain.ExportUsecase {
	return &exportUsecase{jobs: jobs, now: time.Now}
}

func (u *exportUsecase) ExportJobs(ctx context.Context, filter domain.JobFilter, format string) (*domain.Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = domain.ExportXLSX
	}
	if format != domain.ExportXLSX && format != domain.ExportCSV {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported export format %q", format), "Format: must be one of: xlsx, csv")
	}

	jobs, err := u.jobs.ListJobs(ctx, filter)
	if err != nil {
		return nil, err
	}

	stamp := u.now().Format("20060102_150405")
	if format == domain.ExportCSV {
		data, err := exportCSV(jobs)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.Export{FileName: "jobs_" + stamp + ".csv", ContentType: contentTypeCSV, Data: data}, nil
	}

	data, err := exportExcel(jobs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.Export{FileName: "jobs_" + stamp + ".xlsx", ContentType: contentTypeXLSX, Data: data}, nil
}

func exportExcel(jobs []domain.Job) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Jobs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for rowIdx, job := range jobs {
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, col.value(job))
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, colName, colName, 22)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(jobs []domain.Job) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col.header
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, job := range jobs {
		row := make([]string, len(exportColumns))
		for i, col := range exportColumns {
			row[i] = fmt.Sprint(col.value(job))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
