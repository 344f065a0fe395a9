package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/teacherspet/roster/internal/logging"
)

// Import result statuses.
const (
	ImportSuccess        = "success"
	ImportPartialSuccess = "partial_success"
	ImportFailed         = "failed"
)

// FailedRow describes one rejected CSV row.
type FailedRow struct {
	// RowNumber is the 1-based physical position among data rows,
	// header excluded. Blank rows advance the counter.
	RowNumber int `json:"rowNumber"`

	// OriginalData holds the raw cell text keyed by column label, so
	// the caller can re-present the row for correction.
	OriginalData map[string]string `json:"originalData"`

	// Errors lists every rule the row violated.
	Errors []string `json:"errors"`
}

// ImportSummary is the outcome of one CSV import.
type ImportSummary struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	TotalRows  int         `json:"totalRows"`
	Accepted   int         `json:"accepted"`
	Rejected   int         `json:"rejected"`
	FailedRows []FailedRow `json:"failedRows"`
}

// ImportStudents ingests a CSV roster for the given teacher.
//
// The file name must carry a .csv extension; anything else returns
// ErrUnsupportedFileType before the reader is touched. The first row
// is the header and must include the First Name and Last Name columns.
//
// Rows are validated and persisted one at a time. A row that fails
// validation, or whose insert fails, is recorded in FailedRows and
// processing continues with the next row. Row-level failures never
// fail the request: a parseable file always yields a summary.
func (s *Service) ImportStudents(ctx context.Context, teacherID int64, fileName string, r io.Reader) (*ImportSummary, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return nil, ErrUnsupportedFileType
	}

	logger := logging.WithFields(ctx,
		"import_id", uuid.NewString(),
		"teacher_id", teacherID,
		"file", fileName,
	)
	logger.Info("import started")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		logger.Warn("import aborted: unreadable header", "error", err)
		return &ImportSummary{
			Status:     ImportFailed,
			Message:    "The file is empty or could not be parsed as CSV.",
			FailedRows: []FailedRow{},
		}, nil
	}

	columns := headerColumns(header)
	if _, ok := columns[ColFirstName]; !ok {
		return missingHeaderSummary(ColFirstName), nil
	}
	if _, ok := columns[ColLastName]; !ok {
		return missingHeaderSummary(ColLastName), nil
	}

	summary := &ImportSummary{FailedRows: []FailedRow{}}
	position := 0
	for {
		if err := ctx.Err(); err != nil {
			logger.Warn("import cancelled", "accepted", summary.Accepted)
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		position++

		if err != nil {
			summary.TotalRows++
			summary.Rejected++
			summary.FailedRows = append(summary.FailedRows, FailedRow{
				RowNumber:    position,
				OriginalData: map[string]string{},
				Errors:       []string{fmt.Sprintf("row could not be parsed: %v", err)},
			})
			continue
		}

		if isBlankRecord(record) {
			// Blank lines occupy a physical position but carry no data.
			continue
		}

		summary.TotalRows++
		row := recordToRow(columns, record)

		student, rowErrs := ValidateRow(row)
		if len(rowErrs) > 0 {
			summary.Rejected++
			summary.FailedRows = append(summary.FailedRows, FailedRow{
				RowNumber:    position,
				OriginalData: row,
				Errors:       rowErrs,
			})
			continue
		}

		student.TeacherID = teacherID
		if _, err := s.gateway.InsertStudent(ctx, &student); err != nil {
			logger.Error("import row insert failed", "row", position, "error", err)
			summary.Rejected++
			summary.FailedRows = append(summary.FailedRows, FailedRow{
				RowNumber:    position,
				OriginalData: row,
				Errors:       []string{"could not be saved due to a storage error"},
			})
			continue
		}
		summary.Accepted++
	}

	finalizeSummary(summary)
	logger.Info("import finished",
		"status", summary.Status,
		"total", summary.TotalRows,
		"accepted", summary.Accepted,
		"rejected", summary.Rejected,
	)
	return summary, nil
}

// headerColumns maps each recognized column label to its index in the
// header row. Unrecognized columns are carried as-is so their cells
// still appear in OriginalData.
func headerColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, exists := columns[label]; !exists {
			columns[label] = i
		}
	}
	return columns
}

// recordToRow projects a CSV record into label-keyed cells. Records
// shorter than the header simply omit the trailing columns.
func recordToRow(columns map[string]int, record []string) map[string]string {
	row := make(map[string]string, len(columns))
	for label, idx := range columns {
		if idx < len(record) {
			row[label] = record[idx]
		}
	}
	return row
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func missingHeaderSummary(label string) *ImportSummary {
	return &ImportSummary{
		Status:     ImportFailed,
		Message:    fmt.Sprintf("The file is missing the required %q column.", label),
		FailedRows: []FailedRow{},
	}
}

// finalizeSummary derives the overall status and message from the
// per-row counts.
func finalizeSummary(s *ImportSummary) {
	switch {
	case s.TotalRows == 0:
		s.Status = ImportFailed
		s.Message = "The file contains no student rows."
	case s.Rejected == 0:
		s.Status = ImportSuccess
		s.Message = fmt.Sprintf("Successfully imported %d students.", s.Accepted)
	case s.Accepted == 0:
		s.Status = ImportFailed
		s.Message = fmt.Sprintf("No students were imported; %d rows failed validation.", s.Rejected)
	default:
		s.Status = ImportPartialSuccess
		s.Message = fmt.Sprintf("Imported %d students; %d rows failed validation.", s.Accepted, s.Rejected)
	}
}
